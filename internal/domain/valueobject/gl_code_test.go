package valueobject_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/internal/domain/valueobject"
)

func TestNewGLCode_Valid(t *testing.T) {
	for _, code := range []string{"1", "11100", "4201-01", "L.INT.01", "a_b", strings.Repeat("9", 45)} {
		t.Run(code, func(t *testing.T) {
			c, err := valueobject.NewGLCode(code)
			require.NoError(t, err)
			assert.Equal(t, code, c.String())
			assert.False(t, c.IsZero())
		})
	}
}

func TestNewGLCode_Invalid(t *testing.T) {
	for _, code := range []string{"", "-100", "11 00", "10/20", strings.Repeat("9", 46)} {
		t.Run(code, func(t *testing.T) {
			_, err := valueobject.NewGLCode(code)
			assert.ErrorContains(t, err, "invalid GL code")
		})
	}
}

func TestGLCode_Equal(t *testing.T) {
	assert.True(t, valueobject.MustGLCode("100").Equal(valueobject.MustGLCode("100")))
	assert.False(t, valueobject.MustGLCode("100").Equal(valueobject.MustGLCode("200")))
	assert.True(t, valueobject.GLCode{}.IsZero())
	assert.Panics(t, func() { valueobject.MustGLCode("") })
}
