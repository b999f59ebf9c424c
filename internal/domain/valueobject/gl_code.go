package valueobject

import (
	"fmt"
	"regexp"
)

// GLCode is the human-facing code of a general ledger account (e.g. "11100", "4201-01").
// Immutable value object with unexported fields.
type GLCode struct {
	code string
}

var glCodeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,44}$`)

func NewGLCode(code string) (GLCode, error) {
	if !glCodeRegex.MatchString(code) {
		return GLCode{}, fmt.Errorf("invalid GL code %q: must be 1-45 letters, digits, '.', '_' or '-'", code)
	}
	return GLCode{code: code}, nil
}

func MustGLCode(code string) GLCode {
	c, err := NewGLCode(code)
	if err != nil {
		panic(err)
	}
	return c
}

func (c GLCode) String() string { return c.code }
func (c GLCode) IsZero() bool   { return c.code == "" }

func (c GLCode) Equal(other GLCode) bool {
	return c.code == other.code
}
