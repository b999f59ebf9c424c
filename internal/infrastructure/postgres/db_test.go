package postgres

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/pkg/postgres"
)

func TestNullUUID(t *testing.T) {
	assert.Nil(t, nullUUID(uuid.Nil))

	id := uuid.New()
	p := nullUUID(id)
	if assert.NotNil(t, p) {
		assert.Equal(t, id, *p)
	}
	assert.Equal(t, id, fromNullUUID(p))
	assert.Equal(t, uuid.Nil, fromNullUUID(nil))
}

func TestNotFound(t *testing.T) {
	err := notFound(pgx.ErrNoRows, "office %s", "X")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "office X")

	cause := errors.New("connection reset")
	err = notFound(cause, "office %s", "X")
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}

func TestConstructors(t *testing.T) {
	assert.NotNil(t, NewGLAccountRepo(nil))
	assert.NotNil(t, NewMappingRepo(nil))
	assert.NotNil(t, NewOfficeRepo(nil))
	assert.NotNil(t, NewClosureRepo(nil))
	assert.NotNil(t, NewJournalReader(nil))
	assert.NotNil(t, NewOutboxRepo(nil))

	store := NewLedgerStore(nil, postgres.RetryPolicy{MaxAttempts: 3}, nil)
	assert.Equal(t, 3, store.policy.MaxAttempts)
	var _ port.LedgerStore = store
}
