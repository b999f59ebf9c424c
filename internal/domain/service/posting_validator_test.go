package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/service"
	vo "github.com/bibbank/bib/internal/domain/valueobject"
)

func TestPostingValidator_ValidatePostings_Valid(t *testing.T) {
	validator := service.NewPostingValidator()

	pp, err := vo.NewPostingPair(uuid.New(), uuid.New(), vo.RoleSavingsReference, vo.RoleSavingsControl, decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.NoError(t, validator.ValidatePostings([]vo.PostingPair{pp}))
}

func TestPostingValidator_ValidatePostings_SelfPostingAllowed(t *testing.T) {
	validator := service.NewPostingValidator()
	same := uuid.New()

	pp, err := vo.NewPostingPair(same, same, vo.RoleSavingsReference, vo.RoleSavingsControl, decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.NoError(t, validator.ValidatePostings([]vo.PostingPair{pp}))
}

func TestPostingValidator_ValidatePostings_EmptyPostings(t *testing.T) {
	validator := service.NewPostingValidator()

	err := validator.ValidatePostings(nil)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Contains(t, err.Error(), "at least one posting pair is required")

	err = validator.ValidatePostings([]vo.PostingPair{})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func journalLegs(t *testing.T, txID string, amounts ...int64) []model.JournalEntry {
	t.Helper()
	var pairs []vo.PostingPair
	for _, a := range amounts {
		pp, err := vo.NewPostingPair(uuid.New(), uuid.New(), vo.RoleSavingsReference, vo.RoleSavingsControl, decimal.NewFromInt(a))
		require.NoError(t, err)
		pairs = append(pairs, pp)
	}
	jt, err := model.NewJournalTransaction(model.JournalHeader{
		TenantID:      tenantID,
		OfficeID:      uuid.New(),
		TransactionID: txID,
		Currency:      "USD",
		EntryDate:     jan1,
	}, pairs, now)
	require.NoError(t, err)
	return jt.Entries()
}

func TestPostingValidator_ValidateEntries(t *testing.T) {
	validator := service.NewPostingValidator()

	assert.NoError(t, validator.ValidateEntries("T-1", journalLegs(t, "T-1", 500, 1500)))

	t.Run("odd leg count", func(t *testing.T) {
		legs := journalLegs(t, "T-1", 500)
		assert.ErrorIs(t, validator.ValidateEntries("T-1", legs[:1]), model.ErrInvalidInput)
	})

	t.Run("foreign leg", func(t *testing.T) {
		legs := append(journalLegs(t, "T-1", 500), journalLegs(t, "T-2", 500)...)
		assert.ErrorIs(t, validator.ValidateEntries("T-1", legs), model.ErrInvalidInput)
	})

	t.Run("unbalanced", func(t *testing.T) {
		a := journalLegs(t, "T-1", 500)
		b := journalLegs(t, "T-1", 700)
		err := validator.ValidateEntries("T-1", []model.JournalEntry{a[0], b[1]})
		var unbalanced *model.UnbalancedEntryError
		require.True(t, errors.As(err, &unbalanced))
		assert.True(t, unbalanced.Debits.Equal(decimal.NewFromInt(500)))
		assert.True(t, unbalanced.Credits.Equal(decimal.NewFromInt(700)))
	})
}
