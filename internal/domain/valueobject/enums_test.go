package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/bibbank/bib/internal/domain/valueobject"
)

func TestParseEnums(t *testing.T) {
	_, err := vo.ParseGLAccountType("ASSET")
	assert.NoError(t, err)
	_, err = vo.ParseGLAccountType("asset")
	assert.Error(t, err)

	_, err = vo.ParseGLAccountUsage("HEADER")
	assert.NoError(t, err)
	_, err = vo.ParseGLAccountUsage("GROUP")
	assert.Error(t, err)

	_, err = vo.ParseProductType("SHARE")
	assert.NoError(t, err)
	_, err = vo.ParseProductType("CLIENT")
	assert.Error(t, err)

	_, err = vo.ParseEntryType("CREDIT")
	assert.NoError(t, err)
	_, err = vo.ParseEntryType("")
	assert.Error(t, err)

	tt, err := vo.ParseTransactionType("WITHHOLD_TAX")
	require.NoError(t, err)
	assert.Equal(t, vo.TxWithholdTax, tt)
	_, err = vo.ParseTransactionType("REFUND_FOR_ACTIVE_LOAN")
	assert.Error(t, err)
}

func TestAccountingConvention(t *testing.T) {
	tests := []struct {
		conv    vo.AccountingConvention
		accrual bool
		posts   bool
	}{
		{vo.ConventionNone, false, false},
		{vo.ConventionCash, false, true},
		{vo.ConventionAccrualPeriodic, true, true},
		{vo.ConventionAccrualUpfront, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.conv.String(), func(t *testing.T) {
			parsed, err := vo.ParseAccountingConvention(tt.conv.String())
			require.NoError(t, err)
			assert.Equal(t, tt.accrual, parsed.IsAccrual())
			assert.Equal(t, tt.posts, parsed.PostsEntries())
		})
	}
	_, err := vo.ParseAccountingConvention("MODIFIED_CASH")
	assert.Error(t, err)
}

func TestEntryType_Opposite(t *testing.T) {
	assert.Equal(t, vo.EntryTypeCredit, vo.EntryTypeDebit.Opposite())
	assert.Equal(t, vo.EntryTypeDebit, vo.EntryTypeCredit.Opposite())
}

func TestTransactionType_IsCharge(t *testing.T) {
	assert.True(t, vo.TxFeeDeduction.IsCharge())
	assert.True(t, vo.TxOverdraftFee.IsCharge())
	assert.True(t, vo.TxWithdrawalFee.IsCharge())
	assert.False(t, vo.TxWithdrawal.IsCharge())
	assert.False(t, vo.TxWithholdTax.IsCharge())
}
