package valueobject

import "fmt"

// TransactionType tags the financial event a portfolio module reports.
type TransactionType string

const (
	// Savings
	TxDeposit                TransactionType = "DEPOSIT"
	TxWithdrawal             TransactionType = "WITHDRAWAL"
	TxInterestPosting        TransactionType = "INTEREST_POSTING"
	TxAccrualInterestPosting TransactionType = "ACCRUAL_INTEREST_POSTING"
	TxOverdraftInterest      TransactionType = "OVERDRAFT_INTEREST"
	TxFeeDeduction           TransactionType = "FEE_DEDUCTION"
	TxOverdraftFee           TransactionType = "OVERDRAFT_FEE"
	TxWithdrawalFee          TransactionType = "WITHDRAWAL_FEE"
	TxAnnualFee              TransactionType = "ANNUAL_FEE"
	TxPayCharge              TransactionType = "PAY_CHARGE"
	TxWithholdTax            TransactionType = "WITHHOLD_TAX"
	TxWrittenOff             TransactionType = "WRITTEN_OFF"
	TxInitiateTransfer       TransactionType = "INITIATE_TRANSFER"
	TxApproveTransfer        TransactionType = "APPROVE_TRANSFER"
	TxWithdrawTransfer       TransactionType = "WITHDRAW_TRANSFER"
	TxRejectTransfer         TransactionType = "REJECT_TRANSFER"
	TxEscheat                TransactionType = "ESCHEAT"
	TxDividendPayout         TransactionType = "DIVIDEND_PAYOUT"

	// Loans
	TxDisbursement      TransactionType = "DISBURSEMENT"
	TxRepayment         TransactionType = "REPAYMENT"
	TxWriteOff          TransactionType = "WRITE_OFF"
	TxRecoveryRepayment TransactionType = "RECOVERY_REPAYMENT"
	TxAccrual           TransactionType = "ACCRUAL"

	// Shares
	TxSharePurchase         TransactionType = "SHARE_PURCHASE"
	TxSharePurchaseApproved TransactionType = "SHARE_PURCHASE_APPROVED"
	TxSharePurchaseRejected TransactionType = "SHARE_PURCHASE_REJECTED"
	TxShareRedeem           TransactionType = "SHARE_REDEEM"
)

var knownTransactionTypes = map[TransactionType]struct{}{
	TxDeposit: {}, TxWithdrawal: {}, TxInterestPosting: {}, TxAccrualInterestPosting: {},
	TxOverdraftInterest: {}, TxFeeDeduction: {}, TxOverdraftFee: {}, TxWithdrawalFee: {},
	TxAnnualFee: {}, TxPayCharge: {}, TxWithholdTax: {}, TxWrittenOff: {},
	TxInitiateTransfer: {}, TxApproveTransfer: {}, TxWithdrawTransfer: {}, TxRejectTransfer: {},
	TxEscheat: {}, TxDividendPayout: {},
	TxDisbursement: {}, TxRepayment: {}, TxWriteOff: {}, TxRecoveryRepayment: {}, TxAccrual: {},
	TxSharePurchase: {}, TxSharePurchaseApproved: {}, TxSharePurchaseRejected: {}, TxShareRedeem: {},
}

func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if _, ok := knownTransactionTypes[t]; !ok {
		return "", fmt.Errorf("invalid transaction type %q", s)
	}
	return t, nil
}

// IsCharge reports whether the type settles fee or penalty charges.
func (t TransactionType) IsCharge() bool {
	switch t {
	case TxFeeDeduction, TxOverdraftFee, TxWithdrawalFee, TxAnnualFee, TxPayCharge:
		return true
	}
	return false
}

func (t TransactionType) String() string { return string(t) }
