package calculation

import "github.com/rgehrsitz/costbreakdown/internal/domain"

// FirstDollarInput is the input to first dollar coverage
type FirstDollarInput struct {
	Cost             int64
	WalletBalance    int64
	IsUnlimited      bool
	AmountType       domain.PlanSize
	RTETransactionID *int64
}

// CalculateFirstDollarCoverage lets the wallet absorb the cost up to its
// balance. The member pays whatever the wallet cannot.
func CalculateFirstDollarCoverage(in FirstDollarInput) domain.CostBreakdownData {
	cb := domain.CostBreakdownData{
		IsUnlimited:       in.IsUnlimited,
		AmountType:        in.AmountType,
		CostBreakdownType: domain.CostBreakdownFirstDollarCoverage,
		RTETransactionID:  in.RTETransactionID,
	}
	if cb.AmountType == "" {
		cb.AmountType = domain.PlanSizeIndividual
	}

	switch {
	case in.IsUnlimited:
		cb.TotalEmployerResponsibility = in.Cost
	case in.Cost <= in.WalletBalance:
		cb.TotalEmployerResponsibility = in.Cost
		cb.BeginningWalletBalance = in.WalletBalance
		cb.EndingWalletBalance = in.WalletBalance - in.Cost
	default:
		shortfall := in.Cost - in.WalletBalance
		cb.TotalMemberResponsibility = shortfall
		cb.TotalEmployerResponsibility = in.WalletBalance
		cb.BeginningWalletBalance = in.WalletBalance
		cb.OverageAmount = shortfall
	}
	return cb
}
