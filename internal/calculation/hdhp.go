package calculation

import "github.com/rgehrsitz/costbreakdown/internal/domain"

// HDHPInput is the input to the HDHP threshold evaluator
type HDHPInput struct {
	Cost             int64
	WalletBalance    int64
	IsUnlimited      bool
	PlanSize         domain.PlanSize
	OOPYTDSpend      int64
	IRSThreshold     int64
	RTETransactionID *int64
}

// CalculateHDHP makes the member pay everything until year-to-date
// out-of-pocket spend reaches the IRS threshold. Past the threshold the plan
// behaves as first dollar coverage.
func CalculateHDHP(in HDHPInput) domain.CostBreakdownData {
	if in.OOPYTDSpend >= in.IRSThreshold {
		return CalculateFirstDollarCoverage(FirstDollarInput{
			Cost:             in.Cost,
			WalletBalance:    in.WalletBalance,
			IsUnlimited:      in.IsUnlimited,
			AmountType:       in.PlanSize,
			RTETransactionID: in.RTETransactionID,
		})
	}

	remaining := in.IRSThreshold - in.OOPYTDSpend
	cb := domain.CostBreakdownData{
		IsUnlimited:       in.IsUnlimited,
		AmountType:        in.PlanSize,
		CostBreakdownType: domain.CostBreakdownHDHP,
		RTETransactionID:  in.RTETransactionID,
	}
	if !in.IsUnlimited {
		cb.BeginningWalletBalance = in.WalletBalance
		cb.EndingWalletBalance = in.WalletBalance
	}

	if in.Cost <= remaining {
		cb.TotalMemberResponsibility = in.Cost
		cb.Deductible = in.Cost
	} else {
		cb.Deductible = remaining
		rest := in.Cost - remaining
		switch {
		case in.IsUnlimited:
			cb.TotalMemberResponsibility = remaining
			cb.TotalEmployerResponsibility = rest
		case rest <= in.WalletBalance:
			cb.TotalMemberResponsibility = remaining
			cb.TotalEmployerResponsibility = rest
			cb.EndingWalletBalance = in.WalletBalance - rest
		default:
			shortfall := rest - in.WalletBalance
			cb.TotalMemberResponsibility = remaining + shortfall
			cb.TotalEmployerResponsibility = in.WalletBalance
			cb.EndingWalletBalance = 0
			cb.OverageAmount = shortfall
		}
	}

	cb.OOPApplied = cb.Deductible
	cb.DeductibleRemaining = remaining - cb.Deductible
	return cb
}

// ComputeOOPYTDSpend totals out-of-pocket spend this plan year: OOP already
// used on the plan, sequential responsibility and administrator-recorded
// spend
func ComputeOOPYTDSpend(info domain.EligibilityInfo, size domain.PlanSize, sequential *domain.HDHPAccumulationYTDInfo, alegeusYTDSpend int64) int64 {
	total, remaining := info.IndividualOOP, info.IndividualOOPRemaining
	if size.IsFamily() {
		total, remaining = info.FamilyOOP, info.FamilyOOPRemaining
	}

	var used int64
	t, okT := total.Get()
	r, okR := remaining.Get()
	if okT && okR {
		used = max(t-r, 0)
	}

	spend := used + alegeusYTDSpend
	if sequential != nil {
		spend += sequential.SequentialMemberResponsibility
	}
	return spend
}
