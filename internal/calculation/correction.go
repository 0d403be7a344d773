package calculation

import "github.com/rgehrsitz/costbreakdown/internal/domain"

// ApplyNegativeWalletCorrection caps the member at the cost of the procedure
// when the wallet started out negative. The second return value reports
// whether the breakdown was changed.
//
// family_oop_remaining grows by the deductible delta, not the oop delta. This
// mirrors how recalculated breakdowns have always been corrected.
func ApplyNegativeWalletCorrection(cb domain.CostBreakdownData, cost int64) (domain.CostBreakdownData, bool) {
	if cb.BeginningWalletBalance >= 0 || cb.TotalMemberResponsibility <= cost {
		return cb, false
	}

	out := cb
	out.TotalMemberResponsibility = cost
	out.TotalEmployerResponsibility = 0
	out.EndingWalletBalance = cb.BeginningWalletBalance

	out.Deductible = min(cb.Deductible, cost)
	out.OOPApplied = min(cb.OOPApplied, cost)
	out.HRAApplied = min(cb.HRAApplied, cost)
	out.Coinsurance = min(cb.Coinsurance, cost)
	out.Copay = min(cb.Copay, cost)
	out.OverageAmount = min(cb.OverageAmount, cost)

	deductibleDelta := cb.Deductible - out.Deductible
	oopDelta := cb.OOPApplied - out.OOPApplied

	out.DeductibleRemaining = cb.DeductibleRemaining + deductibleDelta
	out.FamilyDeductibleRemaining = cb.FamilyDeductibleRemaining.Add(deductibleDelta)
	out.OOPRemaining = cb.OOPRemaining + oopDelta
	out.FamilyOOPRemaining = cb.FamilyOOPRemaining.Add(deductibleDelta)
	return out, true
}
