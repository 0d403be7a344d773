package calculation

import (
	"github.com/rgehrsitz/costbreakdown/internal/domain"
	"github.com/shopspring/decimal"
)

// Balances is the non-nullable view of remaining deductible and OOP that the
// deductible accumulation math runs on. Family figures are absent for
// individual plans.
type Balances struct {
	// Deductible and OOP are the effective ceilings for this cost
	Deductible int64
	OOP        int64

	// Reported are the member-level figures shown on the breakdown
	ReportedDeductible int64
	ReportedOOP        int64

	FamilyDeductible domain.Amount
	FamilyOOP        domain.Amount
}

// ResolveBalances collapses optional eligibility figures into Balances.
// Missing figures count as nothing left to apply.
func ResolveBalances(info domain.EligibilityInfo, size domain.PlanSize) Balances {
	if !size.IsFamily() {
		ded := info.IndividualDeductibleRemaining.Or(0)
		oop := info.IndividualOOPRemaining.Or(0)
		return Balances{
			Deductible:         ded,
			OOP:                oop,
			ReportedDeductible: ded,
			ReportedOOP:        oop,
			FamilyDeductible:   domain.None(),
			FamilyOOP:          domain.None(),
		}
	}

	famDed := info.FamilyDeductibleRemaining.Or(0)
	famOOP := info.FamilyOOPRemaining.Or(0)

	ded := famDed
	if v, ok := info.IndividualDeductibleRemaining.Get(); ok && info.IsDeductibleEmbedded {
		ded = min(v, famDed)
	}

	oop := famOOP
	if v, ok := info.IndividualOOPRemaining.Get(); ok && info.IsOOPEmbedded {
		oop = min(v, famOOP)
	} else if limit, ok := info.MaxOOPPerCoveredIndividual.Get(); ok && limit > 0 {
		oop = min(oop, limit)
	}

	return Balances{
		Deductible:         ded,
		OOP:                oop,
		ReportedDeductible: info.IndividualDeductibleRemaining.Or(ded),
		ReportedOOP:        info.IndividualOOPRemaining.Or(oop),
		FamilyDeductible:   domain.Some(famDed),
		FamilyOOP:          domain.Some(famOOP),
	}
}

// DeductibleAccumulationInput is everything the deductible accumulation
// calculator needs. Eligibility must already be reduced by sequential
// responsibility.
type DeductibleAccumulationInput struct {
	Cost             int64
	WalletBalance    int64
	IsUnlimited      bool
	PlanSize         domain.PlanSize
	Eligibility      domain.EligibilityInfo
	RTETransactionID *int64
}

// CalculateDeductibleAccumulation splits a cost when the member pays toward a
// deductible and OOP maximum before the wallet covers the rest
func CalculateDeductibleAccumulation(in DeductibleAccumulationInput) domain.CostBreakdownData {
	elig := in.Eligibility
	bal := ResolveBalances(elig, in.PlanSize)
	cost := in.Cost

	var deductible int64
	if !elig.IgnoreDeductible {
		deductible = max(min(cost, bal.Deductible, bal.OOP), 0)
	}
	rest := cost - deductible
	oopLeft := max(bal.OOP-deductible, 0)

	var copay, coinsurance int64
	if c, ok := elig.Copay.Get(); ok && c > 0 {
		copay = min(c, rest, oopLeft)
	} else {
		coinsurance = min(coinsuranceOn(rest, elig), oopLeft)
	}
	oopApplied := deductible + copay + coinsurance

	member := oopApplied
	employer := cost - member

	beginning := in.WalletBalance
	var overage int64
	if in.IsUnlimited {
		beginning = 0
	} else if employer > in.WalletBalance {
		overage = employer - in.WalletBalance
		employer = in.WalletBalance
		member += overage
	}

	// A negative wallet has nothing to draw on
	ending := beginning - max(employer, 0)
	if in.IsUnlimited {
		ending = 0
	}

	var hra int64
	if remaining, ok := elig.HRARemaining.Get(); ok && remaining > 0 && member > 0 {
		hra = min(member, remaining)
		member -= hra
		employer += hra
	}

	return domain.CostBreakdownData{
		TotalMemberResponsibility:   member,
		TotalEmployerResponsibility: employer,
		BeginningWalletBalance:      beginning,
		EndingWalletBalance:         ending,
		Deductible:                  deductible,
		DeductibleRemaining:         max(bal.ReportedDeductible-deductible, 0),
		FamilyDeductibleRemaining:   bal.FamilyDeductible.SubFloor(deductible),
		Coinsurance:                 coinsurance,
		Copay:                       copay,
		OOPApplied:                  oopApplied,
		OOPRemaining:                max(bal.ReportedOOP-oopApplied, 0),
		FamilyOOPRemaining:          bal.FamilyOOP.SubFloor(oopApplied),
		HRAApplied:                  hra,
		OverageAmount:               overage,
		IsUnlimited:                 in.IsUnlimited,
		AmountType:                  in.PlanSize,
		CostBreakdownType:           domain.CostBreakdownDeductibleAccumulation,
		RTETransactionID:            in.RTETransactionID,
	}
}

// coinsuranceOn rounds rest x rate to the cent, then applies the min/max
// bounds. The result never exceeds rest.
func coinsuranceOn(rest int64, elig domain.EligibilityInfo) int64 {
	if rest <= 0 || !elig.Coinsurance.IsPositive() {
		return 0
	}
	amount := decimal.NewFromInt(rest).Mul(elig.Coinsurance).Round(0).IntPart()
	if lo, ok := elig.CoinsuranceMin.Get(); ok && amount < lo {
		amount = lo
	}
	if hi, ok := elig.CoinsuranceMax.Get(); ok && amount > hi {
		amount = hi
	}
	return min(amount, rest)
}
