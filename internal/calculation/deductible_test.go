package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

func individualInfo(ded, oop int64) domain.EligibilityInfo {
	return domain.EligibilityInfo{
		IndividualDeductibleRemaining: domain.Some(ded),
		IndividualOOPRemaining:        domain.Some(oop),
	}
}

func TestCalculateDeductibleAccumulation(t *testing.T) {
	withRate := func(info domain.EligibilityInfo, rate string) domain.EligibilityInfo {
		info.Coinsurance = decimal.RequireFromString(rate)
		return info
	}
	withCopay := func(info domain.EligibilityInfo, copay int64) domain.EligibilityInfo {
		info.Copay = domain.Some(copay)
		return info
	}

	tests := []struct {
		name        string
		in          DeductibleAccumulationInput
		member      int64
		employer    int64
		ending      int64
		deductible  int64
		coinsurance int64
		copay       int64
		overage     int64
		dedLeft     int64
		oopLeft     int64
	}{
		{
			name: "deductible then coinsurance capped by oop",
			in: DeductibleAccumulationInput{
				Cost: 10000, WalletBalance: 100000, PlanSize: domain.PlanSizeIndividual,
				Eligibility: withRate(individualInfo(3000, 5000), "0.2"),
			},
			member: 4400, employer: 5600, ending: 94400,
			deductible: 3000, coinsurance: 1400, dedLeft: 0, oopLeft: 600,
		},
		{
			name: "coinsurance limited by remaining oop",
			in: DeductibleAccumulationInput{
				Cost: 10000, WalletBalance: 100000, PlanSize: domain.PlanSizeIndividual,
				Eligibility: withRate(individualInfo(3000, 4000), "0.5"),
			},
			member: 4000, employer: 6000, ending: 94000,
			deductible: 3000, coinsurance: 1000, dedLeft: 0, oopLeft: 0,
		},
		{
			name: "copay replaces coinsurance",
			in: DeductibleAccumulationInput{
				Cost: 10000, WalletBalance: 100000, PlanSize: domain.PlanSizeIndividual,
				Eligibility: withCopay(withRate(individualInfo(0, 5000), "0.2"), 2500),
			},
			member: 2500, employer: 7500, ending: 92500,
			copay: 2500, oopLeft: 2500,
		},
		{
			name: "copay capped by remaining oop",
			in: DeductibleAccumulationInput{
				Cost: 10000, WalletBalance: 100000, PlanSize: domain.PlanSizeIndividual,
				Eligibility: withCopay(individualInfo(0, 1000), 2500),
			},
			member: 1000, employer: 9000, ending: 91000,
			copay: 1000,
		},
		{
			name: "oop met means the wallet pays everything",
			in: DeductibleAccumulationInput{
				Cost: 10000, WalletBalance: 100000, PlanSize: domain.PlanSizeIndividual,
				Eligibility: withRate(individualInfo(0, 0), "0.2"),
			},
			member: 0, employer: 10000, ending: 90000,
		},
		{
			name: "deductible larger than cost",
			in: DeductibleAccumulationInput{
				Cost: 10000, WalletBalance: 100000, PlanSize: domain.PlanSizeIndividual,
				Eligibility: withRate(individualInfo(50000, 300000), "0.2"),
			},
			member: 10000, employer: 0, ending: 100000,
			deductible: 10000, dedLeft: 40000, oopLeft: 290000,
		},
		{
			name: "wallet shortfall becomes overage",
			in: DeductibleAccumulationInput{
				Cost: 10000, WalletBalance: 3000, PlanSize: domain.PlanSizeIndividual,
				Eligibility: individualInfo(0, 0),
			},
			member: 7000, employer: 3000, ending: 0, overage: 7000,
		},
		{
			name: "unlimited wallet reports zero balances",
			in: DeductibleAccumulationInput{
				Cost: 10000, WalletBalance: 3000, IsUnlimited: true, PlanSize: domain.PlanSizeIndividual,
				Eligibility: withRate(individualInfo(1000, 5000), "0.1"),
			},
			member: 1900, employer: 8100, ending: 0,
			deductible: 1000, coinsurance: 900, dedLeft: 0, oopLeft: 3100,
		},
		{
			name: "ignored deductible goes straight to coinsurance",
			in: DeductibleAccumulationInput{
				Cost: 10000, WalletBalance: 100000, PlanSize: domain.PlanSizeIndividual,
				Eligibility: func() domain.EligibilityInfo {
					info := withRate(individualInfo(3000, 50000), "0.1")
					info.IgnoreDeductible = true
					return info
				}(),
			},
			member: 1000, employer: 9000, ending: 91000,
			coinsurance: 1000, dedLeft: 3000, oopLeft: 49000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := CalculateDeductibleAccumulation(tt.in)

			assert.Equal(t, tt.member, cb.TotalMemberResponsibility, "member")
			assert.Equal(t, tt.employer, cb.TotalEmployerResponsibility, "employer")
			assert.Equal(t, tt.ending, cb.EndingWalletBalance, "ending")
			assert.Equal(t, tt.deductible, cb.Deductible, "deductible")
			assert.Equal(t, tt.coinsurance, cb.Coinsurance, "coinsurance")
			assert.Equal(t, tt.copay, cb.Copay, "copay")
			assert.Equal(t, tt.overage, cb.OverageAmount, "overage")
			assert.Equal(t, tt.dedLeft, cb.DeductibleRemaining, "deductible remaining")
			assert.Equal(t, tt.oopLeft, cb.OOPRemaining, "oop remaining")
			assert.Equal(t, domain.CostBreakdownDeductibleAccumulation, cb.CostBreakdownType)
			assert.False(t, cb.FamilyDeductibleRemaining.Valid())
			assert.False(t, cb.FamilyOOPRemaining.Valid())
			require.NoError(t, cb.CheckInvariants(tt.in.Cost))
		})
	}
}

func TestCalculateDeductibleAccumulation_UnlimitedBeginningBalance(t *testing.T) {
	cb := CalculateDeductibleAccumulation(DeductibleAccumulationInput{
		Cost: 5000, WalletBalance: 80000, IsUnlimited: true,
		PlanSize: domain.PlanSizeIndividual, Eligibility: individualInfo(0, 0),
	})
	assert.Equal(t, int64(0), cb.BeginningWalletBalance)
	assert.Equal(t, int64(0), cb.EndingWalletBalance)
	assert.True(t, cb.IsUnlimited)
	assert.Equal(t, int64(0), cb.OverageAmount)
}

func TestCalculateDeductibleAccumulation_HRA(t *testing.T) {
	info := individualInfo(0, 500000)
	info.Copay = domain.Some(2000)
	info.HRARemaining = domain.Some(1500)

	cb := CalculateDeductibleAccumulation(DeductibleAccumulationInput{
		Cost: 10000, WalletBalance: 20000, PlanSize: domain.PlanSizeIndividual, Eligibility: info,
	})

	assert.Equal(t, int64(1500), cb.HRAApplied)
	assert.Equal(t, int64(500), cb.TotalMemberResponsibility)
	assert.Equal(t, int64(9500), cb.TotalEmployerResponsibility)
	assert.Equal(t, int64(12000), cb.EndingWalletBalance, "hra does not draw on the wallet")
	assert.Equal(t, int64(2000), cb.OOPApplied)

	info.HRARemaining = domain.Some(50000)
	cb = CalculateDeductibleAccumulation(DeductibleAccumulationInput{
		Cost: 10000, WalletBalance: 20000, PlanSize: domain.PlanSizeIndividual, Eligibility: info,
	})
	assert.Equal(t, int64(2000), cb.HRAApplied, "hra is capped at the member charge")
	assert.Equal(t, int64(0), cb.TotalMemberResponsibility)
	assert.Equal(t, int64(10000), cb.TotalEmployerResponsibility)
}

func TestCalculateDeductibleAccumulation_Family(t *testing.T) {
	info := domain.EligibilityInfo{
		IndividualDeductibleRemaining: domain.Some(40000),
		FamilyDeductibleRemaining:     domain.Some(70000),
		IndividualOOPRemaining:        domain.Some(300000),
		FamilyOOPRemaining:            domain.Some(600000),
		Coinsurance:                   decimal.RequireFromString("0.2"),
		IsDeductibleEmbedded:          true,
		IsOOPEmbedded:                 true,
	}

	cb := CalculateDeductibleAccumulation(DeductibleAccumulationInput{
		Cost: 100000, WalletBalance: 200000, PlanSize: domain.PlanSizeFamily,
		Eligibility: info, RTETransactionID: int64Ptr(1),
	})

	assert.Equal(t, int64(40000), cb.Deductible)
	assert.Equal(t, int64(12000), cb.Coinsurance)
	assert.Equal(t, int64(52000), cb.TotalMemberResponsibility)
	assert.Equal(t, int64(48000), cb.TotalEmployerResponsibility)
	assert.Equal(t, int64(152000), cb.EndingWalletBalance)
	assert.Equal(t, int64(0), cb.DeductibleRemaining)
	assert.Equal(t, domain.Some(30000), cb.FamilyDeductibleRemaining)
	assert.Equal(t, int64(248000), cb.OOPRemaining)
	assert.Equal(t, domain.Some(548000), cb.FamilyOOPRemaining)
	assert.Equal(t, domain.PlanSizeFamily, cb.AmountType)
	assert.Equal(t, int64(1), *cb.RTETransactionID)

	info.IsDeductibleEmbedded = false
	cb = CalculateDeductibleAccumulation(DeductibleAccumulationInput{
		Cost: 100000, WalletBalance: 200000, PlanSize: domain.PlanSizeFamily, Eligibility: info,
	})
	assert.Equal(t, int64(70000), cb.Deductible, "non-embedded plans use the family deductible")
	assert.Equal(t, domain.Some(0), cb.FamilyDeductibleRemaining)
}

func TestResolveBalances(t *testing.T) {
	tests := []struct {
		name string
		info domain.EligibilityInfo
		size domain.PlanSize
		want Balances
	}{
		{
			name: "individual",
			info: individualInfo(1000, 5000),
			size: domain.PlanSizeIndividual,
			want: Balances{Deductible: 1000, OOP: 5000, ReportedDeductible: 1000, ReportedOOP: 5000},
		},
		{
			name: "individual with missing figures",
			info: domain.EligibilityInfo{},
			size: domain.PlanSizeIndividual,
			want: Balances{},
		},
		{
			name: "family embedded takes the smaller figure",
			info: domain.EligibilityInfo{
				IndividualDeductibleRemaining: domain.Some(90000),
				FamilyDeductibleRemaining:     domain.Some(60000),
				IndividualOOPRemaining:        domain.Some(100000),
				FamilyOOPRemaining:            domain.Some(400000),
				IsDeductibleEmbedded:          true,
				IsOOPEmbedded:                 true,
			},
			size: domain.PlanSizeFamily,
			want: Balances{
				Deductible: 60000, OOP: 100000,
				ReportedDeductible: 90000, ReportedOOP: 100000,
				FamilyDeductible: domain.Some(60000), FamilyOOP: domain.Some(400000),
			},
		},
		{
			name: "family non-embedded oop capped per covered individual",
			info: domain.EligibilityInfo{
				FamilyDeductibleRemaining:  domain.Some(60000),
				FamilyOOPRemaining:         domain.Some(500000),
				MaxOOPPerCoveredIndividual: domain.Some(100000),
			},
			size: domain.PlanSizeFamily,
			want: Balances{
				Deductible: 60000, OOP: 100000,
				ReportedDeductible: 60000, ReportedOOP: 100000,
				FamilyDeductible: domain.Some(60000), FamilyOOP: domain.Some(500000),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBalances(tt.info, tt.size))
		})
	}
}

func TestCoinsuranceOn(t *testing.T) {
	info := func(rate string, lo, hi domain.Amount) domain.EligibilityInfo {
		return domain.EligibilityInfo{
			Coinsurance:    decimal.RequireFromString(rate),
			CoinsuranceMin: lo,
			CoinsuranceMax: hi,
		}
	}

	tests := []struct {
		name string
		rest int64
		info domain.EligibilityInfo
		want int64
	}{
		{"plain rate", 10000, info("0.1", domain.None(), domain.None()), 1000},
		{"rounds to the cent", 333, info("0.15", domain.None(), domain.None()), 50},
		{"raised to minimum", 10000, info("0.1", domain.Some(1500), domain.None()), 1500},
		{"lowered to maximum", 10000, info("0.1", domain.None(), domain.Some(800)), 800},
		{"minimum never exceeds rest", 100, info("0.1", domain.Some(500), domain.None()), 100},
		{"zero rate", 10000, info("0", domain.Some(500), domain.None()), 0},
		{"nothing left", 0, info("0.2", domain.Some(500), domain.None()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coinsuranceOn(tt.rest, tt.info))
		})
	}
}

func TestCalculateDeductibleAccumulation_ConservationGrid(t *testing.T) {
	rates := []string{"0", "0.1", "0.2", "0.35", "1"}
	for _, cost := range []int64{1, 99, 10000, 250000} {
		for _, wallet := range []int64{0, 50, 10000, 1000000} {
			for _, rate := range rates {
				for _, unlimited := range []bool{false, true} {
					info := individualInfo(5000, 20000)
					info.Coinsurance = decimal.RequireFromString(rate)
					info.HRARemaining = domain.Some(300)

					cb := CalculateDeductibleAccumulation(DeductibleAccumulationInput{
						Cost: cost, WalletBalance: wallet, IsUnlimited: unlimited,
						PlanSize: domain.PlanSizeIndividual, Eligibility: info,
					})
					require.NoError(t, cb.CheckInvariants(cost),
						"cost=%d wallet=%d rate=%s unlimited=%v", cost, wallet, rate, unlimited)
					assert.LessOrEqual(t, cb.TotalMemberResponsibility, cost)
				}
			}
		}
	}
}

func TestCalculateDeductibleAccumulation_NegativeWalletWithHRA(t *testing.T) {
	info := individualInfo(5000, 20000)
	info.HRARemaining = domain.Some(700)

	cb := CalculateDeductibleAccumulation(DeductibleAccumulationInput{
		Cost: 777, WalletBalance: -1, PlanSize: domain.PlanSizeIndividual, Eligibility: info,
	})

	assert.Equal(t, int64(78), cb.TotalMemberResponsibility)
	assert.Equal(t, int64(699), cb.TotalEmployerResponsibility)
	assert.Equal(t, int64(-1), cb.EndingWalletBalance, "nothing is drawn from a negative wallet")
	assert.Equal(t, int64(700), cb.HRAApplied)

	_, changed := ApplyNegativeWalletCorrection(cb, 777)
	assert.False(t, changed)
	require.NoError(t, cb.CheckInvariants(777))
}
