package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

func TestCalculateHDHP(t *testing.T) {
	const threshold = int64(165000)

	tests := []struct {
		name       string
		in         HDHPInput
		member     int64
		employer   int64
		ending     int64
		overage    int64
		deductible int64
		dedLeft    int64
		wantType   domain.CostBreakdownType
	}{
		{
			name:   "one cent below threshold, one cent cost",
			in:     HDHPInput{Cost: 1, WalletBalance: 0, OOPYTDSpend: threshold - 1, IRSThreshold: threshold},
			member: 1, employer: 0, ending: 0, deductible: 1, dedLeft: 0,
			wantType: domain.CostBreakdownHDHP,
		},
		{
			name:   "crossing the threshold with enough wallet",
			in:     HDHPInput{Cost: 100, WalletBalance: 99, OOPYTDSpend: threshold - 1, IRSThreshold: threshold},
			member: 1, employer: 99, ending: 0, deductible: 1,
			wantType: domain.CostBreakdownHDHP,
		},
		{
			name:   "crossing the threshold with a large wallet",
			in:     HDHPInput{Cost: 100, WalletBalance: 10000, OOPYTDSpend: threshold - 1, IRSThreshold: threshold},
			member: 1, employer: 99, ending: 9901, deductible: 1,
			wantType: domain.CostBreakdownHDHP,
		},
		{
			name:   "crossing the threshold with a short wallet",
			in:     HDHPInput{Cost: 100, WalletBalance: 50, OOPYTDSpend: threshold - 1, IRSThreshold: threshold},
			member: 50, employer: 50, ending: 0, overage: 49, deductible: 1,
			wantType: domain.CostBreakdownHDHP,
		},
		{
			name:   "well below threshold",
			in:     HDHPInput{Cost: 50000, WalletBalance: 80000, OOPYTDSpend: 0, IRSThreshold: threshold},
			member: 50000, employer: 0, ending: 80000, deductible: 50000, dedLeft: threshold - 50000,
			wantType: domain.CostBreakdownHDHP,
		},
		{
			name:   "threshold met falls back to first dollar",
			in:     HDHPInput{Cost: 100, WalletBalance: 150, OOPYTDSpend: threshold, IRSThreshold: threshold},
			member: 0, employer: 100, ending: 50,
			wantType: domain.CostBreakdownFirstDollarCoverage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.PlanSize = domain.PlanSizeIndividual
			cb := CalculateHDHP(tt.in)

			assert.Equal(t, tt.member, cb.TotalMemberResponsibility, "member")
			assert.Equal(t, tt.employer, cb.TotalEmployerResponsibility, "employer")
			assert.Equal(t, tt.ending, cb.EndingWalletBalance, "ending")
			assert.Equal(t, tt.overage, cb.OverageAmount, "overage")
			assert.Equal(t, tt.deductible, cb.Deductible, "deductible")
			assert.Equal(t, tt.deductible, cb.OOPApplied, "oop applied")
			assert.Equal(t, tt.dedLeft, cb.DeductibleRemaining, "deductible remaining")
			assert.Equal(t, tt.wantType, cb.CostBreakdownType)
			require.NoError(t, cb.CheckInvariants(tt.in.Cost))
		})
	}
}

func TestCalculateHDHP_Unlimited(t *testing.T) {
	cb := CalculateHDHP(HDHPInput{
		Cost: 1000, WalletBalance: 5, IsUnlimited: true, PlanSize: domain.PlanSizeFamily,
		OOPYTDSpend: 329900, IRSThreshold: 330000,
	})
	assert.Equal(t, int64(100), cb.TotalMemberResponsibility)
	assert.Equal(t, int64(900), cb.TotalEmployerResponsibility)
	assert.Equal(t, int64(0), cb.BeginningWalletBalance)
	assert.Equal(t, int64(0), cb.EndingWalletBalance)
	assert.Equal(t, int64(0), cb.OverageAmount)
	assert.Equal(t, domain.PlanSizeFamily, cb.AmountType)
}

func TestComputeOOPYTDSpend(t *testing.T) {
	info := domain.EligibilityInfo{
		IndividualOOP:          domain.Some(300000),
		IndividualOOPRemaining: domain.Some(250000),
		FamilyOOP:              domain.Some(600000),
		FamilyOOPRemaining:     domain.Some(450000),
	}
	seq := &domain.HDHPAccumulationYTDInfo{SequentialMemberResponsibility: 2000}

	tests := []struct {
		name       string
		info       domain.EligibilityInfo
		size       domain.PlanSize
		sequential *domain.HDHPAccumulationYTDInfo
		alegeus    int64
		want       int64
	}{
		{"individual", info, domain.PlanSizeIndividual, seq, 1000, 53000},
		{"family", info, domain.PlanSizeFamily, seq, 1000, 153000},
		{"no sequential", info, domain.PlanSizeIndividual, nil, 0, 50000},
		{"missing oop figures", domain.EligibilityInfo{}, domain.PlanSizeIndividual, seq, 700, 2700},
		{"remaining above total", domain.EligibilityInfo{
			IndividualOOP: domain.Some(100), IndividualOOPRemaining: domain.Some(400),
		}, domain.PlanSizeIndividual, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeOOPYTDSpend(tt.info, tt.size, tt.sequential, tt.alegeus))
		})
	}
}
