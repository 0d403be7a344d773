package domain

import (
	"fmt"
	"time"
)

// CostBreakdownType identifies which evaluator produced a breakdown
type CostBreakdownType string

const (
	CostBreakdownDeductibleAccumulation CostBreakdownType = "DEDUCTIBLE_ACCUMULATION"
	CostBreakdownHDHP                   CostBreakdownType = "HDHP"
	CostBreakdownFirstDollarCoverage    CostBreakdownType = "FIRST_DOLLAR_COVERAGE"
)

// CostBreakdownData is the member/employer split of a single cost.
// All amounts are in cents.
type CostBreakdownData struct {
	TotalMemberResponsibility   int64             `json:"total_member_responsibility"`
	TotalEmployerResponsibility int64             `json:"total_employer_responsibility"`
	BeginningWalletBalance      int64             `json:"beginning_wallet_balance"`
	EndingWalletBalance         int64             `json:"ending_wallet_balance"`
	Deductible                  int64             `json:"deductible"`
	DeductibleRemaining         int64             `json:"deductible_remaining"`
	FamilyDeductibleRemaining   Amount            `json:"family_deductible_remaining"`
	Coinsurance                 int64             `json:"coinsurance"`
	Copay                       int64             `json:"copay"`
	OOPApplied                  int64             `json:"oop_applied"`
	OOPRemaining                int64             `json:"oop_remaining"`
	FamilyOOPRemaining          Amount            `json:"family_oop_remaining"`
	HRAApplied                  int64             `json:"hra_applied"`
	OverageAmount               int64             `json:"overage_amount"`
	IsUnlimited                 bool              `json:"is_unlimited"`
	AmountType                  PlanSize          `json:"amount_type"`
	CostBreakdownType           CostBreakdownType `json:"cost_breakdown_type"`
	RTETransactionID            *int64            `json:"rte_transaction_id"`
}

// Total returns member plus employer responsibility
func (cb CostBreakdownData) Total() int64 {
	return cb.TotalMemberResponsibility + cb.TotalEmployerResponsibility
}

// CheckInvariants verifies conservation and sign rules against the
// originating cost. Wallet balances are exempt from the sign rule when the
// wallet started out negative.
func (cb CostBreakdownData) CheckInvariants(cost int64) error {
	if cb.Total() != cost {
		return fmt.Errorf("member %d + employer %d != cost %d",
			cb.TotalMemberResponsibility, cb.TotalEmployerResponsibility, cost)
	}
	fields := map[string]int64{
		"total_member_responsibility":   cb.TotalMemberResponsibility,
		"total_employer_responsibility": cb.TotalEmployerResponsibility,
		"deductible":                    cb.Deductible,
		"deductible_remaining":          cb.DeductibleRemaining,
		"coinsurance":                   cb.Coinsurance,
		"copay":                         cb.Copay,
		"oop_applied":                   cb.OOPApplied,
		"oop_remaining":                 cb.OOPRemaining,
		"hra_applied":                   cb.HRAApplied,
		"overage_amount":                cb.OverageAmount,
		"family_deductible_remaining":   cb.FamilyDeductibleRemaining.Or(0),
		"family_oop_remaining":          cb.FamilyOOPRemaining.Or(0),
	}
	if cb.BeginningWalletBalance >= 0 {
		fields["beginning_wallet_balance"] = cb.BeginningWalletBalance
		fields["ending_wallet_balance"] = cb.EndingWalletBalance
	}
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("%s is negative: %d", name, v)
		}
	}
	if !cb.IsUnlimited && cb.EndingWalletBalance > cb.BeginningWalletBalance {
		return fmt.Errorf("ending wallet balance %d exceeds beginning balance %d",
			cb.EndingWalletBalance, cb.BeginningWalletBalance)
	}
	return nil
}

// StoredBreakdown is a persisted breakdown with its audit linkage
type StoredBreakdown struct {
	ID                     string            `json:"id"`
	TreatmentProcedureID   *int64            `json:"treatment_procedure_id,omitempty"`
	ReimbursementRequestID *int64            `json:"reimbursement_request_id,omitempty"`
	WalletID               string            `json:"wallet_id,omitempty"`
	MemberHealthPlanID     *int64            `json:"member_health_plan_id,omitempty"`
	Cost                   int64             `json:"cost"`
	Data                   CostBreakdownData `json:"data"`
	CreatedAt              time.Time         `json:"created_at"`
}

// ScenarioResult pairs a computed breakdown with the scenario that produced it
type ScenarioResult struct {
	Name      string            `json:"name"`
	Cost      int64             `json:"cost"`
	Breakdown CostBreakdownData `json:"breakdown"`
}
