package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BreakdownRequest carries every pre-resolved input needed to price one cost
type BreakdownRequest struct {
	MemberFirstName               string            `yaml:"member_first_name" json:"member_first_name"`
	MemberLastName                string            `yaml:"member_last_name" json:"member_last_name"`
	MemberHealthPlan              *MemberHealthPlan `yaml:"member_health_plan,omitempty" json:"member_health_plan,omitempty"`
	WalletBalance                 int64             `yaml:"wallet_balance" json:"wallet_balance"`
	Cost                          int64             `yaml:"cost" json:"cost"`
	ProcedureType                 ProcedureType     `yaml:"procedure_type" json:"procedure_type"`
	CostSharingCategory           string            `yaml:"cost_sharing_category" json:"cost_sharing_category"`
	DeductibleAccumulationEnabled bool              `yaml:"deductible_accumulation_enabled" json:"deductible_accumulation_enabled"`
	ServiceStartDate              time.Time         `yaml:"service_start_date" json:"service_start_date"`
	IsUnlimited                   bool              `yaml:"is_unlimited" json:"is_unlimited"`
	Tier                          Tier              `yaml:"tier,omitempty" json:"tier,omitempty"`
	FDCHDHPCheck                  FDCHDHPCheck      `yaml:"fdc_hdhp_check,omitempty" json:"fdc_hdhp_check,omitempty"`

	SequentialDeductibleAccumulation *DeductibleAccumulationYTDInfo `yaml:"sequential_deductible_accumulation,omitempty" json:"sequential_deductible_accumulation,omitempty"`
	SequentialHDHP                   *HDHPAccumulationYTDInfo       `yaml:"sequential_hdhp,omitempty" json:"sequential_hdhp,omitempty"`
	AlegeusYTDSpend                  int64                          `yaml:"alegeus_ytd_spend" json:"alegeus_ytd_spend"`
	RxYTDSpend                       *RxYTDSpend                    `yaml:"rx_ytd_spend,omitempty" json:"rx_ytd_spend,omitempty"`
	EligibilityOverride              *EligibilityInfo               `yaml:"eligibility_override,omitempty" json:"eligibility_override,omitempty"`

	TreatmentProcedureID   *int64 `yaml:"treatment_procedure_id,omitempty" json:"treatment_procedure_id,omitempty"`
	ReimbursementRequestID *int64 `yaml:"reimbursement_request_id,omitempty" json:"reimbursement_request_id,omitempty"`
	WalletID               string `yaml:"wallet_id,omitempty" json:"wallet_id,omitempty"`
}

// ErrInvalidRequest is wrapped by every request validation failure
var ErrInvalidRequest = errors.New("invalid breakdown request")

// Validate checks the request is complete enough to compute a breakdown
func (r BreakdownRequest) Validate() error {
	if strings.TrimSpace(r.MemberFirstName) == "" {
		return fmt.Errorf("%w: member first name is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.MemberLastName) == "" {
		return fmt.Errorf("%w: member last name is required", ErrInvalidRequest)
	}
	if r.Cost <= 0 {
		return fmt.Errorf("%w: cost must be positive, got %d", ErrInvalidRequest, r.Cost)
	}
	if !r.ProcedureType.Valid() {
		return fmt.Errorf("%w: unknown procedure type %q", ErrInvalidRequest, r.ProcedureType)
	}
	if strings.TrimSpace(r.CostSharingCategory) == "" {
		return fmt.Errorf("%w: cost sharing category is required", ErrInvalidRequest)
	}
	if r.ServiceStartDate.IsZero() {
		return fmt.Errorf("%w: service start date is required", ErrInvalidRequest)
	}
	if !r.Tier.Valid() {
		return fmt.Errorf("%w: unknown tier %q", ErrInvalidRequest, r.Tier)
	}
	if !r.FDCHDHPCheck.Valid() {
		return fmt.Errorf("%w: unknown fdc_hdhp_check %q", ErrInvalidRequest, r.FDCHDHPCheck)
	}
	if r.AlegeusYTDSpend < 0 {
		return fmt.Errorf("%w: alegeus ytd spend cannot be negative", ErrInvalidRequest)
	}
	if r.MemberHealthPlan != nil && !r.MemberHealthPlan.PlanSize.Valid() {
		return fmt.Errorf("%w: unknown plan size %q for member health plan %d",
			ErrInvalidRequest, r.MemberHealthPlan.PlanSize, r.MemberHealthPlan.ID)
	}
	return nil
}

// PlanSize returns the member's plan size, defaulting to individual when no
// health plan is on file
func (r BreakdownRequest) PlanSize() PlanSize {
	if r.MemberHealthPlan == nil {
		return PlanSizeIndividual
	}
	return r.MemberHealthPlan.PlanSize
}

// MemberHealthPlanID returns the plan id for audit fields, or nil
func (r BreakdownRequest) MemberHealthPlanID() *int64 {
	if r.MemberHealthPlan == nil {
		return nil
	}
	id := r.MemberHealthPlan.ID
	return &id
}

// Scenario is a named breakdown request plus the canned payer responses the
// fixture eligibility gateway should answer with
type Scenario struct {
	Name         string                   `yaml:"name" json:"name"`
	Request      BreakdownRequest         `yaml:"request" json:"request"`
	RTEResponses map[int64]RawEligibility `yaml:"rte_responses,omitempty" json:"rte_responses,omitempty"`
}

// ScenarioFile is the document format for the calculate command
type ScenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}
