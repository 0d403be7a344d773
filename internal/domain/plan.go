package domain

import "strings"

// ProcedureType is the kind of billable event being priced
type ProcedureType string

const (
	ProcedureMedical  ProcedureType = "MEDICAL"
	ProcedurePharmacy ProcedureType = "PHARMACY"
)

// Valid reports whether the procedure type is known
func (p ProcedureType) Valid() bool {
	return p == ProcedureMedical || p == ProcedurePharmacy
}

// PlanSize distinguishes individual from family coverage. It is also the
// amount type reported on a breakdown.
type PlanSize string

const (
	PlanSizeIndividual PlanSize = "INDIVIDUAL"
	PlanSizeFamily     PlanSize = "FAMILY"
)

// Valid reports whether the plan size is known
func (s PlanSize) Valid() bool {
	return s == PlanSizeIndividual || s == PlanSizeFamily
}

// IsFamily reports whether family accumulators apply
func (s PlanSize) IsFamily() bool {
	return s == PlanSizeFamily
}

// Tier is the provider network tier for tiered plans. Empty means untiered.
type Tier string

const (
	TierNone      Tier = ""
	TierPremium   Tier = "PREMIUM"
	TierSecondary Tier = "SECONDARY"
)

// Valid reports whether the tier is known
func (t Tier) Valid() bool {
	return t == TierNone || t == TierPremium || t == TierSecondary
}

// FDCHDHPCheck records the answer a member gave on the annual health plan
// survey about first dollar coverage and HDHP enrollment.
type FDCHDHPCheck string

const (
	FDCHDHPCheckNone    FDCHDHPCheck = ""
	FDCYesHDHPUnknown   FDCHDHPCheck = "FDC_YES_HDHP_UNKNOWN"
	FDCYesHDHPYes       FDCHDHPCheck = "FDC_YES_HDHP_YES"
	FDCYesHDHPNo        FDCHDHPCheck = "FDC_YES_HDHP_NO"
	FDCNo               FDCHDHPCheck = "FDC_NO"
	FDCHDHPCheckUnknown FDCHDHPCheck = "UNKNOWN"
)

var validFDCHDHPChecks = map[FDCHDHPCheck]bool{
	FDCHDHPCheckNone: true, FDCYesHDHPUnknown: true, FDCYesHDHPYes: true,
	FDCYesHDHPNo: true, FDCNo: true, FDCHDHPCheckUnknown: true,
}

// Valid reports whether the survey state is known
func (c FDCHDHPCheck) Valid() bool {
	return validFDCHDHPChecks[c]
}

// EmployerHealthPlan is the employer-sponsored plan a member is enrolled in
type EmployerHealthPlan struct {
	ID           int64      `yaml:"id" json:"id"`
	Name         string     `yaml:"name" json:"name"`
	PayerName    string     `yaml:"payer_name" json:"payer_name"`
	IsHDHP       bool       `yaml:"is_hdhp" json:"is_hdhp"`
	RxIntegrated bool       `yaml:"rx_integrated" json:"rx_integrated"`
	Coverages    []Coverage `yaml:"coverages,omitempty" json:"coverages,omitempty"`
}

// Coverage returns the configured coverage row for a kind, plan size and tier,
// falling back to the untiered row
func (p EmployerHealthPlan) Coverage(kind CoverageKind, size PlanSize, tier Tier) (Coverage, bool) {
	for _, t := range []Tier{tier, TierNone} {
		for _, c := range p.Coverages {
			if c.Kind == kind && c.PlanSize == size && c.Tier == t {
				return c, true
			}
		}
	}
	return Coverage{}, false
}

// PayerDisabled reports whether the plan's payer appears in the disabled list
func (p EmployerHealthPlan) PayerDisabled(disabled []string) bool {
	for _, name := range disabled {
		if name != "" && strings.EqualFold(strings.TrimSpace(name), p.PayerName) {
			return true
		}
	}
	return false
}

// MemberHealthPlan links a member to an employer health plan
type MemberHealthPlan struct {
	ID                 int64              `yaml:"id" json:"id"`
	SubscriberID       string             `yaml:"subscriber_id" json:"subscriber_id"`
	IsSubscriber       bool               `yaml:"is_subscriber" json:"is_subscriber"`
	PlanSize           PlanSize           `yaml:"plan_size" json:"plan_size"`
	EmployerHealthPlan EmployerHealthPlan `yaml:"employer_health_plan" json:"employer_health_plan"`
}
