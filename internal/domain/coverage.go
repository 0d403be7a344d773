package domain

import "github.com/shopspring/decimal"

// CoverageKind separates medical from pharmacy coverage rows
type CoverageKind string

const (
	CoverageMedical CoverageKind = "MEDICAL"
	CoverageRx      CoverageKind = "RX"
)

// Coverage is a manually managed deductible/OOP ceiling row for an employer
// health plan. It stands in for live eligibility when a payer is not integrated
// and supplies the embedding rules payers do not report.
type Coverage struct {
	EmployerHealthPlanID       int64        `yaml:"employer_health_plan_id" json:"employer_health_plan_id"`
	Kind                       CoverageKind `yaml:"kind" json:"kind"`
	PlanSize                   PlanSize     `yaml:"plan_size" json:"plan_size"`
	Tier                       Tier         `yaml:"tier,omitempty" json:"tier,omitempty"`
	IndividualDeductible       int64        `yaml:"individual_deductible" json:"individual_deductible"`
	IndividualOOP              int64        `yaml:"individual_oop" json:"individual_oop"`
	FamilyDeductible           int64        `yaml:"family_deductible" json:"family_deductible"`
	FamilyOOP                  int64        `yaml:"family_oop" json:"family_oop"`
	MaxOOPPerCoveredIndividual Amount       `yaml:"max_oop_per_covered_individual,omitempty" json:"max_oop_per_covered_individual"`
	IsDeductibleEmbedded       bool         `yaml:"is_deductible_embedded" json:"is_deductible_embedded"`
	IsOOPEmbedded              bool         `yaml:"is_oop_embedded" json:"is_oop_embedded"`
}

// CostSharing holds the database-managed copay/coinsurance terms for a cost
// sharing category
type CostSharing struct {
	Category       string          `yaml:"category" json:"category"`
	Tier           Tier            `yaml:"tier,omitempty" json:"tier,omitempty"`
	Copay          Amount          `yaml:"copay,omitempty" json:"copay"`
	Coinsurance    decimal.Decimal `yaml:"coinsurance" json:"coinsurance"`
	CoinsuranceMin Amount          `yaml:"coinsurance_min,omitempty" json:"coinsurance_min"`
	CoinsuranceMax Amount          `yaml:"coinsurance_max,omitempty" json:"coinsurance_max"`
}

// CoverageSeed is the document format for importing coverage configuration
type CoverageSeed struct {
	Coverages   []Coverage    `yaml:"coverages" json:"coverages"`
	CostSharing []CostSharing `yaml:"cost_sharing" json:"cost_sharing"`
}

// DeductibleAccumulationYTDInfo is the responsibility already attributed to a
// member earlier in the plan year by sequential payments.
type DeductibleAccumulationYTDInfo struct {
	IndividualDeductibleApplied int64 `yaml:"individual_deductible_applied" json:"individual_deductible_applied"`
	IndividualOOPApplied        int64 `yaml:"individual_oop_applied" json:"individual_oop_applied"`
	FamilyDeductibleApplied     int64 `yaml:"family_deductible_applied" json:"family_deductible_applied"`
	FamilyOOPApplied            int64 `yaml:"family_oop_applied" json:"family_oop_applied"`
}

// HDHPAccumulationYTDInfo is the HDHP member responsibility already accrued
// this plan year by sequential payments.
type HDHPAccumulationYTDInfo struct {
	SequentialMemberResponsibility int64 `yaml:"sequential_member_responsibility" json:"sequential_member_responsibility"`
}

// RxYTDSpend is pharmacy spend recorded outside a live eligibility check
type RxYTDSpend struct {
	IndividualDeductible int64 `yaml:"individual_deductible" json:"individual_deductible"`
	IndividualOOP        int64 `yaml:"individual_oop" json:"individual_oop"`
	FamilyDeductible     int64 `yaml:"family_deductible" json:"family_deductible"`
	FamilyOOP            int64 `yaml:"family_oop" json:"family_oop"`
}
