package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EligibilityInfo is a snapshot of a member's benefit coverage at a point in
// time. Amounts are in cents; Coinsurance is a rate between 0 and 1.
type EligibilityInfo struct {
	IndividualDeductible          Amount `yaml:"individual_deductible,omitempty" json:"individual_deductible"`
	IndividualDeductibleRemaining Amount `yaml:"individual_deductible_remaining,omitempty" json:"individual_deductible_remaining"`
	FamilyDeductible              Amount `yaml:"family_deductible,omitempty" json:"family_deductible"`
	FamilyDeductibleRemaining     Amount `yaml:"family_deductible_remaining,omitempty" json:"family_deductible_remaining"`
	IndividualOOP                 Amount `yaml:"individual_oop,omitempty" json:"individual_oop"`
	IndividualOOPRemaining        Amount `yaml:"individual_oop_remaining,omitempty" json:"individual_oop_remaining"`
	FamilyOOP                     Amount `yaml:"family_oop,omitempty" json:"family_oop"`
	FamilyOOPRemaining            Amount `yaml:"family_oop_remaining,omitempty" json:"family_oop_remaining"`
	HRARemaining                  Amount `yaml:"hra_remaining,omitempty" json:"hra_remaining"`

	Coinsurance                decimal.Decimal `yaml:"coinsurance" json:"coinsurance"`
	CoinsuranceMin             Amount          `yaml:"coinsurance_min,omitempty" json:"coinsurance_min"`
	CoinsuranceMax             Amount          `yaml:"coinsurance_max,omitempty" json:"coinsurance_max"`
	Copay                      Amount          `yaml:"copay,omitempty" json:"copay"`
	MaxOOPPerCoveredIndividual Amount          `yaml:"max_oop_per_covered_individual,omitempty" json:"max_oop_per_covered_individual"`

	IsDeductibleEmbedded bool `yaml:"is_deductible_embedded" json:"is_deductible_embedded"`
	IsOOPEmbedded        bool `yaml:"is_oop_embedded" json:"is_oop_embedded"`
	IgnoreDeductible     bool `yaml:"ignore_deductible" json:"ignore_deductible"`
}

// RawEligibility is the payer's answer to a real-time eligibility check,
// before plan-level embedding rules are applied.
type RawEligibility struct {
	IndividualDeductible          Amount          `yaml:"individual_deductible,omitempty" json:"individual_deductible"`
	IndividualDeductibleRemaining Amount          `yaml:"individual_deductible_remaining,omitempty" json:"individual_deductible_remaining"`
	FamilyDeductible              Amount          `yaml:"family_deductible,omitempty" json:"family_deductible"`
	FamilyDeductibleRemaining     Amount          `yaml:"family_deductible_remaining,omitempty" json:"family_deductible_remaining"`
	IndividualOOP                 Amount          `yaml:"individual_oop,omitempty" json:"individual_oop"`
	IndividualOOPRemaining        Amount          `yaml:"individual_oop_remaining,omitempty" json:"individual_oop_remaining"`
	FamilyOOP                     Amount          `yaml:"family_oop,omitempty" json:"family_oop"`
	FamilyOOPRemaining            Amount          `yaml:"family_oop_remaining,omitempty" json:"family_oop_remaining"`
	HRARemaining                  Amount          `yaml:"hra_remaining,omitempty" json:"hra_remaining"`
	Coinsurance                   decimal.Decimal `yaml:"coinsurance" json:"coinsurance"`
	Copay                         Amount          `yaml:"copay,omitempty" json:"copay"`
}

// RTETransaction records one real-time eligibility check
type RTETransaction struct {
	ID                 int64          `json:"id"`
	MemberHealthPlanID int64          `json:"member_health_plan_id"`
	ProcedureType      ProcedureType  `json:"procedure_type"`
	Response           RawEligibility `json:"response"`
	CreatedAt          time.Time      `json:"created_at"`
}
