package rte

import "github.com/rgehrsitz/costbreakdown/internal/domain"

// DeriveEligibility turns a raw payer answer into EligibilityInfo. Payers do
// not report embedding rules, so those come from the employer plan's
// coverage row for the procedure kind, plan size and tier. Without a row
// nothing is embedded.
func DeriveEligibility(raw domain.RawEligibility, procedure domain.ProcedureType, plan domain.EmployerHealthPlan, size domain.PlanSize, tier domain.Tier) domain.EligibilityInfo {
	info := domain.EligibilityInfo{
		IndividualDeductible:          raw.IndividualDeductible,
		IndividualDeductibleRemaining: raw.IndividualDeductibleRemaining,
		IndividualOOP:                 raw.IndividualOOP,
		IndividualOOPRemaining:        raw.IndividualOOPRemaining,
		HRARemaining:                  raw.HRARemaining,
		Coinsurance:                   raw.Coinsurance,
		Copay:                         raw.Copay,
	}
	if size.IsFamily() {
		info.FamilyDeductible = raw.FamilyDeductible
		info.FamilyDeductibleRemaining = raw.FamilyDeductibleRemaining
		info.FamilyOOP = raw.FamilyOOP
		info.FamilyOOPRemaining = raw.FamilyOOPRemaining
	}

	kind := domain.CoverageMedical
	if procedure == domain.ProcedurePharmacy {
		kind = domain.CoverageRx
	}
	cov, ok := plan.Coverage(kind, size, tier)
	if !ok && kind == domain.CoverageRx {
		// integrated rx shares the medical accumulators
		cov, ok = plan.Coverage(domain.CoverageMedical, size, tier)
	}
	if ok {
		info.IsDeductibleEmbedded = cov.IsDeductibleEmbedded
		info.IsOOPEmbedded = cov.IsOOPEmbedded
		info.MaxOOPPerCoveredIndividual = cov.MaxOOPPerCoveredIndividual
	}
	return info
}
