package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// EligibilitySource says where an EligibilityInfo came from
type EligibilitySource string

const (
	SourceOverride EligibilitySource = "override"
	SourceRTE      EligibilitySource = "rte"
	SourceManual   EligibilitySource = "manual"
)

// EligibilityRequest describes one eligibility lookup
type EligibilityRequest struct {
	Plan                   domain.MemberHealthPlan
	ProcedureType          domain.ProcedureType
	CostSharingCategory    string
	MemberFirstName        string
	MemberLastName         string
	Tier                   domain.Tier
	ServiceStartDate       time.Time
	TreatmentProcedureID   *int64
	ReimbursementRequestID *int64
	RxYTDSpend             *domain.RxYTDSpend
	Override               *domain.EligibilityInfo

	// MergeCostSharing pulls copay/coinsurance terms from the coverage table
	// for the cost sharing category. Only deductible accumulation uses them.
	MergeCostSharing bool
}

// EligibilityResult is a fetched (and, for live checks, validated) snapshot
type EligibilityResult struct {
	Info             domain.EligibilityInfo
	RTETransactionID *int64
	Source           EligibilitySource
}

// EligibilityProcessor decides how to obtain eligibility and validates it
type EligibilityProcessor struct {
	gateway        RTEGateway
	coverage       CoverageRepository
	disabledPayers []string
}

// NewEligibilityProcessor creates a processor. coverage may be nil when no
// coverage table is available; manual lookups then fail.
func NewEligibilityProcessor(gateway RTEGateway, coverage CoverageRepository, disabledPayers []string) *EligibilityProcessor {
	return &EligibilityProcessor{
		gateway:        gateway,
		coverage:       coverage,
		disabledPayers: disabledPayers,
	}
}

// Fetch resolves eligibility for the request
func (p *EligibilityProcessor) Fetch(ctx context.Context, req EligibilityRequest) (EligibilityResult, error) {
	if req.Override != nil {
		return EligibilityResult{Info: *req.Override, Source: SourceOverride}, nil
	}

	var (
		result EligibilityResult
		err    error
	)
	if req.ProcedureType == domain.ProcedureMedical || req.Plan.EmployerHealthPlan.RxIntegrated {
		result, err = p.fetchLive(ctx, req)
	} else {
		result, err = p.fetchManualRx(ctx, req)
	}
	if err != nil {
		return EligibilityResult{}, err
	}

	if req.MergeCostSharing {
		info, err := p.mergeCostSharing(ctx, result.Info, req.CostSharingCategory, req.Tier)
		if err != nil {
			return EligibilityResult{}, err
		}
		result.Info = info
	}
	return result, nil
}

func (p *EligibilityProcessor) fetchLive(ctx context.Context, req EligibilityRequest) (EligibilityResult, error) {
	planID := req.Plan.ID
	ehp := req.Plan.EmployerHealthPlan

	if ehp.PayerDisabled(p.disabledPayers) {
		e := newError(KindPayerDisabled, "fetch eligibility", ErrPayerDisabled,
			fmt.Sprintf("payer %q is disabled", ehp.PayerName))
		e.MemberHealthPlanID = &planID
		return EligibilityResult{}, e
	}
	if p.gateway == nil {
		e := newError(KindInvalidInput, "fetch eligibility", ErrInvalidInput, "no eligibility gateway configured")
		e.MemberHealthPlanID = &planID
		return EligibilityResult{}, e
	}

	tx, err := p.gateway.GetRealTimeEligibilityData(ctx, RTERequest{
		Plan:                   req.Plan,
		ProcedureType:          req.ProcedureType,
		CostSharingCategory:    req.CostSharingCategory,
		MemberFirstName:        req.MemberFirstName,
		MemberLastName:         req.MemberLastName,
		IsSecondTier:           req.Tier == domain.TierSecondary,
		ServiceStartDate:       req.ServiceStartDate,
		TreatmentProcedureID:   req.TreatmentProcedureID,
		ReimbursementRequestID: req.ReimbursementRequestID,
	})
	if err != nil {
		return EligibilityResult{}, &CostBreakdownError{
			Kind:               KindUpstream,
			Operation:          "fetch eligibility",
			Message:            "real-time eligibility check failed",
			MemberHealthPlanID: &planID,
			Err:                err,
		}
	}
	txID := tx.ID

	info, err := p.gateway.EligibilityInfo(tx, ehp, req.Plan.PlanSize, req.Tier)
	if err != nil {
		return EligibilityResult{}, &CostBreakdownError{
			Kind:               KindUpstream,
			Operation:          "derive eligibility",
			Message:            "could not derive eligibility from payer response",
			RTETransactionID:   &txID,
			MemberHealthPlanID: &planID,
			Err:                err,
		}
	}

	if err := ValidateEligibility(info, req.Plan.PlanSize, &txID, &planID); err != nil {
		return EligibilityResult{}, err
	}
	return EligibilityResult{Info: info, RTETransactionID: &txID, Source: SourceRTE}, nil
}

func (p *EligibilityProcessor) fetchManualRx(ctx context.Context, req EligibilityRequest) (EligibilityResult, error) {
	planID := req.Plan.ID
	if req.RxYTDSpend == nil {
		e := newError(KindMissingYTDSpend, "fetch rx eligibility", ErrMissingYTDSpend,
			"rx ytd spend was not supplied")
		e.MemberHealthPlanID = &planID
		return EligibilityResult{}, e
	}
	if p.coverage == nil {
		e := newError(KindMissingEligibility, "fetch rx eligibility", ErrCoverageNotFound, "no coverage table configured")
		e.MemberHealthPlanID = &planID
		return EligibilityResult{}, e
	}

	size := req.Plan.PlanSize
	cov, err := p.coverage.GetRxCoverage(ctx, req.Plan.EmployerHealthPlan.ID, size, req.Tier)
	if err != nil {
		return EligibilityResult{}, fmt.Errorf("failed to load rx coverage: %w", err)
	}
	if cov == nil {
		// plans without a pharmacy row share the medical accumulators
		cov, err = p.coverage.GetMedicalCoverage(ctx, req.Plan.EmployerHealthPlan.ID, size, req.Tier)
		if err != nil {
			return EligibilityResult{}, fmt.Errorf("failed to load medical coverage: %w", err)
		}
	}
	if cov == nil {
		e := newError(KindMissingEligibility, "fetch rx eligibility", ErrCoverageNotFound,
			fmt.Sprintf("no rx or medical coverage for employer health plan %d (%s, tier %q)",
				req.Plan.EmployerHealthPlan.ID, size, req.Tier))
		e.MemberHealthPlanID = &planID
		return EligibilityResult{}, e
	}

	return EligibilityResult{
		Info:   EligibilityFromCoverage(*cov, *req.RxYTDSpend, size),
		Source: SourceManual,
	}, nil
}

// EligibilityFromCoverage builds eligibility from a coverage table row
// reduced by spend already recorded this year. Family figures are only set
// for family plans.
func EligibilityFromCoverage(cov domain.Coverage, ytd domain.RxYTDSpend, size domain.PlanSize) domain.EligibilityInfo {
	info := domain.EligibilityInfo{
		IndividualDeductible:          domain.Some(cov.IndividualDeductible),
		IndividualDeductibleRemaining: domain.Some(cov.IndividualDeductible).SubFloor(ytd.IndividualDeductible),
		IndividualOOP:                 domain.Some(cov.IndividualOOP),
		IndividualOOPRemaining:        domain.Some(cov.IndividualOOP).SubFloor(ytd.IndividualOOP),
		MaxOOPPerCoveredIndividual:    cov.MaxOOPPerCoveredIndividual,
		IsDeductibleEmbedded:          cov.IsDeductibleEmbedded,
		IsOOPEmbedded:                 cov.IsOOPEmbedded,
	}
	if size.IsFamily() {
		info.FamilyDeductible = domain.Some(cov.FamilyDeductible)
		info.FamilyDeductibleRemaining = domain.Some(cov.FamilyDeductible).SubFloor(ytd.FamilyDeductible)
		info.FamilyOOP = domain.Some(cov.FamilyOOP)
		info.FamilyOOPRemaining = domain.Some(cov.FamilyOOP).SubFloor(ytd.FamilyOOP)
	}
	return info
}

func (p *EligibilityProcessor) mergeCostSharing(ctx context.Context, info domain.EligibilityInfo, category string, tier domain.Tier) (domain.EligibilityInfo, error) {
	if p.coverage == nil {
		return info, nil
	}
	cs, err := p.coverage.GetCostSharing(ctx, category, tier)
	if err != nil {
		return info, fmt.Errorf("failed to load cost sharing for %q: %w", category, err)
	}
	if cs == nil {
		return info, nil
	}
	info.Copay = cs.Copay
	info.Coinsurance = cs.Coinsurance
	info.CoinsuranceMin = cs.CoinsuranceMin
	info.CoinsuranceMax = cs.CoinsuranceMax
	return info, nil
}

// ValidateEligibility checks a live eligibility answer has every remaining
// balance the plan shape needs
func ValidateEligibility(info domain.EligibilityInfo, size domain.PlanSize, rteTransactionID, memberHealthPlanID *int64) error {
	missing := func(sentinel error, msg string) error {
		e := newError(KindMissingEligibility, "validate eligibility", sentinel, msg)
		e.RTETransactionID = rteTransactionID
		e.MemberHealthPlanID = memberHealthPlanID
		return e
	}

	if size.IsFamily() {
		if !info.FamilyDeductibleRemaining.Valid() || !info.FamilyOOPRemaining.Valid() {
			return missing(ErrMissingFamilyEligibility, "family deductible or oop remaining is missing")
		}
		if info.IsDeductibleEmbedded && !info.IndividualDeductibleRemaining.Valid() {
			return missing(ErrMissingIndividualEligibility, "embedded plan is missing individual deductible remaining")
		}
		if info.IsOOPEmbedded && !info.IndividualOOPRemaining.Valid() {
			return missing(ErrMissingIndividualEligibility, "embedded plan is missing individual oop remaining")
		}
		return nil
	}

	if !info.IndividualDeductibleRemaining.Valid() || !info.IndividualOOPRemaining.Valid() {
		return missing(ErrMissingIndividualEligibility, "individual deductible or oop remaining is missing")
	}
	return nil
}

// ApplySequentialResponsibility returns a copy of info with remaining
// balances reduced by responsibility already accrued this plan year
func ApplySequentialResponsibility(info domain.EligibilityInfo, ytd *domain.DeductibleAccumulationYTDInfo, size domain.PlanSize) domain.EligibilityInfo {
	if ytd == nil {
		return info
	}
	out := info
	if !size.IsFamily() {
		out.IndividualDeductibleRemaining = info.IndividualDeductibleRemaining.SubFloor(ytd.IndividualDeductibleApplied)
		out.IndividualOOPRemaining = info.IndividualOOPRemaining.SubFloor(ytd.IndividualOOPApplied)
		return out
	}

	out.FamilyDeductibleRemaining = info.FamilyDeductibleRemaining.SubFloor(ytd.FamilyDeductibleApplied)
	out.FamilyOOPRemaining = info.FamilyOOPRemaining.SubFloor(ytd.FamilyOOPApplied)
	if info.IsDeductibleEmbedded {
		out.IndividualDeductibleRemaining = info.IndividualDeductibleRemaining.SubFloor(ytd.IndividualDeductibleApplied)
	}
	if info.IsOOPEmbedded {
		out.IndividualOOPRemaining = info.IndividualOOPRemaining.SubFloor(ytd.IndividualOOPApplied)
	}
	return out
}
