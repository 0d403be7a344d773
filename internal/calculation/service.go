package calculation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// Metric names emitted by the service
const (
	MetricStrategy   = "cost_breakdown_strategy_total"
	MetricCorrection = "cost_breakdown_negative_wallet_correction_total"
	MetricFailure    = "cost_breakdown_failure_total"
)

// Dependencies are the collaborators a service consults. Only the ones the
// chosen strategy needs must be set.
type Dependencies struct {
	Gateway        RTEGateway
	Coverage       CoverageRepository
	IRSLimits      IRSLimitTable
	DisabledPayers []string
	Metrics        Counter
}

// CostBreakdownDataService computes the breakdown for a single request. A
// service is built per request and discarded afterwards.
type CostBreakdownDataService struct {
	req         domain.BreakdownRequest
	eligibility *EligibilityProcessor
	irs         IRSLimitTable
	metrics     Counter
	logger      zerolog.Logger
}

// NewCostBreakdownDataService validates the request and wires the collaborators
func NewCostBreakdownDataService(req domain.BreakdownRequest, deps Dependencies) (*CostBreakdownDataService, error) {
	if err := req.Validate(); err != nil {
		return nil, &CostBreakdownError{
			Kind:               KindInvalidInput,
			Operation:          "new cost breakdown service",
			Message:            "request failed validation",
			MemberHealthPlanID: req.MemberHealthPlanID(),
			Err:                fmt.Errorf("%w: %w", ErrInvalidInput, err),
		}
	}

	svc := &CostBreakdownDataService{
		req:         req,
		eligibility: NewEligibilityProcessor(deps.Gateway, deps.Coverage, deps.DisabledPayers),
		irs:         deps.IRSLimits,
		metrics:     deps.Metrics,
		logger:      zerolog.Nop(),
	}
	if svc.irs == nil {
		svc.irs = domain.DefaultIRSLimitSchedule()
	}
	if svc.metrics == nil {
		svc.metrics = nopCounter{}
	}
	return svc, nil
}

// SetLogger replaces the service logger
func (s *CostBreakdownDataService) SetLogger(logger zerolog.Logger) {
	s.logger = logger
}

// GetCostBreakdownData runs the selected strategy and returns the finalized breakdown
func (s *CostBreakdownDataService) GetCostBreakdownData(ctx context.Context) (*domain.CostBreakdownData, error) {
	strategy, err := SelectStrategy(s.req)
	if err != nil {
		return nil, s.fail(err)
	}

	var cb domain.CostBreakdownData
	switch strategy {
	case domain.CostBreakdownDeductibleAccumulation:
		cb, err = s.deductibleAccumulation(ctx)
	case domain.CostBreakdownHDHP:
		cb, err = s.hdhp(ctx)
	default:
		cb = CalculateFirstDollarCoverage(FirstDollarInput{
			Cost:          s.req.Cost,
			WalletBalance: s.req.WalletBalance,
			IsUnlimited:   s.req.IsUnlimited,
			AmountType:    s.req.PlanSize(),
		})
	}
	if err != nil {
		return nil, s.fail(err)
	}
	s.metrics.Inc(MetricStrategy, "strategy", MetricName(strategy))

	corrected, changed := ApplyNegativeWalletCorrection(cb, s.req.Cost)
	if changed {
		s.metrics.Inc(MetricCorrection, "strategy", MetricName(strategy))
		s.withIDs(s.logger.Warn()).
			Int64("beginning_wallet_balance", cb.BeginningWalletBalance).
			Int64("original_member_responsibility", cb.TotalMemberResponsibility).
			Int64("cost", s.req.Cost).
			Msg("member responsibility exceeded cost on a negative wallet, capped at cost")
	}

	ev := s.withIDs(s.logger.Info()).
		Str("strategy", MetricName(strategy)).
		Str("cost_breakdown_type", string(corrected.CostBreakdownType)).
		Int64("cost", s.req.Cost).
		Int64("member_responsibility", corrected.TotalMemberResponsibility).
		Int64("employer_responsibility", corrected.TotalEmployerResponsibility)
	if corrected.RTETransactionID != nil {
		ev = ev.Int64("rte_transaction_id", *corrected.RTETransactionID)
	}
	ev.Msg("cost breakdown computed")

	return &corrected, nil
}

func (s *CostBreakdownDataService) deductibleAccumulation(ctx context.Context) (domain.CostBreakdownData, error) {
	size := s.req.PlanSize()
	res, err := s.eligibility.Fetch(ctx, s.eligibilityRequest(true))
	if err != nil {
		return domain.CostBreakdownData{}, err
	}
	info := ApplySequentialResponsibility(res.Info, s.req.SequentialDeductibleAccumulation, size)

	s.logger.Debug().
		Str("eligibility_source", string(res.Source)).
		Msg("eligibility resolved for deductible accumulation")

	return CalculateDeductibleAccumulation(DeductibleAccumulationInput{
		Cost:             s.req.Cost,
		WalletBalance:    s.req.WalletBalance,
		IsUnlimited:      s.req.IsUnlimited,
		PlanSize:         size,
		Eligibility:      info,
		RTETransactionID: res.RTETransactionID,
	}), nil
}

func (s *CostBreakdownDataService) hdhp(ctx context.Context) (domain.CostBreakdownData, error) {
	size := s.req.PlanSize()
	res, err := s.eligibility.Fetch(ctx, s.eligibilityRequest(false))
	if err != nil {
		return domain.CostBreakdownData{}, err
	}

	spend := ComputeOOPYTDSpend(res.Info, size, s.req.SequentialHDHP, s.req.AlegeusYTDSpend)
	threshold := s.irs.Limit(s.req.ServiceStartDate.Year(), !size.IsFamily())

	s.logger.Debug().
		Str("eligibility_source", string(res.Source)).
		Int64("oop_ytd_spend", spend).
		Int64("irs_threshold", threshold).
		Msg("hdhp threshold evaluated")

	return CalculateHDHP(HDHPInput{
		Cost:             s.req.Cost,
		WalletBalance:    s.req.WalletBalance,
		IsUnlimited:      s.req.IsUnlimited,
		PlanSize:         size,
		OOPYTDSpend:      spend,
		IRSThreshold:     threshold,
		RTETransactionID: res.RTETransactionID,
	}), nil
}

func (s *CostBreakdownDataService) eligibilityRequest(mergeCostSharing bool) EligibilityRequest {
	return EligibilityRequest{
		Plan:                   *s.req.MemberHealthPlan,
		ProcedureType:          s.req.ProcedureType,
		CostSharingCategory:    s.req.CostSharingCategory,
		MemberFirstName:        s.req.MemberFirstName,
		MemberLastName:         s.req.MemberLastName,
		Tier:                   s.req.Tier,
		ServiceStartDate:       s.req.ServiceStartDate,
		TreatmentProcedureID:   s.req.TreatmentProcedureID,
		ReimbursementRequestID: s.req.ReimbursementRequestID,
		RxYTDSpend:             s.req.RxYTDSpend,
		Override:               s.req.EligibilityOverride,
		MergeCostSharing:       mergeCostSharing,
	}
}

func (s *CostBreakdownDataService) fail(err error) error {
	kind := KindOf(err)
	if kind == "" {
		kind = KindUpstream
	}
	s.metrics.Inc(MetricFailure, "kind", string(kind))
	s.withIDs(s.logger.Error()).Err(err).Str("kind", string(kind)).Msg("cost breakdown failed")
	return err
}

func (s *CostBreakdownDataService) withIDs(ev *zerolog.Event) *zerolog.Event {
	if s.req.TreatmentProcedureID != nil {
		ev = ev.Int64("treatment_procedure_id", *s.req.TreatmentProcedureID)
	}
	if s.req.ReimbursementRequestID != nil {
		ev = ev.Int64("reimbursement_request_id", *s.req.ReimbursementRequestID)
	}
	if s.req.MemberHealthPlan != nil {
		ev = ev.Int64("member_health_plan_id", s.req.MemberHealthPlan.ID)
	}
	if s.req.WalletID != "" {
		ev = ev.Str("wallet_id", s.req.WalletID)
	}
	return ev
}
