package calculation

import (
	"fmt"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// SelectStrategy picks the evaluator for a request. The first matching rule
// wins: deductible accumulation, then HDHP, then first dollar coverage once
// the survey answer agrees with the plan configuration.
func SelectStrategy(req domain.BreakdownRequest) (domain.CostBreakdownType, error) {
	planID := req.MemberHealthPlanID()

	if req.DeductibleAccumulationEnabled {
		if req.MemberHealthPlan == nil {
			return "", newError(KindConfigurationMismatch, "select strategy", ErrMissingHealthPlan,
				"deductible accumulation is enabled but the member has no health plan")
		}
		return domain.CostBreakdownDeductibleAccumulation, nil
	}

	if req.MemberHealthPlan != nil && req.MemberHealthPlan.EmployerHealthPlan.IsHDHP {
		return domain.CostBreakdownHDHP, nil
	}

	mismatch := func(sentinel error, msg string) error {
		e := newError(KindConfigurationMismatch, "select strategy", sentinel, msg)
		e.MemberHealthPlanID = planID
		return e
	}

	switch req.FDCHDHPCheck {
	case domain.FDCYesHDHPUnknown, domain.FDCHDHPCheckUnknown:
		return "", mismatch(ErrSurveyIncomplete, "complete the HDHP survey before a cost breakdown can be produced")
	case domain.FDCYesHDHPYes:
		return "", mismatch(ErrHDHPMismatch, "survey reports an HDHP but no HDHP health plan is on file")
	case domain.FDCNo:
		return "", mismatch(ErrDeductibleAccumulationMismatch, "survey reports no first dollar coverage but deductible accumulation is disabled")
	case domain.FDCHDHPCheckNone, domain.FDCYesHDHPNo:
		return domain.CostBreakdownFirstDollarCoverage, nil
	default:
		return "", newError(KindInvalidInput, "select strategy", ErrInvalidInput,
			fmt.Sprintf("unknown fdc_hdhp_check %q", req.FDCHDHPCheck))
	}
}

// MetricName is the branch counter label for a strategy
func MetricName(t domain.CostBreakdownType) string {
	switch t {
	case domain.CostBreakdownDeductibleAccumulation:
		return "deductible_accumulation"
	case domain.CostBreakdownHDHP:
		return "hdhp"
	default:
		return "first_dollar_coverage"
	}
}
