package calculation

import (
	"context"
	"time"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// RTERequest is everything a payer needs for a real-time eligibility check
type RTERequest struct {
	Plan                   domain.MemberHealthPlan
	ProcedureType          domain.ProcedureType
	CostSharingCategory    string
	MemberFirstName        string
	MemberLastName         string
	IsSecondTier           bool
	ServiceStartDate       time.Time
	TreatmentProcedureID   *int64
	ReimbursementRequestID *int64
}

// RTEGateway performs live eligibility checks and derives EligibilityInfo
// from the raw payer answer
type RTEGateway interface {
	GetRealTimeEligibilityData(ctx context.Context, req RTERequest) (*domain.RTETransaction, error)
	EligibilityInfo(tx *domain.RTETransaction, plan domain.EmployerHealthPlan, size domain.PlanSize, tier domain.Tier) (domain.EligibilityInfo, error)
}

// CoverageRepository reads the org-managed coverage table. Lookups return
// nil, nil when no row matches.
type CoverageRepository interface {
	GetMedicalCoverage(ctx context.Context, employerHealthPlanID int64, size domain.PlanSize, tier domain.Tier) (*domain.Coverage, error)
	GetRxCoverage(ctx context.Context, employerHealthPlanID int64, size domain.PlanSize, tier domain.Tier) (*domain.Coverage, error)
	GetCostSharing(ctx context.Context, category string, tier domain.Tier) (*domain.CostSharing, error)
}

// IRSLimitTable yields the HDHP minimum out-of-pocket threshold
type IRSLimitTable interface {
	Limit(year int, isIndividual bool) int64
}

// Counter records branch metrics
type Counter interface {
	Inc(name string, labels ...string)
}

type nopCounter struct{}

func (nopCounter) Inc(string, ...string) {}
