// Package rte answers real-time eligibility checks from canned payer
// responses and derives EligibilityInfo from them.
package rte

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rgehrsitz/costbreakdown/internal/calculation"
	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// ErrNoResponse is returned when no payer response is on file for a plan
var ErrNoResponse = errors.New("no eligibility response for member health plan")

// FixtureGateway serves payer responses keyed by member health plan id.
// Transaction ids are assigned sequentially starting at 1.
type FixtureGateway struct {
	mu        sync.Mutex
	responses map[int64]domain.RawEligibility
	lastID    int64
	calls     []calculation.RTERequest
	now       func() time.Time
}

// NewFixtureGateway creates a gateway over the given responses
func NewFixtureGateway(responses map[int64]domain.RawEligibility) *FixtureGateway {
	cp := make(map[int64]domain.RawEligibility, len(responses))
	for k, v := range responses {
		cp[k] = v
	}
	return &FixtureGateway{responses: cp, now: time.Now}
}

// GetRealTimeEligibilityData records the request and returns the canned response
func (g *FixtureGateway) GetRealTimeEligibilityData(ctx context.Context, req calculation.RTERequest) (*domain.RTETransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)

	raw, ok := g.responses[req.Plan.ID]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrNoResponse, req.Plan.ID)
	}
	g.lastID++
	return &domain.RTETransaction{
		ID:                 g.lastID,
		MemberHealthPlanID: req.Plan.ID,
		ProcedureType:      req.ProcedureType,
		Response:           raw,
		CreatedAt:          g.now().UTC(),
	}, nil
}

// EligibilityInfo derives eligibility from a transaction
func (g *FixtureGateway) EligibilityInfo(tx *domain.RTETransaction, plan domain.EmployerHealthPlan, size domain.PlanSize, tier domain.Tier) (domain.EligibilityInfo, error) {
	if tx == nil {
		return domain.EligibilityInfo{}, errors.New("nil eligibility transaction")
	}
	return DeriveEligibility(tx.Response, tx.ProcedureType, plan, size, tier), nil
}

// Calls returns the requests made so far
func (g *FixtureGateway) Calls() []calculation.RTERequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]calculation.RTERequest(nil), g.calls...)
}
