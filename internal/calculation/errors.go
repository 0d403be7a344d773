package calculation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind groups cost breakdown failures by what the caller should do about them
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "invalid_input"
	KindConfigurationMismatch ErrorKind = "configuration_mismatch"
	KindMissingEligibility    ErrorKind = "missing_eligibility"
	KindMissingYTDSpend       ErrorKind = "missing_ytd_spend"
	KindPayerDisabled         ErrorKind = "payer_disabled"
	KindUpstream              ErrorKind = "upstream"
)

var (
	ErrInvalidInput                   = errors.New("invalid cost breakdown input")
	ErrMissingHealthPlan              = errors.New("deductible accumulation requires a member health plan")
	ErrSurveyIncomplete               = errors.New("member must complete the HDHP survey")
	ErrHDHPMismatch                   = errors.New("survey expects an HDHP plan but none is configured")
	ErrDeductibleAccumulationMismatch = errors.New("survey expects deductible accumulation but it is disabled")
	ErrMissingIndividualEligibility   = errors.New("eligibility is missing individual remaining balances")
	ErrMissingFamilyEligibility       = errors.New("eligibility is missing family remaining balances")
	ErrMissingYTDSpend                = errors.New("pharmacy ytd spend is required for a non-integrated plan")
	ErrPayerDisabled                  = errors.New("payer is disabled for real-time eligibility")
	ErrCoverageNotFound               = errors.New("no coverage configured for plan")
)

// CostBreakdownError is returned for every failed breakdown. It carries ids
// rather than entities so it can be logged as-is.
type CostBreakdownError struct {
	Kind               ErrorKind
	Operation          string
	Message            string
	RTETransactionID   *int64
	MemberHealthPlanID *int64
	Err                error
}

func (e *CostBreakdownError) Error() string {
	var b strings.Builder
	b.WriteString(e.Operation)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.RTETransactionID != nil {
		fmt.Fprintf(&b, " (rte_transaction_id=%d", *e.RTETransactionID)
		if e.MemberHealthPlanID != nil {
			fmt.Fprintf(&b, ", member_health_plan_id=%d", *e.MemberHealthPlanID)
		}
		b.WriteString(")")
	} else if e.MemberHealthPlanID != nil {
		fmt.Fprintf(&b, " (member_health_plan_id=%d)", *e.MemberHealthPlanID)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *CostBreakdownError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of a cost breakdown error, or "" for anything else
func KindOf(err error) ErrorKind {
	var cbe *CostBreakdownError
	if errors.As(err, &cbe) {
		return cbe.Kind
	}
	return ""
}

func newError(kind ErrorKind, op string, sentinel error, msg string) *CostBreakdownError {
	return &CostBreakdownError{Kind: kind, Operation: op, Message: msg, Err: sentinel}
}
