package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// CSVFormatter writes one row per scenario with amounts in cents
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"scenario", "cost_breakdown_type", "amount_type", "cost",
	"total_member_responsibility", "total_employer_responsibility",
	"beginning_wallet_balance", "ending_wallet_balance",
	"deductible", "deductible_remaining", "family_deductible_remaining",
	"coinsurance", "copay", "oop_applied", "oop_remaining", "family_oop_remaining",
	"hra_applied", "overage_amount", "is_unlimited", "rte_transaction_id",
}

func (CSVFormatter) Format(results []domain.ScenarioResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range results {
		b := r.Breakdown
		row := []string{
			r.Name,
			string(b.CostBreakdownType),
			string(b.AmountType),
			itoa(r.Cost),
			itoa(b.TotalMemberResponsibility),
			itoa(b.TotalEmployerResponsibility),
			itoa(b.BeginningWalletBalance),
			itoa(b.EndingWalletBalance),
			itoa(b.Deductible),
			itoa(b.DeductibleRemaining),
			b.FamilyDeductibleRemaining.String(),
			itoa(b.Coinsurance),
			itoa(b.Copay),
			itoa(b.OOPApplied),
			itoa(b.OOPRemaining),
			b.FamilyOOPRemaining.String(),
			itoa(b.HRAApplied),
			itoa(b.OverageAmount),
			strconv.FormatBool(b.IsUnlimited),
			domain.AmountFromPtr(b.RTETransactionID).String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
