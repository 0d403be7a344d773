package output

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// BreakdownRow is the columnar export layout. Amounts are in cents.
type BreakdownRow struct {
	Scenario                    string `parquet:"scenario"`
	CostBreakdownType           string `parquet:"cost_breakdown_type"`
	AmountType                  string `parquet:"amount_type"`
	Cost                        int64  `parquet:"cost"`
	TotalMemberResponsibility   int64  `parquet:"total_member_responsibility"`
	TotalEmployerResponsibility int64  `parquet:"total_employer_responsibility"`
	BeginningWalletBalance      int64  `parquet:"beginning_wallet_balance"`
	EndingWalletBalance         int64  `parquet:"ending_wallet_balance"`
	Deductible                  int64  `parquet:"deductible"`
	DeductibleRemaining         int64  `parquet:"deductible_remaining"`
	FamilyDeductibleRemaining   *int64 `parquet:"family_deductible_remaining,optional"`
	Coinsurance                 int64  `parquet:"coinsurance"`
	Copay                       int64  `parquet:"copay"`
	OOPApplied                  int64  `parquet:"oop_applied"`
	OOPRemaining                int64  `parquet:"oop_remaining"`
	FamilyOOPRemaining          *int64 `parquet:"family_oop_remaining,optional"`
	HRAApplied                  int64  `parquet:"hra_applied"`
	OverageAmount               int64  `parquet:"overage_amount"`
	IsUnlimited                 bool   `parquet:"is_unlimited"`
	RTETransactionID            *int64 `parquet:"rte_transaction_id,optional"`
}

// NewBreakdownRow flattens a scenario result into a row
func NewBreakdownRow(r domain.ScenarioResult) BreakdownRow {
	b := r.Breakdown
	return BreakdownRow{
		Scenario:                    r.Name,
		CostBreakdownType:           string(b.CostBreakdownType),
		AmountType:                  string(b.AmountType),
		Cost:                        r.Cost,
		TotalMemberResponsibility:   b.TotalMemberResponsibility,
		TotalEmployerResponsibility: b.TotalEmployerResponsibility,
		BeginningWalletBalance:      b.BeginningWalletBalance,
		EndingWalletBalance:         b.EndingWalletBalance,
		Deductible:                  b.Deductible,
		DeductibleRemaining:         b.DeductibleRemaining,
		FamilyDeductibleRemaining:   b.FamilyDeductibleRemaining.Ptr(),
		Coinsurance:                 b.Coinsurance,
		Copay:                       b.Copay,
		OOPApplied:                  b.OOPApplied,
		OOPRemaining:                b.OOPRemaining,
		FamilyOOPRemaining:          b.FamilyOOPRemaining.Ptr(),
		HRAApplied:                  b.HRAApplied,
		OverageAmount:               b.OverageAmount,
		IsUnlimited:                 b.IsUnlimited,
		RTETransactionID:            b.RTETransactionID,
	}
}

// ParquetFormatter writes a snappy-compressed parquet file
type ParquetFormatter struct{}

func (ParquetFormatter) Name() string { return "parquet" }

func (ParquetFormatter) Format(results []domain.ScenarioResult) ([]byte, error) {
	rows := make([]BreakdownRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, NewBreakdownRow(r))
	}

	buf := &bytes.Buffer{}
	w := parquet.NewGenericWriter[BreakdownRow](buf,
		parquet.Compression(&parquet.Snappy),
		parquet.CreatedBy("costbreakdown", "1.0", ""),
	)
	if _, err := w.Write(rows); err != nil {
		return nil, fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}
