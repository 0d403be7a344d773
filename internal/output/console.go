package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// ConsoleFormatter prints a readable block per scenario
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(results []domain.ScenarioResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	for i, r := range results {
		if i > 0 {
			buf.WriteString("\n")
		}
		b := r.Breakdown
		fmt.Fprintf(buf, "COST BREAKDOWN: %s\n", r.Name)
		fmt.Fprintf(buf, "%s\n", "==================================================")
		row := func(label, value string) {
			fmt.Fprintf(buf, "  %-30s %s\n", label, value)
		}
		row("Strategy", string(b.CostBreakdownType))
		row("Amount type", string(b.AmountType))
		row("Cost", FormatCurrency(r.Cost))
		row("Member responsibility", FormatCurrency(b.TotalMemberResponsibility))
		row("Employer responsibility", FormatCurrency(b.TotalEmployerResponsibility))
		if b.IsUnlimited {
			row("Wallet", "unlimited")
		} else {
			row("Beginning wallet balance", FormatCurrency(b.BeginningWalletBalance))
			row("Ending wallet balance", FormatCurrency(b.EndingWalletBalance))
		}
		row("Deductible", FormatCurrency(b.Deductible))
		row("Deductible remaining", FormatCurrency(b.DeductibleRemaining))
		row("Family deductible remaining", FormatOptional(b.FamilyDeductibleRemaining))
		row("Coinsurance", FormatCurrency(b.Coinsurance))
		row("Copay", FormatCurrency(b.Copay))
		row("OOP applied", FormatCurrency(b.OOPApplied))
		row("OOP remaining", FormatCurrency(b.OOPRemaining))
		row("Family OOP remaining", FormatOptional(b.FamilyOOPRemaining))
		row("HRA applied", FormatCurrency(b.HRAApplied))
		row("Overage", FormatCurrency(b.OverageAmount))
		if b.RTETransactionID != nil {
			row("RTE transaction", strconv.FormatInt(*b.RTETransactionID, 10))
		}
	}
	return buf.Bytes(), nil
}
