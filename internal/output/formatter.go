package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// Formatter renders computed breakdowns
type Formatter interface {
	Name() string
	Format(results []domain.ScenarioResult) ([]byte, error)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{},
	"csv":     CSVFormatter{},
	"parquet": ParquetFormatter{},
}

// GetFormatterByName looks up a formatter; names are case-insensitive
func GetFormatterByName(name string) (Formatter, error) {
	f, ok := formatters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (available: %s)", name, strings.Join(FormatterNames(), ", "))
	}
	return f, nil
}

// FormatterNames lists the registered formatter names
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted formats results and writes them to w
func WriteFormatted(w io.Writer, f Formatter, results []domain.ScenarioResult) error {
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s output: %w", f.Name(), err)
	}
	return nil
}

// FormatCurrency renders an amount in cents as dollars
func FormatCurrency(cents int64) string {
	d := decimal.New(cents, -2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatOptional renders an optional amount, "n/a" when absent
func FormatOptional(a domain.Amount) string {
	v, ok := a.Get()
	if !ok {
		return "n/a"
	}
	return FormatCurrency(v)
}
