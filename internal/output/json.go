package output

import (
	"encoding/json"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// JSONFormatter emits the results as an indented JSON array
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(results []domain.ScenarioResult) ([]byte, error) {
	if results == nil {
		results = []domain.ScenarioResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
