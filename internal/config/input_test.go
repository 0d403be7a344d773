package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

const testdata = "../../test/testdata"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestInputParser_LoadScenarios(t *testing.T) {
	parser := NewInputParser()
	file, err := parser.LoadScenarios(filepath.Join(testdata, "scenarios.yaml"))
	require.NoError(t, err)
	require.Len(t, file.Scenarios, 6)

	fdc := file.Scenarios[0]
	assert.Equal(t, "first-dollar-sufficient", fdc.Name)
	assert.Equal(t, int64(150), fdc.Request.WalletBalance)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), fdc.Request.ServiceStartDate)
	assert.Nil(t, fdc.Request.MemberHealthPlan)

	family := file.Scenarios[4]
	require.NotNil(t, family.Request.MemberHealthPlan)
	assert.Equal(t, domain.PlanSizeFamily, family.Request.MemberHealthPlan.PlanSize)
	assert.True(t, family.Request.DeductibleAccumulationEnabled)
	require.NotNil(t, family.Request.SequentialDeductibleAccumulation)
	assert.Equal(t, int64(10000), family.Request.SequentialDeductibleAccumulation.FamilyDeductibleApplied)
	raw := family.RTEResponses[21]
	assert.Equal(t, domain.Some(80000), raw.FamilyDeductibleRemaining)
	assert.True(t, decimal.RequireFromString("0.2").Equal(raw.Coinsurance))

	override := file.Scenarios[5].Request.EligibilityOverride
	require.NotNil(t, override)
	assert.Equal(t, domain.Some(1500), override.HRARemaining)
	assert.False(t, override.FamilyDeductibleRemaining.Valid())
}

func TestInputParser_LoadScenarios_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadScenarios("nonexistent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadScenarios(writeFile(t, "bad.yaml", "scenarios: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "empty",
			body:    "scenarios: []",
			wantErr: "at least one scenario",
		},
		{
			name: "duplicate names",
			body: `
scenarios:
  - name: a
    request: {member_first_name: A, member_last_name: B, cost: 1, procedure_type: MEDICAL, cost_sharing_category: X, service_start_date: 2025-01-01}
  - name: a
    request: {member_first_name: A, member_last_name: B, cost: 1, procedure_type: MEDICAL, cost_sharing_category: X, service_start_date: 2025-01-01}
`,
			wantErr: "duplicate name",
		},
		{
			name: "zero cost",
			body: `
scenarios:
  - name: a
    request: {member_first_name: A, member_last_name: B, cost: 0, procedure_type: MEDICAL, cost_sharing_category: X, service_start_date: 2025-01-01}
`,
			wantErr: "cost must be positive",
		},
		{
			name: "coinsurance above one",
			body: `
scenarios:
  - name: a
    request: {member_first_name: A, member_last_name: B, cost: 1, procedure_type: MEDICAL, cost_sharing_category: X, service_start_date: 2025-01-01}
    rte_responses:
      5: {coinsurance: 1.5}
`,
			wantErr: "coinsurance must be between 0 and 1",
		},
		{
			name: "override min above max",
			body: `
scenarios:
  - name: a
    request:
      member_first_name: A
      member_last_name: B
      cost: 1
      procedure_type: MEDICAL
      cost_sharing_category: X
      service_start_date: 2025-01-01
      eligibility_override: {coinsurance: 0.1, coinsurance_min: 500, coinsurance_max: 100}
`,
			wantErr: "exceeds coinsurance_max",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadScenarios(writeFile(t, "s.yaml", tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_LoadCoverageSeed(t *testing.T) {
	parser := NewInputParser()
	seed, err := parser.LoadCoverageSeed(filepath.Join(testdata, "coverage.yaml"))
	require.NoError(t, err)
	require.Len(t, seed.Coverages, 2)
	require.Len(t, seed.CostSharing, 2)

	assert.Equal(t, domain.CoverageRx, seed.Coverages[0].Kind)
	assert.False(t, seed.Coverages[0].MaxOOPPerCoveredIndividual.Valid())
	assert.True(t, seed.Coverages[1].IsOOPEmbedded)
	assert.Equal(t, domain.Some(1000), seed.CostSharing[0].Copay)
	assert.Equal(t, domain.Some(50000), seed.CostSharing[1].CoinsuranceMax)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty", "coverages: []", "coverage seed is empty"},
		{"bad kind", "coverages: [{employer_health_plan_id: 1, kind: DENTAL, plan_size: INDIVIDUAL}]", "unknown coverage kind"},
		{"bad size", "coverages: [{employer_health_plan_id: 1, kind: RX, plan_size: COUPLE}]", "unknown plan size"},
		{"negative amount", "coverages: [{employer_health_plan_id: 1, kind: RX, plan_size: INDIVIDUAL, family_oop: -1}]", "family_oop cannot be negative"},
		{"missing category", "cost_sharing: [{copay: 100}]", "category is required"},
		{"negative copay", "cost_sharing: [{category: X, copay: -5}]", "copay cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadCoverageSeed(writeFile(t, "c.yaml", tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_LoadIRSLimits(t *testing.T) {
	parser := NewInputParser()
	limits, err := parser.LoadIRSLimits(filepath.Join(testdata, "irs_limits.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(170000), limits.Limit(2026, true))
	assert.Equal(t, int64(330000), limits.Limit(2025, false))

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty", "limits: []", "at least one plan year"},
		{"duplicate", "limits: [{year: 2025, individual: 1, family: 2}, {year: 2025, individual: 1, family: 2}]", "duplicate plan year"},
		{"family below individual", "limits: [{year: 2025, individual: 5, family: 2}]", "below individual"},
		{"zero", "limits: [{year: 2025, individual: 0, family: 2}]", "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadIRSLimits(writeFile(t, "l.yaml", tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
