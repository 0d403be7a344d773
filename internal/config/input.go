package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// InputParser handles parsing of scenario, coverage and IRS limit documents
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

func readYAML(filename string, out interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// LoadScenarios loads and validates a scenario file
func (ip *InputParser) LoadScenarios(filename string) (*domain.ScenarioFile, error) {
	var file domain.ScenarioFile
	if err := readYAML(filename, &file); err != nil {
		return nil, err
	}
	if err := ip.ValidateScenarioFile(&file); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return &file, nil
}

// LoadCoverageSeed loads and validates a coverage seed file
func (ip *InputParser) LoadCoverageSeed(filename string) (*domain.CoverageSeed, error) {
	var seed domain.CoverageSeed
	if err := readYAML(filename, &seed); err != nil {
		return nil, err
	}
	if err := ip.ValidateCoverageSeed(&seed); err != nil {
		return nil, fmt.Errorf("coverage validation failed: %w", err)
	}
	return &seed, nil
}

// LoadIRSLimits loads and validates an IRS limit table
func (ip *InputParser) LoadIRSLimits(filename string) (domain.IRSLimitSchedule, error) {
	var doc struct {
		Limits domain.IRSLimitSchedule `yaml:"limits"`
	}
	if err := readYAML(filename, &doc); err != nil {
		return nil, err
	}
	if err := ip.ValidateIRSLimits(doc.Limits); err != nil {
		return nil, fmt.Errorf("irs limit validation failed: %w", err)
	}
	return doc.Limits, nil
}

// ValidateScenarioFile validates every scenario in a file
func (ip *InputParser) ValidateScenarioFile(file *domain.ScenarioFile) error {
	if len(file.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario is required")
	}
	seen := make(map[string]bool, len(file.Scenarios))
	for i := range file.Scenarios {
		s := &file.Scenarios[i]
		if s.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
		if err := ip.validateScenario(s); err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateScenario(s *domain.Scenario) error {
	if err := s.Request.Validate(); err != nil {
		return err
	}
	if s.Request.EligibilityOverride != nil {
		if err := ip.validateEligibility(s.Request.EligibilityOverride); err != nil {
			return fmt.Errorf("eligibility override: %w", err)
		}
	}
	if s.Request.MemberHealthPlan != nil {
		for i := range s.Request.MemberHealthPlan.EmployerHealthPlan.Coverages {
			if err := ip.validateCoverage(&s.Request.MemberHealthPlan.EmployerHealthPlan.Coverages[i]); err != nil {
				return fmt.Errorf("employer plan coverage %d: %w", i, err)
			}
		}
	}
	for planID, raw := range s.RTEResponses {
		if planID <= 0 {
			return fmt.Errorf("rte response keyed by invalid member health plan id %d", planID)
		}
		if err := validateRate(raw.Coinsurance); err != nil {
			return fmt.Errorf("rte response for plan %d: %w", planID, err)
		}
	}
	return nil
}

func (ip *InputParser) validateEligibility(e *domain.EligibilityInfo) error {
	if err := validateRate(e.Coinsurance); err != nil {
		return err
	}
	lo, okLo := e.CoinsuranceMin.Get()
	hi, okHi := e.CoinsuranceMax.Get()
	if okLo && okHi && lo > hi {
		return fmt.Errorf("coinsurance_min %d exceeds coinsurance_max %d", lo, hi)
	}
	return nil
}

// ValidateCoverageSeed validates coverage rows and cost sharing terms
func (ip *InputParser) ValidateCoverageSeed(seed *domain.CoverageSeed) error {
	if len(seed.Coverages) == 0 && len(seed.CostSharing) == 0 {
		return fmt.Errorf("coverage seed is empty")
	}
	for i := range seed.Coverages {
		if err := ip.validateCoverage(&seed.Coverages[i]); err != nil {
			return fmt.Errorf("coverage %d: %w", i, err)
		}
	}
	for i := range seed.CostSharing {
		if err := ip.validateCostSharing(&seed.CostSharing[i]); err != nil {
			return fmt.Errorf("cost sharing %d: %w", i, err)
		}
	}
	return nil
}

func (ip *InputParser) validateCoverage(c *domain.Coverage) error {
	if c.Kind != domain.CoverageMedical && c.Kind != domain.CoverageRx {
		return fmt.Errorf("unknown coverage kind %q", c.Kind)
	}
	if !c.PlanSize.Valid() {
		return fmt.Errorf("unknown plan size %q", c.PlanSize)
	}
	if !c.Tier.Valid() {
		return fmt.Errorf("unknown tier %q", c.Tier)
	}
	amounts := map[string]int64{
		"individual_deductible": c.IndividualDeductible,
		"individual_oop":        c.IndividualOOP,
		"family_deductible":     c.FamilyDeductible,
		"family_oop":            c.FamilyOOP,
	}
	for name, v := range amounts {
		if v < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	if v, ok := c.MaxOOPPerCoveredIndividual.Get(); ok && v < 0 {
		return fmt.Errorf("max_oop_per_covered_individual cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateCostSharing(c *domain.CostSharing) error {
	if c.Category == "" {
		return fmt.Errorf("category is required")
	}
	if !c.Tier.Valid() {
		return fmt.Errorf("unknown tier %q", c.Tier)
	}
	if v, ok := c.Copay.Get(); ok && v < 0 {
		return fmt.Errorf("copay cannot be negative")
	}
	if err := validateRate(c.Coinsurance); err != nil {
		return err
	}
	lo, okLo := c.CoinsuranceMin.Get()
	hi, okHi := c.CoinsuranceMax.Get()
	if okLo && okHi && lo > hi {
		return fmt.Errorf("coinsurance_min %d exceeds coinsurance_max %d", lo, hi)
	}
	return nil
}

// ValidateIRSLimits checks each plan year appears once with sane thresholds
func (ip *InputParser) ValidateIRSLimits(limits domain.IRSLimitSchedule) error {
	if len(limits) == 0 {
		return fmt.Errorf("at least one plan year is required")
	}
	seen := make(map[int]bool, len(limits))
	for _, l := range limits {
		if l.Year < 2000 {
			return fmt.Errorf("invalid plan year %d", l.Year)
		}
		if seen[l.Year] {
			return fmt.Errorf("duplicate plan year %d", l.Year)
		}
		seen[l.Year] = true
		if l.Individual <= 0 || l.Family <= 0 {
			return fmt.Errorf("plan year %d: thresholds must be positive", l.Year)
		}
		if l.Family < l.Individual {
			return fmt.Errorf("plan year %d: family threshold %d is below individual %d", l.Year, l.Family, l.Individual)
		}
	}
	return nil
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("coinsurance must be between 0 and 1, got %s", rate.String())
	}
	return nil
}
