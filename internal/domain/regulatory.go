package domain

import "sort"

// IRSLimits holds the HDHP minimum out-of-pocket amounts (cents) the IRS
// publishes for one plan year
type IRSLimits struct {
	Year       int   `yaml:"year" json:"year"`
	Individual int64 `yaml:"individual" json:"individual"`
	Family     int64 `yaml:"family" json:"family"`
}

// IRSLimitSchedule is the yearly table of HDHP minimums
type IRSLimitSchedule []IRSLimits

// DefaultIRSLimitSchedule returns the published HDHP minimum deductibles
func DefaultIRSLimitSchedule() IRSLimitSchedule {
	return IRSLimitSchedule{
		{Year: 2024, Individual: 160000, Family: 320000},
		{Year: 2025, Individual: 165000, Family: 330000},
		{Year: 2026, Individual: 170000, Family: 340000},
	}
}

// Limit returns the threshold for the given plan year. Years past the end of
// the table use the latest earlier entry; years before it use the earliest.
func (s IRSLimitSchedule) Limit(year int, isIndividual bool) int64 {
	if len(s) == 0 {
		return 0
	}
	sorted := append(IRSLimitSchedule(nil), s...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	chosen := sorted[0]
	for _, l := range sorted {
		if l.Year > year {
			break
		}
		chosen = l
	}
	if isIndividual {
		return chosen.Individual
	}
	return chosen.Family
}
