package domain

import (
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Amount is an optional amount in minor currency units (cents).
// The zero value means "not applicable" and is distinct from Some(0).
type Amount struct {
	value int64
	valid bool
}

// Some returns a present amount
func Some(v int64) Amount {
	return Amount{value: v, valid: true}
}

// None returns an amount that is not applicable
func None() Amount {
	return Amount{}
}

// AmountFromPtr converts a nullable column value
func AmountFromPtr(p *int64) Amount {
	if p == nil {
		return None()
	}
	return Some(*p)
}

// Get returns the value and whether it is present
func (a Amount) Get() (int64, bool) {
	return a.value, a.valid
}

// Valid reports whether the amount is present
func (a Amount) Valid() bool {
	return a.valid
}

// Or returns the amount, or fallback when it is not applicable
func (a Amount) Or(fallback int64) int64 {
	if !a.valid {
		return fallback
	}
	return a.value
}

// SubFloor subtracts v, flooring at zero. Absent amounts stay absent.
func (a Amount) SubFloor(v int64) Amount {
	if !a.valid {
		return a
	}
	return Some(max(a.value-v, 0))
}

// Add adds v. Absent amounts stay absent.
func (a Amount) Add(v int64) Amount {
	if !a.valid {
		return a
	}
	return Some(a.value + v)
}

// Ptr returns a pointer copy of the value, or nil
func (a Amount) Ptr() *int64 {
	if !a.valid {
		return nil
	}
	v := a.value
	return &v
}

// IsZero lets yaml/json omitzero treat absent amounts as empty
func (a Amount) IsZero() bool {
	return !a.valid
}

func (a Amount) String() string {
	if !a.valid {
		return "n/a"
	}
	return strconv.FormatInt(a.value, 10)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, a.value, 10), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = None()
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Some(v)
	return nil
}

func (a Amount) MarshalYAML() (interface{}, error) {
	if !a.valid {
		return nil, nil
	}
	return a.value, nil
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*a = None()
		return nil
	}
	var v int64
	if err := node.Decode(&v); err != nil {
		return err
	}
	*a = Some(v)
	return nil
}
