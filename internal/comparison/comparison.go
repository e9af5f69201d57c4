// Package comparison puts household, city, industry and national consumption on one
// scale and describes the German generation mix.
package comparison

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var ErrInvalidUnit = errors.New("invalid energy unit")

// Unit is an integer enum of energy units.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitKWh
	UnitMWh
	UnitGWh
)

func (u Unit) Valid() bool {
	return u >= UnitKWh && u <= UnitGWh
}

func (u Unit) String() string {
	switch u {
	case UnitKWh:
		return "kWh"
	case UnitMWh:
		return "MWh"
	case UnitGWh:
		return "GWh"
	default:
		return "unknown"
	}
}

// ParseUnit is case-insensitive.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kwh":
		return UnitKWh, nil
	case "mwh":
		return UnitMWh, nil
	case "gwh":
		return UnitGWh, nil
	default:
		return UnitUnknown, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(b []byte) error {
	v, err := ParseUnit(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// kWh is the size of one u in kWh.
func (u Unit) kWh() float64 {
	switch u {
	case UnitMWh:
		return 1e3
	case UnitGWh:
		return 1e6
	default:
		return 1
	}
}

// Convert expresses value, given in from, in to. Scaling down divides by an exact
// power of ten so 3500 kWh is exactly 3.5 MWh.
func Convert(value float64, from, to Unit) (float64, error) {
	if !from.Valid() {
		return 0, fmt.Errorf("%w: from %v", ErrInvalidUnit, from)
	}
	if !to.Valid() {
		return 0, fmt.Errorf("%w: to %v", ErrInvalidUnit, to)
	}
	f, t := from.kWh(), to.kWh()
	if f >= t {
		return value * (f / t), nil
	}
	return value / (t / f), nil
}

type EntityType string

const (
	EntityHousehold EntityType = "household"
	EntityCity      EntityType = "city"
	EntityIndustry  EntityType = "industry"
	EntityCountry   EntityType = "country"
)

type Entity struct {
	Name        string     `json:"name"`
	Type        EntityType `json:"type"`
	Consumption float64    `json:"consumption"`
	Unit        Unit       `json:"unit"`
}

// Entities is the comparison catalog.
func Entities() []Entity {
	return []Entity{
		{Name: "Average German household", Type: EntityHousehold, Consumption: 3500, Unit: UnitKWh},
		{Name: "Berlin", Type: EntityCity, Consumption: 13.4, Unit: UnitGWh},
		{Name: "Automotive industry", Type: EntityIndustry, Consumption: 42, Unit: UnitGWh},
		{Name: "Germany", Type: EntityCountry, Consumption: 500, Unit: UnitGWh},
	}
}

type Converted struct {
	Entity
	Value       float64 `json:"value"`
	DisplayUnit Unit    `json:"display_unit"`
}

// InUnit converts every entity's consumption to u.
func InUnit(entities []Entity, u Unit) ([]Converted, error) {
	out := make([]Converted, len(entities))
	for i, e := range entities {
		v, err := Convert(e.Consumption, e.Unit, u)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		out[i] = Converted{Entity: e, Value: v, DisplayUnit: u}
	}
	return out, nil
}

type SourceShare struct {
	Source     string  `json:"source"`
	Percentage float64 `json:"percentage"`
	Renewable  bool    `json:"renewable"`
}

// GermanMix is the 2022 German electricity generation mix in percent.
func GermanMix() []SourceShare {
	return []SourceShare{
		{Source: "Wind", Percentage: 23.5, Renewable: true},
		{Source: "Solar", Percentage: 10.6, Renewable: true},
		{Source: "Biomass", Percentage: 8.7, Renewable: true},
		{Source: "Hydro", Percentage: 3.8, Renewable: true},
		{Source: "Nuclear", Percentage: 11.3},
		{Source: "Lignite", Percentage: 17.4},
		{Source: "Hard coal", Percentage: 9.4},
		{Source: "Natural gas", Percentage: 15.3},
	}
}

// RenewableShare sums the renewable percentages of mix.
func RenewableShare(mix []SourceShare) float64 {
	shares := make([]float64, 0, len(mix))
	for _, s := range mix {
		if s.Renewable {
			shares = append(shares, s.Percentage)
		}
	}
	if len(shares) == 0 {
		return 0
	}
	return floats.Sum(shares)
}
