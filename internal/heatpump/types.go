package heatpump

import (
	"fmt"
	"strings"
)

// Model is an integer enum of the supported heat-pump product lines.
type Model int

const (
	ModelUnknown Model = iota
	ModelAroTherm
	ModelGeoTherm
	ModelFlexoTherm
)

func (m Model) Valid() bool {
	return m == ModelAroTherm || m == ModelGeoTherm || m == ModelFlexoTherm
}

func (m Model) String() string {
	switch m {
	case ModelAroTherm:
		return "aroTHERM"
	case ModelGeoTherm:
		return "geoTHERM"
	case ModelFlexoTherm:
		return "flexoTHERM"
	default:
		return "unknown"
	}
}

// ProductEfficiency is the fraction of the Carnot limit the product line reaches.
func (m Model) ProductEfficiency() float64 {
	switch m {
	case ModelGeoTherm:
		return 0.55
	case ModelFlexoTherm:
		return 0.50
	default:
		return 0.45
	}
}

// AirSource reports whether the outdoor coil is exposed to wind.
func (m Model) AirSource() bool {
	return m == ModelAroTherm
}

// ParseModel is case-insensitive: "arotherm" and "aroTHERM" are the same model.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arotherm":
		return ModelAroTherm, nil
	case "geotherm":
		return ModelGeoTherm, nil
	case "flexotherm":
		return ModelFlexoTherm, nil
	default:
		return ModelUnknown, fmt.Errorf("%w: %q", ErrInvalidModel, s)
	}
}

// MarshalText encodes invalid values as "unknown" so any report can be serialised;
// UnmarshalText still rejects them.
func (m Model) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Model) UnmarshalText(b []byte) error {
	v, err := ParseModel(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// OperatingMode is an integer enum.
type OperatingMode int

const (
	ModeUnknown OperatingMode = iota
	ModeHeating
	ModeCooling
	ModeDomesticHotWater
)

func (m OperatingMode) Valid() bool {
	return m == ModeHeating || m == ModeCooling || m == ModeDomesticHotWater
}

func (m OperatingMode) String() string {
	switch m {
	case ModeHeating:
		return "heating"
	case ModeCooling:
		return "cooling"
	case ModeDomesticHotWater:
		return "domestic_hot_water"
	default:
		return "unknown"
	}
}

func ParseOperatingMode(s string) (OperatingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heating":
		return ModeHeating, nil
	case "cooling":
		return ModeCooling, nil
	case "domestic_hot_water", "dhw":
		return ModeDomesticHotWater, nil
	default:
		return ModeUnknown, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m OperatingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *OperatingMode) UnmarshalText(b []byte) error {
	v, err := ParseOperatingMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// BuildingQuality selects the envelope heat-loss coefficient and infiltration factor.
type BuildingQuality int

const (
	QualityUnknown BuildingQuality = iota
	QualityOld
	QualityStandard
	QualityEfficient
)

func (q BuildingQuality) Valid() bool {
	return q == QualityOld || q == QualityStandard || q == QualityEfficient
}

func (q BuildingQuality) String() string {
	switch q {
	case QualityOld:
		return "old"
	case QualityStandard:
		return "standard"
	case QualityEfficient:
		return "efficient"
	default:
		return "unknown"
	}
}

// HeatLossCoefficient in W/m²K.
func (q BuildingQuality) HeatLossCoefficient() float64 {
	switch q {
	case QualityOld:
		return 1.2
	case QualityStandard:
		return 0.8
	default:
		return 0.5
	}
}

// Infiltration is the extra loss multiplier from uncontrolled air exchange.
func (q BuildingQuality) Infiltration() float64 {
	switch q {
	case QualityOld:
		return 1.10
	case QualityStandard:
		return 1.05
	default:
		return 1.00
	}
}

func ParseBuildingQuality(s string) (BuildingQuality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "old":
		return QualityOld, nil
	case "standard":
		return QualityStandard, nil
	case "efficient":
		return QualityEfficient, nil
	default:
		return QualityUnknown, fmt.Errorf("%w: %q", ErrInvalidBuildingQuality, s)
	}
}

func (q BuildingQuality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *BuildingQuality) UnmarshalText(b []byte) error {
	v, err := ParseBuildingQuality(string(b))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// Season is a shortcut for a typical outdoor temperature.
type Season int

const (
	SeasonUnknown Season = iota
	SeasonWinter
	SeasonSpring
	SeasonSummer
	SeasonAutumn
)

func (s Season) Valid() bool {
	return s >= SeasonWinter && s <= SeasonAutumn
}

func (s Season) String() string {
	switch s {
	case SeasonWinter:
		return "winter"
	case SeasonSpring:
		return "spring"
	case SeasonSummer:
		return "summer"
	case SeasonAutumn:
		return "autumn"
	default:
		return "unknown"
	}
}

// OutsideTemperature is the seasonal mean outdoor temperature in °C.
func (s Season) OutsideTemperature() float64 {
	switch s {
	case SeasonWinter:
		return -2
	case SeasonSummer:
		return 24
	default:
		return 10
	}
}

func ParseSeason(s string) (Season, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "winter":
		return SeasonWinter, nil
	case "spring":
		return SeasonSpring, nil
	case "summer":
		return SeasonSummer, nil
	case "autumn", "fall":
		return SeasonAutumn, nil
	default:
		return SeasonUnknown, fmt.Errorf("%w: %q", ErrInvalidSeason, s)
	}
}

func (s Season) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Season) UnmarshalText(b []byte) error {
	v, err := ParseSeason(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
