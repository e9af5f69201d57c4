package heatpump

import (
	"fmt"
	"math"
)

// Tariff is an optional day/night split of the grid price: 16 day hours, 8 night hours.
type Tariff struct {
	TimeOfUse           bool    `json:"time_of_use"`
	DayPriceEurPerKWh   float64 `json:"day_price_eur_per_kwh"`
	NightPriceEurPerKWh float64 `json:"night_price_eur_per_kwh"`
}

// Parameters is a complete, self-contained input snapshot for the model.
type Parameters struct {
	Model         Model         `json:"model"`
	OperatingMode OperatingMode `json:"operating_mode"`

	OutsideTemperatureC          float64 `json:"outside_temperature_c"`
	InsideTemperatureC           float64 `json:"inside_temperature_c"`
	FlowTemperatureC             float64 `json:"flow_temperature_c"`
	DomesticHotWaterTemperatureC float64 `json:"dhw_temperature_c"`
	RelativeHumidityPct          float64 `json:"relative_humidity_pct"`
	WindSpeedMs                  float64 `json:"wind_speed_ms"`

	HouseSizeM2     float64         `json:"house_size_m2"`
	BuildingQuality BuildingQuality `json:"building_quality"`
	Occupants       int             `json:"occupants"`

	ElectricityPriceEurPerKWh float64 `json:"electricity_price_eur_per_kwh"`
	HasPhotovoltaic           bool    `json:"has_photovoltaic"`
	Tariff                    Tariff  `json:"tariff"`
}

// DefaultParameters mirrors the dashboard's initial slider positions.
func DefaultParameters() Parameters {
	return Parameters{
		Model:                        ModelAroTherm,
		OperatingMode:                ModeHeating,
		OutsideTemperatureC:          5,
		InsideTemperatureC:           21,
		FlowTemperatureC:             35,
		DomesticHotWaterTemperatureC: 55,
		RelativeHumidityPct:          50,
		WindSpeedMs:                  1,
		HouseSizeM2:                  150,
		BuildingQuality:              QualityStandard,
		Occupants:                    3,
		ElectricityPriceEurPerKWh:    0.35,
		HasPhotovoltaic:              true,
		Tariff: Tariff{
			DayPriceEurPerKWh:   0.35,
			NightPriceEurPerKWh: 0.25,
		},
	}
}

// GridPrice is the blended price drawn from the grid before any photovoltaic discount.
func (p Parameters) GridPrice() float64 {
	if !p.Tariff.TimeOfUse {
		return p.ElectricityPriceEurPerKWh
	}
	return round((p.Tariff.DayPriceEurPerKWh*16+p.Tariff.NightPriceEurPerKWh*8)/24, 3)
}

// EffectivePrice assumes photovoltaic self-consumption covers 70% of the draw for free.
func (p Parameters) EffectivePrice() float64 {
	if p.HasPhotovoltaic {
		return p.GridPrice() * pvPriceShare
	}
	return p.GridPrice()
}

// Validate checks the parameter domain. The model itself never calls it.
func (p Parameters) Validate() error {
	if !p.Model.Valid() {
		return ErrInvalidModel
	}
	if !p.OperatingMode.Valid() {
		return ErrInvalidMode
	}
	if !p.BuildingQuality.Valid() {
		return ErrInvalidBuildingQuality
	}

	finite := []struct {
		name string
		v    float64
	}{
		{"outside_temperature", p.OutsideTemperatureC},
		{"inside_temperature", p.InsideTemperatureC},
		{"flow_temperature", p.FlowTemperatureC},
		{"dhw_temperature", p.DomesticHotWaterTemperatureC},
		{"humidity", p.RelativeHumidityPct},
		{"wind_speed", p.WindSpeedMs},
		{"house_size", p.HouseSizeM2},
		{"electricity_price", p.ElectricityPriceEurPerKWh},
		{"tariff_day_price", p.Tariff.DayPriceEurPerKWh},
		{"tariff_night_price", p.Tariff.NightPriceEurPerKWh},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrOutOfDomain, f.name)
		}
	}

	switch {
	case p.RelativeHumidityPct < 0 || p.RelativeHumidityPct > 100:
		return fmt.Errorf("%w: humidity must be within [0, 100]", ErrOutOfDomain)
	case p.WindSpeedMs < 0:
		return fmt.Errorf("%w: wind speed must be >= 0", ErrOutOfDomain)
	case p.HouseSizeM2 <= 0:
		return fmt.Errorf("%w: house size must be > 0", ErrOutOfDomain)
	case p.Occupants < 0:
		return fmt.Errorf("%w: occupants must be >= 0", ErrOutOfDomain)
	case p.ElectricityPriceEurPerKWh <= 0:
		return fmt.Errorf("%w: electricity price must be > 0", ErrOutOfDomain)
	case p.Tariff.TimeOfUse && (p.Tariff.DayPriceEurPerKWh <= 0 || p.Tariff.NightPriceEurPerKWh <= 0):
		return fmt.Errorf("%w: tariff prices must be > 0", ErrOutOfDomain)
	}
	return nil
}
