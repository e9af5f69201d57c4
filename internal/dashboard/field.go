package dashboard

import (
	"fmt"

	"github.com/Agrid-Dev/energydash/internal/heatpump"
)

// Field names a numeric parameter that can be written on its own.
type Field int

const (
	FieldUnknown Field = iota
	FieldOutsideTemperature
	FieldInsideTemperature
	FieldFlowTemperature
	FieldDHWTemperature
	FieldHumidity
	FieldWindSpeed
	FieldHouseSize
	FieldElectricityPrice
	FieldTariffDayPrice
	FieldTariffNightPrice
)

var fieldNames = map[Field]string{
	FieldOutsideTemperature: "outside_temperature",
	FieldInsideTemperature:  "inside_temperature",
	FieldFlowTemperature:    "flow_temperature",
	FieldDHWTemperature:     "dhw_temperature",
	FieldHumidity:           "humidity",
	FieldWindSpeed:          "wind_speed",
	FieldHouseSize:          "house_size",
	FieldElectricityPrice:   "electricity_price",
	FieldTariffDayPrice:     "tariff_day_price",
	FieldTariffNightPrice:   "tariff_night_price",
}

// Fields lists every numeric field in declaration order.
func Fields() []Field {
	out := make([]Field, 0, len(fieldNames))
	for f := FieldOutsideTemperature; f <= FieldTariffNightPrice; f++ {
		out = append(out, f)
	}
	return out
}

func (f Field) Valid() bool {
	_, ok := fieldNames[f]
	return ok
}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "unknown"
}

func ParseField(s string) (Field, error) {
	for f, n := range fieldNames {
		if n == s {
			return f, nil
		}
	}
	return FieldUnknown, fmt.Errorf("%w: %q", ErrInvalidField, s)
}

// Value reads the field from p.
func (f Field) Value(p heatpump.Parameters) float64 {
	switch f {
	case FieldOutsideTemperature:
		return p.OutsideTemperatureC
	case FieldInsideTemperature:
		return p.InsideTemperatureC
	case FieldFlowTemperature:
		return p.FlowTemperatureC
	case FieldDHWTemperature:
		return p.DomesticHotWaterTemperatureC
	case FieldHumidity:
		return p.RelativeHumidityPct
	case FieldWindSpeed:
		return p.WindSpeedMs
	case FieldHouseSize:
		return p.HouseSizeM2
	case FieldElectricityPrice:
		return p.ElectricityPriceEurPerKWh
	case FieldTariffDayPrice:
		return p.Tariff.DayPriceEurPerKWh
	case FieldTariffNightPrice:
		return p.Tariff.NightPriceEurPerKWh
	default:
		return 0
	}
}

func (f Field) apply(p *heatpump.Parameters, v float64) {
	switch f {
	case FieldOutsideTemperature:
		p.OutsideTemperatureC = v
	case FieldInsideTemperature:
		p.InsideTemperatureC = v
	case FieldFlowTemperature:
		p.FlowTemperatureC = v
	case FieldDHWTemperature:
		p.DomesticHotWaterTemperatureC = v
	case FieldHumidity:
		p.RelativeHumidityPct = v
	case FieldWindSpeed:
		p.WindSpeedMs = v
	case FieldHouseSize:
		p.HouseSizeM2 = v
	case FieldElectricityPrice:
		p.ElectricityPriceEurPerKWh = v
	case FieldTariffDayPrice:
		p.Tariff.DayPriceEurPerKWh = v
	case FieldTariffNightPrice:
		p.Tariff.NightPriceEurPerKWh = v
	}
}
