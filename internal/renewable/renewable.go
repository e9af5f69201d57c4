// Package renewable estimates a day of rooftop solar and small wind production
// under a chosen weather condition.
package renewable

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var ErrInvalidWeather = errors.New("invalid weather")

const (
	solarPeakKWh  = 5.0
	solarNoonHour = 13.0
	solarHalfSpan = 7.0 // daylight from 6 to 20 h

	windBaseKWh        = 1.5
	windReferenceSpeed = 20.0 // km/h
)

// Weather is an integer enum of the selectable conditions.
type Weather int

const (
	WeatherUnknown Weather = iota
	WeatherSunny
	WeatherPartiallyCloudy
	WeatherCloudy
	WeatherRainy
	WeatherStormy
)

func (w Weather) Valid() bool {
	return w >= WeatherSunny && w <= WeatherStormy
}

func (w Weather) String() string {
	switch w {
	case WeatherSunny:
		return "sunny"
	case WeatherPartiallyCloudy:
		return "partially_cloudy"
	case WeatherCloudy:
		return "cloudy"
	case WeatherRainy:
		return "rainy"
	case WeatherStormy:
		return "stormy"
	default:
		return "unknown"
	}
}

func ParseWeather(s string) (Weather, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunny":
		return WeatherSunny, nil
	case "partially_cloudy":
		return WeatherPartiallyCloudy, nil
	case "cloudy":
		return WeatherCloudy, nil
	case "rainy":
		return WeatherRainy, nil
	case "stormy":
		return WeatherStormy, nil
	default:
		return WeatherUnknown, fmt.Errorf("%w: %q", ErrInvalidWeather, s)
	}
}

func (w Weather) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// factors returns the solar and wind multipliers. Unknown weather produces nothing.
func (w Weather) factors() (solar, wind float64) {
	switch w {
	case WeatherSunny:
		return 1, 0.7
	case WeatherPartiallyCloudy:
		return 0.7, 0.8
	case WeatherCloudy:
		return 0.3, 0.9
	case WeatherRainy:
		return 0.1, 1.1
	case WeatherStormy:
		return 0.05, 1.7
	default:
		return 0, 0
	}
}

// WindSpeedKmh is the typical wind speed for the condition.
func (w Weather) WindSpeedKmh() float64 {
	switch w {
	case WeatherSunny:
		return 10
	case WeatherPartiallyCloudy:
		return 15
	case WeatherCloudy:
		return 20
	case WeatherRainy:
		return 25
	case WeatherStormy:
		return 40
	default:
		return 0
	}
}

type Production struct {
	Hour     int     `json:"hour"`
	SolarKWh float64 `json:"solar_kwh"`
	WindKWh  float64 `json:"wind_kwh"`
}

func (p Production) TotalKWh() float64 { return p.SolarKWh + p.WindKWh }

type Summary struct {
	Weather     Weather      `json:"weather"`
	SolarKWh    float64      `json:"solar_kwh"`
	WindKWh     float64      `json:"wind_kwh"`
	CombinedKWh float64      `json:"combined_kwh"`
	Hours       []Production `json:"hours"`
}

// solarBaseline is a parabola over daylight hours peaking at 13 h.
func solarBaseline(h int) float64 {
	if h < 6 || h > 20 {
		return 0
	}
	x := (float64(h) - solarNoonHour) / solarHalfSpan
	return math.Max(0, 1-x*x) * solarPeakKWh
}

// windBaseline is the deterministic part of the wind curve; gusts are not modelled.
func windBaseline(h int) float64 {
	return math.Max(0, windBaseKWh+math.Sin(float64(h)/12*math.Pi))
}

// HourlyProduction returns 24 hourly solar and wind yields, rounded to two decimals.
// Wind additionally scales with the condition's wind speed against a 20 km/h reference.
func HourlyProduction(w Weather) []Production {
	solarFactor, windFactor := w.factors()
	speed := w.WindSpeedKmh() / windReferenceSpeed

	out := make([]Production, 24)
	for h := range out {
		out[h] = Production{
			Hour:     h,
			SolarKWh: round2(solarBaseline(h) * solarFactor),
			WindKWh:  round2(windBaseline(h) * windFactor * speed),
		}
	}
	return out
}

// Summarize totals a day of production for w.
func Summarize(w Weather) Summary {
	hours := HourlyProduction(w)
	solar := make([]float64, len(hours))
	wind := make([]float64, len(hours))
	for i, p := range hours {
		solar[i] = p.SolarKWh
		wind[i] = p.WindKWh
	}

	s := Summary{
		Weather:  w,
		SolarKWh: floats.Sum(solar),
		WindKWh:  floats.Sum(wind),
		Hours:    hours,
	}
	s.CombinedKWh = s.SolarKWh + s.WindKWh
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
