// Package household summarizes the daily electricity use of a set of appliances.
package household

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultPriceEurPerKWh is the average household tariff used when none is given.
const DefaultPriceEurPerKWh = 0.30

var ErrInvalidDevice = errors.New("invalid device")

type Category string

const (
	CategoryKitchen       Category = "kitchen"
	CategoryEntertainment Category = "entertainment"
	CategoryHeating       Category = "heating"
	CategoryLighting      Category = "lighting"
	CategoryOther         Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryKitchen, CategoryEntertainment, CategoryHeating, CategoryLighting, CategoryOther:
		return true
	}
	return false
}

type Device struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	PowerW      float64  `json:"power_w"`
	HoursPerDay float64  `json:"hours_per_day"`
	Active      bool     `json:"active"`
}

// DailyKWh is the energy the device uses per day when active.
func (d Device) DailyKWh() float64 {
	return d.PowerW * d.HoursPerDay / 1000
}

func (d Device) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidDevice)
	case !d.Category.Valid():
		return fmt.Errorf("%w: %s: unknown category %q", ErrInvalidDevice, d.Name, d.Category)
	case d.PowerW < 0 || math.IsNaN(d.PowerW) || math.IsInf(d.PowerW, 0):
		return fmt.Errorf("%w: %s: power must be a non-negative number", ErrInvalidDevice, d.Name)
	case d.HoursPerDay < 0 || d.HoursPerDay > 24 || math.IsNaN(d.HoursPerDay):
		return fmt.Errorf("%w: %s: hours per day must be within [0, 24]", ErrInvalidDevice, d.Name)
	}
	return nil
}

type DeviceUsage struct {
	Name       string  `json:"name"`
	KWh        float64 `json:"kwh"`
	Percentage float64 `json:"percentage"`
}

type Summary struct {
	DailyKWh       float64       `json:"daily_kwh"`
	WeeklyKWh      float64       `json:"weekly_kwh"`
	MonthlyCostEur float64       `json:"monthly_cost_eur"`
	Breakdown      []DeviceUsage `json:"breakdown"`
}

// Summarize aggregates the active devices. Inactive devices are left out of the
// breakdown entirely.
func Summarize(devices []Device, priceEurPerKWh float64) Summary {
	usage := make([]float64, 0, len(devices))
	active := make([]Device, 0, len(devices))
	for _, d := range devices {
		if !d.Active {
			continue
		}
		active = append(active, d)
		usage = append(usage, d.DailyKWh())
	}

	daily := 0.0
	if len(usage) > 0 {
		daily = floats.Sum(usage)
	}

	breakdown := make([]DeviceUsage, len(active))
	for i, d := range active {
		pct := 0.0
		if daily > 0 {
			pct = usage[i] / daily * 100
		}
		breakdown[i] = DeviceUsage{Name: d.Name, KWh: usage[i], Percentage: pct}
	}

	return Summary{
		DailyKWh:       daily,
		WeeklyKWh:      daily * 7,
		MonthlyCostEur: daily * 30 * priceEurPerKWh,
		Breakdown:      breakdown,
	}
}

// DefaultDevices is the appliance catalog shown on first load.
func DefaultDevices() []Device {
	return []Device{
		{ID: "device-1", Name: "Fridge", Category: CategoryKitchen, PowerW: 100, HoursPerDay: 24, Active: true},
		{ID: "device-2", Name: "Washing machine", Category: CategoryKitchen, PowerW: 500, HoursPerDay: 1, Active: true},
		{ID: "device-3", Name: "Television", Category: CategoryEntertainment, PowerW: 150, HoursPerDay: 4, Active: true},
		{ID: "device-4", Name: "Heater", Category: CategoryHeating, PowerW: 1500, HoursPerDay: 6, Active: true},
		{ID: "device-5", Name: "LED lighting", Category: CategoryLighting, PowerW: 50, HoursPerDay: 5, Active: true},
		{ID: "device-6", Name: "Electric stove", Category: CategoryKitchen, PowerW: 2000, HoursPerDay: 1, Active: true},
		{ID: "device-7", Name: "Computer", Category: CategoryEntertainment, PowerW: 200, HoursPerDay: 8, Active: true},
		{ID: "device-8", Name: "Dryer", Category: CategoryKitchen, PowerW: 2500, HoursPerDay: 0.5, Active: false},
	}
}
