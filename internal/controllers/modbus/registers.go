package modbusctrl

import (
	"github.com/Agrid-Dev/energydash/internal/dashboard"
	"github.com/Agrid-Dev/energydash/internal/heatpump"
	"github.com/Agrid-Dev/energydash/internal/ports"
)

const (
	TemperatureScale = 100.0
	PriceScale       = 1000.0
)

const (
	CoilPhotovoltaic = iota
	CoilTimeOfUse
	coilCount
)

func readCoilValues(p heatpump.Parameters) [coilCount]bool {
	return [coilCount]bool{
		CoilPhotovoltaic: p.HasPhotovoltaic,
		CoilTimeOfUse:    p.Tariff.TimeOfUse,
	}
}

func writeCoil(svc ports.DashboardService, addr int, on bool) error {
	switch addr {
	case CoilPhotovoltaic:
		return svc.SetPhotovoltaic(on)
	default:
		return svc.SetTimeOfUse(on)
	}
}

type holdingRegister struct {
	read  func(heatpump.Parameters) uint16
	write func(ports.DashboardService, uint16) error
}

func numberRegister(f dashboard.Field, scale float64) holdingRegister {
	return holdingRegister{
		read: func(p heatpump.Parameters) uint16 { return encodeScaled(f.Value(p), scale) },
		write: func(svc ports.DashboardService, v uint16) error {
			return svc.SetNumber(f, decodeScaled(v, scale))
		},
	}
}

// Holding registers, by address.
var holdingRegisters = [...]holdingRegister{
	0: {
		read:  func(p heatpump.Parameters) uint16 { return uint16(p.Model) },
		write: func(svc ports.DashboardService, v uint16) error { return svc.SetModel(heatpump.Model(v)) },
	},
	1: {
		read:  func(p heatpump.Parameters) uint16 { return uint16(p.OperatingMode) },
		write: func(svc ports.DashboardService, v uint16) error { return svc.SetOperatingMode(heatpump.OperatingMode(v)) },
	},
	2: {
		read:  func(p heatpump.Parameters) uint16 { return uint16(p.BuildingQuality) },
		write: func(svc ports.DashboardService, v uint16) error { return svc.SetBuildingQuality(heatpump.BuildingQuality(v)) },
	},
	3: numberRegister(dashboard.FieldOutsideTemperature, TemperatureScale),
	4: numberRegister(dashboard.FieldInsideTemperature, TemperatureScale),
	5: numberRegister(dashboard.FieldFlowTemperature, TemperatureScale),
	6: numberRegister(dashboard.FieldDHWTemperature, TemperatureScale),
	7: numberRegister(dashboard.FieldHumidity, TemperatureScale),
	8: numberRegister(dashboard.FieldWindSpeed, TemperatureScale),
	9: numberRegister(dashboard.FieldHouseSize, 1),
	10: {
		read:  func(p heatpump.Parameters) uint16 { return encodeScaled(float64(p.Occupants), 1) },
		write: func(svc ports.DashboardService, v uint16) error { return svc.SetOccupants(int(int16(v))) },
	},
	11: numberRegister(dashboard.FieldElectricityPrice, PriceScale),
}

// Input registers, by address.
var inputRegisters = [...]func(heatpump.PerformanceResult) uint16{
	0: func(r heatpump.PerformanceResult) uint16 { return encodeScaled(r.COP, 100) },
	1: func(r heatpump.PerformanceResult) uint16 { return encodeScaled(r.ThermalPowerKw, 100) },
	2: func(r heatpump.PerformanceResult) uint16 { return encodeScaled(r.ElectricalPowerKw, 100) },
	3: func(r heatpump.PerformanceResult) uint16 { return encodeScaled(r.DailyCostEur, 100) },
	4: func(r heatpump.PerformanceResult) uint16 { return encodeScaled(r.MonthlyCostEur, 10) },
	5: func(r heatpump.PerformanceResult) uint16 { return encodeScaled(r.YearlyCostEur, 1) },
	6: func(r heatpump.PerformanceResult) uint16 { return encodeScaled(r.DailyCo2Kg, 100) },
}
