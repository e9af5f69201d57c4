package ports

import (
	"github.com/Agrid-Dev/energydash/internal/dashboard"
	"github.com/Agrid-Dev/energydash/internal/heatpump"
)

// DashboardService is the control-plane port used by controllers (HTTP/MQTT/Modbus/WS).
type DashboardService interface {
	Get() heatpump.Parameters
	Report() heatpump.Report
	SetModel(heatpump.Model) error
	SetOperatingMode(heatpump.OperatingMode) error
	SetBuildingQuality(heatpump.BuildingQuality) error
	SetSeason(heatpump.Season) error
	SetPhotovoltaic(bool) error
	SetTimeOfUse(bool) error
	SetOccupants(int) error
	SetNumber(dashboard.Field, float64) error
}
