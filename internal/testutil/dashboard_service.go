package testutil

import (
	"github.com/Agrid-Dev/energydash/internal/dashboard"
	"github.com/Agrid-Dev/energydash/internal/heatpump"
)

// FakeDashboardService is a reusable fake implementing ports.DashboardService.
// Put ONLY what multiple test packages need here.
type FakeDashboardService struct {
	P heatpump.Parameters

	SetModelCalled bool
	SetModelArg    heatpump.Model
	SetModelErr    error

	SetModeCalled bool
	SetModeArg    heatpump.OperatingMode
	SetModeErr    error

	SetQualityCalled bool
	SetQualityArg    heatpump.BuildingQuality
	SetQualityErr    error

	SetSeasonCalled bool
	SetSeasonArg    heatpump.Season
	SetSeasonErr    error

	SetPhotovoltaicCalled bool
	SetPhotovoltaicArg    bool
	SetPhotovoltaicErr    error

	SetTimeOfUseCalled bool
	SetTimeOfUseArg    bool
	SetTimeOfUseErr    error

	SetOccupantsCalled bool
	SetOccupantsArg    int
	SetOccupantsErr    error

	SetNumberCalled bool
	SetNumberField  dashboard.Field
	SetNumberArg    float64
	SetNumberErr    error
}

func NewFakeDashboardService() *FakeDashboardService {
	return &FakeDashboardService{P: heatpump.DefaultParameters()}
}

func (f *FakeDashboardService) Get() heatpump.Parameters { return f.P }

func (f *FakeDashboardService) Report() heatpump.Report { return heatpump.Evaluate(f.P) }

func (f *FakeDashboardService) SetModel(m heatpump.Model) error {
	f.SetModelCalled = true
	f.SetModelArg = m
	if f.SetModelErr != nil {
		return f.SetModelErr
	}
	f.P.Model = m
	return nil
}

func (f *FakeDashboardService) SetOperatingMode(m heatpump.OperatingMode) error {
	f.SetModeCalled = true
	f.SetModeArg = m
	if f.SetModeErr != nil {
		return f.SetModeErr
	}
	f.P.OperatingMode = m
	return nil
}

func (f *FakeDashboardService) SetBuildingQuality(q heatpump.BuildingQuality) error {
	f.SetQualityCalled = true
	f.SetQualityArg = q
	if f.SetQualityErr != nil {
		return f.SetQualityErr
	}
	f.P.BuildingQuality = q
	return nil
}

func (f *FakeDashboardService) SetSeason(s heatpump.Season) error {
	f.SetSeasonCalled = true
	f.SetSeasonArg = s
	if f.SetSeasonErr != nil {
		return f.SetSeasonErr
	}
	f.P.OutsideTemperatureC = s.OutsideTemperature()
	return nil
}

func (f *FakeDashboardService) SetPhotovoltaic(on bool) error {
	f.SetPhotovoltaicCalled = true
	f.SetPhotovoltaicArg = on
	if f.SetPhotovoltaicErr != nil {
		return f.SetPhotovoltaicErr
	}
	f.P.HasPhotovoltaic = on
	return nil
}

func (f *FakeDashboardService) SetTimeOfUse(on bool) error {
	f.SetTimeOfUseCalled = true
	f.SetTimeOfUseArg = on
	if f.SetTimeOfUseErr != nil {
		return f.SetTimeOfUseErr
	}
	f.P.Tariff.TimeOfUse = on
	return nil
}

func (f *FakeDashboardService) SetOccupants(n int) error {
	f.SetOccupantsCalled = true
	f.SetOccupantsArg = n
	if f.SetOccupantsErr != nil {
		return f.SetOccupantsErr
	}
	f.P.Occupants = n
	return nil
}

func (f *FakeDashboardService) SetNumber(field dashboard.Field, v float64) error {
	f.SetNumberCalled = true
	f.SetNumberField = field
	f.SetNumberArg = v
	if f.SetNumberErr != nil {
		return f.SetNumberErr
	}
	d, err := dashboard.New(f.P)
	if err != nil {
		return err
	}
	if err := d.SetNumber(field, v); err != nil {
		return err
	}
	f.P = d.Get()
	return nil
}
