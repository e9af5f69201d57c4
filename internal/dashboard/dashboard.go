package dashboard

import (
	"sync"

	"github.com/Agrid-Dev/energydash/internal/heatpump"
)

// Dashboard holds the current parameter snapshot. Every write replaces the whole
// snapshot; the last write wins.
type Dashboard struct {
	mu sync.RWMutex
	p  heatpump.Parameters
}

func New(initial heatpump.Parameters) (*Dashboard, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return &Dashboard{p: initial}, nil
}

func (d *Dashboard) Get() heatpump.Parameters {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.p
}

// Report evaluates the model on the current snapshot.
func (d *Dashboard) Report() heatpump.Report {
	return heatpump.Evaluate(d.Get())
}

// update applies mut to a copy and commits it only if the result validates.
func (d *Dashboard) update(mut func(*heatpump.Parameters)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.p
	mut(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	d.p = next
	return nil
}

func (d *Dashboard) SetModel(m heatpump.Model) error {
	if !m.Valid() {
		return heatpump.ErrInvalidModel
	}
	return d.update(func(p *heatpump.Parameters) { p.Model = m })
}

func (d *Dashboard) SetOperatingMode(m heatpump.OperatingMode) error {
	if !m.Valid() {
		return heatpump.ErrInvalidMode
	}
	return d.update(func(p *heatpump.Parameters) { p.OperatingMode = m })
}

func (d *Dashboard) SetBuildingQuality(q heatpump.BuildingQuality) error {
	if !q.Valid() {
		return heatpump.ErrInvalidBuildingQuality
	}
	return d.update(func(p *heatpump.Parameters) { p.BuildingQuality = q })
}

// SetSeason moves the outdoor temperature to the season's typical value.
func (d *Dashboard) SetSeason(s heatpump.Season) error {
	if !s.Valid() {
		return heatpump.ErrInvalidSeason
	}
	return d.update(func(p *heatpump.Parameters) { p.OutsideTemperatureC = s.OutsideTemperature() })
}

func (d *Dashboard) SetPhotovoltaic(on bool) error {
	return d.update(func(p *heatpump.Parameters) { p.HasPhotovoltaic = on })
}

func (d *Dashboard) SetTimeOfUse(on bool) error {
	return d.update(func(p *heatpump.Parameters) { p.Tariff.TimeOfUse = on })
}

func (d *Dashboard) SetOccupants(n int) error {
	return d.update(func(p *heatpump.Parameters) { p.Occupants = n })
}

func (d *Dashboard) SetNumber(f Field, v float64) error {
	if !f.Valid() {
		return ErrInvalidField
	}
	return d.update(func(p *heatpump.Parameters) { f.apply(p, v) })
}
