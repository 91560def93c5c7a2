// Package dashboard keeps the current selections and chart slots and
// recomputes only the charts bound to a changed selection.
package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"cropsync/internal/charts"
	"cropsync/internal/engine"
	"cropsync/internal/models"

	"github.com/labstack/gommon/log"
)

const Title = "CropSync Dashboard"

var (
	ErrUnknownInput  = errors.New("unknown input")
	ErrUnknownOutput = errors.New("unknown output")
	ErrInvalidValue  = errors.New("invalid input value")
)

// Dashboard serializes change events: each one runs to completion, under mu,
// before the next starts.
type Dashboard struct {
	mu       sync.Mutex
	store    *engine.Store
	palette  charts.Palette
	bindings []Binding
	state    InputState
	outputs  map[OutputID]*models.ChartDefinition
}

// DefaultState selects the overall farmland, the earliest crop year and
// annual rainfall.
func DefaultState(store *engine.Store) InputState {
	state := InputState{Farmland: engine.ScopeOverall, Period: engine.PeriodAnnual}
	if years := store.Crops.DistinctYears(); len(years) > 0 {
		state.Year = years[0]
	}
	return state
}

// New builds a dashboard over store and computes every output once with the
// default selections.
func New(store *engine.Store, palette charts.Palette) *Dashboard {
	d := &Dashboard{
		store:    store,
		palette:  palette,
		bindings: Bindings(),
		state:    DefaultState(store),
		outputs:  make(map[OutputID]*models.ChartDefinition, len(Outputs)),
	}
	for _, b := range d.bindings {
		d.outputs[b.Output] = b.Compute(d.store, d.palette, d.state)
	}
	return d
}

// Change is the result of one event: the state after it and the outputs it
// recomputed, in binding order.
type Change struct {
	Input   InputID
	State   InputState
	Outputs []OutputID
	Charts  map[OutputID]*models.ChartDefinition
}

// Set applies one change event. It replaces a single field of the input
// state and recomputes, from scratch, the outputs bound to that input. The
// returned Change is taken under the same lock as the event, so concurrent
// events never mix into it.
//
// A year or period absent from the data is accepted and yields zero-valued
// charts.
func (d *Dashboard) Set(id InputID, raw string) (*Change, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.state
	raw = strings.TrimSpace(raw)
	switch id {
	case InputFarmland:
		next.Farmland = raw
	case InputYear:
		y, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: year %q", ErrInvalidValue, raw)
		}
		next.Year = y
	case InputRainfall:
		next.Period = engine.Period(raw)
		if !next.Period.Valid() {
			log.Warnf("dashboard: unknown rainfall period %q, series will be empty", raw)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInput, id)
	}
	d.state = next

	change := &Change{
		Input:   id,
		State:   next,
		Outputs: make([]OutputID, 0, len(d.bindings)),
		Charts:  make(map[OutputID]*models.ChartDefinition),
	}
	for _, b := range d.bindings {
		if !b.DependsOn(id) {
			continue
		}
		def := b.Compute(d.store, d.palette, d.state)
		d.outputs[b.Output] = def
		change.Outputs = append(change.Outputs, b.Output)
		change.Charts[b.Output] = def
	}
	log.Debugf("dashboard: %s=%q recomputed %v", id, raw, change.Outputs)
	return change, nil
}

// Output returns the current chart of one slot.
func (d *Dashboard) Output(id OutputID) (*models.ChartDefinition, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	def, ok := d.outputs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutput, id)
	}
	return def, nil
}

// Outputs returns a copy of the slot table. The definitions themselves are
// shared; they are never mutated.
func (d *Dashboard) Outputs() map[OutputID]*models.ChartDefinition {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[OutputID]*models.ChartDefinition, len(d.outputs))
	for id, def := range d.outputs {
		out[id] = def
	}
	return out
}

func (d *Dashboard) State() InputState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dashboard) Store() *engine.Store {
	return d.store
}

// Controls describes every selection control with its options and current
// value.
func (d *Dashboard) Controls() []models.Control {
	return d.controls(d.State())
}

func (d *Dashboard) controls(state InputState) []models.Control {
	out := make([]models.Control, 0, len(Inputs))
	for _, id := range Inputs {
		c := models.Control{ID: string(id)}
		switch id {
		case InputFarmland:
			c.Label, c.Value = "Total Area of Farmland", state.Farmland
			for _, s := range engine.FarmlandScopes {
				c.Options = append(c.Options, models.Option{Label: s, Value: s})
			}
		case InputYear:
			c.Label, c.Value = "Crops Grown by Year", strconv.Itoa(state.Year)
			c.Options = []models.Option{}
			for _, y := range d.store.Crops.DistinctYears() {
				v := strconv.Itoa(y)
				c.Options = append(c.Options, models.Option{Label: v, Value: v})
			}
		case InputRainfall:
			c.Label, c.Value = charts.RainfallTitle, string(state.Period)
			for _, p := range engine.Periods {
				c.Options = append(c.Options, models.Option{Label: p.Label(), Value: string(p)})
			}
		}
		out = append(out, c)
	}
	return out
}

// View is the whole dashboard: controls plus every chart.
func (d *Dashboard) View() *models.DashboardData {
	d.mu.Lock()
	state := d.state
	charts := make(map[string]*models.ChartDefinition, len(d.outputs))
	for id, def := range d.outputs {
		charts[string(id)] = def
	}
	d.mu.Unlock()

	return &models.DashboardData{
		Title:    Title,
		Controls: d.controls(state),
		Charts:   charts,
	}
}
