// pkg/stats/stats.go

// Package stats implements the per-type statistics aggregator: running
// sums of flight and charging activity, with partial-activity
// accounting for flights and charges truncated by the simulation
// horizon.
package stats

import (
	"github.com/mmp/evtolsim/pkg/aircraft"
	"github.com/mmp/evtolsim/pkg/util"

	"github.com/brunoga/deep"
	"github.com/iancoleman/orderedmap"
)

// TypeStats holds the running totals for one aircraft type. Partial
// fields describe a subset of the total fields, not a disjoint
// category: every partial contribution is also added to the matching
// total, and every partial count is also included in the matching
// total count.
type TypeStats struct {
	TotalFlightHours     float64
	TotalMiles           float64
	TotalChargeHours     float64
	TotalWaitingHours    float64
	TotalPassengerMiles  float64
	FlightCount          int
	ChargeCount          int
	FaultCount           int

	PartialFlightHours    float64
	PartialMiles          float64
	PartialPassengerMiles float64
	PartialFlightCount    int
	PartialChargeHours    float64
	PartialChargeCount    int
}

// AverageFlightHours returns TotalFlightHours / FlightCount, or 0 if
// FlightCount is 0.
func (s TypeStats) AverageFlightHours() float64 { return ratio(s.TotalFlightHours, s.FlightCount) }

// AverageMiles returns TotalMiles / FlightCount, or 0 if FlightCount is 0.
func (s TypeStats) AverageMiles() float64 { return ratio(s.TotalMiles, s.FlightCount) }

// AverageChargeHours returns TotalChargeHours / ChargeCount, or 0 if
// ChargeCount is 0.
func (s TypeStats) AverageChargeHours() float64 { return ratio(s.TotalChargeHours, s.ChargeCount) }

// AverageWaitingHours returns TotalWaitingHours / ChargeCount, or 0 if
// ChargeCount is 0. Waiting time is recorded only for completed charge
// sessions, but, like the other averages, it is divided by the total
// ChargeCount, which also counts partial charges.
func (s TypeStats) AverageWaitingHours() float64 {
	return ratio(s.TotalWaitingHours, s.ChargeCount)
}

func ratio(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// FleetStats is the per-type statistics aggregator for an entire
// simulation run.
type FleetStats struct {
	byType map[aircraft.Type]*TypeStats
}

// New returns a FleetStats with a zeroed entry for every known aircraft
// type.
func New() *FleetStats {
	f := &FleetStats{byType: make(map[aircraft.Type]*TypeStats)}
	for _, t := range aircraft.AllTypes() {
		f.byType[t] = &TypeStats{}
	}
	return f
}

func (f *FleetStats) entry(t aircraft.Type) *TypeStats {
	e, ok := f.byType[t]
	if !ok {
		e = &TypeStats{}
		f.byType[t] = e
	}
	return e
}

// Get returns a copy of the running statistics for type t.
func (f *FleetStats) Get(t aircraft.Type) TypeStats {
	return *f.entry(t)
}

// RecordFlight records a completed flight: adds to flight hours, miles,
// and passenger-miles, and increments flight count.
func (f *FleetStats) RecordFlight(t aircraft.Type, hours, miles float64, passengers int) {
	e := f.entry(t)
	e.TotalFlightHours += hours
	e.TotalMiles += miles
	e.TotalPassengerMiles += float64(passengers) * miles
	e.FlightCount++
}

// RecordPartialFlight records a flight truncated by the simulation
// horizon. The same values are added to both the partial fields and
// the matching total fields, and both the partial and total flight
// counts are incremented — partial activity is a subset of total
// activity, not a separate category.
func (f *FleetStats) RecordPartialFlight(t aircraft.Type, hours, miles float64, passengers int) {
	e := f.entry(t)
	e.TotalFlightHours += hours
	e.TotalMiles += miles
	e.TotalPassengerMiles += float64(passengers) * miles
	e.FlightCount++

	e.PartialFlightHours += hours
	e.PartialMiles += miles
	e.PartialPassengerMiles += float64(passengers) * miles
	e.PartialFlightCount++
}

// RecordChargeSession records a completed charge session: adds to
// charge hours and waiting hours, and increments charge count.
func (f *FleetStats) RecordChargeSession(t aircraft.Type, chargeHours, waitingHours float64) {
	e := f.entry(t)
	e.TotalChargeHours += chargeHours
	e.TotalWaitingHours += waitingHours
	e.ChargeCount++
}

// RecordPartialCharge records a charge session truncated by the
// simulation horizon. Waiting hours are not touched: the convention
// (matching observed source behavior) is that waiting time only enters
// totals when a charge completes.
func (f *FleetStats) RecordPartialCharge(t aircraft.Type, chargeHours float64) {
	e := f.entry(t)
	e.TotalChargeHours += chargeHours
	e.ChargeCount++

	e.PartialChargeHours += chargeHours
	e.PartialChargeCount++
}

// RecordFault increments the fault count for type t. Faults do not
// alter flight or passenger totals; those are recorded separately by
// the FlightComplete handler for the same flight.
func (f *FleetStats) RecordFault(t aircraft.Type) {
	f.entry(t).FaultCount++
}

// HasPartialActivity reports whether any type recorded a partial flight
// or partial charge — the report includes its partial-activity section
// only when this is true.
func (f *FleetStats) HasPartialActivity() bool {
	for _, t := range aircraft.AllTypes() {
		e := f.entry(t)
		if e.PartialFlightCount > 0 || e.PartialChargeCount > 0 {
			return true
		}
	}
	return false
}

// Ordered returns the per-type statistics as an orderedmap keyed by the
// type's display name, in the canonical type-table order, so that a
// caller iterating it gets a stable order regardless of Go's map
// iteration order. (pkg/report does not use it; it iterates
// aircraft.AllTypes directly.)
func (f *FleetStats) Ordered() *orderedmap.OrderedMap {
	om := orderedmap.New()
	for _, t := range aircraft.AllTypes() {
		om.Set(t.String(), f.Get(t))
	}
	return om
}

// Types returns the known aircraft types in sorted (canonical) order.
// It exists alongside Ordered for callers that want to drive further
// per-type computation rather than consume a pre-built ordered map.
func (f *FleetStats) Types() []aircraft.Type {
	keys := util.SortedMapKeys(f.asIntMap())
	types := make([]aircraft.Type, len(keys))
	for i, k := range keys {
		types[i] = aircraft.Type(k)
	}
	return types
}

// Snapshot returns a deep copy of f, safe for a caller to retain and
// mutate (e.g. to compare a run's result against a later run) without
// risk of aliasing the kernel's own running aggregator.
func (f *FleetStats) Snapshot() *FleetStats {
	return deep.MustCopy(f)
}

func (f *FleetStats) asIntMap() map[int]*TypeStats {
	m := make(map[int]*TypeStats, len(f.byType))
	for t, v := range f.byType {
		m[int(t)] = v
	}
	return m
}
