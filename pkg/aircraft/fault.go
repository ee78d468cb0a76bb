// pkg/aircraft/fault.go

package aircraft

import (
	"time"

	"github.com/mmp/evtolsim/pkg/rand"
)

// SampleFaultTime draws whether a fault occurs during a flight of the
// given duration for the given type, and if so, when.
//
// Distribution (the Bernoulli variant from the spec's fault model):
// the probability that any fault occurs during the flight is
// min(1, FaultRatePerHour * flightDuration-in-hours), decided by a
// single Bernoulli draw. Conditioned on a fault occurring, the fault
// time is uniform on [0, flightDuration). This matches
// original_source/aircraft_state.cpp's single-draw-per-flight
// behavior; the alternative exponential-time-to-failure variant in
// original_source/event_driven_simulation.h is implemented as
// rand.Rand.Exponential but intentionally unused here — see
// SPEC_FULL.md §9.
func SampleFaultTime(t Type, flightDuration time.Duration, rng *rand.Rand) (time.Duration, bool) {
	rate := SpecOf(t).FaultRatePerHour
	hours := HoursOf(flightDuration)
	p := rate * hours
	if p > 1 {
		p = 1
	}

	if !rng.Bernoulli(p) {
		return 0, false
	}

	frac := rng.Float64()
	return time.Duration(frac * float64(flightDuration)), true
}
