// pkg/sim/kernel_test.go

package sim

import (
	"math"
	"testing"
	"time"

	"github.com/mmp/evtolsim/pkg/aircraft"
	"github.com/mmp/evtolsim/pkg/event"
	"github.com/mmp/evtolsim/pkg/rand"
	"github.com/mmp/evtolsim/pkg/stats"
)

func hours(d time.Duration) float64 { return aircraft.HoursOf(d) }

func approx(t *testing.T, got, want, tol float64, msg string) {
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func newRNG(seed int64) *rand.Rand {
	r := rand.New()
	r.Seed(seed)
	return &r
}

func fleetOf(types ...aircraft.Type) []*aircraft.Aircraft {
	f := make([]*aircraft.Aircraft, len(types))
	for i, t := range types {
		f[i] = aircraft.New(i, t)
	}
	return f
}

// Scenario 1: single Alpha, T = 2.0h, no faults forced. The fault draw
// is seeded but not otherwise pinned, so the flight itself is injected
// directly as an unfaulted FlightComplete rather than scheduled through
// the probabilistic path — the scenario is about charger/partial
// accounting after the flight, not about fault sampling.
func TestScenarioSingleAlpha(t *testing.T) {
	s := New(fleetOf(aircraft.Alpha), 3, time.Duration(2.0*float64(time.Hour)), newRNG(1), nil)

	ft := aircraft.FlightTime(aircraft.Alpha)
	ftHours := hours(ft)
	approx(t, ftHours, 1.667, 0.01, "flight time")

	s.PushEvent(&event.Event{
		Time:           ft,
		Kind:           event.FlightComplete,
		AircraftID:     0,
		FlightDuration: ft,
		Distance:       aircraft.FlightDistance(aircraft.Alpha),
	}, 0)
	result := s.RunFrom()

	e := result.Get(aircraft.Alpha)
	if e.FlightCount != 1 {
		t.Fatalf("FlightCount = %d, want 1", e.FlightCount)
	}
	// Charging starts at ft and runs until ft+ct = 2.267, past T=2.0, so
	// it is truncated to a partial charge; total charge count still
	// counts it once.
	if e.ChargeCount != 1 {
		t.Fatalf("ChargeCount = %d, want 1", e.ChargeCount)
	}
	if e.PartialChargeCount != 1 {
		t.Fatalf("PartialChargeCount = %d, want 1", e.PartialChargeCount)
	}
	wantPartial := 2.0 - ftHours
	approx(t, e.PartialChargeHours, wantPartial, 0.01, "partial charge hours")
}

// Scenario 2: single Beta, T = 1.0h. The first flight is injected
// directly as unfaulted for the same reason as scenario 1; the second
// flight (which produces the partial record) is scheduled by the
// kernel itself through scheduleFlight, and whether or not a fault is
// sampled for it makes no difference to the partial accounting below
// since finalize prorates by elapsed time regardless of the fault flag.
func TestScenarioSingleBeta(t *testing.T) {
	s := New(fleetOf(aircraft.Beta), 3, time.Duration(1.0*float64(time.Hour)), newRNG(2), nil)

	ft := aircraft.FlightTime(aircraft.Beta)
	ftHours := hours(ft)
	ct := aircraft.SpecOf(aircraft.Beta).ChargeTimeHours
	approx(t, ftHours, 0.667, 0.01, "flight time")

	s.PushEvent(&event.Event{
		Time:           ft,
		Kind:           event.FlightComplete,
		AircraftID:     0,
		FlightDuration: ft,
		Distance:       aircraft.FlightDistance(aircraft.Beta),
	}, 0)
	result := s.RunFrom()

	e := result.Get(aircraft.Beta)
	if e.ChargeCount != 1 {
		t.Fatalf("ChargeCount = %d, want 1", e.ChargeCount)
	}
	if e.PartialFlightCount != 1 {
		t.Fatalf("PartialFlightCount = %d, want 1", e.PartialFlightCount)
	}
	wantPartial := 1.0 - (ftHours + ct)
	approx(t, e.PartialFlightHours, wantPartial, 0.01, "partial flight hours")
	wantMiles := wantPartial * aircraft.SpecOf(aircraft.Beta).CruiseSpeedMPH
	approx(t, e.PartialMiles, wantMiles, 0.5, "partial miles")
}

// Scenario 3: three aircraft, one charger, all finish flying at the
// same time. All three FlightComplete events are injected directly
// (unfaulted) so the test exercises only the charger-promotion logic,
// not fault sampling.
func TestScenarioFIFOPromotion(t *testing.T) {
	// Horizon stops just after the third aircraft's charge session
	// completes but before any aircraft's second flight lands, so the
	// totals below reflect exactly one FIFO promotion cycle.
	ft := aircraft.FlightTime(aircraft.Beta)
	s := New(fleetOf(aircraft.Beta, aircraft.Beta, aircraft.Beta), 1, ft+time.Duration(0.633*float64(time.Hour)), newRNG(3), nil)

	for id := 0; id < 3; id++ {
		s.PushEvent(&event.Event{
			Time:           ft,
			Kind:           event.FlightComplete,
			AircraftID:     id,
			FlightDuration: ft,
			Distance:       aircraft.FlightDistance(aircraft.Beta),
		}, 0)
	}
	result := s.RunFrom()

	e := result.Get(aircraft.Beta)
	if e.ChargeCount != 3 {
		t.Fatalf("ChargeCount = %d, want 3 (all three eventually charge)", e.ChargeCount)
	}

	ct := aircraft.SpecOf(aircraft.Beta).ChargeTimeHours
	// The first aircraft charges immediately (waiting=0); the second
	// waits one charge duration; the third waits two.
	approx(t, e.TotalWaitingHours, ct+2*ct, 0.01, "total waiting hours (0x + 1x + 2x charge duration)")
}

// Scenario 4: forced fault at 0.5h into a 1.0h flight. We can't force a
// fault through the public RNG without a contrived seed, so this test
// exercises the fault path directly via the kernel's handlers with a
// synthetic event sequence, checking the spec's exact bookkeeping
// contract: flight stats still recorded in full, no charge attempted.
func TestScenarioForcedFaultMidFlight(t *testing.T) {
	fleet := fleetOf(aircraft.Alpha)
	s := New(fleet, 3, 10*time.Hour, newRNG(4), nil)

	// Bypass scheduling and directly dispatch a FaultOccurred followed
	// by its matching FlightComplete, exactly as the real loop would in
	// time order, to pin down the handler contract without depending on
	// a particular RNG draw landing a fault.
	s.currentTime = 30 * time.Minute
	s.onFaultOccurred(&event.Event{
		Kind:                event.FaultOccurred,
		AircraftID:          0,
		FaultTimeIntoFlight: 30 * time.Minute,
	})

	s.currentTime = time.Hour
	s.flightStart[0] = 0
	s.onFlightComplete(&event.Event{
		Kind:            event.FlightComplete,
		AircraftID:      0,
		FlightDuration:  time.Hour,
		Distance:        aircraft.FlightDistance(aircraft.Alpha),
		FaultedInFlight: true,
	})

	e := s.stats.Get(aircraft.Alpha)
	if e.FlightCount != 1 {
		t.Fatalf("FlightCount = %d, want 1 (full flight still recorded)", e.FlightCount)
	}
	if e.ChargeCount != 0 {
		t.Fatalf("ChargeCount = %d, want 0 (faulted aircraft does not charge)", e.ChargeCount)
	}
	if e.FaultCount != 1 {
		t.Fatalf("FaultCount = %d, want 1", e.FaultCount)
	}
	if !fleet[0].Faulted {
		t.Fatalf("aircraft should be marked faulted")
	}
}

// Scenario 5: empty fleet, T = 3.0h.
func TestScenarioEmptyFleet(t *testing.T) {
	s := New(nil, 3, 3*time.Hour, newRNG(5), nil)
	result := s.Run()

	for _, typ := range aircraft.AllTypes() {
		e := result.Get(typ)
		if e.FlightCount != 0 || e.ChargeCount != 0 || e.FaultCount != 0 {
			t.Errorf("%s: expected all-zero stats for empty fleet, got %+v", typ, e)
		}
	}
	if s.arbiter.FreeCount() != 3 || s.arbiter.AssignedCount() != 0 || s.arbiter.QueueLen() != 0 {
		t.Errorf("expected all chargers free and queue empty")
	}
}

// Scenario 6: deterministic replay.
func TestScenarioDeterministicReplay(t *testing.T) {
	types := []aircraft.Type{aircraft.Alpha, aircraft.Beta, aircraft.Charlie, aircraft.Delta, aircraft.Echo, aircraft.Alpha}

	run := func() *stats.FleetStats {
		s := New(fleetOf(types...), 2, 5*time.Hour, newRNG(42), nil)
		return s.Run()
	}

	a := run()
	b := run()

	for _, typ := range aircraft.AllTypes() {
		ea, eb := a.Get(typ), b.Get(typ)
		if ea != eb {
			t.Errorf("%s: nondeterministic result:\n  run1=%+v\n  run2=%+v", typ, ea, eb)
		}
	}
}

func TestConservationInvariant(t *testing.T) {
	s := New(fleetOf(aircraft.Beta, aircraft.Beta, aircraft.Beta, aircraft.Beta), 2, 5*time.Hour, newRNG(6), nil)
	s.Run()

	a := s.arbiter
	if a.FreeCount()+a.AssignedCount() != a.NumChargers() {
		t.Errorf("free(%d) + assigned(%d) != numChargers(%d)", a.FreeCount(), a.AssignedCount(), a.NumChargers())
	}
}

func TestPartialSubsetOfTotalAcrossRun(t *testing.T) {
	s := New(fleetOf(aircraft.Alpha, aircraft.Beta, aircraft.Charlie), 1, 90*time.Minute, newRNG(7), nil)
	result := s.Run()

	for _, typ := range aircraft.AllTypes() {
		e := result.Get(typ)
		if e.PartialFlightHours > e.TotalFlightHours+1e-9 {
			t.Errorf("%s: partial flight hours exceed total", typ)
		}
		if e.PartialMiles > e.TotalMiles+1e-9 {
			t.Errorf("%s: partial miles exceed total", typ)
		}
		if e.PartialChargeHours > e.TotalChargeHours+1e-9 {
			t.Errorf("%s: partial charge hours exceed total", typ)
		}
		if e.PartialFlightCount > e.FlightCount {
			t.Errorf("%s: partial flight count exceeds total", typ)
		}
		if e.PartialChargeCount > e.ChargeCount {
			t.Errorf("%s: partial charge count exceeds total", typ)
		}
	}
}

func TestIdempotentReleaseViaKernel(t *testing.T) {
	s := New(fleetOf(aircraft.Alpha), 2, time.Hour, newRNG(8), nil)
	before := s.arbiter.FreeCount()
	slot, ok := s.arbiter.Release(0)
	if ok || slot != 0 {
		t.Fatalf("Release on an aircraft holding no slot should be a no-op, got slot=%d ok=%v", slot, ok)
	}
	if s.arbiter.FreeCount() != before {
		t.Errorf("idempotent release should not change free count")
	}
}
