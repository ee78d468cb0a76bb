// pkg/sim/kernel.go

// Package sim implements the discrete-event simulation kernel: the main
// dispatch loop that ties the event queue, charger arbiter, and
// statistics aggregator together into the aircraft activity state
// machine (idle -> flying -> charging/waiting -> idle, with an
// absorbing fault state).
package sim

import (
	"time"

	"github.com/mmp/evtolsim/pkg/aircraft"
	"github.com/mmp/evtolsim/pkg/charger"
	"github.com/mmp/evtolsim/pkg/event"
	"github.com/mmp/evtolsim/pkg/log"
	"github.com/mmp/evtolsim/pkg/rand"
	"github.com/mmp/evtolsim/pkg/stats"
)

// Simulation is the kernel: it owns the RNG, the charger arbiter, the
// statistics aggregator, the event queue, and the kernel-private side
// tables tracking when each in-progress activity began. It is not safe
// for concurrent use from multiple goroutines; the simulation is
// logically single-threaded and virtual-time-driven by design.
type Simulation struct {
	fleet   []*aircraft.Aircraft
	arbiter *charger.Arbiter
	stats   *stats.FleetStats
	queue   *event.Queue
	rng     *rand.Rand
	lg      *log.Logger

	horizon     time.Duration
	currentTime time.Duration

	// Side tables keyed by aircraft id, owned by the kernel rather than
	// stored on the Aircraft itself, per the spec's note that the
	// source's stale per-aircraft waiting-start fields should instead
	// live in a side table.
	flightStart map[int]time.Duration
	chargeStart map[int]time.Duration
	waitStart   map[int]time.Duration
}

// New returns a Simulation ready to Run over fleet, sharing numChargers
// chargers, terminating no later than horizon. rng is owned by the
// returned Simulation for the duration of the run. lg may be nil.
func New(fleet []*aircraft.Aircraft, numChargers int, horizon time.Duration, rng *rand.Rand, lg *log.Logger) *Simulation {
	return &Simulation{
		fleet:       fleet,
		arbiter:     charger.New(numChargers),
		stats:       stats.New(),
		queue:       event.NewQueue(),
		rng:         rng,
		lg:          lg,
		horizon:     horizon,
		flightStart: make(map[int]time.Duration),
		chargeStart: make(map[int]time.Duration),
		waitStart:   make(map[int]time.Duration),
	}
}

// Arbiter exposes the charger arbiter for tests that want to assert
// conservation and fairness invariants directly against kernel state.
func (s *Simulation) Arbiter() *charger.Arbiter { return s.arbiter }

// QueueLen reports the number of events still pending; used by tests
// that exercise the loop one step at a time.
func (s *Simulation) QueueLen() int { return s.queue.Len() }

// PushEvent injects e directly into the event queue and records its
// aircraft's flight/charge start time, bypassing fault-sampled flight
// scheduling. It exists for tests that need to pin down a specific
// event ordering (e.g. several flights completing simultaneously)
// without depending on a particular RNG draw.
func (s *Simulation) PushEvent(e *event.Event, startTime time.Duration) {
	switch e.Kind {
	case event.FlightComplete:
		s.flightStart[e.AircraftID] = startTime
	case event.ChargingComplete:
		s.chargeStart[e.AircraftID] = startTime
	}
	s.queue.Push(e)
}

// RunFrom drives the dispatch loop over whatever events are already in
// the queue (via PushEvent) without first scheduling an initial flight
// per fleet member, then finalizes and returns the resulting stats.
func (s *Simulation) RunFrom() *stats.FleetStats {
	return s.runLoop()
}

// Run executes the full simulation to completion (queue exhaustion or
// the horizon, whichever comes first), finalizes partial activity, and
// returns the accumulated statistics.
func (s *Simulation) Run() *stats.FleetStats {
	for _, a := range s.fleet {
		s.scheduleFlight(a)
	}
	return s.runLoop()
}

// runLoop pops events in time order and dispatches them until the queue
// empties or the horizon is reached, then finalizes partial activity.
// Split out from Run so tests can drive the loop from a hand-built
// initial event set instead of fault-sampled flight scheduling.
func (s *Simulation) runLoop() *stats.FleetStats {
	for s.queue.Len() > 0 && s.currentTime < s.horizon {
		e := s.queue.Pop()
		if e.Time >= s.horizon {
			s.queue.Push(e)
			break
		}
		s.currentTime = e.Time
		s.dispatch(e)
	}

	s.finalize()
	// A snapshot, not the live aggregator, so a caller retaining the
	// result across multiple Simulation runs (e.g. a determinism test
	// comparing two replays) can't observe later mutation.
	return s.stats.Snapshot()
}

func (s *Simulation) dispatch(e *event.Event) {
	switch e.Kind {
	case event.FlightComplete:
		s.onFlightComplete(e)
	case event.ChargingComplete:
		s.onChargingComplete(e)
	case event.FaultOccurred:
		s.onFaultOccurred(e)
	}
}

// scheduleFlight draws a fault time for a fresh flight of a, schedules
// its FaultOccurred (if any) and FlightComplete events, and records the
// flight's start time for later partial-activity accounting.
func (s *Simulation) scheduleFlight(a *aircraft.Aircraft) {
	ft := aircraft.FlightTime(a.Type)
	d := aircraft.FlightDistance(a.Type)

	tf, faulted := aircraft.SampleFaultTime(a.Type, ft, s.rng)
	if faulted {
		s.queue.Push(&event.Event{
			Time:                s.currentTime + tf,
			Kind:                event.FaultOccurred,
			AircraftID:          a.ID,
			FaultTimeIntoFlight: tf,
		})
	}

	s.queue.Push(&event.Event{
		Time:            s.currentTime + ft,
		Kind:            event.FlightComplete,
		AircraftID:      a.ID,
		FlightDuration:  ft,
		Distance:        d,
		FaultedInFlight: faulted,
	})

	s.flightStart[a.ID] = s.currentTime
}

// scheduleCharging records the start of a charge session for id and
// schedules its completion.
func (s *Simulation) scheduleCharging(id int, waiting time.Duration) {
	a := s.fleet[id]
	ct := aircraft.ChargeTime(a.Type)

	s.chargeStart[id] = s.currentTime
	s.queue.Push(&event.Event{
		Time:           s.currentTime + ct,
		Kind:           event.ChargingComplete,
		AircraftID:     id,
		ChargeDuration: ct,
		WaitingTime:    waiting,
	})
}

func (s *Simulation) onFlightComplete(e *event.Event) {
	a := s.fleet[e.AircraftID]
	spec := aircraft.SpecOf(a.Type)

	s.stats.RecordFlight(a.Type, aircraft.HoursOf(e.FlightDuration), e.Distance, spec.PassengerCount)
	delete(s.flightStart, e.AircraftID)

	if e.FaultedInFlight {
		// The matching FaultOccurred already set a.Faulted; the
		// aircraft produces no further events.
		return
	}

	if slot, ok := s.arbiter.TryAcquire(e.AircraftID); ok {
		s.lg.Debugf("aircraft %d acquired charger %d", e.AircraftID, slot)
		s.scheduleCharging(e.AircraftID, 0)
		return
	}

	s.arbiter.Enqueue(e.AircraftID)
	s.waitStart[e.AircraftID] = s.currentTime
}

func (s *Simulation) onChargingComplete(e *event.Event) {
	a := s.fleet[e.AircraftID]

	s.stats.RecordChargeSession(a.Type, aircraft.HoursOf(e.ChargeDuration), aircraft.HoursOf(e.WaitingTime))
	delete(s.chargeStart, e.AircraftID)
	s.arbiter.Release(e.AircraftID)

	if !a.Faulted {
		s.scheduleFlight(a)
	}

	// Queue promotion happens in this same logical step as the release
	// above, so a slot just freed cannot be stolen by anything else
	// before the head of the waiting queue claims it.
	nextID, ok := s.arbiter.Dequeue()
	if !ok {
		return
	}
	if _, acquired := s.arbiter.TryAcquire(nextID); !acquired {
		panic(errQueuePromotionFailed)
	}
	start, ok := s.waitStart[nextID]
	if !ok {
		panic(errMissingStartTime)
	}
	waiting := s.currentTime - start
	delete(s.waitStart, nextID)
	s.scheduleCharging(nextID, waiting)
}

func (s *Simulation) onFaultOccurred(e *event.Event) {
	a := s.fleet[e.AircraftID]
	a.Faulted = true
	s.stats.RecordFault(a.Type)
	s.lg.Debugf("aircraft %d faulted %s into flight", e.AircraftID, e.FaultTimeIntoFlight)
}

// finalize accounts for partial activity at the horizon: remaining
// FlightComplete and ChargingComplete events become partial records;
// remaining FaultOccurred events are discarded.
func (s *Simulation) finalize() {
	s.currentTime = s.horizon

	for _, e := range s.queue.Drain() {
		a := s.fleet[e.AircraftID]

		switch e.Kind {
		case event.FlightComplete:
			t0, ok := s.flightStart[e.AircraftID]
			if !ok {
				continue
			}
			elapsed := s.horizon - t0
			spec := aircraft.SpecOf(a.Type)
			partialDistance := e.Distance * float64(elapsed) / float64(e.FlightDuration)
			s.stats.RecordPartialFlight(a.Type, aircraft.HoursOf(elapsed), partialDistance, spec.PassengerCount)

		case event.ChargingComplete:
			t0, ok := s.chargeStart[e.AircraftID]
			if !ok {
				continue
			}
			elapsed := s.horizon - t0
			s.stats.RecordPartialCharge(a.Type, aircraft.HoursOf(elapsed))

		case event.FaultOccurred:
			// Would have fired after the horizon; discarded without
			// marking the aircraft faulted.
		}
	}
}

