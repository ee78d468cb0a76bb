// pkg/charger/arbiter.go

// Package charger implements the shared-charger arbiter: a fixed pool
// of charger slots, handed out to aircraft on a lowest-numbered-free
// basis, with a FIFO queue for aircraft that arrive when no slot is
// free.
package charger

import (
	"errors"

	"github.com/mmp/evtolsim/pkg/util"
)

// ErrAlreadyAssigned and ErrAlreadyQueued are the messages Enqueue
// panics with when the aircraft already holds a slot or is already
// queued; per the spec this is a programmer bug, never a condition
// that arises from valid input.
var (
	ErrAlreadyAssigned = errors.New("charger: aircraft already holds a slot")
	ErrAlreadyQueued   = errors.New("charger: aircraft already queued")
)

// Arbiter tracks free charger slots, the mapping from assigned aircraft
// to slot, and the FIFO waiting queue. It never initiates transitions
// itself — the simulation kernel is the only caller of its methods, and
// it always calls Release, then Dequeue, then TryAcquire, in that
// order, when a charge session completes. That ordering is what keeps
// the causality of queue promotion explicit and testable in isolation.
type Arbiter struct {
	numChargers int
	free        *util.IntRangeSet
	assigned    map[int]int // aircraft id -> slot id
	queue       []int       // FIFO of waiting aircraft ids
	queued      map[int]bool
}

// New returns an Arbiter with numChargers free slots, numbered
// 0..numChargers-1, and an empty waiting queue.
func New(numChargers int) *Arbiter {
	return &Arbiter{
		numChargers: numChargers,
		free:        util.MakeIntRangeSet(0, numChargers-1),
		assigned:    make(map[int]int),
		queued:      make(map[int]bool),
	}
}

// TryAcquire hands out the lowest-numbered free slot to aircraftID, if
// one exists. It panics if aircraftID already holds a slot, since that
// can only happen from a kernel bug.
func (a *Arbiter) TryAcquire(aircraftID int) (slot int, ok bool) {
	if _, held := a.assigned[aircraftID]; held {
		panic("charger: TryAcquire called for an aircraft that already holds a slot")
	}

	slot, err := a.free.TakeLowest()
	if err != nil {
		return 0, false
	}
	a.assigned[aircraftID] = slot
	return slot, true
}

// Release frees the slot held by aircraftID, if any, and returns it.
// Releasing an aircraft that holds no slot is a no-op, per the spec's
// idempotent-release invariant.
func (a *Arbiter) Release(aircraftID int) (slot int, ok bool) {
	slot, held := a.assigned[aircraftID]
	if !held {
		return 0, false
	}
	delete(a.assigned, aircraftID)
	if err := a.free.Return(slot); err != nil {
		panic("charger: Release freed a slot that was already free: " + err.Error())
	}
	return slot, true
}

// Enqueue appends aircraftID to the FIFO waiting queue. It panics if
// the aircraft is already queued or already holds a slot.
func (a *Arbiter) Enqueue(aircraftID int) {
	if a.queued[aircraftID] {
		panic(ErrAlreadyQueued.Error())
	}
	if _, held := a.assigned[aircraftID]; held {
		panic(ErrAlreadyAssigned.Error())
	}
	a.queue = append(a.queue, aircraftID)
	a.queued[aircraftID] = true
}

// Dequeue pops and returns the aircraft at the head of the waiting
// queue, if any.
func (a *Arbiter) Dequeue() (aircraftID int, ok bool) {
	if len(a.queue) == 0 {
		return 0, false
	}
	aircraftID = a.queue[0]
	a.queue = a.queue[1:]
	delete(a.queued, aircraftID)
	return aircraftID, true
}

// FreeCount returns the number of currently-free slots.
func (a *Arbiter) FreeCount() int { return a.free.Count() }

// AssignedCount returns the number of slots currently assigned.
func (a *Arbiter) AssignedCount() int { return len(a.assigned) }

// QueueLen returns the number of aircraft currently waiting.
func (a *Arbiter) QueueLen() int { return len(a.queue) }

// NumChargers returns the configured number of charger slots.
func (a *Arbiter) NumChargers() int { return a.numChargers }

// IsAssigned reports whether aircraftID currently holds a slot.
func (a *Arbiter) IsAssigned(aircraftID int) bool {
	_, ok := a.assigned[aircraftID]
	return ok
}

// IsQueued reports whether aircraftID is currently in the waiting
// queue.
func (a *Arbiter) IsQueued(aircraftID int) bool {
	return a.queued[aircraftID]
}
