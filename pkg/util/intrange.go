// pkg/util/intrange.go

package util

import (
	"errors"
	"math/bits"
)

// IntRangeSet tracks which integers in a fixed range [First, Last] are
// currently available, using a bitset for compact, allocation-free
// membership tests. It backs the charger arbiter's free-slot pool.
type IntRangeSet struct {
	First, Last   int
	AvailableBits []uint64
}

var (
	ErrIntRangeSetEmpty            = errors.New("set is empty")
	ErrIntRangeSetOutOfRange       = errors.New("value out of range")
	ErrIntRangeReturnedValueInSet  = errors.New("value returned is already in the set")
	ErrIntRangeSetValueUnavailable = errors.New("value not currently present in the set")
)

// MakeIntRangeSet returns a set with every integer in [first, last]
// initially available.
func MakeIntRangeSet(first, last int) *IntRangeSet {
	if last < first {
		return &IntRangeSet{First: first, Last: last}
	}

	nints := last - first + 1
	nalloc := (nints + 63) / 64

	s := &IntRangeSet{
		First:         first,
		Last:          last,
		AvailableBits: make([]uint64, nalloc),
	}

	for i := range len(s.AvailableBits) - 1 {
		s.AvailableBits[i] = ^uint64(0)
	}

	slop := 64*nalloc - nints
	s.AvailableBits[nalloc-1] = ^uint64(0) >> slop

	return s
}

// TakeLowest takes and returns the lowest-numbered available value in
// the set. This gives the deterministic "lowest-numbered free slot"
// assignment rule the charger arbiter requires.
func (s *IntRangeSet) TakeLowest() (int, error) {
	for idx, word := range s.AvailableBits {
		if word == 0 {
			continue
		}
		bit := bits.TrailingZeros64(word)
		s.AvailableBits[idx] &= ^(uint64(1) << bit)
		return s.First + 64*idx + bit, nil
	}
	return 0, ErrIntRangeSetEmpty
}

func (s *IntRangeSet) indices(v int) (int, int, error) {
	if v < s.First || v > s.Last {
		return 0, 0, ErrIntRangeSetOutOfRange
	}
	offset := v - s.First
	return offset / 64, offset % 64, nil
}

func (s *IntRangeSet) IsAvailable(v int) bool {
	if idx, bit, err := s.indices(v); err == nil {
		return s.AvailableBits[idx]&(1<<bit) != 0
	}
	return false
}

// Return makes v available again. It is an error if v is already
// available or out of range.
func (s *IntRangeSet) Return(v int) error {
	if s.IsAvailable(v) {
		return ErrIntRangeReturnedValueInSet
	} else if idx, bit, err := s.indices(v); err != nil {
		return err
	} else {
		s.AvailableBits[idx] |= 1 << bit
		return nil
	}
}

// Take removes v from the available set. It is an error if v is
// already unavailable or out of range.
func (s *IntRangeSet) Take(v int) error {
	if idx, bit, err := s.indices(v); err != nil {
		return err
	} else if !s.IsAvailable(v) {
		return ErrIntRangeSetValueUnavailable
	} else {
		s.AvailableBits[idx] &= ^(uint64(1) << bit)
		return nil
	}
}

// Count returns the number of currently-available values.
func (s *IntRangeSet) Count() int {
	n := 0
	for _, b := range s.AvailableBits {
		n += bits.OnesCount64(b)
	}
	return n
}

func (s *IntRangeSet) InRange(v int) bool {
	return v >= s.First && v <= s.Last
}
