// pkg/aircraft/spec_test.go

package aircraft

import (
	"math"
	"testing"
)

func TestSpecTable(t *testing.T) {
	// Bit-exact reproduction of the canonical spec table.
	cases := []struct {
		typ    Type
		mfr    string
		cruise float64
		batt   float64
		charge float64
		pax    int
		fault  float64
		energy float64
	}{
		{Alpha, "Alpha", 120, 320, 0.6, 4, 0.25, 1.6},
		{Beta, "Beta", 100, 100, 0.2, 5, 0.10, 1.5},
		{Charlie, "Charlie", 160, 220, 0.8, 3, 0.05, 2.2},
		{Delta, "Delta", 90, 120, 0.62, 2, 0.22, 0.8},
		{Echo, "Echo", 30, 150, 0.3, 2, 0.61, 5.8},
	}

	for _, c := range cases {
		s := SpecOf(c.typ)
		if s.Manufacturer != c.mfr || s.CruiseSpeedMPH != c.cruise || s.BatteryKWh != c.batt ||
			s.ChargeTimeHours != c.charge || s.PassengerCount != c.pax ||
			s.FaultRatePerHour != c.fault || s.EnergyKWhPerMile != c.energy {
			t.Errorf("%s: spec mismatch: %+v", c.mfr, s)
		}
	}
}

func TestFlightTimeAndDistance(t *testing.T) {
	// Alpha: 320 / (120*1.6) = 1.6666... hours
	want := 320.0 / (120.0 * 1.6)
	got := HoursOf(FlightTime(Alpha))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Alpha flight time = %f, want %f", got, want)
	}

	wantDist := want * 120.0
	if gotDist := FlightDistance(Alpha); math.Abs(gotDist-wantDist) > 1e-6 {
		t.Errorf("Alpha flight distance = %f, want %f", gotDist, wantDist)
	}
}

func TestFlightTimeIndependentOfInstance(t *testing.T) {
	// flight_time/flight_distance depend only on type.
	for _, typ := range AllTypes() {
		a := FlightTime(typ)
		b := FlightTime(typ)
		if a != b {
			t.Errorf("%s: FlightTime not stable across calls", typ)
		}
	}
}

func TestSpecOfInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for invalid Type")
		}
	}()
	SpecOf(Type(99))
}
