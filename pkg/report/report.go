// pkg/report/report.go

// Package report renders a FleetStats into the plain-text table that
// is the only externally observable output of the simulator: there is
// no network or file output (no networking, no persistence).
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mmp/evtolsim/pkg/aircraft"
	"github.com/mmp/evtolsim/pkg/fleet"
	"github.com/mmp/evtolsim/pkg/stats"
	"github.com/mmp/evtolsim/pkg/util"
)

// RunInfo carries the run-level parameters and timing shown in the
// report header, above the per-type table.
type RunInfo struct {
	Config        fleet.Config
	WallClockTime time.Duration // time taken to *run* the simulation, not simulated time
}

// Format renders s as a fixed-width text report: a run summary header,
// the per-type statistics table (average flight/charge/waiting hours,
// distance, fault rate, totals), and — only when the run produced any
// — a partial-activity section.
func Format(s *stats.FleetStats, info RunInfo) string {
	var b strings.Builder

	writeHeader(&b, info)
	writeTypeTable(&b, s)
	if s.HasPartialActivity() {
		writePartialSection(&b, s)
	}

	return b.String()
}

func writeHeader(b *strings.Builder, info RunInfo) {
	c := info.Config
	fmt.Fprintf(b, "eVTOL fleet simulation\n")
	fmt.Fprintf(b, "  fleet size:    %d\n", c.FleetSize)
	fmt.Fprintf(b, "  chargers:      %d\n", c.NumChargers)
	fmt.Fprintf(b, "  horizon:       %.3f hours\n", c.HorizonHours)
	fmt.Fprintf(b, "  rng seed:      %d\n", c.RNGSeed)
	fmt.Fprintf(b, "  composition:   %s\n", c.Composition)
	fmt.Fprintf(b, "  wall time:     %s\n\n", info.WallClockTime.Round(time.Millisecond))
}

func writeTypeTable(b *strings.Builder, s *stats.FleetStats) {
	tw := tabwriter.NewWriter(b, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tFLIGHTS\tAVG FLIGHT (h)\tAVG DIST (mi)\tCHARGES\tAVG CHARGE (h)\tAVG WAIT (h)\tFAULTS\tFAULT RATE\tPAX-MILES")

	for _, t := range aircraft.AllTypes() {
		e := s.Get(t)
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.2f\t%d\t%.3f\t%.3f\t%d\t%.3f\t%.1f\n",
			t, e.FlightCount, e.AverageFlightHours(), e.AverageMiles(),
			e.ChargeCount, e.AverageChargeHours(), e.AverageWaitingHours(),
			e.FaultCount, faultRate(e), e.TotalPassengerMiles)
	}

	tw.Flush()
	fmt.Fprintln(b)
}

// faultRate is faults per recorded flight (FlightCount, which includes
// partial flights), a reporting convenience derived from existing
// fields rather than a stats field of its own.
func faultRate(e stats.TypeStats) float64 {
	if e.FlightCount == 0 {
		return 0
	}
	return float64(e.FaultCount) / float64(e.FlightCount)
}

func writePartialSection(b *strings.Builder, s *stats.FleetStats) {
	fmt.Fprintln(b, "Partial activity (truncated by horizon):")
	tw := tabwriter.NewWriter(b, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tPARTIAL FLIGHTS\tPARTIAL FLIGHT HOURS\tPARTIAL MILES\tPARTIAL CHARGES\tPARTIAL CHARGE HOURS")

	for _, t := range aircraft.AllTypes() {
		e := s.Get(t)
		if e.PartialFlightCount == 0 && e.PartialChargeCount == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.2f\t%d\t%.3f\n",
			t, e.PartialFlightCount, e.PartialFlightHours, e.PartialMiles,
			e.PartialChargeCount, e.PartialChargeHours)
	}
	tw.Flush()
}

// WrapNote wraps an arbitrary note to a fixed column width for
// inclusion in the report, indenting continuation lines by two spaces.
// Format itself does not call it.
func WrapNote(note string, columnLimit int) string {
	wrapped, _ := util.WrapText(note, columnLimit, 2, false)
	return wrapped
}
