// cmd/evtolsim/main.go

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mmp/evtolsim/pkg/fleet"
	"github.com/mmp/evtolsim/pkg/log"
	"github.com/mmp/evtolsim/pkg/report"
)

var (
	fleetSize   = flag.Int("fleet-size", 20, "Number of aircraft in the fleet")
	numChargers = flag.Int("chargers", 3, "Number of shared charger slots")
	horizon     = flag.Float64("horizon", 3.0, "Simulation horizon, in hours")
	seed        = flag.Int64("seed", 0, "RNG seed; defaults to a time-derived value when 0")
	roundRobin  = flag.Bool("round-robin", false, "Use deterministic round-robin fleet composition instead of random")
	logLevel    = flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "Directory for the rotating log file (current directory if empty)")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	cfg := fleet.DefaultConfig()
	cfg.FleetSize = *fleetSize
	cfg.NumChargers = *numChargers
	cfg.HorizonHours = *horizon
	cfg.RNGSeed = *seed
	if cfg.RNGSeed == 0 {
		cfg.RNGSeed = time.Now().UnixNano()
	}
	if *roundRobin {
		cfg.Composition = fleet.CompositionRoundRobin
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	start := time.Now()
	result, err := fleet.Run(cfg, lg)
	if err != nil {
		// Run only fails on the same validation errors just checked
		// above; this path exists for defense against future config
		// fields that aren't caught until Build/New.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Print(report.Format(result, report.RunInfo{Config: cfg, WallClockTime: time.Since(start)}))
	os.Exit(0)
}
