// pkg/fleet/run.go

package fleet

import (
	"github.com/mmp/evtolsim/pkg/log"
	"github.com/mmp/evtolsim/pkg/rand"
	"github.com/mmp/evtolsim/pkg/sim"
	"github.com/mmp/evtolsim/pkg/stats"
)

// Run validates c, builds a fleet and RNG from it, and drives a full
// simulation to completion, returning the accumulated statistics. lg
// may be nil.
func Run(c Config, lg *log.Logger) (*stats.FleetStats, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New()
	rng.Seed(c.RNGSeed)

	aircraft := Build(c, &rng)
	lg.Infof("built fleet of %d aircraft, composition=%s", len(aircraft), c.Composition)

	s := sim.New(aircraft, c.NumChargers, c.Horizon(), &rng, lg)
	return s.Run(), nil
}
