// pkg/sim/errors.go

package sim

import "errors"

// These describe conditions the spec calls programmer bugs: they can
// only arise if the kernel's own bookkeeping is wrong, never from valid
// configuration or input. The kernel panics with these rather than
// returning them, matching the teacher's treatment of invariant
// violations as abort-worthy.
var (
	errQueuePromotionFailed = errors.New("sim: queue promotion failed to acquire a just-freed slot")
	errMissingStartTime     = errors.New("sim: event fired for an aircraft with no recorded start time")
)
