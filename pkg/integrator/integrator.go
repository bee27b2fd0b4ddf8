// Package integrator marches light rays through the black hole's field,
// gathering disk emission along the way and resolving escaped rays against
// the sky.
package integrator

import (
	"fmt"

	"github.com/joe-loach/kerrbhy/pkg/core"
)

// Integrator computes the radiance carried back along a camera ray
type Integrator interface {
	March(ray core.Ray, sampler core.Sampler) Result
}

// Outcome is how a march terminated
type Outcome int

const (
	// OutcomeCaptured means the ray crossed the event horizon
	OutcomeCaptured Outcome = iota
	// OutcomeEscaped means the ray left the skybox and picked up the sky
	OutcomeEscaped
	// OutcomeDisk means the ray hit the solid disk surface
	OutcomeDisk
	// OutcomeDiscarded means the ray scattered too often; its colour is the sentinel
	OutcomeDiscarded
	// OutcomeExhausted means the step budget ran out; the sky is still sampled
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCaptured:
		return "captured"
	case OutcomeEscaped:
		return "escaped"
	case OutcomeDisk:
		return "disk"
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the radiance of one sample
type Result struct {
	Color   core.Vec3
	Outcome Outcome
	Steps   int // integration steps taken
}

// Valid reports whether the sample can be averaged into a pixel
func (r Result) Valid() bool {
	return r.Color.Extend(1).IsValidColor()
}

// Discard is the sentinel colour for samples that must not be averaged
var Discard = core.NewVec3(-1, -1, -1)
