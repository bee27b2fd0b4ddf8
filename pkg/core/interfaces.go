package core

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Sampler provides uniform random numbers in [0, 1) for stochastic sampling.
// Implementations are not safe for concurrent use; each pixel task owns one.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}
