package scene

import (
	"fmt"
	"strings"

	"github.com/joe-loach/kerrbhy/pkg/ode"
)

// Features is a bitset of runtime render features
type Features uint32

const (
	DiskSDF Features = 1 << iota
	DiskVolume
	SkyProcedural
	AntiAlias
	RK4
	Adaptive
	Bloom
)

// featureNames is ordered by bit so String output is stable
var featureNames = []struct {
	flag Features
	name string
}{
	{DiskSDF, "disk-sdf"},
	{DiskVolume, "disk-vol"},
	{SkyProcedural, "sky-proc"},
	{AntiAlias, "aa"},
	{RK4, "rk4"},
	{Adaptive, "adaptive"},
	{Bloom, "bloom"},
}

// AllFeatures is every defined flag
const AllFeatures = DiskSDF | DiskVolume | SkyProcedural | AntiAlias | RK4 | Adaptive | Bloom

// Has reports whether every flag in f is set
func (fs Features) Has(f Features) bool {
	return fs&f == f
}

func (fs Features) String() string {
	var names []string
	for _, fn := range featureNames {
		if fs.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	if unknown := fs &^ AllFeatures; unknown != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(unknown)))
	}
	return strings.Join(names, ",")
}

// ParseFeatures parses a comma separated list of feature names such as
// "disk-vol,rk4,aa". Whitespace and empty entries are ignored.
func ParseFeatures(s string) (Features, error) {
	var fs Features
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		found := false
		for _, fn := range featureNames {
			if fn.name == part {
				fs |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown feature %q", ErrInvalidConfig, part)
		}
	}
	return fs, nil
}

// DiskMode selects which disk model the kernel evaluates
type DiskMode int

const (
	NoDisk DiskMode = iota
	VolumetricDisk
	SDFDisk
)

// SkyMode selects how escaped rays are coloured
type SkyMode int

const (
	TextureSky SkyMode = iota
	ProceduralSky
)

// Mode is the feature set resolved into mutually exclusive choices. It is
// computed once per frame so the kernel never re-checks flag precedence.
type Mode struct {
	Disk      DiskMode
	Sky       SkyMode
	Method    ode.Method
	AntiAlias bool
	Bloom     bool
}

// Resolve picks one option per axis. A volumetric disk wins over an SDF
// disk, and RK4 wins over adaptive stepping; with neither, Euler is used.
func (fs Features) Resolve() Mode {
	m := Mode{
		AntiAlias: fs.Has(AntiAlias),
		Bloom:     fs.Has(Bloom),
	}

	switch {
	case fs.Has(DiskVolume):
		m.Disk = VolumetricDisk
	case fs.Has(DiskSDF):
		m.Disk = SDFDisk
	}

	if fs.Has(SkyProcedural) {
		m.Sky = ProceduralSky
	}

	switch {
	case fs.Has(RK4):
		m.Method = ode.MethodRK4
	case fs.Has(Adaptive):
		m.Method = ode.MethodAdaptive
	default:
		m.Method = ode.MethodEuler
	}

	return m
}
