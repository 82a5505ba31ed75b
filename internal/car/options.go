package car

import "fmt"

// TrimLevel selects which fixtures are attached to the body.
type TrimLevel int

const (
	// TrimFixtures adds two headlight discs and two taillight blocks.
	TrimFixtures TrimLevel = iota
	// TrimNone builds a bare body and wheels.
	TrimNone
)

func (t TrimLevel) String() string {
	switch t {
	case TrimFixtures:
		return "fixtures"
	case TrimNone:
		return "none"
	default:
		return fmt.Sprintf("TrimLevel(%d)", int(t))
	}
}

// ParseTrimLevel accepts the names returned by TrimLevel.String.
func ParseTrimLevel(s string) (TrimLevel, error) {
	switch s {
	case "fixtures", "":
		return TrimFixtures, nil
	case "none":
		return TrimNone, nil
	default:
		return 0, fmt.Errorf("unknown trim level %q (want fixtures or none)", s)
	}
}

// DefaultMaxSkeletonAttempts bounds how often an invalid profile is redrawn.
const DefaultMaxSkeletonAttempts = 64

// Options configures Build.
type Options struct {
	// WithLights attaches two headlight and two taillight spot lights.
	WithLights bool
	Trim       TrimLevel
	Roof       RoofPreset
	// UnderBody closes the shell from below.
	UnderBody bool
	// Prior overrides DefaultPrior when set.
	Prior *Prior
	// MaxSkeletonAttempts bounds redraws of invalid profiles.
	MaxSkeletonAttempts int
}

// DefaultOptions returns a lightless car with fixtures and a closed shell.
func DefaultOptions() Options {
	return Options{
		Trim:                TrimFixtures,
		Roof:                RoofSplitP4P6,
		UnderBody:           true,
		MaxSkeletonAttempts: DefaultMaxSkeletonAttempts,
	}
}

func (o Options) prior() *Prior {
	if o.Prior != nil {
		return o.Prior
	}
	p := DefaultPrior()
	return &p
}

func (o Options) attempts() int {
	if o.MaxSkeletonAttempts > 0 {
		return o.MaxSkeletonAttempts
	}
	return DefaultMaxSkeletonAttempts
}
