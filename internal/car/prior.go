package car

import (
	"fmt"

	"github.com/Faultbox/autobahn/internal/random"
)

// Dist is a truncated skew-normal distribution: location, scale, the closed
// interval [Min, Max] and the skew shape.
type Dist struct {
	Loc   float64
	Scale float64
	Min   float64
	Max   float64
	Shape float64
}

// Sample draws from d.
func (d Dist) Sample(s *random.Sampler) (float64, error) {
	return s.TruncatedSkewNormal(d.Loc, d.Scale, d.Min, d.Max, d.Shape)
}

// Prior holds the distributions that describe an average car. Deltas are
// named after the skeleton point they lead to (B is P1 to P2, and so on).
//
// Some bounds are derived from earlier draws and replaced at build time:
// EZ.Min = -ΔD.z, FY.Max = ΔD.y, FrontRadius.Min/Max from the hood and
// trunk heights, RearRadius.Min/Max from the front radius and trunk height,
// RearWidth.Loc/Min from the front width.
type Prior struct {
	BX, BY     Dist
	CX, CY     Dist
	DX, DY, DZ Dist
	EX, EY, EZ Dist
	FX, FY     Dist
	GX, GY     Dist
	HX         Dist

	FrontRadius Dist
	RearRadius  Dist
	FrontWidth  Dist
	RearWidth   Dist

	// FrontInset and RearInset place the wheel centers relative to P1.x and P8.x.
	FrontInset float32
	RearInset  float32
	// WheelClearance scales the hood/trunk heights into the largest radius.
	WheelClearance float64
}

// DefaultPrior returns the distributions of a typical passenger car.
func DefaultPrior() Prior {
	return Prior{
		BX: Dist{0, 0.05, -0.05, 0.1, 0.05},
		BY: Dist{0.5, 0.1, 0.3, 0.6, 0},
		CX: Dist{1, 0.5, 0, 1.7, 0},
		CY: Dist{0, 0.2, 0, 0.3, 0},
		DX: Dist{0.3, 0.3, -0.1, 0.7, 0},
		DY: Dist{0.5, 0.2, 0.35, 0.8, 0},
		DZ: Dist{0.1, 0.1, 0, 0.5, 0},
		EX: Dist{1.75, 0.5, 1, 3, 0},
		EY: Dist{0, 0.2, -0.2, 0.2, 0},
		EZ: Dist{0, 0.5, 0, 1.5, 0},
		FX: Dist{0.4, 0.2, 0, 1, -0.1},
		FY: Dist{0.5, 0.2, 0.35, 0, 0},
		GX: Dist{0.6, 0.4, 0.2, 1.7, 0},
		GY: Dist{0, 0.1, 0, 0.2, 0},
		HX: Dist{0, 0.05, -0.05, 0.1, 0.05},

		FrontRadius: Dist{Loc: 0.4, Scale: 0.2},
		RearRadius:  Dist{Loc: 0.4, Scale: 0.2},
		FrontWidth:  Dist{0.3, 0.025, 0.2, 0.35, 0},
		RearWidth:   Dist{Scale: 0.1, Max: 0.5},

		FrontInset:     0.7,
		RearInset:      0.6,
		WheelClearance: 0.9,
	}
}

// deltas holds one draw of the seven skeleton deltas.
type deltas struct {
	B, C, D, E, F, G [3]float64
	HX               float64
}

// sampleDeltas draws ΔB..ΔG and ΔH.x. ΔH.y depends on the accumulated
// points and is filled in by the caller.
func (p *Prior) sampleDeltas(s *random.Sampler) (deltas, error) {
	var (
		d   deltas
		err error
	)
	sample := func(name string, dist Dist) float64 {
		if err != nil {
			return 0
		}
		v, e := dist.Sample(s)
		if e != nil {
			err = fmt.Errorf("sampling delta %s: %w", name, e)
		}
		return v
	}

	d.B = [3]float64{sample("B.x", p.BX), sample("B.y", p.BY), 0}
	d.C = [3]float64{sample("C.x", p.CX), sample("C.y", p.CY), 0}
	d.D = [3]float64{sample("D.x", p.DX), sample("D.y", p.DY), sample("D.z", p.DZ)}

	ez := p.EZ
	ez.Min = -d.D[2]
	d.E = [3]float64{sample("E.x", p.EX), sample("E.y", p.EY), sample("E.z", ez)}

	fy := p.FY
	fy.Max = d.D[1]
	if err == nil && fy.Min >= fy.Max {
		return d, fmt.Errorf("%w: rear window drop range [%g, %g] is empty", ErrInvalidSkeleton, fy.Min, fy.Max)
	}
	// The rear window and trunk slope downward and the rear window brings
	// the roof back to the side plane.
	d.F = [3]float64{sample("F.x", p.FX), -sample("F.y", fy), -(d.D[2] + d.E[2])}
	d.G = [3]float64{sample("G.x", p.GX), -sample("G.y", p.GY), 0}
	d.HX = sample("H.x", p.HX)

	return d, err
}
