package car

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/chewxy/math32"

	"github.com/Faultbox/autobahn/pkg/math"
)

// ErrInvalidSkeleton marks a draw whose skeleton or wheels break a shape
// invariant. The builder redraws on it; Validate returns it for inspection.
var ErrInvalidSkeleton = errors.New("car: invalid skeleton")

// PointID names one of the eight profile points, front to back.
type PointID int

// Profile points.
const (
	P1 PointID = iota // front bumper bottom
	P2                // hood front top
	P3                // windshield base
	P4                // roof front
	P5                // roof rear
	P6                // trunk top
	P7                // trunk rear top
	P8                // rear bumper bottom
)

// NumPoints is the number of points in one side profile.
const NumPoints = 8

func (p PointID) String() string {
	return "p" + strconv.Itoa(int(p)+1)
}

// Skeleton is one side profile of the body. After building, the profile
// sits at z < 0 and its mirror at z > 0.
type Skeleton [NumPoints]math.Vec3

// At returns the point with the given id.
func (s Skeleton) At(id PointID) math.Vec3 {
	return s[id]
}

// Mirror returns the profile reflected across z = 0.
func (s Skeleton) Mirror() Skeleton {
	var m Skeleton
	for i, p := range s {
		m[i] = p.MirrorZ()
	}
	return m
}

// Length is the bumper-to-bumper distance along x.
func (s Skeleton) Length() float32 {
	return s[P8].X - s[P1].X
}

// HoodHeight is the mean height of the hood edge.
func (s Skeleton) HoodHeight() float32 {
	return (s[P2].Y + s[P3].Y) / 2
}

// TrunkHeight is the mean height of the trunk edge.
func (s Skeleton) TrunkHeight() float32 {
	return (s[P6].Y + s[P7].Y) / 2
}

// Wheels describes both axles. Centers are in skeleton space: the front
// center sits at y = 0 and the rear center is raised by the radius
// difference so both tires touch the same ground.
type Wheels struct {
	FrontRadius float32
	RearRadius  float32
	FrontWidth  float32
	RearWidth   float32
	FrontCenter math.Vec3
	RearCenter  math.Vec3
}

// Wheelbase is the distance between the axles.
func (w Wheels) Wheelbase() float32 {
	return w.RearCenter.X - w.FrontCenter.X
}

// accumulate chains the deltas from P1 at the origin. Negative x steps are
// floored at zero so the profile never folds back on itself.
func accumulate(d deltas) Skeleton {
	steps := [...][3]float64{d.B, d.C, d.D, d.E, d.F, d.G}

	var (
		s   Skeleton
		acc [3]float64
	)
	for i, st := range steps {
		acc[0] += max(st[0], 0)
		acc[1] += st[1]
		acc[2] += st[2]
		s[i+1] = math.V3(float32(acc[0]), float32(acc[1]), float32(acc[2]))
	}
	// ΔH returns the rear bumper to ride height.
	acc[0] += max(d.HX, 0)
	s[P8] = math.V3(float32(acc[0]), s[P1].Y, float32(acc[2]))
	return s
}

// shear tilts the profile so it follows the line through both wheel centers.
func (s *Skeleton) shear(w Wheels) {
	slope := w.RearCenter.Y / (w.RearCenter.X - w.FrontCenter.X)
	for i := range s {
		s[i].Y += (s[i].X - w.FrontCenter.X) * slope
	}
}

// recenter moves the profile so x is centered on zero and the side plane
// lies at z = -1. The same offset is applied to the wheel centers.
func (s *Skeleton) recenter(w *Wheels) {
	offset := math.V3(-(s[P1].X+s[P8].X)/2, 0, -1)
	for i := range s {
		s[i] = s[i].Add(offset)
	}
	w.FrontCenter = w.FrontCenter.Add(offset)
	w.RearCenter = w.RearCenter.Add(offset)
}

// Validate checks the shape invariants of a built profile:
// x is monotone front to back, the roof points are at least as high as the
// windshield base and trunk top, the wheel centers lie strictly between the
// bumpers, and the roof stays on its own side of the centerline.
func (s Skeleton) Validate(w Wheels) error {
	for i, p := range s {
		if !p.IsFinite() {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidSkeleton, PointID(i))
		}
	}
	for i := P1; i < P8; i++ {
		if s[i].X > s[i+1].X {
			return fmt.Errorf("%w: x decreases from %s to %s", ErrInvalidSkeleton, i, i+1)
		}
	}

	roofLow := math32.Min(s[P4].Y, s[P5].Y)
	beltHigh := math32.Max(s[P3].Y, s[P6].Y)
	if roofLow < beltHigh {
		return fmt.Errorf("%w: roof %.3f below belt line %.3f", ErrInvalidSkeleton, roofLow, beltHigh)
	}

	if !(s[P1].X < w.FrontCenter.X && w.FrontCenter.X < w.RearCenter.X && w.RearCenter.X < s[P8].X) {
		return fmt.Errorf("%w: wheel centers %.3f, %.3f outside bumpers %.3f..%.3f",
			ErrInvalidSkeleton, w.FrontCenter.X, w.RearCenter.X, s[P1].X, s[P8].X)
	}
	if w.RearRadius < w.FrontRadius {
		return fmt.Errorf("%w: rear radius %.3f below front radius %.3f",
			ErrInvalidSkeleton, w.RearRadius, w.FrontRadius)
	}

	if s[P4].Z >= 0 || s[P5].Z >= 0 {
		return fmt.Errorf("%w: roof crosses the centerline", ErrInvalidSkeleton)
	}
	return nil
}
