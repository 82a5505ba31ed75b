// Package car generates randomized low-poly cars.
//
// A car is described by an eight-point side profile whose steps are drawn
// from truncated skew-normal distributions (see Prior). The profile is
// sheared to sit on its wheels, mirrored, and skinned with a fixed panel
// table. Wheels, light fixtures and optional spot lights are attached under
// one root node together with a "driver" anchor for camera rigs.
package car

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/autobahn/internal/engine/geometry"
	"github.com/Faultbox/autobahn/internal/logger"
	"github.com/Faultbox/autobahn/internal/random"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

// Fixed colors.
const (
	TireColor          = 0x222222
	HeadlightFixture   = 0xffffff
	TaillightFixture   = 0xff4444
	HeadlightBeamColor = 0xffffaa
	TaillightBeamColor = 0xff4444
)

// DriverAnchorName names the node that marks the driver's eye point.
const DriverAnchorName = "driver"

const (
	// wheelSegments is the radial resolution of the tires.
	wheelSegments = 16
	// minWheelSpace is the smallest usable wheel radius bound. Lower bodies
	// are redrawn rather than fitted with vanishing wheels.
	minWheelSpace = 0.1
)

// New builds a car with the process-wide random source.
func New(opts Options) (*Composite, error) {
	return Build(random.New(random.Global()), opts)
}

// Build samples a profile and wheels from s and assembles the car.
//
// Profiles that violate a shape invariant are redrawn up to
// opts.MaxSkeletonAttempts times before failing with
// random.ErrSamplingExhausted. random.ErrInvalidRange means the prior holds
// an empty interval and is returned immediately.
func Build(s *random.Sampler, opts Options) (*Composite, error) {
	prior := opts.prior()

	var (
		skel    Skeleton
		wheels  Wheels
		lastErr error
		ok      bool
	)
	attempts := opts.attempts()
	for i := 0; i < attempts; i++ {
		var err error
		skel, wheels, err = drawProfile(s, prior)
		if err == nil {
			ok = true
			break
		}
		if !errors.Is(err, ErrInvalidSkeleton) {
			return nil, err
		}
		lastErr = err
		logger.Debug("redrawing car profile", zap.Int("attempt", i+1), zap.Error(err))
	}
	if !ok {
		return nil, fmt.Errorf("car: no valid profile after %d attempts (last: %v): %w",
			attempts, lastErr, random.ErrSamplingExhausted)
	}

	c := assemble(skel, wheels, scene.Hex(s.Uint24()), opts)
	if ce := logger.Log.Check(zap.DebugLevel, "car built"); ce != nil {
		sum := Describe(c)
		ce.Write(
			zap.String("color", sum.Color),
			zap.Float32("length", sum.Length),
			zap.Float32("height", sum.Height),
			zap.Float32("wheelbase", sum.Wheelbase),
			zap.Bool("lights", opts.WithLights),
		)
	}
	return c, nil
}

// drawProfile draws one skeleton with its wheels, sheared and recentered.
func drawProfile(s *random.Sampler, p *Prior) (Skeleton, Wheels, error) {
	d, err := p.sampleDeltas(s)
	if err != nil {
		return Skeleton{}, Wheels{}, err
	}
	skel := accumulate(d)

	hood, trunk := float64(skel.HoodHeight()), float64(skel.TrunkHeight())
	wheelMax := p.WheelClearance * min(hood, trunk)
	if wheelMax < minWheelSpace {
		return skel, Wheels{}, fmt.Errorf("%w: no room for wheels (hood %.3f, trunk %.3f)", ErrInvalidSkeleton, hood, trunk)
	}

	fr := p.FrontRadius
	fr.Min, fr.Max = wheelMax/2, wheelMax
	front, err := fr.Sample(s)
	if err != nil {
		return skel, Wheels{}, fmt.Errorf("sampling front radius: %w", err)
	}

	// The rear wheel may only grow, and must still fit under the trunk.
	rear := front
	rr := p.RearRadius
	rr.Min, rr.Max = front, p.WheelClearance*trunk
	if rr.Min < rr.Max {
		if rear, err = rr.Sample(s); err != nil {
			return skel, Wheels{}, fmt.Errorf("sampling rear radius: %w", err)
		}
	}

	frontWidth, err := p.FrontWidth.Sample(s)
	if err != nil {
		return skel, Wheels{}, fmt.Errorf("sampling front width: %w", err)
	}
	rearWidth := frontWidth
	rw := p.RearWidth
	rw.Loc, rw.Min = frontWidth, frontWidth
	if rw.Min < rw.Max {
		if rearWidth, err = rw.Sample(s); err != nil {
			return skel, Wheels{}, fmt.Errorf("sampling rear width: %w", err)
		}
	}

	w := Wheels{
		FrontRadius: float32(front),
		RearRadius:  float32(rear),
		FrontWidth:  float32(frontWidth),
		RearWidth:   float32(rearWidth),
		FrontCenter: math.V3(skel[P1].X+p.FrontInset, 0, 0),
		RearCenter:  math.V3(skel[P8].X-p.RearInset, float32(rear-front), 0),
	}
	if w.RearCenter.X <= w.FrontCenter.X {
		return skel, w, fmt.Errorf("%w: body %.3f too short for wheel insets", ErrInvalidSkeleton, skel.Length())
	}

	skel.shear(w)
	skel.recenter(&w)
	if err := skel.Validate(w); err != nil {
		return skel, w, err
	}
	return skel, w, nil
}

// assemble creates the scene nodes for a validated profile.
func assemble(skel Skeleton, w Wheels, color colorful.Color, opts Options) *Composite {
	mirror := skel.Mirror()

	c := &Composite{
		Root:          scene.NewNode("car"),
		Body:          scene.NewNode("body"),
		Skeleton:      skel,
		Mirror:        mirror,
		WheelGeometry: w,
		Color:         color,
		Options:       opts,
	}

	bodyMat := scene.NewMaterial(color)
	bodyMat.Specular = color
	bodyMat.DoubleSided = true
	c.Shell = scene.NewMeshNode("shell", &scene.Mesh{
		Geometry:   buildShell(skel, opts.Roof, opts.UnderBody),
		Material:   bodyMat,
		CastShadow: true,
	})
	c.Body.Add(c.Shell)

	tire := scene.NewMaterial(scene.Hex(TireColor))
	for _, wh := range []struct {
		name          string
		radius, width float32
		center        math.Vec3
		z             float32
	}{
		{"wheel rear left", w.RearRadius, w.RearWidth, w.RearCenter, -1},
		{"wheel rear right", w.RearRadius, w.RearWidth, w.RearCenter, 1},
		{"wheel front left", w.FrontRadius, w.FrontWidth, w.FrontCenter, -1},
		{"wheel front right", w.FrontRadius, w.FrontWidth, w.FrontCenter, 1},
	} {
		n := scene.NewMeshNode(wh.name, &scene.Mesh{
			Geometry:   geometry.NewCylinder(wh.radius, wh.radius, wh.width, wheelSegments),
			Material:   tire,
			CastShadow: true,
		})
		// Cylinders are built along Y; the axle runs along Z.
		n.Rotation = math.V3(math.Pi/2, 0, 0)
		n.Position = math.V3(wh.center.X, wh.center.Y, wh.z)
		c.wheels = append(c.wheels, n)
		c.Body.Add(n)
	}

	if opts.Trim == TrimFixtures {
		c.addFixtures(skel, mirror)
	}
	if opts.WithLights {
		c.addLights(skel, mirror)
	}

	// Lift the body so the front tires touch y = 0.
	c.Body.Position.Y = w.FrontRadius
	c.Root.Add(c.Body)

	p3, p4, p3z := skel[P3], skel[P4], mirror[P3]
	c.anchor = scene.NewNode(DriverAnchorName)
	c.anchor.Position = math.V3(
		(p3.X+p4.X)/2,
		(p3.Y+3*p4.Y)/4+w.FrontRadius,
		(p3.Z+3*p3z.Z)/4,
	)
	c.Root.Add(c.anchor)
	return c
}

func (c *Composite) addFixtures(left, right Skeleton) {
	head := scene.NewMaterial(scene.Hex(HeadlightFixture))
	tail := scene.NewMaterial(scene.Hex(TaillightFixture))

	headY := (left[P1].Y + left[P2].Y) / 2
	tailY := (left[P7].Y + left[P8].Y) / 2
	for _, f := range []struct {
		name string
		pos  math.Vec3
		tail bool
	}{
		{"headlight fixture left", math.V3(left[P1].X-0.01, headY, left[P1].Z+0.2), false},
		{"headlight fixture right", math.V3(right[P1].X-0.01, headY, right[P1].Z-0.2), false},
		{"taillight fixture left", math.V3(left[P8].X+0.01, tailY, left[P8].Z+0.3), true},
		{"taillight fixture right", math.V3(right[P8].X+0.01, tailY, right[P8].Z-0.3), true},
	} {
		var n *scene.Node
		if f.tail {
			n = scene.NewMeshNode(f.name, &scene.Mesh{
				Geometry: geometry.NewBox(0.02, 0.12, 0.22),
				Material: tail,
			})
		} else {
			n = scene.NewMeshNode(f.name, &scene.Mesh{
				Geometry: geometry.NewCylinder(0.12, 0.12, 0.02, 8),
				Material: head,
			})
			// Disc faces forward along -X.
			n.Rotation = math.V3(0, 0, math.Pi/2)
		}
		n.Position = f.pos
		c.fixtures = append(c.fixtures, n)
		c.Body.Add(n)
	}
}

func (c *Composite) addLights(left, right Skeleton) {
	p1, p1z, p8, p8z := left[P1], right[P1], left[P8], right[P8]

	head := func() *scene.SpotLight {
		return &scene.SpotLight{
			Color:      scene.Hex(HeadlightBeamColor),
			Intensity:  1,
			Distance:   30,
			Angle:      math.Pi / 6,
			Penumbra:   0.5,
			Decay:      1,
			CastShadow: true,
		}
	}
	tail := func() *scene.SpotLight {
		return &scene.SpotLight{
			Color:      scene.Hex(TaillightBeamColor),
			Intensity:  1,
			Distance:   4,
			Angle:      math.Pi / 8,
			Penumbra:   0.5,
			Decay:      0.25,
			CastShadow: true,
		}
	}

	for _, spot := range []struct {
		name        string
		light       *scene.SpotLight
		pos, target math.Vec3
	}{
		{"headlight left", head(), p1.Add(math.V3(0, 0.2, 0.2)), p1.Add(math.V3(-0.5, 0.02, 0.2))},
		{"headlight right", head(), p1z.Add(math.V3(0, 0.2, -0.2)), p1z.Add(math.V3(-0.5, 0.02, -0.2))},
		{"taillight left", tail(), p8.Add(math.V3(0, 0.2, 0.2)), p8.Add(math.V3(1, 0.2, 0.2))},
		{"taillight right", tail(), p8z.Add(math.V3(0, 0.2, -0.2)), p8z.Add(math.V3(1, 0.2, -0.2))},
	} {
		target := scene.NewNode(spot.name + " target")
		target.Position = spot.target
		spot.light.Target = target

		n := scene.NewNode(spot.name)
		n.Position = spot.pos
		n.Light = spot.light

		c.lights = append(c.lights, n)
		c.Body.Add(n, target)
	}
}
