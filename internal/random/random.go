// Package random draws range-constrained scalars from a skew-normal
// distribution. Every body and wheel parameter of a procedural car comes
// from here.
package random

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// DefaultMaxAttempts bounds the rejection loop of TruncatedSkewNormal.
const DefaultMaxAttempts = 100000

var (
	// ErrInvalidRange is returned when a truncated draw is asked for an empty
	// interval (min >= max). It indicates a bad constant tuple, not bad luck.
	ErrInvalidRange = errors.New("random: invalid range")

	// ErrSamplingExhausted is returned when rejection sampling gives up after
	// the configured number of attempts.
	ErrSamplingExhausted = errors.New("random: sampling exhausted")
)

// Source yields uniform variates in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Global returns a Source backed by the process-wide generator.
// It is safe for concurrent use.
func Global() Source {
	return globalSource{}
}

// NewSeeded returns a reproducible Source. It is not safe for concurrent use.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sampler draws gaussian, skew-normal and truncated skew-normal variates.
// A Sampler is exactly as safe for concurrent use as its Source.
type Sampler struct {
	src         Source
	maxAttempts int
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithMaxAttempts sets the rejection budget of TruncatedSkewNormal.
// Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// New creates a Sampler over src. A nil src uses Global().
func New(src Source, opts ...Option) *Sampler {
	if src == nil {
		src = Global()
	}
	s := &Sampler{
		src:         src,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxAttempts returns the rejection budget.
func (s *Sampler) MaxAttempts() int {
	return s.maxAttempts
}

// Uniform returns a uniform variate in [0, 1).
func (s *Sampler) Uniform() float64 {
	return s.src.Float64()
}

// Uint24 returns a uniform integer in [0, 0xffffff], e.g. an RGB hex color.
func (s *Sampler) Uint24() uint32 {
	return uint32(s.src.Float64() * (1 << 24))
}

// nonZero draws a uniform variate in (0, 1).
func (s *Sampler) nonZero() float64 {
	for {
		if u := s.src.Float64(); u != 0 {
			return u
		}
	}
}

// Gaussian returns two independent standard normal variates using the
// Marsaglia polar method.
func (s *Sampler) Gaussian() (x, y float64) {
	var sq float64
	for {
		x = 2*s.nonZero() - 1
		y = 2*s.nonZero() - 1
		sq = x*x + y*y
		if sq < 1 && sq != 0 {
			break
		}
	}
	f := math.Sqrt(-2 * math.Log(sq) / sq)
	return x * f, y * f
}

// SkewNormal draws from a skew-normal distribution with the given location,
// scale and shape. A shape of zero is a plain normal: loc + scale*g.
func (s *Sampler) SkewNormal(loc, scale, shape float64) float64 {
	u0, v := s.Gaussian()
	return skew(loc, scale, shape, u0, v)
}

func skew(loc, scale, shape, u0, v float64) float64 {
	if shape == 0 {
		return loc + scale*u0
	}
	delta := shape / math.Sqrt(1+shape*shape)
	u1 := delta*u0 + math.Sqrt(1-delta*delta)*v
	if u0 < 0 {
		u1 = -u1
	}
	return loc + scale*u1
}

// TruncatedSkewNormal redraws SkewNormal until the value falls in [min, max].
//
// The loop gives up after MaxAttempts draws with ErrSamplingExhausted, so a
// narrow or far-off interval fails instead of spinning.
func (s *Sampler) TruncatedSkewNormal(loc, scale, min, max, shape float64) (float64, error) {
	if !(min < max) {
		return 0, fmt.Errorf("%w: min %g >= max %g", ErrInvalidRange, min, max)
	}
	for range s.maxAttempts {
		x := s.SkewNormal(loc, scale, shape)
		if x >= min && x <= max {
			return x, nil
		}
	}
	return 0, fmt.Errorf("%w: no draw in [%g, %g] after %d attempts (loc %g, scale %g, shape %g)",
		ErrSamplingExhausted, min, max, s.maxAttempts, loc, scale, shape)
}
