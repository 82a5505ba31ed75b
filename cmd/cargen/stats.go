package main

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/internal/random"
)

// series accumulates min, max and mean of one measurement.
type series struct {
	name     string
	min, max float64
	sum      float64
	n        int
}

func newSeries(name string) *series {
	return &series{name: name, min: math.Inf(1), max: math.Inf(-1)}
}

func (s *series) add(v float32) {
	f := float64(v)
	s.min = math.Min(s.min, f)
	s.max = math.Max(s.max, f)
	s.sum += f
	s.n++
}

func (s *series) mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sum / float64(s.n)
}

// report is the outcome of a stats run.
type report struct {
	Cars       int
	Series     []*series
	Violations []string
	OpenEdges  int
}

// sampleMany builds n cars on up to workers goroutines. With a non-zero seed
// worker w draws from seed+w and builds cars w, w+workers, ..., so a run is
// reproducible for a fixed seed and worker count.
func sampleMany(n, workers int, seed uint64, opts car.Options) ([]car.Summary, []string, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = max(n, 1)
	}

	sums := make([]car.Summary, n)
	bad := make([]string, n)

	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			src := random.Global()
			if seed != 0 {
				src = random.NewSeeded(seed + uint64(w))
			}
			s := random.New(src)
			for i := w; i < n; i += workers {
				c, err := car.Build(s, opts)
				if err != nil {
					return fmt.Errorf("car %d: %w", i, err)
				}
				if err := c.Skeleton.Validate(c.WheelGeometry); err != nil {
					bad[i] = fmt.Sprintf("car %d: %v", i, err)
				}
				sums[i] = car.Describe(c)
				c.Dispose()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var violations []string
	for _, v := range bad {
		if v != "" {
			violations = append(violations, v)
		}
	}
	return sums, violations, nil
}

func summarize(sums []car.Summary, violations []string, opts car.Options) report {
	r := report{
		Cars: len(sums),
		Series: []*series{
			newSeries("length"),
			newSeries("width"),
			newSeries("height"),
			newSeries("wheelbase"),
			newSeries("front radius"),
			newSeries("rear radius"),
			newSeries("front width"),
			newSeries("rear width"),
		},
		Violations: violations,
		OpenEdges:  len(car.OpenEdges(car.Triangles(car.Panels(opts.Roof, opts.UnderBody)))),
	}
	for _, s := range sums {
		for i, v := range []float32{
			s.Length, s.Width, s.Height, s.Wheelbase,
			s.FrontRadius, s.RearRadius, s.FrontWidth, s.RearWidth,
		} {
			r.Series[i].add(v)
		}
	}
	return r
}

func (r report) print(w io.Writer) {
	fmt.Fprintf(w, "Cars: %d\n\n", r.Cars)
	fmt.Fprintf(w, "  %-14s %8s %8s %8s\n", "", "min", "mean", "max")
	for _, s := range r.Series {
		fmt.Fprintf(w, "  %-14s %8.3f %8.3f %8.3f\n", s.name, s.min, s.mean(), s.max)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Open shell edges: %d\n", r.OpenEdges)
	fmt.Fprintf(w, "Invariant violations: %d\n", len(r.Violations))
	for _, v := range r.Violations {
		fmt.Fprintf(w, "  %s\n", v)
	}
}
