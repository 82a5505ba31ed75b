// cargen is a CLI utility for sampling, measuring and exporting generated cars.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"

	"github.com/Faultbox/autobahn/internal/app/states"
	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/internal/config"
	"github.com/Faultbox/autobahn/internal/export"
	"github.com/Faultbox/autobahn/internal/logger"
	"github.com/Faultbox/autobahn/internal/random"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "sample":
		cmdSample(args)
	case "stats":
		cmdStats(args)
	case "export":
		cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cargen - random low-poly car generator

Usage:
  cargen <command> [options]

Commands:
  sample [-seed N] [-n N] [-lights] [-roof p4p6|p3p5]   Print car summaries
  stats [-n N] [-seed N] [-workers W]                  Measure many cars
  export [-format obj|stl] [-o file] [-seed N]         Write one car as a mesh

Every command accepts -config <file> and -debug.

Examples:
  cargen sample -seed 7 -n 5
  cargen stats -n 10000 -workers 8
  cargen export -format stl -o car.stl -seed 42`)
}

// common holds the flags shared by all commands.
type common struct {
	config *string
	debug  *bool
	roof   *string
	seed   *uint64
}

func commonFlags(fs *flag.FlagSet) common {
	return common{
		config: fs.String("config", "", "Path to config file"),
		debug:  fs.Bool("debug", false, "Log generator redraws"),
		roof:   fs.String("roof", "", "Roof triangulation (p4p6 or p3p5)"),
		seed:   fs.Uint64("seed", 0, "Random seed (0 = nondeterministic)"),
	}
}

// options resolves the generator settings: defaults, then the config file,
// then flags.
func (c common) options() (car.Options, config.CarConfig) {
	cfg := config.Default()
	if *c.config != "" {
		loaded, err := config.LoadFile(*c.config)
		if err != nil {
			fatalf("Error: %v", err)
		}
		cfg = loaded
	}

	level := "warn"
	if *c.debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fatalf("Logger error: %v", err)
	}

	cc := cfg.Car
	if *c.roof != "" {
		cc.Roof = *c.roof
	}
	if *c.seed != 0 {
		cc.Seed = *c.seed
	}
	opts, err := states.CarOptions(cc)
	if err != nil {
		fatalf("Error: %v", err)
	}
	return opts, cc
}

func cmdSample(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	cf := commonFlags(fs)
	count := fs.Int("n", 1, "Number of cars")
	lights := fs.Bool("lights", false, "Attach head and tail lights")
	fs.Parse(args)

	opts, cc := cf.options()
	opts.WithLights = *lights
	build := states.NewCarFactory(cc)
	defer logger.Sync()

	out := termenv.NewOutput(os.Stdout)
	for i := 0; i < *count; i++ {
		c, err := build(opts)
		if err != nil {
			fatalf("Error: %v", err)
		}
		sum := car.Describe(c)
		swatch := out.String("    ").Background(out.FromColor(c.Color))
		fmt.Printf("%s %s lights %d triangles %d\n", swatch, sum, sum.Lights, sum.Triangles)
		c.Dispose()
	}
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	cf := commonFlags(fs)
	count := fs.Int("n", 1000, "Number of cars")
	workers := fs.Int("workers", 4, "Concurrent builders")
	fs.Parse(args)

	opts, cc := cf.options()
	defer logger.Sync()

	if *count < 1 {
		fatalf("Error: -n must be positive")
	}

	sums, violations, err := sampleMany(*count, *workers, cc.Seed, opts)
	if err != nil {
		fatalf("Error: %v", err)
	}
	r := summarize(sums, violations, opts)
	r.print(os.Stdout)
	if len(r.Violations) > 0 {
		os.Exit(2)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cf := commonFlags(fs)
	format := fs.String("format", "obj", "Output format (obj or stl)")
	output := fs.String("o", "", "Output file (default car.<format>)")
	fs.Parse(args)

	f, err := export.ParseFormat(*format)
	if err != nil {
		fatalf("Error: %v", err)
	}

	opts, cc := cf.options()
	defer logger.Sync()

	src := random.Global()
	if cc.Seed != 0 {
		src = random.NewSeeded(cc.Seed)
	}
	c, err := car.Build(random.New(src, random.WithMaxAttempts(cc.MaxSamplerAttempts)), opts)
	if err != nil {
		fatalf("Error: %v", err)
	}
	defer c.Dispose()

	path := *output
	if path == "" {
		path = "car" + f.Ext()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fatalf("Error: %v", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		fatalf("Error: %v", err)
	}
	stats, err := export.Write(file, c.Root, f)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fatalf("Error: %v", err)
	}

	fmt.Printf("Car:       %s\n", car.Describe(c))
	fmt.Printf("Written:   %s (%s)\n", path, f)
	fmt.Printf("Objects:   %d\n", stats.Objects)
	fmt.Printf("Vertices:  %d\n", stats.Vertices)
	fmt.Printf("Triangles: %d\n", stats.Triangles)
}

func fatalf(format string, args ...any) {
	logger.Sync()
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
