// Package config handles viewer and generator configuration loading.
package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Scene names accepted by SceneConfig.Name.
const (
	SceneHighway = "highway"
	SceneGallery = "gallery"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Traffic  TrafficConfig  `yaml:"traffic" toml:"traffic"`
	Gallery  GalleryConfig  `yaml:"gallery" toml:"gallery"`
	Car      CarConfig      `yaml:"car" toml:"car"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width" toml:"width"`
	Height     int  `yaml:"height" toml:"height"`
	Fullscreen bool `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool `yaml:"vsync" toml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit" toml:"fps_limit"`
	Samples    int  `yaml:"samples" toml:"samples"`
	// Fisheye and FilmGrain only apply to the highway scene.
	Fisheye       bool    `yaml:"fisheye" toml:"fisheye"`
	FilmGrain     float32 `yaml:"film_grain" toml:"film_grain"`
	ScreenshotDir string  `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// SceneConfig selects the scene and holds the highway atmosphere.
type SceneConfig struct {
	Name             string  `yaml:"name" toml:"name"`
	Background       Color   `yaml:"background" toml:"background"`
	FogNear          float32 `yaml:"fog_near" toml:"fog_near"`
	FogFar           float32 `yaml:"fog_far" toml:"fog_far"`
	Ambient          Color   `yaml:"ambient" toml:"ambient"`
	AmbientIntensity float32 `yaml:"ambient_intensity" toml:"ambient_intensity"`
	Sun              Color   `yaml:"sun" toml:"sun"`
	SunIntensity     float32 `yaml:"sun_intensity" toml:"sun_intensity"`
	SunPosition      Vec3    `yaml:"sun_position" toml:"sun_position"`
}

// TrafficConfig holds the highway simulation parameters.
type TrafficConfig struct {
	RightSpeed float32 `yaml:"right_speed" toml:"right_speed"`
	LeftSpeed  float32 `yaml:"left_speed" toml:"left_speed"`
	LaneOffset float32 `yaml:"lane_offset" toml:"lane_offset"`
	SpawnX     float32 `yaml:"spawn_x" toml:"spawn_x"`
	Spacing    float32 `yaml:"spacing" toml:"spacing"`
	Despawn    float32 `yaml:"despawn" toml:"despawn"`
	HeroStart  Vec3    `yaml:"hero_start" toml:"hero_start"`
	HeroSpeed  float32 `yaml:"hero_speed" toml:"hero_speed"`
	HeroLights bool    `yaml:"hero_lights" toml:"hero_lights"`
	FOV        float32 `yaml:"fov" toml:"fov"`
}

// GalleryConfig holds the car grid parameters.
type GalleryConfig struct {
	Columns    int     `yaml:"columns" toml:"columns"`
	Rows       int     `yaml:"rows" toml:"rows"`
	SpacingX   float32 `yaml:"spacing_x" toml:"spacing_x"`
	SpacingY   float32 `yaml:"spacing_y" toml:"spacing_y"`
	SpinSpeed  float32 `yaml:"spin_speed" toml:"spin_speed"`
	Background Color   `yaml:"background" toml:"background"`
	FOV        float32 `yaml:"fov" toml:"fov"`
}

// CarConfig holds generator settings.
type CarConfig struct {
	Roof      string `yaml:"roof" toml:"roof"`
	Trim      string `yaml:"trim" toml:"trim"`
	UnderBody bool   `yaml:"under_body" toml:"under_body"`
	// MaxSkeletonAttempts bounds redraws of invalid profiles.
	MaxSkeletonAttempts int `yaml:"max_skeleton_attempts" toml:"max_skeleton_attempts"`
	// MaxSamplerAttempts bounds truncated-distribution rejection loops.
	MaxSamplerAttempts int `yaml:"max_sampler_attempts" toml:"max_sampler_attempts"`
	// Seed makes generation reproducible; 0 uses the global source.
	Seed uint64 `yaml:"seed" toml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			FPSLimit:      0,
			Samples:       4,
			Fisheye:       true,
			FilmGrain:     0.2,
			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			Name:             SceneHighway,
			Background:       MustHex("#348868"),
			FogNear:          45,
			FogFar:           50,
			Ambient:          MustHex("#404040"),
			AmbientIntensity: 0.5,
			Sun:              MustHex("#ffffff"),
			SunIntensity:     0.5,
			SunPosition:      Vec3{0, 4, -2.8},
		},
		Traffic: TrafficConfig{
			RightSpeed: 6,
			LeftSpeed:  7.2,
			LaneOffset: 2,
			SpawnX:     50,
			Spacing:    9,
			Despawn:    100,
			HeroStart:  Vec3{9, 0, -5},
			HeroSpeed:  6,
			HeroLights: true,
			FOV:        100,
		},
		Gallery: GalleryConfig{
			Columns:    3,
			Rows:       3,
			SpacingX:   5,
			SpacingY:   3,
			SpinSpeed:  0.6,
			Background: MustHex("#aaaaaa"),
			FOV:        40,
		},
		Car: CarConfig{
			Roof:                "p4p6",
			Trim:                "fixtures",
			UnderBody:           true,
			MaxSkeletonAttempts: 64,
			MaxSamplerAttempts:  100000,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FilmGrain < 0 || c.Graphics.FilmGrain > 1 {
		errs = append(errs, fmt.Errorf("graphics: film_grain %g outside [0, 1]", c.Graphics.FilmGrain))
	}
	switch c.Scene.Name {
	case SceneHighway, SceneGallery:
	default:
		errs = append(errs, fmt.Errorf("scene: unknown name %q", c.Scene.Name))
	}
	if c.Scene.FogFar > 0 && c.Scene.FogNear > c.Scene.FogFar {
		errs = append(errs, fmt.Errorf("scene: fog_near %g beyond fog_far %g", c.Scene.FogNear, c.Scene.FogFar))
	}
	if c.Traffic.Spacing <= 0 || c.Traffic.Despawn <= 0 {
		errs = append(errs, errors.New("traffic: spacing and despawn must be positive"))
	}
	if c.Gallery.Columns <= 0 || c.Gallery.Rows <= 0 {
		errs = append(errs, fmt.Errorf("gallery: grid %dx%d must be positive", c.Gallery.Columns, c.Gallery.Rows))
	}
	switch c.Car.Roof {
	case "p4p6", "p3p5":
	default:
		errs = append(errs, fmt.Errorf("car: unknown roof preset %q", c.Car.Roof))
	}
	switch c.Car.Trim {
	case "fixtures", "none":
	default:
		errs = append(errs, fmt.Errorf("car: unknown trim %q", c.Car.Trim))
	}
	return errors.Join(errs...)
}

// Color is a color stored as a "#rrggbb" string in config files.
type Color struct {
	colorful.Color
}

// MustHex parses a "#rrggbb" literal and panics on malformed input.
func MustHex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return Color{c}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := colorful.Hex(string(text))
	if err != nil {
		return fmt.Errorf("color %q: %w", text, err)
	}
	c.Color = parsed
	return nil
}

// Vec3 is an [x, y, z] triple.
type Vec3 [3]float32
