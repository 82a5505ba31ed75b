// Package postfx renders the scene offscreen and presents it through a
// full-screen lens pass: fisheye distortion followed by film grain.
package postfx

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/autobahn/internal/engine/framebuffer"
	"github.com/Faultbox/autobahn/internal/engine/shader"
	"github.com/Faultbox/autobahn/internal/logger"
	"github.com/Faultbox/autobahn/pkg/math"
)

//go:embed shaders/fullscreen.vert
var fullscreenVert string

//go:embed shaders/lens.frag
var lensFrag string

// DefaultFisheyeFOV is the lens field of view in radians.
const DefaultFisheyeFOV = math.Pi / 1.6

// Config selects the effects of the lens pass.
type Config struct {
	Fisheye    bool
	FisheyeFOV float32
	// Grain is the film noise intensity in [0, 1]; 0 disables it.
	Grain float32
}

// DefaultConfig returns the highway look: fisheye on, grain 0.2.
func DefaultConfig() Config {
	return Config{
		Fisheye:    true,
		FisheyeFOV: DefaultFisheyeFOV,
		Grain:      0.2,
	}
}

// Enabled reports whether the pass changes the image at all.
func (c Config) Enabled() bool {
	return c.Fisheye || c.Grain > 0
}

// Pass owns the offscreen target and the lens program.
type Pass struct {
	cfg     Config
	fb      *framebuffer.Framebuffer
	program *shader.Program
	vao     uint32
	width   int
	height  int
	time    float32
}

// New creates a pass for a drawable of the given size.
func New(width, height int, cfg Config) (*Pass, error) {
	if cfg.FisheyeFOV <= 0 {
		cfg.FisheyeFOV = DefaultFisheyeFOV
	}

	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("postfx target: %w", err)
	}

	program, err := shader.New("lens", fullscreenVert, lensFrag, nil)
	if err != nil {
		fb.Destroy()
		return nil, err
	}

	p := &Pass{cfg: cfg, fb: fb, program: program, width: width, height: height}
	// core profile refuses draws without a bound VAO
	gl.GenVertexArrays(1, &p.vao)

	logger.Info("postfx pass created",
		zap.Bool("fisheye", cfg.Fisheye),
		zap.Float32("grain", cfg.Grain),
	)
	return p, nil
}

// Config returns the active configuration.
func (p *Pass) Config() Config {
	return p.cfg
}

// SetFisheye toggles the fisheye distortion.
func (p *Pass) SetFisheye(on bool) {
	p.cfg.Fisheye = on
}

// Begin redirects rendering into the offscreen target.
func (p *Pass) Begin() {
	p.fb.Bind()
}

// Present draws the offscreen image to the default framebuffer. dt advances
// the grain pattern.
func (p *Pass) Present(dt float32) {
	p.time += dt
	p.fb.Unbind()
	gl.Viewport(0, 0, int32(p.width), int32(p.height))
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	fisheye := int32(0)
	if p.cfg.Fisheye {
		fisheye = 1
	}

	pr := p.program
	pr.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.fb.ColorTexture())
	pr.SetInt("uScene", 0)
	pr.SetInt("uFisheye", fisheye)
	pr.SetFloat("uFisheyeFOV", p.cfg.FisheyeFOV)
	pr.SetFloat("uGrain", p.cfg.Grain)
	pr.SetFloat("uTime", p.time)

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// Resize follows the drawable size.
func (p *Pass) Resize(width, height int) {
	p.width, p.height = width, height
	p.fb.Resize(width, height)
}

// Close frees all GPU resources.
func (p *Pass) Close() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	p.program.Delete()
	p.fb.Destroy()
}
