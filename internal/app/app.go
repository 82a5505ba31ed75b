// Package app implements the viewer's main loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/autobahn/internal/app/states"
	"github.com/Faultbox/autobahn/internal/config"
	"github.com/Faultbox/autobahn/internal/engine/debug"
	"github.com/Faultbox/autobahn/internal/engine/framebuffer"
	"github.com/Faultbox/autobahn/internal/engine/input"
	"github.com/Faultbox/autobahn/internal/engine/postfx"
	"github.com/Faultbox/autobahn/internal/engine/renderer"
	"github.com/Faultbox/autobahn/internal/engine/window"
	"github.com/Faultbox/autobahn/internal/logger"
)

// Title is the window title prefix.
const Title = "Autobahn"

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	post     *postfx.Pass
	input    *input.Input
	controls *controls
	states   *states.Manager
	shots    *debug.ScreenshotCapture
	factory  states.CarFactory
	lens     bool
	shotDue  bool
}

// New creates the window, GL resources and the initial scene.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("scene", cfg.Scene.Name),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{
		cfg:     cfg,
		input:   input.New(),
		states:  states.NewManager(),
		shots:   debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "autobahn"),
		factory: states.NewCarFactory(cfg.Car),
		lens:    cfg.Graphics.Fisheye || cfg.Graphics.FilmGrain > 0,
	}
	// Window first: it creates the OpenGL context
	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	a.controls = newControls(a.input, DefaultKeymap(), a.window.GetSize)

	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.post, err = postfx.New(w, h, postfx.Config{
		Fisheye:    cfg.Graphics.Fisheye,
		FisheyeFOV: postfx.DefaultFisheyeFOV,
		Grain:      cfg.Graphics.FilmGrain,
	})
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create postfx pass: %w", err)
	}

	a.states.Change(a.stateFor(cfg.Scene.Name))

	logger.Info("viewer initialized")
	return a, nil
}

func (a *App) stateFor(name string) states.State {
	if name == config.SceneGallery {
		return states.NewGalleryState(a.cfg, a.factory)
	}
	return states.NewHighwayState(a.cfg, a.factory)
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now
		// a stalled frame (window drag, breakpoint) must not teleport traffic
		if dt > 0.1 {
			dt = 0.1
		}

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Update the current state
		if err := a.states.Update(dt, a.controls); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render and present
		a.render(float32(dt))
		if a.shotDue {
			a.shotDue = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.window.SetTitle(fmt.Sprintf("%s - %s - %d fps", Title, a.states.Current().Name(), frameCount))
			if ce := logger.Log.Check(zap.DebugLevel, "fps"); ce != nil {
				st := a.renderer.Stats()
				ce.Write(
					zap.Int("count", frameCount),
					zap.Int("draw_calls", st.DrawCalls),
					zap.Int("triangles", st.Triangles),
					zap.Int("spot_lights", st.SpotLights),
					zap.Int("resident", st.Resident),
				)
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
			a.post.Resize(w, h)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_F11:
				a.window.ToggleFullscreen()
			case sdl.SCANCODE_F12:
				a.shotDue = true
			}
		}
	}

	if a.controls.Pressed(states.KeyToggleLens) {
		a.lens = !a.lens
		logger.Info("lens toggled", zap.Bool("on", a.lens))
	}
	if a.controls.Pressed(states.KeySwitchScene) {
		next := config.SceneGallery
		if cur := a.states.Current(); cur != nil && cur.Name() == config.SceneGallery {
			next = config.SceneHighway
		}
		a.states.Change(a.stateFor(next))
	}
}

func (a *App) render(dt float32) {
	cur := a.states.Current()
	if cur == nil || cur.Scene() == nil {
		return
	}

	if a.lens && cur.Lens() {
		a.post.Begin()
		a.renderer.Render(cur.Scene(), cur.Camera())
		a.post.Present(dt)
		return
	}
	a.renderer.Render(cur.Scene(), cur.Camera())
}

func (a *App) screenshot() {
	w, h := a.window.DrawableSize()
	path, err := a.shots.CaptureFromPixels(framebuffer.ReadScreen(w, h), w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close exits the current state, releasing its GPU buffers, then tears
// down the GL resources and the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if err := a.states.Close(); err != nil {
		logger.Warn("closing state", zap.Error(err))
	}
	if a.post != nil {
		a.post.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
