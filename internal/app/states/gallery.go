package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/autobahn/internal/config"
	"github.com/Faultbox/autobahn/internal/engine/camera"
	"github.com/Faultbox/autobahn/internal/engine/picking"
	"github.com/Faultbox/autobahn/internal/gallery"
	"github.com/Faultbox/autobahn/internal/logger"
	"github.com/Faultbox/autobahn/internal/scene"
)

// GalleryState shows a grid of spinning cars that can be rerolled.
type GalleryState struct {
	cfg     *config.Config
	factory CarFactory

	gallery *gallery.Gallery
	rerolls int
}

// NewGalleryState creates the state. Nothing is built until Enter.
func NewGalleryState(cfg *config.Config, factory CarFactory) *GalleryState {
	return &GalleryState{cfg: cfg, factory: factory}
}

// Name implements State.
func (s *GalleryState) Name() string { return config.SceneGallery }

// Enter fills the grid.
func (s *GalleryState) Enter() error {
	gc, err := GalleryConfig(s.cfg)
	if err != nil {
		return err
	}
	s.gallery, err = gallery.New(gc, gallery.Factory(s.factory))
	if err != nil {
		return fmt.Errorf("entering gallery: %w", err)
	}
	logger.Info("entering gallery", zap.Int("cars", len(s.gallery.Cars)))
	return nil
}

// Exit disposes every car.
func (s *GalleryState) Exit() error {
	if s.gallery == nil {
		return nil
	}
	s.gallery.Dispose()
	s.gallery = nil
	return nil
}

// Update spins the cars, rerolls the grid or a clicked car and orbits the
// camera.
func (s *GalleryState) Update(dt float64, in Controls) error {
	if in.Pressed(KeyReroll) {
		if err := s.gallery.Reroll(); err != nil {
			return err
		}
		s.rerolls++
		logger.Debug("gallery rerolled", zap.Int("rerolls", s.rerolls))
	}
	if x, y, ok := in.Click(); ok {
		w, h := in.Viewport()
		r := picking.CameraRay(s.gallery.Camera, x, y, w, h)
		if i := s.gallery.Pick(r); i >= 0 {
			if err := s.gallery.RerollAt(i); err != nil {
				return err
			}
			logger.Debug("gallery car rerolled", zap.Int("slot", i))
		}
	}

	if dx, dy := in.Drag(); dx != 0 || dy != 0 {
		s.gallery.Orbit.HandleDrag(float32(dx), float32(dy))
	}
	if w := in.Wheel(); w != 0 {
		s.gallery.Orbit.HandleZoom(float32(w))
	}
	s.gallery.Orbit.Apply(s.gallery.Camera)

	s.gallery.Update(float32(dt))
	return nil
}

// Gallery exposes the grid.
func (s *GalleryState) Gallery() *gallery.Gallery { return s.gallery }

// Scene implements State.
func (s *GalleryState) Scene() *scene.Scene { return s.gallery.Scene }

// Camera implements State.
func (s *GalleryState) Camera() *camera.Perspective { return s.gallery.Camera }

// Lens implements State.
func (s *GalleryState) Lens() bool { return false }
