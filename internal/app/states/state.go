// Package states implements the viewer scenes and their transitions.
package states

import (
	"github.com/Faultbox/autobahn/internal/engine/camera"
	"github.com/Faultbox/autobahn/internal/scene"
)

// State is one viewer scene (highway, gallery).
type State interface {
	// Name identifies the state in logs and the window title.
	Name() string

	// Enter builds the scene. It is called when the state becomes current.
	Enter() error

	// Exit releases everything Enter created.
	Exit() error

	// Update advances the state by dt seconds.
	Update(dt float64, in Controls) error

	// Scene and Camera are what the renderer draws this frame.
	Scene() *scene.Scene
	Camera() *camera.Perspective

	// Lens reports whether the post-processing pass applies.
	Lens() bool
}

// Manager manages state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes a pending change and updates the current state.
func (m *Manager) Update(dt float64, in Controls) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt, in)
	}
	return nil
}

// Close exits the current state.
func (m *Manager) Close() error {
	m.next = nil
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}
