package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/autobahn/internal/app/states"
	"github.com/Faultbox/autobahn/internal/engine/input"
)

// Keymap binds viewer actions to physical keys.
type Keymap map[states.Key][]sdl.Scancode

// DefaultKeymap binds A/D and the arrows to strafing, R and Space to reroll,
// F to the lens and Tab to switching scenes.
func DefaultKeymap() Keymap {
	return Keymap{
		states.KeyLeft:        {sdl.SCANCODE_A, sdl.SCANCODE_LEFT},
		states.KeyRight:       {sdl.SCANCODE_D, sdl.SCANCODE_RIGHT},
		states.KeyReroll:      {sdl.SCANCODE_R, sdl.SCANCODE_SPACE},
		states.KeyToggleLens:  {sdl.SCANCODE_F},
		states.KeySwitchScene: {sdl.SCANCODE_TAB},
	}
}

// controls adapts the SDL input state to states.Controls.
type controls struct {
	in   *input.Input
	keys Keymap
	// size reports the window size in the units of mouse positions.
	size func() (int, int)
}

func newControls(in *input.Input, keys Keymap, size func() (int, int)) *controls {
	return &controls{in: in, keys: keys, size: size}
}

func (c *controls) Held(k states.Key) bool {
	for _, code := range c.keys[k] {
		if c.in.IsKeyDown(code) {
			return true
		}
	}
	return false
}

func (c *controls) Pressed(k states.Key) bool {
	for _, code := range c.keys[k] {
		if c.in.IsKeyPressed(code) {
			return true
		}
	}
	return false
}

func (c *controls) Drag() (int, int) {
	return c.in.Drag(sdl.BUTTON_LEFT)
}

func (c *controls) Wheel() int {
	return c.in.Wheel()
}

func (c *controls) Click() (int, int, bool) {
	return c.in.Click(sdl.BUTTON_RIGHT)
}

func (c *controls) Viewport() (int, int) {
	return c.size()
}
