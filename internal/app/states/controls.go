package states

// Key is a viewer action, independent of the physical key bound to it.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyReroll
	KeyToggleLens
	KeySwitchScene
)

// Controls is the input of one frame.
type Controls interface {
	// Held reports whether the key is down.
	Held(k Key) bool
	// Pressed reports whether the key went down this frame.
	Pressed(k Key) bool
	// Drag is the pointer motion while the primary button is held.
	Drag() (dx, dy int)
	// Wheel is the scroll amount of this frame.
	Wheel() int
	// Click is the pixel position of a secondary button press this frame.
	Click() (x, y int, ok bool)
	// Viewport is the size of the area Click positions refer to.
	Viewport() (w, h int)
}

// NoControls is a Controls with nothing pressed.
type NoControls struct{}

func (NoControls) Held(Key) bool { return false }
func (NoControls) Pressed(Key) bool { return false }
func (NoControls) Drag() (int, int) { return 0, 0 }
func (NoControls) Wheel() int { return 0 }
func (NoControls) Click() (int, int, bool) { return 0, 0, false }
func (NoControls) Viewport() (int, int) { return 1, 1 }
