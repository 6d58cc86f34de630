package garden

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a user command decoded from input.
type Action uint8

const (
	ActionNone     Action = iota
	ActionToggle          // start or stop recording
	ActionSnapshot        // write a PNG of the current frame
	ActionQuit            // leave the host
)

func (a Action) String() string {
	switch a {
	case ActionToggle:
		return "toggle"
	case ActionSnapshot:
		return "snapshot"
	case ActionQuit:
		return "quit"
	}
	return "none"
}

// syntheticPointerEvent is a queued pointer sample in window coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// Controls decodes the pointer into clicks on the record button. A click
// counts only when both the press and the release land inside Button, and
// never while Disabled.
type Controls struct {
	Button   Rect
	Disabled bool

	down        bool
	pressInside bool
	injectQueue []syntheticPointerEvent
}

// NewControls returns controls for the standard control strip layout.
func NewControls() *Controls {
	return &Controls{Button: ButtonRect()}
}

// InjectPress queues a left-button press at (x, y). Queued events are
// consumed one per tick, ahead of the real mouse.
func (c *Controls) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a left-button release at (x, y).
func (c *Controls) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press and a release at the same point. Consumes two
// ticks.
func (c *Controls) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// Pending returns the number of queued synthetic events.
func (c *Controls) Pending() int { return len(c.injectQueue) }

// pointer feeds one pointer sample and reports the resulting action.
func (c *Controls) pointer(x, y float64, pressed bool) Action {
	switch {
	case pressed && !c.down:
		c.down = true
		c.pressInside = c.Button.Contains(x, y)
	case !pressed && c.down:
		c.down = false
		inside := c.pressInside && c.Button.Contains(x, y)
		c.pressInside = false
		if inside && !c.Disabled {
			return ActionToggle
		}
	}
	return ActionNone
}

// processInjected pops one synthetic event. ok is false when the queue is
// empty.
func (c *Controls) processInjected() (a Action, ok bool) {
	if len(c.injectQueue) == 0 {
		return ActionNone, false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]
	return c.pointer(evt.x, evt.y, evt.pressed), true
}

// readDevices appends the actions from this tick's mouse and keyboard
// state. Only the window host calls it.
func (c *Controls) readDevices(buf []Action) []Action {
	mx, my := ebiten.CursorPosition()
	if a := c.pointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)); a != ActionNone {
		buf = append(buf, a)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && !c.Disabled {
		buf = append(buf, ActionToggle)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		buf = append(buf, ActionSnapshot)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		buf = append(buf, ActionQuit)
	}
	return buf
}
