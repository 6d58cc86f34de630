package garden

import "testing"

func buttonCenter() (float64, float64) {
	b := ButtonRect()
	return b.X + b.Width/2, b.Y + b.Height/2
}

func TestControlsClick(t *testing.T) {
	cx, cy := buttonCenter()
	tests := []struct {
		name     string
		press    [2]float64
		release  [2]float64
		disabled bool
		want     Action
	}{
		{"inside", [2]float64{cx, cy}, [2]float64{cx, cy}, false, ActionToggle},
		{"released outside", [2]float64{cx, cy}, [2]float64{10, 10}, false, ActionNone},
		{"pressed outside", [2]float64{10, 10}, [2]float64{cx, cy}, false, ActionNone},
		{"disabled", [2]float64{cx, cy}, [2]float64{cx, cy}, true, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewControls()
			c.Disabled = tt.disabled
			if a := c.pointer(tt.press[0], tt.press[1], true); a != ActionNone {
				t.Fatalf("press produced %v", a)
			}
			if a := c.pointer(tt.release[0], tt.release[1], false); a != tt.want {
				t.Errorf("release produced %v, want %v", a, tt.want)
			}
		})
	}
}

func TestControlsHeldButtonFiresOnce(t *testing.T) {
	c := NewControls()
	cx, cy := buttonCenter()
	got := 0
	for _, pressed := range []bool{true, true, true, false, false} {
		if c.pointer(cx, cy, pressed) == ActionToggle {
			got++
		}
	}
	if got != 1 {
		t.Errorf("toggles = %d, want 1", got)
	}
}

func TestControlsInjectClick(t *testing.T) {
	c := NewControls()
	cx, cy := buttonCenter()
	c.InjectClick(cx, cy)
	if c.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", c.Pending())
	}
	a, ok := c.processInjected()
	if !ok || a != ActionNone {
		t.Fatalf("first event = %v, %v", a, ok)
	}
	a, ok = c.processInjected()
	if !ok || a != ActionToggle {
		t.Fatalf("second event = %v, %v, want toggle", a, ok)
	}
	if _, ok := c.processInjected(); ok {
		t.Error("queue should be empty")
	}
}

func TestActionString(t *testing.T) {
	for a, want := range map[Action]string{
		ActionNone: "none", ActionToggle: "toggle", ActionSnapshot: "snapshot", ActionQuit: "quit",
	} {
		if a.String() != want {
			t.Errorf("%d.String() = %q, want %q", a, a.String(), want)
		}
	}
}
