package garden

import (
	"encoding/json"
	"fmt"
	"os"
)

// scriptStep is a single action in a session script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"record": true, "stop": true, "toggle": true,
	"hide": true, "show": true,
	"screenshot": true, "click": true,
	"wait": true, "wait_idle": true, "quit": true,
}

// Script sequences recording commands, visibility changes, injected clicks
// and screenshots across ticks for unattended captures. Attach it to a
// Studio with SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	waitIdle  bool
	done      bool
}

// LoadScript parses a JSON script of the form {"steps": [...]}.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// ReadScript loads a script file.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return LoadScript(data)
}

// Done reports whether every step has run and nothing is pending.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one tick. Called from Studio.Tick.
func (r *Script) step(s *Studio) {
	if r.done {
		return
	}
	// Injected clicks drain before the next step.
	if s.Controls.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.waitIdle {
		if s.Capture.State() != StateIdle {
			return
		}
		r.waitIdle = false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	Logger().Debug("script step", "index", r.cursor-1, "action", st.Action)

	switch st.Action {
	case "record":
		_ = s.Record()
	case "stop":
		s.Stop()
	case "toggle":
		_ = s.Toggle()
	case "hide":
		s.SetHidden(true)
	case "show":
		s.SetHidden(false)
	case "screenshot":
		s.Snapshot(st.Label)
	case "click":
		s.Controls.InjectClick(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "wait_idle":
		r.waitIdle = s.Capture.State() != StateIdle
	case "quit":
		s.quit = true
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.waitIdle && s.Controls.Pending() == 0 {
		r.done = true
	}
}
