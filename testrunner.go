package willowmap

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptSnapshot is the overlay state captured by a "snapshot" step.
type ScriptSnapshot struct {
	Label    string
	Frame    int
	Visible  []uint32 // marker IDs in draw order
	Focus    uint32   // 0 when nothing is focused
	Dragging uint32
}

// ScriptRunner sequences injected taps, long presses, drags, and snapshots
// across frames for automated testing. Attach to a Session via
// SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	snapshots []ScriptSnapshot
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "longpress", "drag", "pan", "release", "cancel", "wait", "snapshot":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches runner to the session. It is stepped at the start
// of every Update.
func (s *Session) SetScriptRunner(runner *ScriptRunner) {
	s.runner = runner
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Snapshots returns the snapshots taken so far.
func (r *ScriptRunner) Snapshots() []ScriptSnapshot {
	return r.snapshots
}

func (r *ScriptRunner) step(s *Session) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		r.snapshots = append(r.snapshots, takeSnapshot(s, st.Label))
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "longpress":
		s.InjectLongPress(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "cancel":
		s.InjectCancel()
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pan":
		s.InjectPan(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func takeSnapshot(s *Session, label string) ScriptSnapshot {
	o := s.Overlay
	snap := ScriptSnapshot{Label: label, Frame: s.frame}
	for _, m := range o.Visible() {
		snap.Visible = append(snap.Visible, m.ID)
	}
	if f := o.Focus(); f != nil {
		snap.Focus = f.ID
	}
	if d := o.Dragging(); d != nil {
		snap.Dragging = d.ID
	}
	return snap
}
