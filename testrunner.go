package sticker

import (
	"encoding/json"
	"fmt"
	"math"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	Angle    float64 `json:"angle,omitempty"` // degrees
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Mode     string  `json:"mode,omitempty"`
	Anchor   string  `json:"anchor,omitempty"`
	Frames   int     `json:"frames,omitempty"`

	scale  ScaleMode
	anchor AnchorPosition
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, editor commands, and snapshots across
// frames for automated testing. Attach to an Engine via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Engine via SetTestRunner.
//
// Supported actions: snapshot, click, drag, pinch, wait, undo, redo,
// scale, position, canvas.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		var err error
		switch st.Action {
		case "scale":
			st.scale, err = ParseScaleMode(st.Mode)
		case "position":
			st.anchor, err = ParseAnchor(st.Anchor)
		case "canvas":
			if st.Width <= 0 || st.Height <= 0 {
				err = ErrInvalidCanvas
			}
		case "snapshot", "click", "drag", "pinch", "wait", "undo", "redo":
		default:
			err = fmt.Errorf("unknown action %q", st.Action)
		}
		if err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the engine. The runner advances at
// the start of every Update.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Engine.Update.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
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
		e.Snapshot(st.Label)
	case "click":
		e.InjectClick(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "pinch":
		e.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.Angle*math.Pi/180, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "undo":
		e.Undo()
	case "redo":
		e.Redo()
	case "scale":
		_ = e.SetScale(st.scale)
	case "position":
		_ = e.SetPosition(st.anchor)
	case "canvas":
		_ = e.SetCanvasSize(st.Width, st.Height)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
