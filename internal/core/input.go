package core

// Action represents a semantic game action, abstracted from physical key presses.
// Shells translate raw input into actions; no key codes reach the simulation.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Move paddle left
	ActionRight          // Move paddle right
	ActionRestart        // Start a fresh game (only honoured after game over)
	ActionQuit           // Leave the game loop
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Bits of the compact frame mask. Quit is never recorded.
const (
	MaskLeft uint8 = 1 << iota
	MaskRight
	MaskRestart
)

// InputFrame represents the intents triggered during one frame.
// Several actions may co-occur (e.g. both directions held).
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Mask packs the simulation-relevant actions into a bit mask.
func (f InputFrame) Mask() uint8 {
	var m uint8
	if f.Has(ActionLeft) {
		m |= MaskLeft
	}
	if f.Has(ActionRight) {
		m |= MaskRight
	}
	if f.Has(ActionRestart) {
		m |= MaskRestart
	}
	return m
}

// FrameFromMask rebuilds an input frame from a mask produced by Mask.
func FrameFromMask(m uint8) InputFrame {
	f := NewInputFrame()
	if m&MaskLeft != 0 {
		f.Set(ActionLeft)
	}
	if m&MaskRight != 0 {
		f.Set(ActionRight)
	}
	if m&MaskRestart != 0 {
		f.Set(ActionRestart)
	}
	return f
}
