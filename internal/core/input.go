package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // move cursor up
	ActionDown           // move cursor down
	ActionLeft           // move cursor left
	ActionRight          // move cursor right
	ActionSelect         // pick the tile under the cursor, or swap with the picked one
	ActionBack           // drop the current pick, or leave the game
	ActionHint           // show a valid move
	ActionPause          // toggle pause
	ActionRestart        // new board after game over
	ActionQuit           // leave the session
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionSelect:  "Select",
	ActionBack:    "Back",
	ActionHint:    "Hint",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
}

// String returns the action name.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// Delta returns the cursor movement for a direction action as (rows, cols).
func (a Action) Delta() (int, int) {
	switch a {
	case ActionUp:
		return -1, 0
	case ActionDown:
		return 1, 0
	case ActionLeft:
		return 0, -1
	case ActionRight:
		return 0, 1
	}
	return 0, 0
}

// InputFrame is the set of actions triggered during one tick.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.bits |= 1 << uint(a)
	}
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.bits&(1<<uint(a)) != 0
}

// Empty reports whether nothing was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
