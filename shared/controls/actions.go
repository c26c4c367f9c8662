// Package controls names the logical actions the game reacts to. Device bindings live in
// config; components and systems only ever see these ids.
package controls

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionForceTransition
	ActionToggleDebug
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionNone:            "none",
	ActionMoveLeft:        "move_left",
	ActionMoveRight:       "move_right",
	ActionMoveUp:          "move_up",
	ActionMoveDown:        "move_down",
	ActionForceTransition: "force_transition",
	ActionToggleDebug:     "toggle_debug",
}

func (a ActionID) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction maps a config name such as "move_left" back to its id.
func ParseAction(name string) (ActionID, bool) {
	for id, n := range actionNames {
		if n == name && ActionID(id) != ActionNone {
			return ActionID(id), true
		}
	}
	return ActionNone, false
}

// State is one frame of pressed actions plus the frame before it.
type State struct {
	Current  [ActionCount]bool
	Previous [ActionCount]bool
}

// Advance shifts Current into Previous and clears Current for a new poll.
func (s *State) Advance() {
	s.Previous = s.Current
	s.Current = [ActionCount]bool{}
}

func (s *State) Pressed(a ActionID) bool {
	return s.Current[a]
}

func (s *State) JustPressed(a ActionID) bool {
	return s.Current[a] && !s.Previous[a]
}

func (s *State) JustReleased(a ActionID) bool {
	return !s.Current[a] && s.Previous[a]
}
