package core

import "strings"

// Action represents a semantic game action, abstracted from whatever the
// player typed. Games never see raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // left, a, h
	ActionRight          // right, d, l
	ActionUp             // up, w, k
	ActionDown           // down, s, j
	ActionRestart        // n, new, restart
	ActionQuit           // q, quit, exit
	ActionHelp           // ?, help
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
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action is one of the four slide directions.
func (a Action) IsMove() bool {
	return a >= ActionLeft && a <= ActionDown
}

// ParseAction maps a typed token to an action. Both wasd and vim-style hjkl
// bindings are accepted alongside the full words. Unknown input maps to
// ActionNone.
func ParseAction(token string) Action {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "left", "a", "h":
		return ActionLeft
	case "right", "d", "l":
		return ActionRight
	case "up", "w", "k":
		return ActionUp
	case "down", "s", "j":
		return ActionDown
	case "n", "new", "restart":
		return ActionRestart
	case "q", "quit", "exit":
		return ActionQuit
	case "?", "help":
		return ActionHelp
	}
	return ActionNone
}

// ParseActions splits a line on whitespace and parses each token, so a
// player can queue several moves at once ("l l d").
func ParseActions(line string) []Action {
	fields := strings.Fields(line)
	actions := make([]Action, 0, len(fields))
	for _, f := range fields {
		actions = append(actions, ParseAction(f))
	}
	return actions
}
