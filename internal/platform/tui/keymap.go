package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// gameKeys binds keys to in-game actions. Arrows and WASD both move the
// cursor.
var gameKeys = map[string]core.Action{
	"up": core.ActionUp, "w": core.ActionUp,
	"down": core.ActionDown, "s": core.ActionDown,
	"left": core.ActionLeft, "a": core.ActionLeft,
	"right": core.ActionRight, "d": core.ActionRight,
	"enter": core.ActionSelect, " ": core.ActionSelect,
	"esc": core.ActionBack, "b": core.ActionBack,
	"h": core.ActionHint, "?": core.ActionHint,
	"p": core.ActionPause,
	"r": core.ActionRestart,
	"q": core.ActionQuit, "ctrl+c": core.ActionQuit,
}

// menuKeys binds keys in the menus; j/k follow vim.
var menuKeys = map[string]MenuAction{
	"up": MenuActionUp, "w": MenuActionUp, "k": MenuActionUp,
	"down": MenuActionDown, "s": MenuActionDown, "j": MenuActionDown,
	"enter": MenuActionSelect, " ": MenuActionSelect,
	"esc": MenuActionBack, "b": MenuActionBack,
	"tab": MenuActionScoreboard,
	"q": MenuActionQuit, "ctrl+c": MenuActionQuit,
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct{}

// NewKeyMapper returns a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the action bound to msg, ActionNone if unbound, and whether
// the key quits.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := gameKeys[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// MapKeyToFrame records the key's action in frame and reports a quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a navigation action in the menu screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction returns the menu action bound to msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuKeys[msg.String()]
}
