package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up", " ":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionResults
	MenuActionToggleMode
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionResults
	case "m":
		return MenuActionToggleMode
	}

	return MenuActionNone
}

// KeyTracker turns key press events into per-frame input snapshots.
//
// Terminals report presses and auto-repeats but never releases, so a
// direction counts as held for the hold window after its latest press.
// Other actions are delivered once, in the next frame after the press.
type KeyTracker struct {
	hold    time.Duration
	held    map[core.Action]time.Time
	pending core.InputFrame
}

// NewKeyTracker creates a tracker with the given hold window in seconds.
func NewKeyTracker(holdSeconds float64) *KeyTracker {
	return &KeyTracker{
		hold:    time.Duration(math.Round(holdSeconds * float64(time.Second))),
		held:    make(map[core.Action]time.Time),
		pending: core.NewInputFrame(),
	}
}

func isDirection(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		return true
	}
	return false
}

// Press records a press of a at the given time.
// Pressing one horizontal direction releases the other.
func (t *KeyTracker) Press(a core.Action, at time.Time) {
	if a == core.ActionNone {
		return
	}
	if !isDirection(a) {
		t.pending.Set(a)
		return
	}
	switch a {
	case core.ActionLeft:
		delete(t.held, core.ActionRight)
	case core.ActionRight:
		delete(t.held, core.ActionLeft)
	}
	t.held[a] = at
}

// Frame returns the input snapshot at the given time and consumes the
// pending one-shot actions.
func (t *KeyTracker) Frame(at time.Time) core.InputFrame {
	frame := t.pending.Clone()
	t.pending.Clear()
	for a, last := range t.held {
		if at.Sub(last) <= t.hold {
			frame.Set(a)
		} else {
			delete(t.held, a)
		}
	}
	return frame
}

// Reset forgets every held direction and pending action.
func (t *KeyTracker) Reset() {
	clear(t.held)
	t.pending.Clear()
}
