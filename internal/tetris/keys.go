package tetris

import (
	"errors"
	"fmt"
)

// Action is what a key does to the game.
type Action int

const (
	ActionLeft Action = iota
	ActionRotate
	ActionReverseRotate
	ActionRight
	ActionDrop
	ActionPause
	ActionQuit
	ActionRestart
	ActionNone
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRotate:
		return "rotate"
	case ActionReverseRotate:
		return "reverse rotate"
	case ActionRight:
		return "right"
	case ActionDrop:
		return "drop"
	case ActionPause:
		return "pause"
	case ActionQuit:
		return "quit"
	case ActionRestart:
		return "restart"
	default:
		return "none"
	}
}

// Tick is the reserved key value delivered when the gravity timer fires.
const Tick rune = -1

// DefaultKeys binds, in order: left, rotate, reverse rotate, right, drop,
// pause, quit, restart.
const DefaultKeys = "hjkl pqr"

var (
	ErrKeymapLength    = errors.New("key table must have exactly 8 characters")
	ErrKeymapDuplicate = errors.New("key table binds a character twice")
)

// Keymap maps each action, by index, to the character that triggers it.
type Keymap [ActionNone]rune

func DefaultKeymap() Keymap {
	k, _ := ParseKeymap(DefaultKeys)
	return k
}

// ParseKeymap reads an 8-character action table. Each character may be
// bound only once.
func ParseKeymap(s string) (Keymap, error) {
	var k Keymap
	runes := []rune(s)
	if len(runes) != len(k) {
		return k, fmt.Errorf("%w: got %d in %q", ErrKeymapLength, len(runes), s)
	}
	for i, r := range runes {
		for j := 0; j < i; j++ {
			if runes[j] == r {
				return Keymap{}, fmt.Errorf("%w: %q for %s and %s", ErrKeymapDuplicate, r, Action(j), Action(i))
			}
		}
	}
	copy(k[:], runes)
	return k, nil
}

// Action returns the action bound to key, or ActionNone.
func (k Keymap) Action(key rune) Action {
	for i, r := range k {
		if r == key {
			return Action(i)
		}
	}
	return ActionNone
}

// Key returns the character bound to a.
func (k Keymap) Key(a Action) rune {
	if a < 0 || a >= ActionNone {
		return 0
	}
	return k[a]
}

func (k Keymap) String() string {
	return string(k[:])
}
