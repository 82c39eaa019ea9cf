package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is returned by Engine.Step for actions outside 0-8.
var ErrInvalidAction = errors.New("sim: invalid action")

// Action is the discrete command accepted by Engine.Step.
type Action int

const (
	ActionFire Action = iota
	ActionUp
	ActionRight
	ActionDown
	ActionLeft
	ActionFireUp
	ActionFireRight
	ActionFireDown
	ActionFireLeft
)

// NumActions is the size of the action space.
const NumActions = 9

var actionNames = [NumActions]string{
	"fire", "up", "right", "down", "left",
	"fire+up", "fire+right", "fire+down", "fire+left",
}

// Valid reports whether a is inside the action space.
func (a Action) Valid() bool {
	return a >= 0 && a < NumActions
}

// String returns the action name.
func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Input translates the action into a per-tick command.
func (a Action) Input() (Input, error) {
	switch {
	case !a.Valid():
		return Input{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	case a == ActionFire:
		return Input{Fire: true}, nil
	case a <= ActionLeft:
		return MoveInput(Direction(a - ActionUp)), nil
	default:
		in := MoveInput(Direction(a - ActionFireUp))
		in.Fire = true
		return in, nil
	}
}

// Input is the per-tick player command. The zero Input does nothing, which
// lets interactive front ends tick the world while the player is idle.
type Input struct {
	Fire   bool
	Move   Direction
	Moving bool
}

// MoveInput returns an Input that moves (or turns) in d.
func MoveInput(d Direction) Input {
	return Input{Move: d, Moving: true}
}
