// Package sim implements the tank arena simulation: the interval scheduler,
// the tile grid collision surface, tank/projectile/power-up state machines,
// enemy pathing and the round controller that advances them one tick at a time.
//
// The package is pure: no terminal, no wall clock, no goroutines. Callers supply
// elapsed time through the tick rate and read back score and termination state.
package sim

import "github.com/vovakirdan/tui-tanks/internal/core"

// Arena geometry in pixels.
const (
	TileSize    = 16
	GridSize    = 26 // tiles per side
	ArenaSize   = TileSize * GridSize
	TankSize    = 26
	PowerUpSize = 32
)

// EntityID is a stable handle into the engine's entity tables.
// Zero never names a live entity.
type EntityID uint64

// Direction is a facing or travel direction.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the (dx, dy) of moving step pixels in this direction.
func (d Direction) Delta(step int) (int, int) {
	switch d {
	case DirUp:
		return 0, -step
	case DirRight:
		return step, 0
	case DirDown:
		return 0, step
	default:
		return -step, 0
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Side tells friend from foe.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// TankState is the lifecycle state shared by the player and enemies.
type TankState int

const (
	TankSpawning TankState = iota
	TankAlive
	TankExploding
	TankDead
)

// String returns the state name.
func (s TankState) String() string {
	switch s {
	case TankSpawning:
		return "spawning"
	case TankAlive:
		return "alive"
	case TankExploding:
		return "exploding"
	case TankDead:
		return "dead"
	default:
		return "unknown"
	}
}

// outOfArena reports whether r pokes past the arena edge in direction d.
func outOfArena(r core.Rect, d Direction) bool {
	switch d {
	case DirUp:
		return r.Y < 0
	case DirRight:
		return r.X > ArenaSize-r.W
	case DirDown:
		return r.Y > ArenaSize-r.H
	default:
		return r.X < 0
	}
}
