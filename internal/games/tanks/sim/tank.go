package sim

import (
	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Tank holds the state shared by the player and enemies. Side is the variant
// discriminant; variant payloads live in Player and Enemy.
type Tank struct {
	ID         EntityID
	Side       Side
	Rect       core.Rect
	Dir        Direction
	Health     int // dies below 1
	Speed      int // px per tick
	State      TankState
	Paralysed  bool // cannot move, can still turn and fire
	Paused     bool // cannot do anything
	Shielded   bool // absorbs every projectile
	Superpower int  // 0-3
	MaxBullets int  // concurrent active projectiles
	Carrier    bool // drops a power-up when destroyed

	SpawnFrame  int // spawn animation frame, 0 or 1
	ShieldFrame int // shield animation frame, 0 or 1

	// Explosion is set while the tank is Exploding.
	Explosion *Transient
}

// Live reports whether the tank is on the field (spawning or alive).
func (t *Tank) Live() bool {
	return t.State == TankSpawning || t.State == TankAlive
}

// rotate turns the tank. With snap set the tank's corner is pulled onto the
// 8px lattice (offset 3) when it is within 5px of it, which keeps tanks
// aligned with tile gaps after turning.
func (t *Tank) rotate(d Direction, snap bool) {
	t.Dir = d
	if !snap {
		return
	}
	nx := core.Nearest(t.Rect.X, TileSize/2) + 3
	ny := core.Nearest(t.Rect.Y, TileSize/2) + 3
	if core.Abs(t.Rect.X-nx) < 5 {
		t.Rect.X = nx
	}
	if core.Abs(t.Rect.Y-ny) < 5 {
		t.Rect.Y = ny
	}
}

// finishExplosion moves an Exploding tank to Dead once its explosion ends.
func (t *Tank) finishExplosion() {
	if t.State == TankExploding && (t.Explosion == nil || !t.Explosion.Active) {
		t.State = TankDead
		t.Explosion = nil
	}
}

// muzzle returns the spawn rectangle of a projectile fired from r facing d.
func muzzle(r core.Rect, d Direction) core.Rect {
	switch d {
	case DirUp:
		return core.NewRect(r.X+11, r.Y-8, 6, 8)
	case DirRight:
		return core.NewRect(r.X+26, r.Y+11, 8, 6)
	case DirDown:
		return core.NewRect(r.X+11, r.Y+26, 6, 8)
	default:
		return core.NewRect(r.X-8, r.Y+11, 8, 6)
	}
}

// Player is the user-controlled tank.
type Player struct {
	Tank
	Lives    int
	Score    float64 // cumulative, may go negative
	StartPos core.Point
	StartDir Direction

	pending        EntityID // power-up picked up this tick
	shieldFlicker  Token
	shieldExpiry   Token
	paralysisToken Token
}

func newPlayer(id EntityID, cfg config.TanksConfig) *Player {
	start := core.Point{X: cfg.Player.StartX, Y: cfg.Player.StartY}
	return &Player{
		Tank: Tank{
			ID:         id,
			Side:       SidePlayer,
			Rect:       core.NewRect(start.X, start.Y, TankSize, TankSize),
			Dir:        DirUp,
			Health:     cfg.Player.Health,
			Speed:      cfg.Player.Speed,
			State:      TankAlive,
			MaxBullets: 1,
		},
		Lives:    cfg.Player.Lives,
		StartPos: start,
		StartDir: DirUp,
	}
}

// reset puts the player back at the start position, alive and unhurt.
func (p *Player) reset(cfg config.TanksConfig, keepPower bool) {
	p.Dir = p.StartDir
	p.Rect = p.Rect.At(p.StartPos)
	if !keepPower {
		p.Superpower = 0
		p.MaxBullets = 1
	}
	p.Health = cfg.Player.Health
	p.Speed = cfg.Player.Speed
	p.Paralysed = false
	p.Paused = false
	p.State = TankAlive
	p.Explosion = nil
	p.pending = 0
}

// EnemyKind is the fixed archetype of an enemy tank.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyFast
	EnemyPower
	EnemyArmor
)

// String returns the enemy kind name.
func (k EnemyKind) String() string {
	switch k {
	case EnemyBasic:
		return "basic"
	case EnemyFast:
		return "fast"
	case EnemyPower:
		return "power"
	case EnemyArmor:
		return "armor"
	default:
		return "unknown"
	}
}

func enemyStats(cfg config.TanksEnemies, k EnemyKind) config.EnemyStats {
	switch k {
	case EnemyFast:
		return cfg.Fast
	case EnemyPower:
		return cfg.Power
	case EnemyArmor:
		return cfg.Armor
	default:
		return cfg.Basic
	}
}

// Enemy is an AI-driven tank following a waypoint queue.
type Enemy struct {
	Tank
	Kind EnemyKind

	path      []core.Point
	fireToken Token
}

// Waypoints returns the number of queued waypoints.
func (en *Enemy) Waypoints() int {
	return len(en.path)
}
