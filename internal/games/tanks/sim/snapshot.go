package sim

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a flat copy of the engine state for replay storage and
// determinism checks. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64  `msgpack:"tick"`
	Stage    int     `msgpack:"stage"`
	Score    float64 `msgpack:"score"`
	Lives    int     `msgpack:"lives"`
	Kills    int     `msgpack:"kills"`
	GameOver bool    `msgpack:"game_over"`
	Frozen   bool    `msgpack:"frozen"`

	// Player is 9 ints: X, Y, Dir, State, Health, Superpower, Shielded, Paralysed, MaxBullets
	Player []int `msgpack:"player"`

	// Each enemy is 8 ints: Kind, X, Y, Dir, State, Health, Carrier, Paused
	EnemyData []int `msgpack:"enemies"`

	// Each projectile is 6 ints: Side, X, Y, Dir, Power, State
	ProjectileData []int `msgpack:"projectiles"`

	// Each power-up is 3 ints: Kind, X, Y
	PowerUpData []int `msgpack:"powerups"`

	// Each tile is 3 ints: X, Y, Kind
	TileData []int `msgpack:"tiles"`
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	p := e.player
	snap := Snapshot{
		Tick:     uint64(e.ticks), //#nosec G115 -- tick count is always positive
		Stage:    e.stage,
		Score:    p.Score,
		Lives:    p.Lives,
		Kills:    e.kills,
		GameOver: e.gameOver,
		Frozen:   e.timeFreeze,
		Player: []int{
			p.Rect.X, p.Rect.Y, int(p.Dir), int(p.State), p.Health,
			p.Superpower, flag(p.Shielded), flag(p.Paralysed), p.MaxBullets,
		},
	}

	snap.EnemyData = make([]int, 0, len(e.enemies)*8)
	for _, en := range e.enemies {
		snap.EnemyData = append(snap.EnemyData,
			int(en.Kind), en.Rect.X, en.Rect.Y, int(en.Dir), int(en.State),
			en.Health, flag(en.Carrier), flag(en.Paused))
	}

	snap.ProjectileData = make([]int, 0, len(e.projectiles)*6)
	for _, pr := range e.projectiles {
		snap.ProjectileData = append(snap.ProjectileData,
			int(pr.Side), pr.Rect.X, pr.Rect.Y, int(pr.Dir), pr.Power, int(pr.State))
	}

	snap.PowerUpData = make([]int, 0, len(e.powerUps)*3)
	for _, pu := range e.powerUps {
		snap.PowerUpData = append(snap.PowerUpData, int(pu.Kind), pu.Rect.X, pu.Rect.Y)
	}

	snap.TileData = make([]int, 0, len(e.grid.tiles)*3)
	for _, t := range e.grid.tiles {
		snap.TileData = append(snap.TileData, t.Pos.X, t.Pos.Y, int(t.Kind))
	}

	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Stage) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Score)
	h = h*31 + uint64(snap.Lives)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Kills)          //#nosec G115 -- hash computation
	h = h*31 + uint64(flag(snap.GameOver)) //#nosec G115 -- hash computation
	h = h*31 + uint64(flag(snap.Frozen))   //#nosec G115 -- hash computation

	for _, data := range [][]int{snap.Player, snap.EnemyData, snap.ProjectileData, snap.PowerUpData, snap.TileData} {
		h = h*31 + uint64(len(data)) //#nosec G115 -- hash computation
		for _, v := range data {
			h = h*31 + uint64(v) //#nosec G115 -- hash computation
		}
	}

	return h
}

// Encode serializes the snapshot with msgpack.
func (snap *Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("sim: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("sim: cannot decode snapshot: %w", err)
	}
	return snap, nil
}
