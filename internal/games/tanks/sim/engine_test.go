package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

type stubLevels map[int][]Tile

func (s stubLevels) Level(stage int) ([]Tile, bool) {
	tiles, ok := s[stage]
	return tiles, ok
}

// quietConfig disables enemy spawning so tests place enemies by hand.
func quietConfig() config.TanksConfig {
	cfg := config.DefaultTanksConfig()
	cfg.Enemies.MaxActive = 0
	return cfg
}

func newTestEngine(cfg config.TanksConfig, tiles ...Tile) *Engine {
	return New(cfg, stubLevels{1: tiles}, WithSeed(1))
}

// placeEnemy adds a paused enemy that neither moves nor fires.
func placeEnemy(e *Engine, kind EnemyKind, x, y int) *Enemy {
	stats := enemyStats(e.cfg.Enemies, kind)
	en := &Enemy{
		Tank: Tank{
			ID:         e.newID(),
			Side:       SideEnemy,
			Rect:       core.NewRect(x, y, TankSize, TankSize),
			Dir:        DirDown,
			Health:     stats.Health,
			Speed:      stats.Speed,
			MaxBullets: 1,
			State:      TankAlive,
			Paused:     true,
		},
		Kind: kind,
	}
	e.enemies = append(e.enemies, en)
	return en
}

func placeProjectile(e *Engine, owner EntityID, side Side, r core.Rect, dir Direction) *Projectile {
	p := &Projectile{
		ID:     e.newID(),
		Owner:  owner,
		Side:   side,
		Rect:   r,
		Dir:    dir,
		Speed:  e.cfg.Bullets.Speed,
		Power:  1,
		Damage: e.cfg.Bullets.Damage,
		State:  ProjectileActive,
	}
	e.projectiles = append(e.projectiles, p)
	return p
}

func idle(e *Engine, ticks int) {
	for range ticks {
		e.Tick(Input{})
	}
}

func TestResetStartsFreshRound(t *testing.T) {
	e := newTestEngine(config.DefaultTanksConfig(), TileAt(8, 20, TileBrick))

	p := e.Player()
	assert.Equal(t, core.Point{X: 131, Y: 387}, p.Rect.TopLeft())
	assert.Equal(t, DirUp, p.Dir)
	assert.Equal(t, 3, p.Lives)
	assert.True(t, p.Shielded)
	assert.Equal(t, 1, e.Stage())
	assert.False(t, e.IsOver())
	assert.Len(t, e.Enemies(), 1, "first enemy spawns immediately")
	assert.Equal(t, TankSpawning, e.Enemies()[0].State)
	assert.Len(t, e.Grid().Obstacles(), 2)
}

func TestResetRestoresTerrain(t *testing.T) {
	e := newTestEngine(quietConfig(), TileAt(8, 20, TileBrick))
	initial := e.Grid().Obstacles()

	_, _, err := e.Step(ActionFire)
	require.NoError(t, err)
	idle(e, 10)
	require.Len(t, e.Grid().Obstacles(), 1, "brick above the player is shot away")

	e.Reset()
	assert.Equal(t, initial, e.Grid().Obstacles())
	assert.Zero(t, e.Ticks())
	assert.Zero(t, e.Score())
}

func TestStepRejectsInvalidAction(t *testing.T) {
	e := newTestEngine(quietConfig())

	for _, a := range []Action{-1, NumActions, 42} {
		_, _, err := e.Step(a)
		assert.ErrorIs(t, err, ErrInvalidAction)
	}
	assert.Zero(t, e.Ticks())
}

func TestActionInput(t *testing.T) {
	tests := []struct {
		action Action
		want   Input
	}{
		{ActionFire, Input{Fire: true}},
		{ActionUp, MoveInput(DirUp)},
		{ActionRight, MoveInput(DirRight)},
		{ActionDown, MoveInput(DirDown)},
		{ActionLeft, MoveInput(DirLeft)},
		{ActionFireUp, Input{Fire: true, Move: DirUp, Moving: true}},
		{ActionFireLeft, Input{Fire: true, Move: DirLeft, Moving: true}},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			got, err := tt.action.Input()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlayerShotDestroysEnemy(t *testing.T) {
	e := newTestEngine(quietConfig())
	en := placeEnemy(e, EnemyBasic, 131, 300)
	rw := e.cfg.Rewards

	_, _, err := e.Step(ActionFire)
	require.NoError(t, err)
	idle(e, 3)

	assert.Equal(t, TankExploding, en.State)
	assert.Equal(t, 1, e.Kills())
	want := rw.Hit + rw.Kill - 3*rw.Miss - 4*rw.Idle
	assert.InDelta(t, want, e.Score(), 1e-9)

	idle(e, 16)
	assert.Empty(t, e.Enemies(), "explosion finishes and the enemy is reaped")
}

func TestFireUpDamagesEnemySameTick(t *testing.T) {
	e := newTestEngine(quietConfig())
	en := placeEnemy(e, EnemyArmor, 131, 351)
	rw := e.cfg.Rewards

	score, over, err := e.Step(ActionFireUp)
	require.NoError(t, err)
	assert.False(t, over)

	assert.Equal(t, 300, en.Health)
	assert.Equal(t, TankAlive, en.State)
	require.Len(t, e.Projectiles(), 1)
	assert.Equal(t, ProjectileExploding, e.Projectiles()[0].State)
	assert.InDelta(t, rw.Hit-rw.Idle, score, 1e-9)
	assert.Equal(t, 385, e.Player().Rect.Y, "the same step also drives forward")
}

func TestOpposingProjectilesClash(t *testing.T) {
	e := newTestEngine(quietConfig())
	rw := e.cfg.Rewards
	transients := len(e.Transients())

	mine := placeProjectile(e, e.Player().ID, SidePlayer, core.NewRect(142, 300, 6, 8), DirUp)
	theirs := placeProjectile(e, 999, SideEnemy, core.NewRect(142, 280, 6, 8), DirDown)
	e.Tick(Input{})

	assert.Equal(t, ProjectileRemoved, mine.State)
	assert.Equal(t, ProjectileRemoved, theirs.State)
	assert.Nil(t, mine.Explosion)
	assert.Nil(t, theirs.Explosion)
	assert.Len(t, e.Transients(), transients, "a clash leaves no explosion")
	assert.Empty(t, e.Projectiles())
	assert.InDelta(t, rw.Clash-rw.Idle, e.Score(), 1e-9)
}

func TestPlayerCannotExceedBulletCap(t *testing.T) {
	e := newTestEngine(quietConfig())

	e.Step(ActionFire)
	e.Step(ActionFire)
	assert.Len(t, e.Projectiles(), 1)

	e.player.MaxBullets = 2
	e.Step(ActionFire)
	assert.Len(t, e.Projectiles(), 2)
}

func TestShieldAbsorbsProjectiles(t *testing.T) {
	e := newTestEngine(quietConfig())
	p := e.Player()
	require.True(t, p.Shielded)

	pr := placeProjectile(e, 999, SideEnemy, core.NewRect(142, 370, 6, 8), DirDown)
	e.Tick(Input{})

	assert.Equal(t, 100, p.Health)
	assert.Equal(t, TankAlive, p.State)
	assert.Equal(t, ProjectileExploding, pr.State)
}

func TestEnemyFirePassesThroughEnemies(t *testing.T) {
	e := newTestEngine(quietConfig())
	shooter := placeEnemy(e, EnemyBasic, 200, 40)
	target := placeEnemy(e, EnemyArmor, 200, 100)

	pr := placeProjectile(e, shooter.ID, SideEnemy, core.NewRect(211, 80, 6, 8), DirDown)
	e.Tick(Input{})

	require.True(t, pr.Rect.Intersects(target.Rect))
	assert.Equal(t, 400, target.Health)
	assert.Equal(t, ProjectileActive, pr.State)
}

func TestFriendlyFireParalysesPlayer(t *testing.T) {
	e := newTestEngine(quietConfig())
	p := e.Player()
	p.Shielded = false

	pr := placeProjectile(e, 0, SidePlayer, core.NewRect(142, 370, 6, 8), DirDown)
	e.Tick(Input{})

	assert.True(t, p.Paralysed)
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, ProjectileExploding, pr.State)

	start := p.Rect
	e.Tick(MoveInput(DirLeft))
	assert.Equal(t, start.TopLeft(), p.Rect.TopLeft(), "paralysed tanks cannot move")
	assert.Equal(t, DirLeft, p.Dir, "but can still turn")

	idle(e, e.cfg.Player.Paralysis/e.TickMillis())
	assert.False(t, p.Paralysed)
}

func TestOwnProjectileNeverHitsShooter(t *testing.T) {
	e := newTestEngine(quietConfig())
	p := e.Player()
	p.Shielded = false

	pr := placeProjectile(e, p.ID, SidePlayer, core.NewRect(142, 370, 6, 8), DirDown)
	e.Tick(Input{})

	assert.False(t, p.Paralysed)
	assert.NotEqual(t, ProjectileExploding, pr.State)
}

func TestLosingAllLivesEndsGame(t *testing.T) {
	cfg := quietConfig()
	e := newTestEngine(cfg)
	p := e.Player()
	require.Equal(t, 3, p.Lives)

	for life := range 3 {
		p.Shielded = false
		placeProjectile(e, 999, SideEnemy, core.NewRect(142, 370, 6, 8), DirDown)
		e.Tick(Input{})
		require.Equal(t, TankExploding, p.State, "life %d", life)

		for range 40 {
			if p.State != TankExploding {
				break
			}
			e.Tick(Input{})
		}

		assert.Equal(t, 2-life, e.Lives(), "life %d", life)
		if life < 2 {
			require.False(t, e.IsOver(), "round must survive hit %d", life+1)
			require.Equal(t, TankAlive, p.State)
			require.True(t, p.Shielded, "respawn grants a shield")
		}
	}

	require.True(t, e.IsOver())
	assert.Zero(t, e.Lives())
	assert.Less(t, e.Score(), -3*cfg.Rewards.Death+0.1)

	score, ticks := e.Score(), e.Ticks()
	got, over, err := e.Step(ActionUp)
	require.NoError(t, err)
	assert.True(t, over)
	assert.Equal(t, score, got)
	assert.Equal(t, ticks, e.Ticks())
}

func TestRespawnShieldsPlayer(t *testing.T) {
	e := newTestEngine(quietConfig())
	p := e.Player()

	idle(e, e.cfg.Player.RespawnShield/e.TickMillis())
	require.False(t, p.Shielded)

	p.Shielded = false
	placeProjectile(e, 999, SideEnemy, core.NewRect(142, 370, 6, 8), DirDown)
	for range 40 {
		e.Tick(Input{})
		if p.State == TankAlive && e.Lives() == 2 {
			break
		}
	}

	assert.Equal(t, 2, e.Lives())
	assert.True(t, p.Shielded)
	assert.Equal(t, p.StartPos, p.Rect.TopLeft())
}

func TestStageTimeLimitEndsGame(t *testing.T) {
	cfg := quietConfig()
	cfg.Timing.StageTimeLimit = 100
	e := newTestEngine(cfg)

	idle(e, 5)

	assert.True(t, e.IsOver())
	assert.NotEmpty(t, e.Reason())
}

func TestBlockedMovePenalised(t *testing.T) {
	e := newTestEngine(quietConfig())
	rw := e.cfg.Rewards

	e.Step(ActionDown)
	require.Equal(t, core.Point{X: 131, Y: 389}, e.Player().Rect.TopLeft())

	_, _, err := e.Step(ActionDown)
	require.NoError(t, err)

	assert.Equal(t, core.Point{X: 131, Y: 389}, e.Player().Rect.TopLeft(), "arena edge stops the tank")
	assert.Equal(t, DirDown, e.Player().Dir)
	assert.InDelta(t, -rw.Blocked-2*rw.Idle, e.Score(), 1e-9)
}

func TestPlayerMoves(t *testing.T) {
	e := newTestEngine(quietConfig())

	e.Step(ActionUp)
	e.Step(ActionUp)

	assert.Equal(t, core.Point{X: 131, Y: 383}, e.Player().Rect.TopLeft())
}

func TestGrenadeClearsFieldAndAdvancesStage(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.PerStage = 2
	e := New(cfg, stubLevels{1: nil, 2: {TileAt(0, 5, TileSteel)}}, WithSeed(3))
	placeEnemy(e, EnemyBasic, 40, 40)
	placeEnemy(e, EnemyArmor, 200, 40)
	lives := e.Lives()

	pu := &PowerUp{ID: e.newID(), Kind: PowerUpGrenade, Rect: core.NewRect(0, 0, PowerUpSize, PowerUpSize), Active: true}
	e.powerUps = append(e.powerUps, pu)
	e.player.pending = pu.ID
	e.Tick(Input{})

	assert.Equal(t, 2, e.Stage())
	assert.Equal(t, lives, e.Lives())
	assert.Empty(t, e.Enemies())
	assert.Equal(t, 1, e.Grid().CountKind(TileSteel))
	assert.Zero(t, e.Kills())
}

func TestUnknownStageFallsBackToFirst(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.PerStage = 1
	e := newTestEngine(cfg)
	en := placeEnemy(e, EnemyBasic, 40, 40)

	e.explodeTank(&en.Tank)
	e.Tick(Input{})

	assert.Equal(t, 1, e.Stage())
	assert.False(t, e.IsOver())
}

func TestFortifyWallsRevert(t *testing.T) {
	var tiles []Tile
	for _, p := range FortressPositions {
		tiles = append(tiles, Tile{Pos: p, Kind: TileBrick})
	}
	e := newTestEngine(quietConfig(), tiles...)
	pu := &PowerUp{ID: e.newID(), Kind: PowerUpFortifyWalls, Active: true}
	e.powerUps = append(e.powerUps, pu)

	e.applyPowerUp(pu.ID)
	assert.Equal(t, 8, e.Grid().CountKind(TileSteel))
	assert.False(t, pu.Active)

	idle(e, e.cfg.PowerUps.Fortify/e.TickMillis())
	assert.Equal(t, 0, e.Grid().CountKind(TileSteel))
	assert.Equal(t, 8, e.Grid().CountKind(TileBrick))
}

func TestFreezeTimeStopsEnemies(t *testing.T) {
	cfg := config.DefaultTanksConfig()
	e := newTestEngine(cfg)
	pu := &PowerUp{ID: e.newID(), Kind: PowerUpFreezeTime, Active: true}
	e.powerUps = append(e.powerUps, pu)

	e.applyPowerUp(pu.ID)
	require.True(t, e.Frozen())
	for _, en := range e.Enemies() {
		assert.True(t, en.Paused)
	}
	before := len(e.Enemies())
	e.spawnEnemy()
	assert.Len(t, e.Enemies(), before, "no spawns while frozen")

	idle(e, cfg.PowerUps.Freeze/e.TickMillis())
	assert.False(t, e.Frozen())
	for _, en := range e.Enemies() {
		assert.False(t, en.Paused)
	}
}

func TestWeaponUpgradeStacks(t *testing.T) {
	e := newTestEngine(quietConfig())
	p := e.Player()

	for i := range 4 {
		pu := &PowerUp{ID: e.newID(), Kind: PowerUpWeaponUpgrade, Active: true}
		e.powerUps = append(e.powerUps, pu)
		e.applyPowerUp(pu.ID)
		assert.Equal(t, min(i+1, 3), p.Superpower)
	}
	assert.Equal(t, 2, p.MaxBullets)

	e.fireTank(&p.Tank)
	require.NotEmpty(t, e.Projectiles())
	pr := e.Projectiles()[0]
	assert.Equal(t, e.cfg.Bullets.FastSpeed, pr.Speed)
	assert.Equal(t, 2, pr.Power)
}

func TestCarrierDropsPowerUp(t *testing.T) {
	e := newTestEngine(quietConfig())
	en := placeEnemy(e, EnemyBasic, 40, 40)
	en.Carrier = true

	e.explodeTank(&en.Tank)
	require.Len(t, e.PowerUps(), 1)

	other := placeEnemy(e, EnemyBasic, 200, 40)
	other.Carrier = true
	e.explodeTank(&other.Tank)
	assert.Len(t, e.PowerUps(), 1, "only one power-up at a time")
}

func TestEnemyCrushesPowerUp(t *testing.T) {
	e := newTestEngine(quietConfig())
	en := placeEnemy(e, EnemyBasic, 100, 100)
	en.Paused = false
	en.Dir = DirDown
	en.path = []core.Point{{X: 100, Y: 101}}
	pu := &PowerUp{ID: e.newID(), Kind: PowerUpShield, Rect: core.NewRect(100, 120, PowerUpSize, PowerUpSize), Active: true}
	e.powerUps = append(e.powerUps, pu)

	e.Tick(Input{})

	assert.False(t, pu.Active)
	assert.Empty(t, e.PowerUps())
}

func TestStillbornEnemyIsReaped(t *testing.T) {
	cfg := config.DefaultTanksConfig()
	cfg.Enemies.MaxActive = 10
	e := newTestEngine(cfg)
	e.enemies = nil
	for _, pt := range spawnPoints {
		placeEnemy(e, EnemyBasic, pt.X, pt.Y)
	}

	e.spawnEnemy()
	require.Len(t, e.Enemies(), 4)
	assert.Equal(t, TankDead, e.Enemies()[3].State)

	e.reap()
	assert.Len(t, e.Enemies(), 3)
}

func TestStaleEffectTargets(t *testing.T) {
	e := newTestEngine(quietConfig())

	for _, kind := range []EffectKind{EffectEnemyFire, EffectEndSpawning, EffectAdvanceFrame, EffectPowerUpBlink, EffectExpireShield} {
		assert.ErrorIs(t, e.dispatch(Effect{Kind: kind, Target: 9999}), ErrStaleTarget, kind.String())
	}
}

func TestPlanPathReversesWhenBoxedIn(t *testing.T) {
	var walls []Tile
	for _, c := range [][2]int{{5, 4}, {6, 4}, {7, 5}, {7, 6}, {5, 7}, {6, 7}, {4, 5}, {4, 6}} {
		walls = append(walls, TileAt(c[0], c[1], TileSteel))
	}
	e := newTestEngine(quietConfig(), walls...)
	en := placeEnemy(e, EnemyBasic, 83, 83)
	en.Dir = DirDown

	path := e.planPath(en, 0, false, false)

	assert.Equal(t, DirUp, en.Dir)
	require.Greater(t, len(path), 1)
	assert.Equal(t, core.Point{X: 83, Y: 83}, path[0])
	assert.Equal(t, core.Point{X: 83, Y: 83 - en.Speed}, path[1])
}

func TestPlanPathPrefersHint(t *testing.T) {
	e := newTestEngine(quietConfig())
	en := placeEnemy(e, EnemyFast, 195, 195)

	path := e.planPath(en, DirRight, true, false)

	assert.Equal(t, DirRight, en.Dir)
	require.NotEmpty(t, path)
	last := path[len(path)-1]
	assert.Equal(t, 195, last.Y)
	assert.Greater(t, last.X, 195)
}

func TestEnemyReplansWhenBlocked(t *testing.T) {
	e := newTestEngine(quietConfig(), TileAt(5, 8, TileSteel))
	en := placeEnemy(e, EnemyBasic, 83, 100)
	en.Paused = false
	en.Dir = DirDown
	en.path = []core.Point{{X: 83, Y: 110}}

	e.Tick(Input{})

	assert.Equal(t, 100, en.Rect.Y, "blocked waypoint is not entered")
	assert.NotEmpty(t, en.path)
}

func TestDeterminism(t *testing.T) {
	tiles := []Tile{TileAt(4, 10, TileBrick), TileAt(10, 12, TileSteel), TileAt(20, 8, TileWater)}
	run := func() Snapshot {
		e := New(config.DefaultTanksConfig(), stubLevels{1: tiles}, WithSeed(12345))
		rng := rand.New(rand.NewSource(99))
		for range 2000 {
			if _, over, err := e.Step(Action(rng.Intn(NumActions))); err != nil || over {
				break
			}
		}
		return e.Snapshot()
	}

	s1, s2 := run(), run()
	assert.Equal(t, s1.Hash(), s2.Hash())
	assert.Equal(t, s1, s2)
}

func TestSnapshotEncodeRoundTrip(t *testing.T) {
	e := newTestEngine(config.DefaultTanksConfig(), TileAt(3, 3, TileBrick))
	idle(e, 120)
	snap := e.Snapshot()

	data, err := snap.Encode()
	require.NoError(t, err)
	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, snap.Hash(), decoded.Hash())
}
