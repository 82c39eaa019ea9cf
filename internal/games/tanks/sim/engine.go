package sim

import (
	"errors"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// LevelSource supplies the terrain of a stage. It reports false when the
// stage is unknown.
type LevelSource interface {
	Level(stage int) ([]Tile, bool)
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed sets the seed used by every Reset.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithLogger routes engine diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTickRate sets the simulated elapsed time per tick from a rate in ticks
// per second.
func WithTickRate(ticksPerSecond int) Option {
	return func(e *Engine) {
		e.tickMS = core.RuntimeConfig{TickRate: ticksPerSecond}.TickMillis()
	}
}

// Engine is the round controller. It owns every entity, the grid and the
// scheduler, and advances them one tick per Step.
type Engine struct {
	cfg        config.TanksConfig
	levels     LevelSource
	log        *log.Logger
	difficulty *config.DifficultyManager
	seed       int64
	tickMS     int

	rng   *rand.Rand
	sched *Scheduler
	grid  *Grid

	player      *Player
	enemies     []*Enemy
	projectiles []*Projectile
	powerUps    []*PowerUp
	transients  []*Transient

	nextID     EntityID
	stage      int
	ticks      int
	kills      int
	active     bool
	gameOver   bool
	reason     string
	timeFreeze bool

	move   Direction
	moving bool

	revertToken   Token
	unfreezeToken Token
}

// New creates an engine and resets it to stage 1. A nil levels source plays
// on an empty arena.
func New(cfg config.TanksConfig, levels LevelSource, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		levels: levels,
		log:    log.New(io.Discard),
		tickMS: core.DefaultConfig().TickMillis(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	e.sched = NewScheduler(HandlerFunc(e.dispatch))
	e.sched.OnDrop(func(ef Effect, err error) {
		if errors.Is(err, ErrStaleTarget) {
			e.log.Debug("dropped stale effect", "effect", ef.Kind, "target", ef.Target)
		}
	})
	e.Reset()
	return e
}

// Reset starts a new round from stage 1 with a fresh player. The RNG is
// reseeded so equal seeds replay equal rounds.
func (e *Engine) Reset() {
	e.rng = rand.New(rand.NewSource(e.seed))
	e.ticks = 0
	e.nextID = 0
	e.player = nil
	e.startStage(1)
}

// Step applies one action and advances the simulation by one tick. It returns
// the cumulative score and whether the round is over. Actions outside 0-8 are
// rejected with ErrInvalidAction and do not advance time.
func (e *Engine) Step(a Action) (float64, bool, error) {
	in, err := a.Input()
	if err != nil {
		return e.player.Score, e.gameOver, err
	}
	score, over := e.Tick(in)
	return score, over, nil
}

// Tick advances the simulation by one tick with an arbitrary input.
// After game over it is a no-op returning the frozen score.
func (e *Engine) Tick(in Input) (float64, bool) {
	if e.gameOver {
		return e.player.Score, true
	}
	e.ticks++

	e.applyInput(in)
	e.sched.Advance(e.tickMS)
	for _, p := range e.projectiles {
		e.updateProjectile(p)
	}
	e.updateEnemies()
	e.updatePlayer()
	e.reap()
	e.settle()

	return e.player.Score, e.gameOver
}

func (e *Engine) newID() EntityID {
	e.nextID++
	return e.nextID
}

// startStage loads stage terrain and restarts the round timers. The player
// survives stage changes; Reset clears it first for a fresh round.
func (e *Engine) startStage(stage int) {
	e.sched.Clear()
	e.enemies = nil
	e.projectiles = nil
	e.powerUps = nil
	e.transients = nil
	e.kills = 0
	e.timeFreeze = false
	e.moving = false
	e.revertToken = Token{}
	e.unfreezeToken = Token{}

	var tiles []Tile
	if e.levels != nil {
		var ok bool
		tiles, ok = e.levels.Level(stage)
		if !ok {
			e.log.Warn("stage unavailable, falling back to stage 1", "stage", stage)
			stage = 1
			tiles, _ = e.levels.Level(stage)
		}
	}
	e.stage = stage
	e.grid = NewGrid(tiles, e.cfg.Rewards)

	keepPower := e.player != nil
	if e.player == nil {
		e.player = newPlayer(e.newID(), e.cfg)
	}
	e.respawnPlayer(keepPower)

	e.gameOver = false
	e.reason = ""
	e.active = true

	e.sched.Add(e.cfg.Timing.SpawnInterval, Effect{Kind: EffectSpawnEnemy}, RepeatForever)
	e.sched.Add(e.cfg.Timing.StageTimeLimit, Effect{Kind: EffectStageTimeout}, 1)
	e.sched.Add(e.cfg.Timing.WaterToggle, Effect{Kind: EffectToggleWater}, RepeatForever)

	e.log.Debug("stage loaded", "stage", stage, "tiles", len(e.grid.tiles))
	e.spawnEnemy()
}

// respawnPlayer returns the player to the start position with a shield.
func (e *Engine) respawnPlayer(keepPower bool) {
	p := e.player
	e.sched.Cancel(p.paralysisToken)
	p.reset(e.cfg, keepPower)
	e.shieldPlayer(e.cfg.Player.RespawnShield)
}

func (e *Engine) endGame(reason string) {
	if e.gameOver {
		return
	}
	e.gameOver = true
	e.active = false
	e.reason = reason
	e.log.Info("game over", "reason", reason, "stage", e.stage, "score", e.player.Score, "ticks", e.ticks)
}

// applyInput fires and turns immediately; movement is stored for the player
// update later in the tick.
func (e *Engine) applyInput(in Input) {
	e.moving = false
	p := e.player
	if p.State != TankAlive || !e.active || e.gameOver {
		return
	}
	if in.Fire {
		e.fireTank(&p.Tank)
	}
	if in.Moving {
		if p.Dir != in.Move {
			p.rotate(in.Move, true)
		}
		e.move, e.moving = in.Move, true
	}
}

// spawnEnemy adds an enemy at a free spawn point unless the round is frozen
// or the field is full. With no free point the enemy is stillborn.
func (e *Engine) spawnEnemy() {
	if e.gameOver || !e.active || e.timeFreeze {
		return
	}
	limit := e.difficulty.MaxEnemies(e.cfg.Enemies.MaxActive, e.player.Score, e.ticks)
	if len(e.enemies) >= limit {
		return
	}

	kind := EnemyKind(e.rng.Intn(4))
	stats := enemyStats(e.cfg.Enemies, kind)
	headings := [...]Direction{DirRight, DirDown, DirLeft}
	en := &Enemy{
		Tank: Tank{
			ID:         e.newID(),
			Side:       SideEnemy,
			Rect:       core.NewRect(0, 0, TankSize, TankSize),
			Dir:        headings[e.rng.Intn(len(headings))],
			Health:     stats.Health,
			Speed:      stats.Speed,
			Superpower: stats.Superpower,
			MaxBullets: 1,
			State:      TankSpawning,
		},
		Kind: kind,
	}
	if e.rng.Float64() < e.cfg.Enemies.CarrierChance && !e.carrierPresent() {
		en.Carrier = true
	}

	pos, ok := e.freeSpawnPosition(en.Rect)
	if !ok {
		en.State = TankDead
		e.enemies = append(e.enemies, en)
		e.log.Debug("enemy stillborn, no free spawn point", "kind", kind)
		return
	}
	en.Rect = en.Rect.At(pos)
	en.path = e.planPath(en, en.Dir, true, false)

	interval := e.difficulty.FireInterval(e.cfg.Enemies.FireInterval, e.player.Score, e.ticks)
	e.sched.Add(e.cfg.Timing.SpawnFlicker, Effect{Kind: EffectSpawnFlicker, Target: en.ID}, RepeatForever)
	e.sched.Add(e.cfg.Timing.SpawnAnimation, Effect{Kind: EffectEndSpawning, Target: en.ID}, 1)
	en.fireToken = e.sched.Add(interval, Effect{Kind: EffectEnemyFire, Target: en.ID}, RepeatForever)
	e.enemies = append(e.enemies, en)
}

func (e *Engine) carrierPresent() bool {
	for _, en := range e.enemies {
		if en.Carrier {
			return true
		}
	}
	return false
}

func (e *Engine) updateEnemies() {
	for _, en := range e.enemies {
		en.finishExplosion()
		if en.State != TankAlive || en.Paused || en.Paralysed {
			continue
		}
		e.moveEnemy(en)
	}
}

func (e *Engine) updatePlayer() {
	p := e.player
	p.finishExplosion()
	if !e.moving {
		return
	}
	e.moving = false
	if p.State != TankAlive || p.Paralysed {
		return
	}

	dx, dy := e.move.Delta(p.Speed)
	next := p.Rect.Moved(dx, dy)
	if outOfArena(next, e.move) || e.grid.ObstaclesAt(next) {
		p.Score -= e.cfg.Rewards.Blocked
		return
	}
	for _, en := range e.enemies {
		if en.Live() && next.Intersects(en.Rect) {
			if !p.Shielded {
				e.explodeTank(&p.Tank)
			}
			return
		}
	}
	for _, pu := range e.powerUps {
		if pu.Active && next.Intersects(pu.Rect) {
			p.Score += e.cfg.Rewards.PowerUp
			p.pending = pu.ID
		}
	}
	p.Rect = next
}

// reap drops dead enemies, removed projectiles, consumed power-ups and
// finished transients.
func (e *Engine) reap() {
	enemies := e.enemies[:0]
	for _, en := range e.enemies {
		if en.State != TankDead {
			enemies = append(enemies, en)
		}
	}
	clear(e.enemies[len(enemies):])
	e.enemies = enemies

	projectiles := e.projectiles[:0]
	for _, p := range e.projectiles {
		if p.State != ProjectileRemoved {
			projectiles = append(projectiles, p)
		}
	}
	clear(e.projectiles[len(projectiles):])
	e.projectiles = projectiles

	powerUps := e.powerUps[:0]
	for _, pu := range e.powerUps {
		if pu.Active {
			powerUps = append(powerUps, pu)
		}
	}
	clear(e.powerUps[len(powerUps):])
	e.powerUps = powerUps

	transients := e.transients[:0]
	for _, t := range e.transients {
		if t.Active {
			transients = append(transients, t)
		}
	}
	clear(e.transients[len(transients):])
	e.transients = transients
}

// settle applies per-tick score shaping, pending power-ups, player death and
// the stage kill quota.
func (e *Engine) settle() {
	if e.gameOver || !e.active {
		return
	}
	p := e.player
	p.Score -= e.cfg.Rewards.Idle

	switch p.State {
	case TankAlive:
		if p.pending != 0 {
			e.applyPowerUp(p.pending)
			p.pending = 0
		}
	case TankDead:
		p.Score -= e.cfg.Rewards.Death
		p.Lives--
		if p.Lives > 0 {
			e.respawnPlayer(false)
		} else {
			e.endGame("no lives left")
			return
		}
	}

	if quota := e.cfg.Enemies.PerStage; quota > 0 && e.kills >= quota {
		e.log.Info("stage clear", "stage", e.stage, "score", p.Score)
		e.startStage(e.stage + 1)
	}
}

// Score returns the player's cumulative score.
func (e *Engine) Score() float64 { return e.player.Score }

// IsOver reports whether the round has ended.
func (e *Engine) IsOver() bool { return e.gameOver }

// Reason describes why the round ended.
func (e *Engine) Reason() string { return e.reason }

// Stage returns the current stage number.
func (e *Engine) Stage() int { return e.stage }

// Lives returns the player's remaining lives.
func (e *Engine) Lives() int { return e.player.Lives }

// Kills returns the enemies destroyed on the current stage.
func (e *Engine) Kills() int { return e.kills }

// Ticks returns the ticks elapsed since Reset.
func (e *Engine) Ticks() int { return e.ticks }

// TickMillis returns the simulated milliseconds per tick.
func (e *Engine) TickMillis() int { return e.tickMS }

// Frozen reports whether enemies are frozen by a power-up.
func (e *Engine) Frozen() bool { return e.timeFreeze }

// Player returns the player tank. Callers must not modify it.
func (e *Engine) Player() *Player { return e.player }

// Enemies returns the enemies on the field. Callers must not modify them.
func (e *Engine) Enemies() []*Enemy { return e.enemies }

// Projectiles returns the projectiles in flight or exploding.
func (e *Engine) Projectiles() []*Projectile { return e.projectiles }

// PowerUps returns the power-ups on the field.
func (e *Engine) PowerUps() []*PowerUp { return e.powerUps }

// Transients returns active explosions and labels.
func (e *Engine) Transients() []*Transient { return e.transients }

// Grid returns the terrain.
func (e *Engine) Grid() *Grid { return e.grid }

// Scheduler exposes the engine's scheduler for inspection.
func (e *Engine) Scheduler() *Scheduler { return e.sched }
