// Package config provides YAML-based configuration loading and difficulty
// management for the tanks arena.
package config

// TanksConfig contains all tunables of the tank arena simulation.
// All durations are in simulated milliseconds.
type TanksConfig struct {
	Timing     TanksTiming      `yaml:"timing"`
	Player     TanksPlayer      `yaml:"player"`
	Enemies    TanksEnemies     `yaml:"enemies"`
	Bullets    TanksBullets     `yaml:"bullets"`
	PowerUps   TanksPowerUps    `yaml:"powerups"`
	Rewards    TanksRewards     `yaml:"rewards"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TanksTiming defines scheduler intervals shared by the whole round.
type TanksTiming struct {
	SpawnInterval  int `yaml:"spawn_interval_ms"`   // Enemy spawn cadence
	StageTimeLimit int `yaml:"stage_time_limit_ms"` // Hard limit, game over when exceeded
	SpawnAnimation int `yaml:"spawn_animation_ms"`  // Spawning state duration
	SpawnFlicker   int `yaml:"spawn_flicker_ms"`
	ShieldFlicker  int `yaml:"shield_flicker_ms"`
	ExplosionFrame int `yaml:"explosion_frame_ms"`
	LabelDuration  int `yaml:"label_duration_ms"`
	WaterToggle    int `yaml:"water_toggle_ms"`
}

// TanksPlayer defines player tank parameters.
type TanksPlayer struct {
	Lives         int `yaml:"lives"`
	Speed         int `yaml:"speed"` // px per tick
	Health        int `yaml:"health"`
	RespawnShield int `yaml:"respawn_shield_ms"`
	Paralysis     int `yaml:"paralysis_ms"`
	StartX        int `yaml:"start_x"`
	StartY        int `yaml:"start_y"`
}

// TanksEnemies defines enemy population and per-type stats.
type TanksEnemies struct {
	MaxActive     int        `yaml:"max_active"`
	PerStage      int        `yaml:"per_stage"` // Kills needed to clear a stage, 0 disables
	FireInterval  int        `yaml:"fire_interval_ms"`
	CarrierChance float64    `yaml:"carrier_chance"`
	Basic         EnemyStats `yaml:"basic"`
	Fast          EnemyStats `yaml:"fast"`
	Power         EnemyStats `yaml:"power"`
	Armor         EnemyStats `yaml:"armor"`
}

// EnemyStats are the fixed attributes of one enemy type.
type EnemyStats struct {
	Speed      int `yaml:"speed"`
	Health     int `yaml:"health"`
	Superpower int `yaml:"superpower"`
}

// TanksBullets defines projectile parameters.
type TanksBullets struct {
	Speed     int `yaml:"speed"`      // px per tick
	FastSpeed int `yaml:"fast_speed"` // Used from superpower level 1
	Damage    int `yaml:"damage"`
}

// TanksPowerUps defines power-up durations.
type TanksPowerUps struct {
	Lifetime int `yaml:"lifetime_ms"`
	Blink    int `yaml:"blink_ms"`
	Shield   int `yaml:"shield_ms"`
	Fortify  int `yaml:"fortify_ms"`
	Freeze   int `yaml:"freeze_ms"`
}

// TanksRewards defines the score shaping applied to the player.
// Penalties are stored as positive magnitudes.
type TanksRewards struct {
	Hit        float64 `yaml:"hit"`         // Player projectile damages an enemy
	CarrierHit float64 `yaml:"carrier_hit"` // Extra when the enemy carries a bonus
	Kill       float64 `yaml:"kill"`
	Clash      float64 `yaml:"clash"` // Player projectile cancels an enemy one
	Miss       float64 `yaml:"miss"`  // Per projectile tick without a hit
	Idle       float64 `yaml:"idle"`  // Per active tick
	Blocked    float64 `yaml:"blocked"`
	Death      float64 `yaml:"death"`
	PowerUp    float64 `yaml:"powerup"`
	Brick      float64 `yaml:"brick"`
	SteelHit   float64 `yaml:"steel_hit"`
	SteelBreak float64 `yaml:"steel_break"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	FireIntervalReduction float64 `yaml:"fire_interval_reduction"` // Fraction removed from the fire interval at max difficulty
	ExtraEnemies          int     `yaml:"extra_enemies"`           // Concurrent enemies added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
