package config

import "math"

// DifficultyManager calculates dynamic round parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
// A disabled manager always reports level 0 so that base values apply unchanged.
func (d *DifficultyManager) Level(score float64, ticks int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = score / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FireInterval returns the enemy fire interval in ms for the current difficulty.
// The interval shrinks linearly down to (1 - reduction) of base at max level.
func (d *DifficultyManager) FireInterval(base int, score float64, ticks int) int {
	level := d.Level(score, ticks)
	reduction := clampF(d.cfg.Scaling.FireIntervalReduction, 0.0, 0.9)
	result := int(math.Round(float64(base) * (1.0 - level*reduction)))
	if result < 100 { // Keep enemies from firing every tick
		result = 100
	}
	return result
}

// MaxEnemies returns the concurrent enemy cap for the current difficulty.
func (d *DifficultyManager) MaxEnemies(base int, score float64, ticks int) int {
	level := d.Level(score, ticks)
	return base + int(level*float64(d.cfg.Scaling.ExtraEnemies))
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
