package config

import (
	_ "embed"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksConfig returns the built-in tanks configuration.
// It mirrors defaults/tanks.yaml and is used when the embedded file cannot be parsed.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		Timing: TanksTiming{
			SpawnInterval:  2000,
			StageTimeLimit: 180000, // 3 minutes
			SpawnAnimation: 1000,
			SpawnFlicker:   100,
			ShieldFlicker:  100,
			ExplosionFrame: 100,
			LabelDuration:  500,
			WaterToggle:    400,
		},
		Player: TanksPlayer{
			Lives:         3,
			Speed:         2,
			Health:        100,
			RespawnShield: 4000,
			Paralysis:     10000,
			StartX:        8*16 + 3,
			StartY:        24*16 + 3,
		},
		Enemies: TanksEnemies{
			MaxActive:     4,
			PerStage:      20,
			FireInterval:  1000,
			CarrierChance: 0.4,
			Basic:         EnemyStats{Speed: 1, Health: 100},
			Fast:          EnemyStats{Speed: 3, Health: 100},
			Power:         EnemyStats{Speed: 2, Health: 100, Superpower: 1},
			Armor:         EnemyStats{Speed: 2, Health: 400},
		},
		Bullets: TanksBullets{
			Speed:     15,
			FastSpeed: 20,
			Damage:    100,
		},
		PowerUps: TanksPowerUps{
			Lifetime: 20000,
			Blink:    500,
			Shield:   10000,
			Fortify:  10000,
			Freeze:   10000,
		},
		Rewards: TanksRewards{
			Hit:        0.5,
			CarrierHit: 0.5,
			Kill:       0.5,
			Clash:      0.1,
			Miss:       0.001,
			Idle:       0.0001,
			Blocked:    0.002,
			Death:      1,
			PowerUp:    1,
			Brick:      0.1,
			SteelHit:   0.1,
			SteelBreak: 0.1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				FireIntervalReduction: 0.5,
				ExtraEnemies:          2,
			},
		},
	}
}
