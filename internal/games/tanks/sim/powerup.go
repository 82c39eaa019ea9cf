package sim

import "github.com/vovakirdan/tui-tanks/internal/core"

// PowerUpKind is the effect a power-up applies on pickup.
type PowerUpKind int

const (
	PowerUpGrenade PowerUpKind = iota
	PowerUpShield
	PowerUpFortifyWalls
	PowerUpWeaponUpgrade
	PowerUpExtraLife
	PowerUpFreezeTime

	numPowerUpKinds
)

var powerUpNames = [...]string{"grenade", "shield", "fortify", "star", "tank", "timer"}

// String returns the power-up name.
func (k PowerUpKind) String() string {
	if k >= 0 && k < numPowerUpKinds {
		return powerUpNames[k]
	}
	return "unknown"
}

// PowerUp is a pickup dropped by a carrier enemy.
type PowerUp struct {
	ID      EntityID
	Kind    PowerUpKind
	Rect    core.Rect
	Visible bool // blink phase
	Active  bool
}

// spawnPowerUp drops a random power-up somewhere in the arena unless one is
// already present.
func (e *Engine) spawnPowerUp() {
	for _, pu := range e.powerUps {
		if pu.Active {
			return
		}
	}
	span := ArenaSize - PowerUpSize + 1
	pu := &PowerUp{
		ID:      e.newID(),
		Kind:    PowerUpKind(e.rng.Intn(int(numPowerUpKinds))),
		Rect:    core.NewRect(e.rng.Intn(span), e.rng.Intn(span), PowerUpSize, PowerUpSize),
		Visible: true,
		Active:  true,
	}
	e.powerUps = append(e.powerUps, pu)
	e.sched.Add(e.cfg.PowerUps.Blink, Effect{Kind: EffectPowerUpBlink, Target: pu.ID}, RepeatForever)
	e.sched.Add(e.cfg.PowerUps.Lifetime, Effect{Kind: EffectExpirePowerUp, Target: pu.ID}, 1)
	e.log.Debug("power-up dropped", "kind", pu.Kind, "x", pu.Rect.X, "y", pu.Rect.Y)
}

func (e *Engine) powerUp(id EntityID) *PowerUp {
	for _, pu := range e.powerUps {
		if pu.ID == id {
			return pu
		}
	}
	return nil
}

// applyPowerUp triggers the picked-up power-up and removes it.
func (e *Engine) applyPowerUp(id EntityID) {
	pu := e.powerUp(id)
	if pu == nil || !pu.Active {
		return
	}
	p := e.player

	switch pu.Kind {
	case PowerUpGrenade:
		for _, en := range e.enemies {
			e.explodeTank(&en.Tank)
		}
	case PowerUpShield:
		e.shieldPlayer(e.cfg.PowerUps.Shield)
	case PowerUpFortifyWalls:
		e.grid.BuildFortress(TileSteel)
		e.sched.Cancel(e.revertToken)
		e.revertToken = e.sched.Add(e.cfg.PowerUps.Fortify, Effect{Kind: EffectRevertFortress}, 1)
	case PowerUpWeaponUpgrade:
		if p.Superpower < 3 {
			p.Superpower++
		}
		if p.Superpower >= 2 {
			p.MaxBullets = 2
		}
	case PowerUpExtraLife:
		p.Lives++
	case PowerUpFreezeTime:
		e.setFreeze(true)
		e.sched.Cancel(e.unfreezeToken)
		e.unfreezeToken = e.sched.Add(e.cfg.PowerUps.Freeze, Effect{Kind: EffectUnfreeze}, 1)
	}

	pu.Active = false
	e.newLabel(pu.Rect.TopLeft(), "500", e.cfg.Timing.LabelDuration)
	e.log.Debug("power-up applied", "kind", pu.Kind)
}

func (e *Engine) setFreeze(on bool) {
	e.timeFreeze = on
	for _, en := range e.enemies {
		en.Paused = on
	}
}
