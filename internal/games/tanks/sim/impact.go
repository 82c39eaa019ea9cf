package sim

import "github.com/vovakirdan/tui-tanks/internal/core"

// impact resolves a projectile hitting target. friendly is true when the
// projectile came from the target's own side. It reports whether the
// projectile is consumed.
func (e *Engine) impact(target *Tank, friendly bool, damage int, attacker EntityID) bool {
	if target.Shielded {
		return true
	}

	if !friendly {
		scored := target.Side == SideEnemy && e.byPlayer(attacker)
		target.Health -= damage
		if scored {
			e.player.Score += e.cfg.Rewards.Hit
			if target.Carrier {
				e.player.Score += e.cfg.Rewards.CarrierHit
			}
		}
		if target.Health < 1 {
			e.explodeTank(target)
			if scored {
				e.player.Score += e.cfg.Rewards.Kill
			}
		}
		return true
	}

	// Enemy fire passes through other enemies.
	if target.Side == SideEnemy {
		return false
	}
	if !target.Paralysed {
		e.paralysePlayer()
	}
	return true
}

// byPlayer reports whether attacker is the current player.
func (e *Engine) byPlayer(attacker EntityID) bool {
	return attacker != 0 && e.player != nil && attacker == e.player.ID
}

// explodeTank starts a tank's explosion. Enemies count toward the stage kill
// quota and carriers drop a power-up.
func (e *Engine) explodeTank(t *Tank) {
	if t.State == TankExploding || t.State == TankDead {
		return
	}
	cx, cy := t.Rect.Center()
	t.State = TankExploding
	t.Explosion = e.newExplosion(core.Point{X: cx, Y: cy}, largeExplosionFrames)
	if t.Side != SideEnemy {
		return
	}
	e.kills++
	if t.Carrier {
		e.spawnPowerUp()
	}
}

func (e *Engine) paralysePlayer() {
	p := e.player
	p.Paralysed = true
	e.sched.Cancel(p.paralysisToken)
	p.paralysisToken = e.sched.Add(e.cfg.Player.Paralysis, Effect{Kind: EffectExpireParalysis, Target: p.ID}, 1)
}

func (e *Engine) shieldPlayer(duration int) {
	p := e.player
	p.Shielded = true
	p.ShieldFrame = 0
	e.sched.Cancel(p.shieldFlicker)
	e.sched.Cancel(p.shieldExpiry)
	p.shieldFlicker = e.sched.Add(e.cfg.Timing.ShieldFlicker, Effect{Kind: EffectShieldFlicker, Target: p.ID}, RepeatForever)
	p.shieldExpiry = e.sched.Add(duration, Effect{Kind: EffectExpireShield, Target: p.ID}, 1)
}
