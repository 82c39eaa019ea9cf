package sim

// dispatch executes a fired scheduler effect. Entries whose target is gone
// return ErrStaleTarget; repeating entries with nothing left to animate
// return errEffectDone. Both remove the entry.
func (e *Engine) dispatch(ef Effect) error {
	switch ef.Kind {
	case EffectSpawnEnemy:
		e.spawnEnemy()

	case EffectStageTimeout:
		e.endGame("stage time limit reached")

	case EffectToggleWater:
		e.grid.ToggleWater()

	case EffectRevertFortress:
		e.grid.BuildFortress(TileBrick)
		e.revertToken = Token{}

	case EffectUnfreeze:
		e.setFreeze(false)
		e.unfreezeToken = Token{}

	case EffectEndSpawning:
		t := e.tank(ef.Target)
		if t == nil {
			return ErrStaleTarget
		}
		if t.State == TankSpawning {
			t.State = TankAlive
		}

	case EffectSpawnFlicker:
		t := e.tank(ef.Target)
		if t == nil {
			return ErrStaleTarget
		}
		if t.State != TankSpawning {
			return errEffectDone
		}
		t.SpawnFrame ^= 1

	case EffectEnemyFire:
		en := e.enemy(ef.Target)
		if en == nil {
			return ErrStaleTarget
		}
		switch en.State {
		case TankExploding, TankDead:
			return errEffectDone
		case TankAlive:
			e.fireTank(&en.Tank)
		}

	case EffectShieldFlicker:
		p := e.playerByID(ef.Target)
		if p == nil {
			return ErrStaleTarget
		}
		if !p.Shielded {
			return errEffectDone
		}
		p.ShieldFrame ^= 1

	case EffectExpireShield:
		p := e.playerByID(ef.Target)
		if p == nil {
			return ErrStaleTarget
		}
		p.Shielded = false
		p.ShieldFrame = 0
		e.sched.Cancel(p.shieldFlicker)

	case EffectExpireParalysis:
		p := e.playerByID(ef.Target)
		if p == nil {
			return ErrStaleTarget
		}
		p.Paralysed = false

	case EffectAdvanceFrame:
		t := e.transient(ef.Target)
		if t == nil {
			return ErrStaleTarget
		}
		t.advance()

	case EffectExpireLabel:
		t := e.transient(ef.Target)
		if t == nil {
			return ErrStaleTarget
		}
		t.Active = false

	case EffectExpirePowerUp:
		pu := e.powerUp(ef.Target)
		if pu == nil {
			return ErrStaleTarget
		}
		pu.Active = false

	case EffectPowerUpBlink:
		pu := e.powerUp(ef.Target)
		if pu == nil {
			return ErrStaleTarget
		}
		if !pu.Active {
			return errEffectDone
		}
		pu.Visible = !pu.Visible
	}
	return nil
}

func (e *Engine) playerByID(id EntityID) *Player {
	if e.player != nil && e.player.ID == id {
		return e.player
	}
	return nil
}

func (e *Engine) enemy(id EntityID) *Enemy {
	for _, en := range e.enemies {
		if en.ID == id {
			return en
		}
	}
	return nil
}

func (e *Engine) tank(id EntityID) *Tank {
	if p := e.playerByID(id); p != nil {
		return &p.Tank
	}
	if en := e.enemy(id); en != nil {
		return &en.Tank
	}
	return nil
}
