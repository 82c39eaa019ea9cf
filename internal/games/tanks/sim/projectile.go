package sim

import "github.com/vovakirdan/tui-tanks/internal/core"

// ProjectileState is the projectile lifecycle.
type ProjectileState int

const (
	ProjectileActive ProjectileState = iota
	ProjectileExploding
	ProjectileRemoved
)

// Projectile is a bullet in flight. Owner is a weak handle used only for
// score attribution and the per-tank bullet cap.
type Projectile struct {
	ID     EntityID
	Owner  EntityID
	Side   Side
	Rect   core.Rect
	Dir    Direction
	Speed  int
	Power  int // 2 breaks steel
	Damage int
	State  ProjectileState

	Explosion *Transient
}

// fireTank spawns a projectile from t unless t is paused or already has
// MaxBullets active projectiles. It reports whether a shot was fired.
func (e *Engine) fireTank(t *Tank) bool {
	if t.Paused {
		return false
	}
	active := 0
	for _, p := range e.projectiles {
		if p.Owner == t.ID && p.State == ProjectileActive {
			active++
		}
	}
	if active >= t.MaxBullets {
		return false
	}

	p := &Projectile{
		ID:     e.newID(),
		Owner:  t.ID,
		Side:   t.Side,
		Rect:   muzzle(t.Rect, t.Dir),
		Dir:    t.Dir,
		Speed:  e.cfg.Bullets.Speed,
		Power:  1,
		Damage: e.cfg.Bullets.Damage,
		State:  ProjectileActive,
	}
	if t.Superpower > 0 {
		p.Speed = e.cfg.Bullets.FastSpeed
	}
	if t.Superpower > 2 {
		p.Power = 2
	}
	e.projectiles = append(e.projectiles, p)
	return true
}

func (e *Engine) explodeProjectile(p *Projectile) {
	if p.State != ProjectileActive {
		return
	}
	cx, cy := p.Rect.Center()
	p.State = ProjectileExploding
	p.Explosion = e.newExplosion(core.Point{X: cx, Y: cy}, smallExplosionFrames)
}

// updateProjectile advances one projectile by a tick. Checks run in priority
// order: arena edge, terrain, opposing projectiles, the player, enemies.
func (e *Engine) updateProjectile(p *Projectile) {
	if p.State == ProjectileExploding {
		if p.Explosion == nil || !p.Explosion.Active {
			p.State = ProjectileRemoved
			p.Explosion = nil
		}
		return
	}
	if p.State != ProjectileActive {
		return
	}

	dx, dy := p.Dir.Delta(p.Speed)
	p.Rect = p.Rect.Moved(dx, dy)
	if outOfArena(p.Rect, p.Dir) {
		e.explodeProjectile(p)
		return
	}

	// One projectile may break every tile it overlaps but explodes once.
	stopped := false
	for _, pos := range e.grid.overlapping(p.Rect) {
		hit, delta := e.grid.HitTile(pos, p.Power, p.Side == SidePlayer)
		e.player.Score += delta
		stopped = stopped || hit
	}
	if stopped {
		e.explodeProjectile(p)
		return
	}

	for _, other := range e.projectiles {
		if other == p || other.State != ProjectileActive || other.Side == p.Side {
			continue
		}
		if p.Rect.Intersects(other.Rect) {
			// Sides differ, so one of the pair belongs to the player.
			e.player.Score += e.cfg.Rewards.Clash
			p.State = ProjectileRemoved
			other.State = ProjectileRemoved
			return
		}
	}

	pl := e.player
	if pl.State == TankAlive && p.Owner != pl.ID && p.Rect.Intersects(pl.Rect) {
		if e.impact(&pl.Tank, p.Side == SidePlayer, p.Damage, p.Owner) {
			e.explodeProjectile(p)
			return
		}
	}

	for _, en := range e.enemies {
		if en.State != TankAlive || en.ID == p.Owner || !p.Rect.Intersects(en.Rect) {
			continue
		}
		if e.impact(&en.Tank, p.Side == SideEnemy, p.Damage, p.Owner) {
			e.explodeProjectile(p)
			return
		}
	}

	e.player.Score -= e.cfg.Rewards.Miss
}
