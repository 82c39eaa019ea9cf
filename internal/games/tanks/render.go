package tanks

import (
	"fmt"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

// Each tile is drawn as two columns by one row, which keeps the square
// arena roughly square in a terminal.
const (
	hudHeight    = 2
	colsPerTile  = 2
	arenaCols    = sim.GridSize * colsPerTile
	arenaRows    = sim.GridSize
	pxPerCol     = sim.TileSize / colsPerTile
	pxPerRow     = sim.TileSize
	borderMargin = 1
)

// Minimum screen size for the arena, its border and the HUD.
const (
	MinScreenW = arenaCols + 2*borderMargin
	MinScreenH = arenaRows + hudHeight + 2*borderMargin
)

// viewport maps arena pixels onto screen cells.
type viewport struct {
	ox, oy int
}

func newViewport(dst *core.Screen) viewport {
	return viewport{
		ox: (dst.Width() - arenaCols) / 2,
		oy: hudHeight + borderMargin,
	}
}

func (v viewport) cell(x, y int) (int, int) {
	return v.ox + x/pxPerCol, v.oy + y/pxPerRow
}

func (v viewport) rect(r core.Rect) core.Rect {
	c0, r0 := v.cell(r.X, r.Y)
	c1, r1 := v.cell(r.Right()-1, r.Bottom()-1)
	return core.NewRect(c0, r0, c1-c0+1, r1-r0+1)
}

var tileGlyphs = map[sim.TileKind]struct {
	r rune
	c core.Color
}{
	sim.TileBrick:  {'▒', core.ColorOrange},
	sim.TileSteel:  {'█', core.ColorGray},
	sim.TileWater:  {'≈', core.ColorBlue},
	sim.TileGrass:  {'♣', core.ColorGreen},
	sim.TileFrozen: {'░', core.ColorBrightCyan},
}

var enemyColors = map[sim.EnemyKind]core.Color{
	sim.EnemyBasic: core.ColorWhite,
	sim.EnemyFast:  core.ColorCyan,
	sim.EnemyPower: core.ColorMagenta,
	sim.EnemyArmor: core.ColorGreen,
}

var barrels = [...]rune{'▲', '▶', '▼', '◀'}

var powerUpGlyphs = map[sim.PowerUpKind]rune{
	sim.PowerUpGrenade:       'G',
	sim.PowerUpShield:        'H',
	sim.PowerUpFortifyWalls:  'S',
	sim.PowerUpWeaponUpgrade: '*',
	sim.PowerUpExtraLife:     'T',
	sim.PowerUpFreezeTime:    'C',
}

// Render draws the arena.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	e := g.engine
	v := newViewport(dst)

	g.renderHUD(dst)
	dst.DrawBoxColored(core.NewRect(v.ox-1, v.oy-1, arenaCols+2, arenaRows+2), core.ColorGray)

	renderTerrain(dst, v, e.Grid(), false)
	renderCastle(dst, v)
	renderPowerUps(dst, v, e.PowerUps())
	renderPlayer(dst, v, e.Player())
	for _, en := range e.Enemies() {
		renderEnemy(dst, v, en)
	}
	renderProjectiles(dst, v, e.Projectiles())
	renderTerrain(dst, v, e.Grid(), true)
	renderTransients(dst, v, e.Transients())

	g.renderOverlay(dst)
}

// renderHUD draws score, lives, stage and active round effects.
func (g *Game) renderHUD(dst *core.Screen) {
	e := g.engine
	dst.DrawText(1, 0, fmt.Sprintf("Score: %.3f", e.Score()))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", e.Lives()))
	stage := fmt.Sprintf("Stage: %d", e.Stage())
	dst.DrawText(dst.Width()-len(stage)-1, 0, stage)

	status := fmt.Sprintf("Kills: %d/%d", e.Kills(), g.cfg.Enemies.PerStage)
	p := e.Player()
	if p.Superpower > 0 {
		status += fmt.Sprintf("  Star: %d", p.Superpower)
	}
	if p.Shielded {
		status += "  Shield"
	}
	if p.Paralysed {
		status += "  Stunned"
	}
	if e.Frozen() {
		status += "  Freeze"
	}
	dst.DrawText(1, 1, status)
}

// renderTerrain draws ground tiles, or only grass when overlay is set so it
// hides tanks beneath it.
func renderTerrain(dst *core.Screen, v viewport, grid *sim.Grid, overlay bool) {
	for _, t := range grid.Tiles() {
		if (t.Kind == sim.TileGrass) != overlay {
			continue
		}
		glyph, ok := tileGlyphs[t.Kind]
		if !ok {
			continue
		}
		r := glyph.r
		if t.Kind == sim.TileWater && grid.WaterFrame() == 1 {
			r = '~'
		}
		dst.DrawRectColored(v.rect(t.Rect()), r, glyph.c)
	}
}

func renderCastle(dst *core.Screen, v viewport) {
	r := v.rect(sim.CastleRect)
	dst.DrawRectColored(r, ' ', core.ColorDefault)
	dst.DrawTextColored(r.X, r.Y, "/^^\\", core.ColorBrightYellow)
	dst.DrawTextColored(r.X, r.Y+1, "|##|", core.ColorBrightYellow)
}

func renderPowerUps(dst *core.Screen, v viewport, pus []*sim.PowerUp) {
	for _, pu := range pus {
		if !pu.Visible {
			continue
		}
		cx, cy := pu.Rect.Center()
		x, y := v.cell(cx, cy)
		dst.SetColored(x, y, powerUpGlyphs[pu.Kind], core.ColorBrightMagenta)
	}
}

func renderTank(dst *core.Screen, v viewport, t *sim.Tank, body core.Color) {
	r := v.rect(t.Rect)
	switch t.State {
	case sim.TankSpawning:
		glyph := '+'
		if t.SpawnFrame == 1 {
			glyph = 'x'
		}
		dst.DrawRectColored(r, glyph, core.ColorBrightWhite)
		return
	case sim.TankAlive:
	default:
		return
	}

	dst.DrawRectColored(r, '█', body)
	cx, cy := t.Rect.Center()
	x, y := v.cell(cx, cy)
	dst.SetColored(x, y, barrels[t.Dir], core.ColorBrightWhite)
}

func renderPlayer(dst *core.Screen, v viewport, p *sim.Player) {
	body := core.ColorBrightYellow
	if p.Shielded && p.ShieldFrame == 1 {
		body = core.ColorBrightWhite
	}
	if p.Paralysed {
		body = core.ColorYellow
	}
	renderTank(dst, v, &p.Tank, body)
}

func renderEnemy(dst *core.Screen, v viewport, en *sim.Enemy) {
	body := enemyColors[en.Kind]
	if en.Carrier {
		body = core.ColorBrightRed
	}
	renderTank(dst, v, &en.Tank, body)
}

func renderProjectiles(dst *core.Screen, v viewport, ps []*sim.Projectile) {
	for _, p := range ps {
		if p.State != sim.ProjectileActive {
			continue
		}
		cx, cy := p.Rect.Center()
		x, y := v.cell(cx, cy)
		color := core.ColorBrightWhite
		if p.Side == sim.SideEnemy {
			color = core.ColorBrightRed
		}
		dst.SetColored(x, y, '•', color)
	}
}

func renderTransients(dst *core.Screen, v viewport, ts []*sim.Transient) {
	for _, t := range ts {
		x, y := v.cell(t.Pos.X, t.Pos.Y)
		switch t.Kind {
		case sim.TransientExplosion:
			if t.Large() {
				dst.DrawRectColored(core.NewRect(x-1, y, 3, 1), '✸', core.ColorOrange)
				continue
			}
			dst.SetColored(x, y, '*', core.ColorYellow)
		case sim.TransientLabel:
			dst.DrawTextColored(x, y, t.Text, core.ColorBrightWhite)
		}
	}
}

// renderOverlay draws pause and game over messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	switch {
	case g.engine.IsOver():
		dst.DrawTextCentered(mid-1, "GAME OVER")
		dst.DrawTextCentered(mid, g.engine.Reason())
		dst.DrawTextCentered(mid+1, "Press R to restart")
	case g.paused:
		dst.DrawTextCentered(mid, "PAUSED")
	}
}
