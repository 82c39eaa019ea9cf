package sim

import (
	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// TileKind is the terrain type of one 16x16 tile.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileBrick
	TileSteel
	TileWater
	TileGrass
	TileFrozen
)

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileBrick:
		return "brick"
	case TileSteel:
		return "steel"
	case TileWater:
		return "water"
	case TileGrass:
		return "grass"
	case TileFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Blocks reports whether tanks and projectiles collide with the kind.
func (k TileKind) Blocks() bool {
	return k == TileBrick || k == TileSteel || k == TileWater
}

// Tile is one non-empty terrain cell, addressed by its top-left pixel.
type Tile struct {
	Pos  core.Point
	Kind TileKind
}

// Rect returns the tile's bounding box.
func (t Tile) Rect() core.Rect {
	return core.NewRect(t.Pos.X, t.Pos.Y, TileSize, TileSize)
}

// TileAt builds a tile from grid (column, row) coordinates.
func TileAt(col, row int, kind TileKind) Tile {
	return Tile{Pos: core.Point{X: col * TileSize, Y: row * TileSize}, Kind: kind}
}

// CastleRect is the player's base, two tiles wide at the bottom center.
var CastleRect = core.NewRect(12*TileSize, 24*TileSize, 2*TileSize, 2*TileSize)

// FortressPositions are the eight tiles walling the castle.
var FortressPositions = []core.Point{
	{X: 11 * TileSize, Y: 23 * TileSize},
	{X: 11 * TileSize, Y: 24 * TileSize},
	{X: 11 * TileSize, Y: 25 * TileSize},
	{X: 14 * TileSize, Y: 23 * TileSize},
	{X: 14 * TileSize, Y: 24 * TileSize},
	{X: 14 * TileSize, Y: 25 * TileSize},
	{X: 12 * TileSize, Y: 23 * TileSize},
	{X: 13 * TileSize, Y: 23 * TileSize},
}

// Grid is the static collision surface of a stage. It owns the ordered tile
// list and the obstacle list derived from it (castle first, then every
// brick, steel and water tile in tile order). The obstacle list is rebuilt
// on every tile mutation, so queries always see the current terrain.
type Grid struct {
	tiles     []Tile
	obstacles []core.Rect
	rewards   config.TanksRewards
	water     int // animation frame, 0 or 1
}

// NewGrid builds a grid from level tiles. Empty tiles and tiles under the
// castle are dropped.
func NewGrid(tiles []Tile, rewards config.TanksRewards) *Grid {
	g := &Grid{
		tiles:   make([]Tile, 0, len(tiles)),
		rewards: rewards,
	}
	for _, t := range tiles {
		if t.Kind == TileEmpty || t.Rect().Intersects(CastleRect) {
			continue
		}
		g.tiles = append(g.tiles, t)
	}
	g.rebuild()
	return g
}

func (g *Grid) rebuild() {
	g.obstacles = append(g.obstacles[:0], CastleRect)
	for _, t := range g.tiles {
		if t.Kind.Blocks() {
			g.obstacles = append(g.obstacles, t.Rect())
		}
	}
}

// Tiles returns a copy of the current tile list.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// Obstacles returns a copy of the derived obstacle list.
func (g *Grid) Obstacles() []core.Rect {
	out := make([]core.Rect, len(g.obstacles))
	copy(out, g.obstacles)
	return out
}

// ObstaclesAt reports whether r overlaps any obstacle.
func (g *Grid) ObstaclesAt(r core.Rect) bool {
	return r.IndexOfIntersect(g.obstacles) >= 0
}

// overlapping returns the top-left corners of every obstacle r overlaps.
func (g *Grid) overlapping(r core.Rect) []core.Point {
	var hits []core.Point
	for _, o := range g.obstacles {
		if r.Intersects(o) {
			hits = append(hits, o.TopLeft())
		}
	}
	return hits
}

// Tile returns the tile whose top-left corner is pos.
func (g *Grid) Tile(pos core.Point) (Tile, bool) {
	if i := g.indexAt(pos); i >= 0 {
		return g.tiles[i], true
	}
	return Tile{}, false
}

func (g *Grid) indexAt(pos core.Point) int {
	for i, t := range g.tiles {
		if t.Pos == pos {
			return i
		}
	}
	return -1
}

func (g *Grid) remove(i int) {
	g.tiles = append(g.tiles[:i], g.tiles[i+1:]...)
	g.rebuild()
}

// HitTile applies a projectile hit on the obstacle whose top-left corner is pos.
// It reports whether the projectile was stopped and the score change owed to
// the player when the hit is attributable to them.
//
// Brick is always destroyed. Steel always stops the projectile and is destroyed
// only by power 2. The castle stops projectiles and is never destroyed.
// Any other tile lets the projectile through.
func (g *Grid) HitTile(pos core.Point, power int, attributable bool) (stopped bool, delta float64) {
	i := g.indexAt(pos)
	if i < 0 {
		return pos == CastleRect.TopLeft(), 0
	}

	switch g.tiles[i].Kind {
	case TileBrick:
		g.remove(i)
		if attributable {
			delta += g.rewards.Brick
		}
		return true, delta
	case TileSteel:
		if attributable {
			delta -= g.rewards.SteelHit
		}
		if power >= 2 {
			g.remove(i)
			if attributable {
				delta += g.rewards.SteelBreak
			}
		}
		return true, delta
	default:
		return false, 0
	}
}

// BuildFortress replaces the eight fortress tiles with kind.
func (g *Grid) BuildFortress(kind TileKind) {
	kept := g.tiles[:0]
	for _, t := range g.tiles {
		if !isFortress(t.Pos) {
			kept = append(kept, t)
		}
	}
	g.tiles = kept
	for _, p := range FortressPositions {
		g.tiles = append(g.tiles, Tile{Pos: p, Kind: kind})
	}
	g.rebuild()
}

func isFortress(p core.Point) bool {
	for _, f := range FortressPositions {
		if f == p {
			return true
		}
	}
	return false
}

// ToggleWater advances the water animation frame.
func (g *Grid) ToggleWater() {
	g.water ^= 1
}

// WaterFrame returns the current water animation frame.
func (g *Grid) WaterFrame() int {
	return g.water
}

// CountKind returns how many tiles of kind remain.
func (g *Grid) CountKind(kind TileKind) int {
	n := 0
	for _, t := range g.tiles {
		if t.Kind == kind {
			n++
		}
	}
	return n
}
