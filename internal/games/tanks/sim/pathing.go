package sim

import "github.com/vovakirdan/tui-tanks/internal/core"

// Enemy spawn points along the top edge, centered in 32px cells.
var spawnPoints = [...]core.Point{
	{X: 3, Y: 3},
	{X: 12*TileSize + 3, Y: 3},
	{X: 24*TileSize + 3, Y: 3},
}

// freeSpawnPosition picks a random spawn point not overlapping any live tank.
func (e *Engine) freeSpawnPosition(r core.Rect) (core.Point, bool) {
	points := spawnPoints
	e.rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})

next:
	for _, pt := range points {
		cand := r.At(pt)
		if cand.Intersects(e.player.Rect) {
			continue
		}
		for _, en := range e.enemies {
			if en.State != TankDead && cand.Intersects(en.Rect) {
				continue next
			}
		}
		return pt, true
	}
	return core.Point{}, false
}

// canProbe reports whether the tile at (col, row) is far enough from the edge
// to look one half-tile further in d.
func canProbe(d Direction, col, row int) bool {
	switch d {
	case DirUp:
		return row > 1
	case DirRight:
		return col < GridSize-2
	case DirDown:
		return row < GridSize-2
	default:
		return col > 1
	}
}

// planPath picks a new heading for en and returns the waypoints of a straight
// run along it. With a hint the hinted direction is tried first and its
// opposite last; without one the reverse of the current heading is the last
// resort. When every probe is blocked the enemy turns around.
func (e *Engine) planPath(en *Enemy, hint Direction, hinted, snap bool) []core.Point {
	last := en.Dir.Opposite()
	if hinted {
		last = hint.Opposite()
	}

	order := make([]Direction, 0, 4)
	if hinted {
		order = append(order, hint)
	}
	for _, i := range e.rng.Perm(4) {
		d := Direction(i)
		if d == last || (hinted && d == hint) {
			continue
		}
		order = append(order, d)
	}
	order = append(order, last)

	col := core.Nearest(en.Rect.X, TileSize) / TileSize
	row := core.Nearest(en.Rect.Y, TileSize) / TileSize

	heading := last
	for _, d := range order {
		if !canProbe(d, col, row) {
			continue
		}
		dx, dy := d.Delta(TileSize / 2)
		if !e.grid.ObstaclesAt(en.Rect.Moved(dx, dy)) {
			heading = d
			break
		}
	}

	if snap && heading == en.Dir {
		snap = false
	}
	en.rotate(heading, snap)

	run := (e.rng.Intn(12)+1)*2*TileSize + 3
	step := max(en.Speed, 1)
	start := en.Rect.TopLeft()
	path := make([]core.Point, 0, run/step+1)
	for px := 0; px < run; px += step {
		dx, dy := heading.Delta(px)
		path = append(path, start.Add(dx, dy))
	}
	return path
}

// moveEnemy advances en to its next waypoint. A blocked waypoint replans
// instead of moving. Enemies crush any power-up they drive over.
func (e *Engine) moveEnemy(en *Enemy) {
	if len(en.path) == 0 {
		en.path = e.planPath(en, 0, false, true)
	}
	next := en.path[0]
	en.path = en.path[1:]

	r := en.Rect.At(next)
	if outOfArena(r, en.Dir) || e.grid.ObstaclesAt(r) {
		en.path = e.planPath(en, en.Dir, true, true)
		return
	}
	for _, pu := range e.powerUps {
		if pu.Active && r.Intersects(pu.Rect) {
			pu.Active = false
		}
	}
	en.Rect = r
}
