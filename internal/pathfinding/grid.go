package pathfinding

import "arpg-server/internal/domain"

const (
	open    uint8 = 0
	blocked uint8 = 1
)

// Grid - бинарная карта проходимости: Grid[y][x] == 1 означает препятствие.
type Grid [][]uint8

// NewGrid compacts the world map into a fresh binary grid, one row per world row.
// The result shares no memory with the world.
func NewGrid(world *domain.WorldMap) Grid {
	g := make(Grid, world.Height)
	for y := range g {
		row := make([]uint8, world.Width)
		for x := range row {
			if !world.Tiles[y][x].Walkable {
				row[x] = blocked
			}
		}
		g[y] = row
	}
	return g
}

func (g Grid) Height() int { return len(g) }

func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds проверяет по длине конкретной строки, а не по первой.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && y < len(g) && x < len(g[y])
}

func (g Grid) Walkable(x, y int) bool {
	return g.InBounds(x, y) && g[y][x] == open
}

// LineOfSight reports whether every cell of the Bresenham line between a and b,
// endpoints included, is open.
func (g Grid) LineOfSight(a, b domain.Point) bool {
	for _, p := range Raycasting(a.X, a.Y, b.X, b.Y) {
		if !g.Walkable(p.X, p.Y) {
			return false
		}
	}
	return true
}
