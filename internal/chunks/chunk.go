package chunks

import (
	"arpg-server/internal/domain"
	"fmt"
	"strconv"
	"strings"
)

// Coord - координата чанка в сетке чанков (не в клетках).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Key returns the chunk map key "x,y".
func (c Coord) Key() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// Chebyshev is the distance between chunks in chunk units.
func (c Coord) Chebyshev(other Coord) int {
	return max(abs(c.X-other.X), abs(c.Y-other.Y))
}

// ParseKey is the inverse of Coord.Key.
func ParseKey(key string) (Coord, error) {
	xs, ys, ok := strings.Cut(key, ",")
	if !ok {
		return Coord{}, fmt.Errorf("chunk key %q: missing comma", key)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Coord{}, fmt.Errorf("chunk key %q: %w", key, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Coord{}, fmt.Errorf("chunk key %q: %w", key, err)
	}
	return Coord{X: x, Y: y}, nil
}

// Layer is the renderable slice of the world covered by one chunk.
// Tiles is always Size×Size; cells past the world edge hold TileEmpty.
type Layer struct {
	Origin    domain.Point        `json:"origin"`
	Size      int                 `json:"size"`
	Tiles     [][]domain.TileType `json:"tiles"`
	Collision [][]bool            `json:"collision"`
}

// Collides reports collision at a cell local to the layer.
func (l *Layer) Collides(x, y int) bool {
	if y < 0 || y >= len(l.Collision) || x < 0 || x >= len(l.Collision[y]) {
		return false
	}
	return l.Collision[y][x]
}

// Chunk is created once and then only shown or hidden.
type Chunk struct {
	Coord   Coord
	Layer   *Layer
	Visible bool
}

func (c *Chunk) Key() string { return c.Coord.Key() }

// buildLayer копирует участок мира под чанк: сначала заполняет заглушкой EMPTY,
// затем переносит клетки, попавшие в границы мира.
func buildLayer(world *domain.WorldMap, c Coord, size int) *Layer {
	origin := domain.Point{X: c.X * size, Y: c.Y * size}
	l := &Layer{
		Origin:    origin,
		Size:      size,
		Tiles:     make([][]domain.TileType, size),
		Collision: make([][]bool, size),
	}
	for j := 0; j < size; j++ {
		row := make([]domain.TileType, size)
		coll := make([]bool, size)
		for i := 0; i < size; i++ {
			t := world.At(origin.X+i, origin.Y+j)
			row[i] = t.Type
			coll[i] = t.Type.Collides()
		}
		l.Tiles[j] = row
		l.Collision[j] = coll
	}
	return l
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
