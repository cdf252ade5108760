package domain

// WorldMap - сетка тайлов уровня, Tiles[y][x].
// Пишет в неё только генератор; после генерации карта используется только на чтение.
type WorldMap struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  [][]Tile `json:"tiles"`
}

// NewWorldMap allocates a width×height grid filled with copies of the template.
func NewWorldMap(width, height int, template string) *WorldMap {
	fill := MustTile(template)
	tiles := make([][]Tile, height)
	for y := range tiles {
		row := make([]Tile, width)
		for x := range row {
			row[x] = fill
		}
		tiles[y] = row
	}
	return &WorldMap{Width: width, Height: height, Tiles: tiles}
}

func (m *WorldMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At returns the tile at (x, y); outside the map it returns the EMPTY placeholder.
func (m *WorldMap) At(x, y int) Tile {
	if !m.InBounds(x, y) {
		return MustTile(TemplateEmpty)
	}
	return m.Tiles[y][x]
}

// Set replaces the tile at (x, y). Out-of-bounds writes are ignored.
func (m *WorldMap) Set(x, y int, t Tile) {
	if !m.InBounds(x, y) {
		return
	}
	m.Tiles[y][x] = t
}

func (m *WorldMap) Walkable(x, y int) bool {
	return m.InBounds(x, y) && m.Tiles[y][x].Walkable
}

// CountWalkable возвращает число проходимых клеток (для дебага и тестов).
func (m *WorldMap) CountWalkable() int {
	n := 0
	for y := range m.Tiles {
		for x := range m.Tiles[y] {
			if m.Tiles[y][x].Walkable {
				n++
			}
		}
	}
	return n
}
