package domain

// TileType совпадает с индексом тайла в тайлсете рендерера.
// Empty (-1) означает отсутствие тайла и никогда не рисуется.
type TileType int8

const (
	TileEmpty  TileType = -1
	TileDirt1  TileType = 0
	TileDirt2  TileType = 1
	TileDirt3  TileType = 2
	TileGrass1 TileType = 3
	TileGrass2 TileType = 4
	TileFloor  TileType = 5
	TileStone1 TileType = 6
	TileStone2 TileType = 7
	TileWall   TileType = 8
)

var tileTypeNames = map[TileType]string{
	TileEmpty:  "empty",
	TileDirt1:  "dirt1",
	TileDirt2:  "dirt2",
	TileDirt3:  "dirt3",
	TileGrass1: "grass1",
	TileGrass2: "grass2",
	TileFloor:  "floor",
	TileStone1: "stone1",
	TileStone2: "stone2",
	TileWall:   "wall",
}

func (t TileType) String() string {
	if name, ok := tileTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Tile is a value: copying it never aliases another cell.
type Tile struct {
	Type     TileType `json:"type"`
	Walkable bool     `json:"walkable"`
}

// Имена шаблонов тайлов.
const (
	TemplateGrass1 = "GRASS1"
	TemplateGrass2 = "GRASS2"
	TemplateDirt1  = "DIRT1"
	TemplateDirt2  = "DIRT2"
	TemplateDirt3  = "DIRT3"
	TemplateFloor  = "FLOOR"
	TemplateStone1 = "STONE1"
	TemplateStone2 = "STONE2"
	TemplateWall   = "WALL"
	TemplateEmpty  = "EMPTY"
)

var tileTemplates = map[string]Tile{
	TemplateGrass1: {Type: TileGrass1, Walkable: true},
	TemplateGrass2: {Type: TileGrass2, Walkable: true},
	TemplateDirt1:  {Type: TileDirt1, Walkable: true},
	TemplateDirt2:  {Type: TileDirt2, Walkable: true},
	TemplateDirt3:  {Type: TileDirt3, Walkable: true},
	TemplateFloor:  {Type: TileFloor, Walkable: true},
	TemplateStone1: {Type: TileStone1, Walkable: false},
	TemplateStone2: {Type: TileStone2, Walkable: false},
	TemplateWall:   {Type: TileWall, Walkable: false},
	TemplateEmpty:  {Type: TileEmpty, Walkable: false},
}

// NewTile returns a fresh tile built from the named template.
// Unknown names yield the EMPTY template and false.
func NewTile(template string) (Tile, bool) {
	t, ok := tileTemplates[template]
	if !ok {
		return tileTemplates[TemplateEmpty], false
	}
	return t, true
}

// MustTile is NewTile for template names known at compile time.
func MustTile(template string) Tile {
	t, ok := NewTile(template)
	if !ok {
		panic("unknown tile template: " + template)
	}
	return t
}

// Collides reports whether a rendered tile of this type blocks movement.
// Empty cells are invisible placeholders and carry no collision.
func (t TileType) Collides() bool {
	switch t {
	case TileStone1, TileStone2, TileWall:
		return true
	}
	return false
}
