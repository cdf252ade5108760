package dungeon

import (
	"arpg-server/internal/domain"
	"arpg-server/pkg/logger"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/sirupsen/logrus"
)

// Константы генерации по умолчанию
const (
	MapWidth    = 100
	MapHeight   = 100
	RoomMinSize = 6
	RoomMaxSize = 15
	MaxDepth    = 4

	roomPadding = 1
	maxDoorSize = 3
)

// Config задаёт геометрию уровня.
type Config struct {
	Width       int
	Height      int
	RoomMinSize int
	RoomMaxSize int
	MaxDepth    int
}

func DefaultConfig() Config {
	return Config{
		Width:       MapWidth,
		Height:      MapHeight,
		RoomMinSize: RoomMinSize,
		RoomMaxSize: RoomMaxSize,
		MaxDepth:    MaxDepth,
	}
}

// Door is a run of floor cells carved through the wall shared by two rooms.
type Door struct {
	Rooms [2]int         `json:"rooms"`
	Cells []domain.Point `json:"cells"`
}

// Level is the output of one generation run.
type Level struct {
	World  *domain.WorldMap `json:"-"`
	Rooms  []domain.Room    `json:"rooms"`
	Doors  []Door           `json:"doors"`
	Leaves []Partition      `json:"-"`
}

// SpawnPoint возвращает центр стартовой комнаты (или центр карты, если комнат нет).
func (l *Level) SpawnPoint() domain.Point {
	for _, r := range l.Rooms {
		if r.IsStart {
			return r.Center()
		}
	}
	return domain.Point{X: l.World.Width / 2, Y: l.World.Height / 2}
}

// Generate builds a level: partition, carve rooms, decorate, place doors,
// then force every remaining non-walkable cell to stone.
func Generate(cfg Config, rng *rand.Rand, decorator Decorator) *Level {
	if decorator == nil {
		decorator = defaultDecorator{}
	}
	genLogger := logger.Component("dungeon").WithFields(logrus.Fields{
		"width":  cfg.Width,
		"height": cfg.Height,
	})

	// 1. Всё непроходимое
	world := domain.NewWorldMap(cfg.Width, cfg.Height, domain.TemplateEmpty)

	// 2. BSP до листьев
	root := Partition{X: 0, Y: 0, Width: cfg.Width, Height: cfg.Height}
	leaves := BuildTree(root, rng, cfg.RoomMinSize, cfg.RoomMaxSize, cfg.MaxDepth).Leaves()

	// 3. Комната в каждом листе
	floor := newFloorPicker(rng.Int63())
	rooms := make([]domain.Room, 0, len(leaves))
	for _, leaf := range leaves {
		room := roomInPartition(leaf, cfg.Width, cfg.Height, randomRoomType(rng))
		carveRoom(world, room, floor)
		rooms = append(rooms, room)
	}
	if len(rooms) > 0 {
		rooms[0].IsStart = true
		rooms[len(rooms)-1].IsEnd = true
	}

	// 4. Хук декора
	for _, room := range rooms {
		decorator.Decorate(room, world, rng)
	}

	// 5. Двери
	doors := placeDoors(world, rooms)

	// 6. Всё, что не проходимо, становится камнем
	stone := domain.MustTile(domain.TemplateStone2)
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			if !world.Tiles[y][x].Walkable {
				world.Tiles[y][x] = stone
			}
		}
	}

	genLogger.WithFields(logrus.Fields{
		"leaves": len(leaves),
		"rooms":  len(rooms),
		"doors":  len(doors),
	}).Debug("Level generated")

	return &Level{World: world, Rooms: rooms, Doors: doors, Leaves: leaves}
}

// roomInPartition insets the leaf by one cell on its low sides, so neighbouring
// leaves share a single wall cell. Leaves on the far map edge give up one more
// cell to keep the outer border solid.
func roomInPartition(p Partition, mapWidth, mapHeight int, t domain.RoomType) domain.Room {
	room := domain.Room{
		X:      p.X + roomPadding,
		Y:      p.Y + roomPadding,
		Width:  p.Width - roomPadding,
		Height: p.Height - roomPadding,
		Type:   t,
	}
	if p.X+p.Width >= mapWidth {
		room.Width -= roomPadding
	}
	if p.Y+p.Height >= mapHeight {
		room.Height -= roomPadding
	}
	return room
}

func randomRoomType(rng *rand.Rand) domain.RoomType {
	return domain.RoomTypes[rng.Intn(len(domain.RoomTypes))]
}

func carveRoom(world *domain.WorldMap, room domain.Room, floor *floorPicker) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			world.Set(x, y, floor.at(x, y))
		}
	}
}

// floorPicker раскрашивает пол шумом Перлина, чтобы комнаты не были однотонными.
type floorPicker struct {
	noise *perlin.Perlin
}

func newFloorPicker(seed int64) *floorPicker {
	return &floorPicker{noise: perlin.NewPerlin(2, 2, 3, seed)}
}

func (f *floorPicker) at(x, y int) domain.Tile {
	n := f.noise.Noise2D(float64(x)*0.1, float64(y)*0.1)
	switch {
	case n > 0.3:
		return domain.MustTile(domain.TemplateGrass2)
	case n < -0.35:
		return domain.MustTile(domain.TemplateDirt2)
	default:
		return domain.MustTile(domain.TemplateGrass1)
	}
}
