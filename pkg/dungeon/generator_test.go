package dungeon

import (
	"arpg-server/internal/domain"
	"math/rand"
	"strings"
	"testing"
)

func generate(seed int64) *Level {
	return NewLevel(rand.New(rand.NewSource(seed))).
		WithSize(100, 100).
		WithRoomSize(6, 15).
		WithMaxDepth(4).
		Build()
}

func TestGenerate(t *testing.T) {
	level := generate(42)
	world := level.World

	// 1. Проверка размеров мира
	if world.Width != 100 || world.Height != 100 || len(world.Tiles) != 100 || len(world.Tiles[0]) != 100 {
		t.Fatalf("Expected map size 100x100, got %dx%d", world.Width, world.Height)
	}

	// 2. Хотя бы одна комната и хотя бы одна дверь
	if len(level.Rooms) == 0 {
		t.Fatal("No rooms generated")
	}
	if len(level.Rooms) >= 2 && len(level.Doors) == 0 {
		t.Error("Expected at least one door between adjacent rooms")
	}

	// 3. Стартовая точка не в стене
	spawn := level.SpawnPoint()
	if !world.Walkable(spawn.X, spawn.Y) {
		t.Errorf("Spawn point %v is inside a wall", spawn)
	}
}

func TestGenerate_GridClosure(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		level := generate(seed)
		world := level.World

		door := make(map[domain.Point]bool)
		for _, d := range level.Doors {
			for _, c := range d.Cells {
				door[c] = true
			}
		}

		for y := 0; y < world.Height; y++ {
			for x := 0; x < world.Width; x++ {
				tile := world.Tiles[y][x]
				if tile.Type == domain.TileEmpty {
					t.Fatalf("seed %d: cell (%d,%d) left empty", seed, x, y)
				}

				inRoom := false
				for _, r := range level.Rooms {
					if r.Contains(x, y) {
						inRoom = true
						break
					}
				}
				want := inRoom || door[domain.Point{X: x, Y: y}]
				if tile.Walkable != want {
					t.Fatalf("seed %d: cell (%d,%d) walkable=%v, want %v", seed, x, y, tile.Walkable, want)
				}
				if !tile.Walkable && tile.Type != domain.TileStone2 {
					t.Fatalf("seed %d: non-walkable cell (%d,%d) has type %v", seed, x, y, tile.Type)
				}
			}
		}
	}
}

func TestGenerate_RoomsInsideLeaves(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		level := generate(seed)
		if len(level.Rooms) != len(level.Leaves) {
			t.Fatalf("seed %d: %d rooms for %d leaves", seed, len(level.Rooms), len(level.Leaves))
		}
		for i, r := range level.Rooms {
			p := level.Leaves[i]
			if r.X <= p.X || r.Y <= p.Y || r.X+r.Width > p.X+p.Width || r.Y+r.Height > p.Y+p.Height {
				t.Errorf("seed %d: room %+v escapes partition %+v", seed, r, p)
			}
			if r.X+r.Width > level.World.Width-1 || r.Y+r.Height > level.World.Height-1 {
				t.Errorf("seed %d: room %+v touches the map border", seed, r)
			}
		}
		if !level.Rooms[0].IsStart || !level.Rooms[len(level.Rooms)-1].IsEnd {
			t.Errorf("seed %d: start/end rooms not flagged", seed)
		}
	}
}

func TestGenerate_DoorsSitOnSharedWall(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		level := generate(seed)
		for _, d := range level.Doors {
			if len(d.Cells) == 0 || len(d.Cells) > maxDoorSize {
				t.Fatalf("seed %d: door length %d", seed, len(d.Cells))
			}
			a, b := level.Rooms[d.Rooms[0]], level.Rooms[d.Rooms[1]]
			for _, c := range d.Cells {
				if !level.World.Walkable(c.X, c.Y) {
					t.Fatalf("seed %d: door cell %v not walkable", seed, c)
				}
				if a.Contains(c.X, c.Y) || b.Contains(c.X, c.Y) {
					t.Fatalf("seed %d: door cell %v lies inside a room", seed, c)
				}
				if !touches(a, c) || !touches(b, c) {
					t.Fatalf("seed %d: door cell %v does not join rooms %+v and %+v", seed, c, a, b)
				}
			}
		}
	}
}

func touches(r domain.Room, c domain.Point) bool {
	return r.Contains(c.X-1, c.Y) || r.Contains(c.X+1, c.Y) || r.Contains(c.X, c.Y-1) || r.Contains(c.X, c.Y+1)
}

func TestDoorSpan(t *testing.T) {
	tests := []struct {
		name               string
		aStart, aLen       int
		bStart, bLen       int
		wantStart, wantLen int
	}{
		{name: "full overlap", aStart: 1, aLen: 10, bStart: 1, bLen: 10, wantStart: 4, wantLen: 3},
		{name: "short overlap", aStart: 1, aLen: 6, bStart: 4, bLen: 10, wantStart: 0, wantLen: 0},
		{name: "clipped to three", aStart: 0, aLen: 7, bStart: 1, bLen: 10, wantStart: 2, wantLen: 3},
		{name: "disjoint", aStart: 0, aLen: 5, bStart: 10, bLen: 5, wantStart: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, size := doorSpan(tt.aStart, tt.aLen, tt.bStart, tt.bLen)
			if start != tt.wantStart || size != tt.wantLen {
				t.Errorf("doorSpan() = (%d, %d), want (%d, %d)", start, size, tt.wantStart, tt.wantLen)
			}
		})
	}
}

func TestGenerate_DiagonalRoomsGetNoDoor(t *testing.T) {
	world := domain.NewWorldMap(30, 30, domain.TemplateStone2)
	rooms := []domain.Room{
		{X: 1, Y: 1, Width: 9, Height: 9},
		{X: 11, Y: 11, Width: 9, Height: 9},
	}
	if doors := placeDoors(world, rooms); len(doors) != 0 {
		t.Errorf("diagonal rooms got doors: %+v", doors)
	}
}

func TestGenerate_DecoratorCalledPerRoom(t *testing.T) {
	calls := 0
	level := NewLevel(rand.New(rand.NewSource(7))).
		WithDecorator(DecoratorFunc(func(room domain.Room, world *domain.WorldMap, _ *rand.Rand) {
			calls++
			if !world.Walkable(room.X, room.Y) {
				t.Errorf("decorator saw uncarved room %+v", room)
			}
		})).
		Build()

	if calls != len(level.Rooms) {
		t.Errorf("decorator called %d times for %d rooms", calls, len(level.Rooms))
	}
}

func TestLevel_ASCII(t *testing.T) {
	level := generate(9)
	dump := level.ASCII()

	lines := strings.Split(strings.TrimSuffix(dump, "\n"), "\n")
	if len(lines) != level.World.Height {
		t.Fatalf("dump has %d lines, want %d", len(lines), level.World.Height)
	}
	for y, line := range lines {
		if len(line) != level.World.Width {
			t.Fatalf("line %d has %d chars", y, len(line))
		}
	}
	if strings.Count(dump, string(GlyphStart)) != 1 || strings.Count(dump, string(GlyphEnd)) != 1 {
		t.Errorf("expected exactly one start and one end marker")
	}
	if len(level.Doors) > 0 {
		c := level.Doors[0].Cells[0]
		if g := level.Glyph(c.X, c.Y); g != GlyphDoor || !level.DoorAt(c) {
			t.Errorf("door cell %v rendered as %q", c, g)
		}
	}
	if level.Glyph(0, 0) != GlyphWall {
		t.Error("map corner should be wall")
	}
}
