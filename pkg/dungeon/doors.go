package dungeon

import "arpg-server/internal/domain"

// placeDoors carves a door between every pair of rooms that face each other
// across a single wall cell and overlap by more than two cells once the
// corner cells are excluded.
func placeDoors(world *domain.WorldMap, rooms []domain.Room) []Door {
	var doors []Door
	door := domain.MustTile(domain.TemplateDirt1)

	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			a, b := rooms[i], rooms[j]
			var cells []domain.Point

			// Соседи по X: между ними одна колонка стены
			switch {
			case a.X+a.Width+1 == b.X:
				cells = doorAcrossColumn(a.X+a.Width, a, b)
			case b.X+b.Width+1 == a.X:
				cells = doorAcrossColumn(b.X+b.Width, a, b)
			}

			// Соседи по Y: между ними одна строка стены
			if cells == nil {
				switch {
				case a.Y+a.Height+1 == b.Y:
					cells = doorAcrossRow(a.Y+a.Height, a, b)
				case b.Y+b.Height+1 == a.Y:
					cells = doorAcrossRow(b.Y+b.Height, a, b)
				}
			}

			if len(cells) == 0 {
				continue
			}
			for _, c := range cells {
				world.Set(c.X, c.Y, door)
			}
			doors = append(doors, Door{Rooms: [2]int{i, j}, Cells: cells})
		}
	}
	return doors
}

func doorAcrossColumn(x int, a, b domain.Room) []domain.Point {
	start, size := doorSpan(a.Y, a.Height, b.Y, b.Height)
	if size == 0 {
		return nil
	}
	cells := make([]domain.Point, 0, size)
	for y := start; y < start+size; y++ {
		cells = append(cells, domain.Point{X: x, Y: y})
	}
	return cells
}

func doorAcrossRow(y int, a, b domain.Room) []domain.Point {
	start, size := doorSpan(a.X, a.Width, b.X, b.Width)
	if size == 0 {
		return nil
	}
	cells := make([]domain.Point, 0, size)
	for x := start; x < start+size; x++ {
		cells = append(cells, domain.Point{X: x, Y: y})
	}
	return cells
}

// doorSpan centres a door of at most maxDoorSize cells in the overlap of two
// segments, shrunk by one cell on each end. size == 0 means no door fits.
func doorSpan(aStart, aLen, bStart, bLen int) (start, size int) {
	sharedStart := max(aStart, bStart) + 1
	sharedEnd := min(aStart+aLen, bStart+bLen) - 1
	shared := sharedEnd - sharedStart
	if shared <= 2 {
		return 0, 0
	}
	size = min(maxDoorSize, shared)
	return (sharedStart + sharedEnd - size) / 2, size
}
