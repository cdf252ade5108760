package pathfinding

import "arpg-server/internal/domain"

// Raycasting возвращает все клетки прямой между (x0,y0) и (x1,y1) по Брезенхэму,
// включая обе концевые точки. Только целочисленная арифметика.
func Raycasting(x0, y0, x1, y1 int) []domain.Point {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)

	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	points := make([]domain.Point, 0, max(dx, -dy)+1)
	err := dx + dy
	for {
		points = append(points, domain.Point{X: x0, Y: y0})
		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
