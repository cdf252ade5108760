package pathfinding

import (
	"arpg-server/internal/domain"
	"container/heap"
	"context"
)

type side uint8

const (
	sideNone side = iota
	sideStart
	sideEnd
)

// cancelCheckEvery - как часто поиск смотрит на ctx (в раскрытых узлах).
const cancelCheckEvery = 256

type node struct {
	g        int
	parent   int
	openedBy side
	closed   bool
	item     *openItem
}

// 4-связность: вверх, вправо, вниз, влево
var neighbourOffsets = [4]domain.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

type search struct {
	grid  Grid
	width int
	nodes []node
}

// BiAStar ищет путь от start до end двунаправленным A*: два фронта растут
// навстречу друг другу по 4 направлениям с единичной стоимостью шага и
// эвристикой Чебышёва. Путь включает обе концевые клетки.
// Возвращает nil, если пути нет, точки вне сетки или непроходимы, или ctx отменён.
func BiAStar(ctx context.Context, grid Grid, start, end domain.Point) []domain.Point {
	if !grid.Walkable(start.X, start.Y) || !grid.Walkable(end.X, end.Y) {
		return nil
	}
	if start == end {
		return []domain.Point{start}
	}

	s := &search{grid: grid, width: grid.Width()}
	s.nodes = make([]node, s.width*grid.Height())
	for i := range s.nodes {
		s.nodes[i].parent = -1
	}

	startOpen := make(openList, 0, 64)
	endOpen := make(openList, 0, 64)
	s.open(&startOpen, s.cell(start), 0, 0, sideStart)
	s.open(&endOpen, s.cell(end), 0, 0, sideEnd)

	expanded := 0
	for startOpen.Len() > 0 && endOpen.Len() > 0 {
		if expanded%cancelCheckEvery == 0 && ctx.Err() != nil {
			return nil
		}
		expanded++

		if a, b, met := s.expand(&startOpen, sideStart, end); met {
			return s.join(a, b)
		}
		if a, b, met := s.expand(&endOpen, sideEnd, start); met {
			// a раскрыт со стороны финиша, b - со стороны старта
			return s.join(b, a)
		}
	}
	return nil
}

// expand раскрывает лучший узел фронта. Если сосед уже открыт встречным фронтом,
// возвращает пару узлов, на которой фронты встретились.
func (s *search) expand(ol *openList, from side, target domain.Point) (cur, other int, met bool) {
	item := heap.Pop(ol).(*openItem)
	cur = item.Cell
	n := &s.nodes[cur]
	n.closed = true
	n.item = nil

	cx, cy := cur%s.width, cur/s.width
	for _, d := range neighbourOffsets {
		nx, ny := cx+d.X, cy+d.Y
		if !s.grid.Walkable(nx, ny) {
			continue
		}
		next := ny*s.width + nx
		nb := &s.nodes[next]
		if nb.closed {
			continue
		}
		if nb.openedBy != sideNone && nb.openedBy != from {
			return cur, next, true
		}

		g := n.g + 1
		if nb.openedBy == sideNone {
			nb.parent = cur
			s.open(ol, next, g, g+chebyshev(nx, ny, target), from)
			continue
		}
		if g < nb.g {
			nb.g = g
			nb.parent = cur
			ol.Update(nb.item, g+chebyshev(nx, ny, target))
		}
	}
	return cur, 0, false
}

func (s *search) open(ol *openList, cell, g, f int, by side) {
	n := &s.nodes[cell]
	n.g = g
	n.openedBy = by
	n.item = &openItem{Cell: cell, Priority: f}
	heap.Push(ol, n.item)
}

// join склеивает путь: от старта до a, затем от b до финиша.
func (s *search) join(a, b int) []domain.Point {
	path := s.backtrace(a)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return append(path, s.backtrace(b)...)
}

// backtrace идёт по parent от клетки до корня своего фронта.
func (s *search) backtrace(cell int) []domain.Point {
	var path []domain.Point
	for c := cell; c != -1; c = s.nodes[c].parent {
		path = append(path, domain.Point{X: c % s.width, Y: c / s.width})
	}
	return path
}

func (s *search) cell(p domain.Point) int { return p.Y*s.width + p.X }

func chebyshev(x, y int, target domain.Point) int {
	return max(abs(x-target.X), abs(y-target.Y))
}
