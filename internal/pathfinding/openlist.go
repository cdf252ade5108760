package pathfinding

import "container/heap"

// openItem обертка для клетки в открытом списке A*
type openItem struct {
	Cell     int // y*width + x
	Priority int // f = g + h. Чем меньше, тем раньше раскрываем.
	Index    int // Индекс в куче (нужен для update)
}

// openList реализует heap.Interface (min-heap по Priority)
type openList []*openItem

func (ol openList) Len() int { return len(ol) }

func (ol openList) Less(i, j int) bool {
	return ol[i].Priority < ol[j].Priority
}

func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].Index = i
	ol[j].Index = j
}

func (ol *openList) Push(x any) {
	item := x.(*openItem)
	item.Index = len(*ol)
	*ol = append(*ol, item)
}

func (ol *openList) Pop() any {
	old := *ol
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*ol = old[:n-1]
	return item
}

// Update меняет приоритет уже открытой клетки
func (ol *openList) Update(item *openItem, priority int) {
	item.Priority = priority
	heap.Fix(ol, item.Index)
}
