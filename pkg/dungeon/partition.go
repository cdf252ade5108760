package dungeon

import (
	"arpg-server/pkg/utils"
	"math/rand"
)

// splitAspectLimit: если короткая сторона меньше 75% длинной, режем поперёк длинной.
const splitAspectLimit = 0.75

// Partition - прямоугольник сетки в клетках плюс глубина рекурсии.
type Partition struct {
	X, Y, Width, Height int
	Depth               int
}

// Split divides the partition in two along one axis. It returns ok == false
// when the partition is terminal: the depth limit is reached, both sides
// already fit maxSize, or the usable split range collapses.
// The children tile the parent exactly and sit one level deeper.
func (p Partition) Split(rng *rand.Rand, minSize, maxSize, maxDepth int) (children [2]Partition, ok bool) {
	if p.Depth >= maxDepth || (p.Width <= maxSize && p.Height <= maxSize) {
		return children, false
	}

	horizontal := rng.Float64() > 0.5
	w, h := float64(p.Width), float64(p.Height)
	if p.Width > p.Height && h/w < splitAspectLimit {
		horizontal = false
	} else if p.Height > p.Width && w/h < splitAspectLimit {
		horizontal = true
	}

	length := p.Width
	if horizontal {
		length = p.Height
	}
	upper := length - minSize
	if upper <= minSize {
		return children, false
	}
	at := utils.RandRange(rng, minSize, upper-1)

	if horizontal {
		children[0] = Partition{X: p.X, Y: p.Y, Width: p.Width, Height: at, Depth: p.Depth + 1}
		children[1] = Partition{X: p.X, Y: p.Y + at, Width: p.Width, Height: p.Height - at, Depth: p.Depth + 1}
	} else {
		children[0] = Partition{X: p.X, Y: p.Y, Width: at, Height: p.Height, Depth: p.Depth + 1}
		children[1] = Partition{X: p.X + at, Y: p.Y, Width: p.Width - at, Height: p.Height, Depth: p.Depth + 1}
	}
	return children, true
}

// PartitionNode is one node of the split tree. Leaves have no children.
type PartitionNode struct {
	Partition
	Children []*PartitionNode
}

// BuildTree recursively splits root until every branch is terminal.
func BuildTree(root Partition, rng *rand.Rand, minSize, maxSize, maxDepth int) *PartitionNode {
	node := &PartitionNode{Partition: root}
	children, ok := root.Split(rng, minSize, maxSize, maxDepth)
	if !ok {
		return node
	}
	node.Children = []*PartitionNode{
		BuildTree(children[0], rng, minSize, maxSize, maxDepth),
		BuildTree(children[1], rng, minSize, maxSize, maxDepth),
	}
	return node
}

// Leaves returns the terminal partitions in depth-first, left-to-right order.
func (n *PartitionNode) Leaves() []Partition {
	return n.collect(nil)
}

func (n *PartitionNode) collect(out []Partition) []Partition {
	if len(n.Children) == 0 {
		return append(out, n.Partition)
	}
	for _, c := range n.Children {
		out = c.collect(out)
	}
	return out
}
