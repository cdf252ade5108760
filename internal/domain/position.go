package domain

import (
	"fmt"
	"math"
)

// Point is a grid cell coordinate.
type Point struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Chebyshev возвращает расстояние "королевским ходом".
func (p Point) Chebyshev(other Point) int {
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ).
func (p Point) IsAdjacent(other Point) bool {
	return p != other && p.Chebyshev(other) <= 1
}

// Shift возвращает новую позицию со смещением.
func (p Point) Shift(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Pixel is a world-space coordinate in pixels.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CellFromPixel maps a pixel position to the cell containing it.
func CellFromPixel(p Pixel, tileSize int) Point {
	ts := float64(tileSize)
	return Point{X: int(math.Floor(p.X / ts)), Y: int(math.Floor(p.Y / ts))}
}

// PixelCenter returns the pixel at the centre of a cell.
func PixelCenter(c Point, tileSize int) Pixel {
	return Pixel{
		X: float64(c.X*tileSize) + float64(tileSize)/2,
		Y: float64(c.Y*tileSize) + float64(tileSize)/2,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
