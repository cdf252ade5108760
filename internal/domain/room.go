package domain

type RoomType string

const (
	RoomNormal   RoomType = "Normal"
	RoomTreasure RoomType = "Treasure"
	RoomTrap     RoomType = "Trap"
)

// RoomTypes перечисляет типы комнат в порядке объявления.
var RoomTypes = []RoomType{RoomNormal, RoomTreasure, RoomTrap}

// Room describes a rectangle of floor; it owns no tiles itself.
type Room struct {
	X       int      `json:"x"`
	Y       int      `json:"y"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Type    RoomType `json:"type"`
	IsStart bool     `json:"isStart,omitempty"`
	IsEnd   bool     `json:"isEnd,omitempty"`
}

func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the cell lies inside the room rectangle.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
