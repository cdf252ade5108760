package dungeon

import (
	"arpg-server/internal/domain"
	"strings"
)

// Символы ASCII-дампа
const (
	GlyphWall  = '#'
	GlyphFloor = '.'
	GlyphDoor  = '+'
	GlyphStart = 'S'
	GlyphEnd   = 'E'
)

// Glyph returns the dump character for one cell.
func (l *Level) Glyph(x, y int) rune {
	if !l.World.Walkable(x, y) {
		return GlyphWall
	}
	for _, r := range l.Rooms {
		if !r.Contains(x, y) {
			continue
		}
		c := r.Center()
		switch {
		case r.IsStart && c.X == x && c.Y == y:
			return GlyphStart
		case r.IsEnd && c.X == x && c.Y == y:
			return GlyphEnd
		}
		return GlyphFloor
	}
	return GlyphDoor
}

// ASCII рисует уровень построчно: стены, пол, двери, центры старта и финиша.
func (l *Level) ASCII() string {
	var b strings.Builder
	b.Grow((l.World.Width + 1) * l.World.Height)
	for y := 0; y < l.World.Height; y++ {
		for x := 0; x < l.World.Width; x++ {
			b.WriteRune(l.Glyph(x, y))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// DoorAt reports whether the cell belongs to a carved door.
func (l *Level) DoorAt(p domain.Point) bool {
	for _, d := range l.Doors {
		for _, c := range d.Cells {
			if c == p {
				return true
			}
		}
	}
	return false
}
