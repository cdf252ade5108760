package chunks

import (
	"arpg-server/internal/domain"
	"arpg-server/pkg/logger"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Listener receives chunk state transitions, typically to forward them to the
// renderer. Each call corresponds to a real change: a chunk is reported loaded
// once, and visibility only when it flips.
type Listener interface {
	ChunkLoaded(c *Chunk)
	ChunkVisibility(c *Chunk, visible bool)
}

// Config - параметры стриминга.
type Config struct {
	ChunkSize    int           // в клетках
	TileSize     int           // в пикселях
	Cooldown     time.Duration // минимальный интервал между решениями
	VisibleRange int           // радиус видимых чанков вокруг центра (Чебышёв)
	HideDistance int           // чанки дальше этого прячутся
}

// Streamer keeps the chunks around one viewport loaded and visible.
// It is driven from a single goroutine and is not safe for concurrent use.
type Streamer struct {
	world    *domain.WorldMap
	cfg      Config
	listener Listener

	cols, rows int
	chunks     map[string]*Chunk
	visible    mapset.Set[Coord]

	cooldown time.Duration
	last     Coord
	hasLast  bool

	log *logrus.Entry
}

func NewStreamer(world *domain.WorldMap, cfg Config, listener Listener) *Streamer {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1
	}
	return &Streamer{
		world:    world,
		cfg:      cfg,
		listener: listener,
		cols:     (world.Width + cfg.ChunkSize - 1) / cfg.ChunkSize,
		rows:     (world.Height + cfg.ChunkSize - 1) / cfg.ChunkSize,
		chunks:   make(map[string]*Chunk),
		visible:  mapset.New[Coord](),
		log:      logger.Component("chunk_streamer"),
	}
}

// Update advances the cooldown by dt. Once it expires, the chunk under the
// viewport centre (pixels) is computed and a load/visibility pass runs if that
// chunk differs from the last one handled. Reports whether a pass ran.
func (s *Streamer) Update(dt time.Duration, viewport domain.Pixel) bool {
	s.cooldown -= dt
	if s.cooldown > 0 {
		return false
	}
	s.cooldown = s.cfg.Cooldown

	cell := domain.CellFromPixel(viewport, s.cfg.TileSize)
	target := s.chunkOf(cell.X, cell.Y)
	if s.hasLast && target == s.last {
		return false
	}
	s.pass(target)
	return true
}

// ForceLoad runs a pass for the chunk containing the tile right away,
// ignoring the cooldown and the last-seen chunk.
func (s *Streamer) ForceLoad(tileX, tileY int) {
	s.pass(s.chunkOf(tileX, tileY))
}

// Redeliver undoes the last transition reported for c, for a listener that
// could not pass it on. A chunk whose load or show was lost is dropped and
// built again on the next pass; after a lost hide it counts as visible again
// so the next pass re-hides it. Either way the next Update that clears the
// cooldown runs a pass even if the viewport chunk is unchanged.
func (s *Streamer) Redeliver(c Coord) {
	ch, ok := s.chunks[c.Key()]
	if !ok {
		return
	}
	if ch.Visible {
		delete(s.chunks, c.Key())
		s.visible.Remove(c)
	} else {
		ch.Visible = true
		s.visible.Put(c)
	}
	s.hasLast = false
}

// Chunk returns a loaded chunk by coordinate.
func (s *Streamer) Chunk(c Coord) (*Chunk, bool) {
	ch, ok := s.chunks[c.Key()]
	return ch, ok
}

// Loaded - сколько чанков уже материализовано.
func (s *Streamer) Loaded() int { return len(s.chunks) }

// Visible returns the visible chunk coordinates in no particular order.
func (s *Streamer) Visible() []Coord {
	out := make([]Coord, 0, s.visible.Size())
	s.visible.Each(func(c Coord) { out = append(out, c) })
	return out
}

// GridSize returns the chunk grid extent in chunks.
func (s *Streamer) GridSize() (cols, rows int) { return s.cols, s.rows }

func (s *Streamer) chunkOf(tileX, tileY int) Coord {
	return Coord{X: floorDiv(tileX, s.cfg.ChunkSize), Y: floorDiv(tileY, s.cfg.ChunkSize)}
}

func (s *Streamer) inGrid(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.cols && c.Y < s.rows
}

func (s *Streamer) pass(target Coord) {
	r := s.cfg.VisibleRange
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c := Coord{X: target.X + dx, Y: target.Y + dy}
			if s.inGrid(c) {
				s.ensureVisible(c)
			}
		}
	}

	for _, ch := range s.chunks {
		if ch.Visible && ch.Coord.Chebyshev(target) > s.cfg.HideDistance {
			s.setVisible(ch, false)
		}
	}

	s.last = target
	s.hasLast = true

	s.log.WithFields(logrus.Fields{
		"chunk":   target.Key(),
		"loaded":  len(s.chunks),
		"visible": s.visible.Size(),
	}).Debug("Chunk pass")
}

func (s *Streamer) ensureVisible(c Coord) {
	ch, ok := s.chunks[c.Key()]
	if !ok {
		ch = &Chunk{Coord: c, Layer: buildLayer(s.world, c, s.cfg.ChunkSize), Visible: true}
		s.chunks[c.Key()] = ch
		s.visible.Put(c)
		if s.listener != nil {
			s.listener.ChunkLoaded(ch)
		}
		return
	}
	if !ch.Visible {
		s.setVisible(ch, true)
	}
}

func (s *Streamer) setVisible(ch *Chunk, visible bool) {
	ch.Visible = visible
	if visible {
		s.visible.Put(ch.Coord)
	} else {
		s.visible.Remove(ch.Coord)
	}
	if s.listener != nil {
		s.listener.ChunkVisibility(ch, visible)
	}
}

// floorDiv делит с округлением вниз и для отрицательных клеток.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
