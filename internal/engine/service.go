package engine

import (
	"arpg-server/internal/chunks"
	"arpg-server/internal/domain"
	"arpg-server/internal/network"
	"arpg-server/internal/pathfinding"
	"arpg-server/internal/workers"
	"arpg-server/pkg/api"
	"arpg-server/pkg/dungeon"
	"arpg-server/pkg/logger"
	"arpg-server/pkg/utils"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Level - один сгенерированный уровень вместе с его поиском пути.
// После создания не изменяется.
type Level struct {
	ID         int64
	Seed       int64
	CreatedAt  time.Time
	Dungeon    *dungeon.Level
	Pathfinder *pathfinding.Pathfinder
}

func (l *Level) World() *domain.WorldMap { return l.Dungeon.World }

// GameService owns the current level and the path search pool shared by all
// levels. Replacing the level is atomic for readers.
type GameService struct {
	cfg  Config
	pool *workers.Pool
	Hub  *network.Broadcaster

	mu     sync.RWMutex
	level  *Level
	nextID int64

	log *logrus.Entry
}

// NewService validates cfg, starts the worker pool and generates the first level.
func NewService(cfg Config) (*GameService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	s := &GameService{
		cfg: cfg,
		pool: workers.NewPool(pathfinding.NewSearchWorker, workers.Config{
			Workers:    cfg.Workers,
			MaxWorkers: cfg.MaxWorkers,
		}),
		Hub: network.NewBroadcaster(),
		log: logger.Component("game_service"),
	}

	if _, err := s.LoadLevel(cfg.Seed); err != nil {
		s.pool.Shutdown()
		return nil, err
	}
	return s, nil
}

// LoadLevel generates a level from seed (0 = time based), makes it current
// and announces it to every session.
func (s *GameService) LoadLevel(seed int64) (*Level, error) {
	rng, seed := utils.NewRand(seed)
	generated := dungeon.NewLevel(rng).WithConfig(s.cfg.DungeonConfig()).Build()

	pf, err := pathfinding.New(generated.World, s.pool)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", seed, err)
	}

	s.mu.Lock()
	s.nextID++
	level := &Level{
		ID:         s.nextID,
		Seed:       seed,
		CreatedAt:  time.Now(),
		Dungeon:    generated,
		Pathfinder: pf,
	}
	s.level = level
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"level_id": level.ID,
		"seed":     seed,
		"rooms":    len(generated.Rooms),
		"doors":    len(generated.Doors),
		"walkable": generated.World.CountWalkable(),
	}).Info("Level loaded")

	s.Hub.Broadcast(api.ServerMessage{Type: api.MsgLevel, Level: s.LevelView(level)})
	return level, nil
}

// Level возвращает текущий уровень.
func (s *GameService) Level() *Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

func (s *GameService) Config() Config { return s.cfg }

// NewStreamer creates a chunk streamer over the level for one viewer.
func (s *GameService) NewStreamer(level *Level, listener chunks.Listener) *chunks.Streamer {
	return chunks.NewStreamer(level.World(), s.cfg.StreamerConfig(), listener)
}

func (s *GameService) PoolStats() workers.Stats { return s.pool.Stats() }

// Shutdown останавливает пул; незавершённые поиски пути пропадают.
func (s *GameService) Shutdown() {
	s.pool.Shutdown()
}

// LevelView собирает описание уровня для клиента.
func (s *GameService) LevelView(l *Level) *api.LevelView {
	d := l.Dungeon
	spawn := domain.PixelCenter(d.SpawnPoint(), s.cfg.TileSize)

	view := &api.LevelView{
		ID:        l.ID,
		Seed:      l.Seed,
		Width:     d.World.Width,
		Height:    d.World.Height,
		TileSize:  s.cfg.TileSize,
		ChunkSize: s.cfg.ChunkSize,
		Spawn:     api.PixelView{X: spawn.X, Y: spawn.Y},
		Rooms:     make([]api.RoomView, len(d.Rooms)),
		Doors:     make([][]api.CellView, len(d.Doors)),
	}
	for i, r := range d.Rooms {
		view.Rooms[i] = api.RoomView{
			X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
			Type:    string(r.Type),
			IsStart: r.IsStart,
			IsEnd:   r.IsEnd,
		}
	}
	for i, door := range d.Doors {
		cells := make([]api.CellView, len(door.Cells))
		for j, c := range door.Cells {
			cells[j] = api.CellView{X: c.X, Y: c.Y}
		}
		view.Doors[i] = cells
	}
	return view
}
