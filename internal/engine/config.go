package engine

import (
	"arpg-server/internal/chunks"
	"arpg-server/pkg/dungeon"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно первого уровня. 0 значит "взять от времени".
	Seed int64

	// Геометрия уровня (в клетках)
	MapWidth    int
	MapHeight   int
	RoomMinSize int
	RoomMaxSize int
	MaxDepth    int

	// Стриминг чанков
	TileSize          int // пикселей на клетку
	ChunkSize         int // клеток на сторону чанка
	ChunkLoadCooldown time.Duration
	VisibleRange      int
	HideDistance      int

	// Пул поиска пути
	Workers    int
	MaxWorkers int // 0 = runtime.NumCPU()

	Port string
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		Seed:              time.Now().UnixNano(),
		MapWidth:          dungeon.MapWidth,
		MapHeight:         dungeon.MapHeight,
		RoomMinSize:       dungeon.RoomMinSize,
		RoomMaxSize:       dungeon.RoomMaxSize,
		MaxDepth:          dungeon.MaxDepth,
		TileSize:          32,
		ChunkSize:         16,
		ChunkLoadCooldown: 100 * time.Millisecond,
		VisibleRange:      1,
		HideDistance:      1,
		Workers:           4,
		Port:              "8080",
	}
}

// ApplyEnv overrides fields from CD_* variables. Unset variables keep the
// current value; a malformed one aborts with an error naming it.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"CD_MAP_WIDTH", &c.MapWidth},
		{"CD_MAP_HEIGHT", &c.MapHeight},
		{"CD_ROOM_MIN_SIZE", &c.RoomMinSize},
		{"CD_ROOM_MAX_SIZE", &c.RoomMaxSize},
		{"CD_MAX_DEPTH", &c.MaxDepth},
		{"CD_TILE_SIZE", &c.TileSize},
		{"CD_CHUNK_SIZE", &c.ChunkSize},
		{"CD_VISIBLE_RANGE", &c.VisibleRange},
		{"CD_HIDE_DISTANCE", &c.HideDistance},
		{"CD_WORKERS", &c.Workers},
		{"CD_MAX_WORKERS", &c.MaxWorkers},
	}
	for _, v := range ints {
		raw, ok := lookup(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
		*v.dst = n
	}

	if raw, ok := lookup("CD_SEED"); ok && raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("CD_SEED: %w", err)
		}
		c.Seed = seed
	}
	if raw, ok := lookup("CD_CHUNK_COOLDOWN"); ok && raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("CD_CHUNK_COOLDOWN: %w", err)
		}
		c.ChunkLoadCooldown = d
	}
	if raw, ok := lookup("CD_PORT"); ok && raw != "" {
		c.Port = raw
	}
	return nil
}

var (
	ErrBadMapSize   = errors.New("map size must be positive")
	ErrBadRoomSize  = errors.New("room sizes must be positive and min <= max")
	ErrBadChunkSize = errors.New("chunk and tile size must be positive")
)

// Validate отсекает конфигурации, на которых генерация или стриминг вырождаются.
func (c Config) Validate() error {
	if c.MapWidth <= 0 || c.MapHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadMapSize, c.MapWidth, c.MapHeight)
	}
	if c.RoomMinSize <= 0 || c.RoomMaxSize <= 0 || c.RoomMinSize > c.RoomMaxSize {
		return fmt.Errorf("%w: min %d, max %d", ErrBadRoomSize, c.RoomMinSize, c.RoomMaxSize)
	}
	if c.ChunkSize <= 0 || c.TileSize <= 0 {
		return fmt.Errorf("%w: chunk %d, tile %d", ErrBadChunkSize, c.ChunkSize, c.TileSize)
	}
	if c.MaxDepth < 0 || c.VisibleRange < 0 || c.HideDistance < 0 {
		return errors.New("depth and chunk radii must not be negative")
	}
	return nil
}

// DungeonConfig - геометрия для генератора.
func (c Config) DungeonConfig() dungeon.Config {
	return dungeon.Config{
		Width:       c.MapWidth,
		Height:      c.MapHeight,
		RoomMinSize: c.RoomMinSize,
		RoomMaxSize: c.RoomMaxSize,
		MaxDepth:    c.MaxDepth,
	}
}

// StreamerConfig - параметры для chunks.Streamer.
func (c Config) StreamerConfig() chunks.Config {
	return chunks.Config{
		ChunkSize:    c.ChunkSize,
		TileSize:     c.TileSize,
		Cooldown:     c.ChunkLoadCooldown,
		VisibleRange: c.VisibleRange,
		HideDistance: c.HideDistance,
	}
}
