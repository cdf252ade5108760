package dungeon

import "math/rand"

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	cfg       Config
	rng       *rand.Rand
	decorator Decorator
}

// NewLevel создает новый builder с параметрами по умолчанию
func NewLevel(rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		cfg: DefaultConfig(),
		rng: rng,
	}
}

// WithConfig заменяет всю геометрию разом
func (b *LevelBuilder) WithConfig(cfg Config) *LevelBuilder {
	b.cfg = cfg
	return b
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.cfg.Width = width
	b.cfg.Height = height
	return b
}

// WithRoomSize задаёт минимальный и максимальный размер разбиения
func (b *LevelBuilder) WithRoomSize(minSize, maxSize int) *LevelBuilder {
	b.cfg.RoomMinSize = minSize
	b.cfg.RoomMaxSize = maxSize
	return b
}

func (b *LevelBuilder) WithMaxDepth(depth int) *LevelBuilder {
	b.cfg.MaxDepth = depth
	return b
}

func (b *LevelBuilder) WithDecorator(d Decorator) *LevelBuilder {
	b.decorator = d
	return b
}

// Build собирает и возвращает готовый уровень
func (b *LevelBuilder) Build() *Level {
	return Generate(b.cfg, b.rng, b.decorator)
}
