package dungeon

import (
	"arpg-server/internal/domain"
	"math/rand"
)

// Decorator is called once per carved room, before doors are placed.
// Implementations may replace tiles inside the room; walkability of the
// room interior must be preserved.
type Decorator interface {
	Decorate(room domain.Room, world *domain.WorldMap, rng *rand.Rand)
}

// DecoratorFunc adapts a plain function to Decorator.
type DecoratorFunc func(room domain.Room, world *domain.WorldMap, rng *rand.Rand)

func (f DecoratorFunc) Decorate(room domain.Room, world *domain.WorldMap, rng *rand.Rand) {
	f(room, world, rng)
}

type defaultDecorator struct{}

func (defaultDecorator) Decorate(room domain.Room, _ *domain.WorldMap, _ *rand.Rand) {
	switch room.Type {
	case domain.RoomTreasure:
		// сундуки появятся вместе с системой предметов
	case domain.RoomTrap:
		// ловушки тоже
	default:
	}
}
