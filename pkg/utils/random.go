package utils

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// NewRand возвращает изолированный генератор. seed == 0 означает "взять от времени".
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// StringToSeed превращает строку (имя уровня, id сессии) в стабильное зерно.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// RandRange returns a uniform integer in [min, max]. An empty range yields min.
func RandRange(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return rng.Intn(max-min+1) + min
}
