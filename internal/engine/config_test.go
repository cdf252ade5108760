package engine

import (
	"errors"
	"testing"
	"time"
)

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.MapWidth != 100 || cfg.MapHeight != 100 {
		t.Errorf("map %dx%d, want 100x100", cfg.MapWidth, cfg.MapHeight)
	}
	if cfg.RoomMinSize != 6 || cfg.RoomMaxSize != 15 || cfg.MaxDepth != 4 {
		t.Errorf("room geometry %d/%d/%d", cfg.RoomMinSize, cfg.RoomMaxSize, cfg.MaxDepth)
	}
	if cfg.ChunkLoadCooldown != 100*time.Millisecond {
		t.Errorf("cooldown %v", cfg.ChunkLoadCooldown)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := NewConfig()
	err := cfg.ApplyEnv(envOf(map[string]string{
		"CD_SEED":           "42",
		"CD_MAP_WIDTH":      "64",
		"CD_CHUNK_SIZE":     "8",
		"CD_WORKERS":        "2",
		"CD_CHUNK_COOLDOWN": "250ms",
		"CD_PORT":           "9000",
		"CD_MAP_HEIGHT":     "",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.Seed != 42 || cfg.MapWidth != 64 || cfg.ChunkSize != 8 || cfg.Workers != 2 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.MapHeight != 100 {
		t.Errorf("empty variable changed MapHeight to %d", cfg.MapHeight)
	}
	if cfg.ChunkLoadCooldown != 250*time.Millisecond || cfg.Port != "9000" {
		t.Errorf("cooldown %v port %s", cfg.ChunkLoadCooldown, cfg.Port)
	}
}

func TestConfig_ApplyEnvErrors(t *testing.T) {
	tests := []map[string]string{
		{"CD_MAP_WIDTH": "wide"},
		{"CD_SEED": "1.5"},
		{"CD_CHUNK_COOLDOWN": "soon"},
	}
	for _, env := range tests {
		cfg := NewConfig()
		if err := cfg.ApplyEnv(envOf(env)); err == nil {
			t.Errorf("ApplyEnv(%v) accepted a malformed value", env)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.MapWidth = 0 }, ErrBadMapSize},
		{"min above max", func(c *Config) { c.RoomMinSize = 20 }, ErrBadRoomSize},
		{"zero chunk", func(c *Config) { c.ChunkSize = 0 }, ErrBadChunkSize},
		{"zero tile", func(c *Config) { c.TileSize = 0 }, ErrBadChunkSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
