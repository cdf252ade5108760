package pathfinding

import (
	"arpg-server/internal/domain"
	"arpg-server/internal/workers"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPool запоминает задачи вместо выполнения.
type recordingPool struct {
	payloads  [][]byte
	callbacks []workers.Callback
}

func (r *recordingPool) AddTask(payload []byte, cb workers.Callback) {
	r.payloads = append(r.payloads, payload)
	r.callbacks = append(r.callbacks, cb)
}

func worldFrom(rows ...string) *domain.WorldMap {
	world := domain.NewWorldMap(len(rows[0]), len(rows), domain.TemplateStone2)
	for y, row := range rows {
		for x, c := range row {
			if c != '#' {
				world.Set(x, y, domain.MustTile(domain.TemplateFloor))
			}
		}
	}
	return world
}

var walledWorld = []string{
	"........",
	"...#....",
	"...#....",
	"...#....",
	"........",
}

// capture возвращает колбэк и функцию для чтения результата.
func capture() (func([]domain.Point), func() (called bool, path []domain.Point)) {
	var mu sync.Mutex
	var called bool
	var got []domain.Point
	return func(p []domain.Point) {
			mu.Lock()
			defer mu.Unlock()
			called = true
			got = p
		}, func() (bool, []domain.Point) {
			mu.Lock()
			defer mu.Unlock()
			return called, got
		}
}

func TestNewGrid_CompactsWalkability(t *testing.T) {
	g := NewGrid(worldFrom(walledWorld...))
	require.Equal(t, 5, g.Height())
	require.Equal(t, 8, g.Width())
	assert.Equal(t, blocked, g[2][3])
	assert.Equal(t, open, g[2][4])
}

func TestFindPath_LineOfSightSkipsPool(t *testing.T) {
	pool := &recordingPool{}
	pf, err := New(worldFrom(walledWorld...), pool)
	require.NoError(t, err)

	cb, result := capture()
	pf.FindPath(domain.Point{X: 0, Y: 0}, domain.Point{X: 7, Y: 0}, cb)

	called, path := result()
	require.True(t, called, "fast path must answer synchronously")
	assert.Equal(t, []domain.Point{{X: 7, Y: 0}}, path)
	assert.Empty(t, pool.payloads)
}

func TestFindPath_RejectsWithoutPool(t *testing.T) {
	pool := &recordingPool{}
	pf, err := New(worldFrom(walledWorld...), pool)
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end domain.Point
	}{
		{"start outside", domain.Point{X: -1, Y: 0}, domain.Point{X: 2, Y: 2}},
		{"end outside", domain.Point{X: 0, Y: 0}, domain.Point{X: 8, Y: 2}},
		{"same cell", domain.Point{X: 1, Y: 1}, domain.Point{X: 1, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, result := capture()
			pf.FindPath(tt.start, tt.end, cb)
			called, path := result()
			assert.True(t, called)
			assert.Nil(t, path)
		})
	}
	assert.Empty(t, pool.payloads)
}

func TestFindPath_BlockedLineGoesToWorker(t *testing.T) {
	pool := &recordingPool{}
	world := worldFrom(walledWorld...)
	pf, err := New(world, pool)
	require.NoError(t, err)

	start, end := domain.Point{X: 0, Y: 2}, domain.Point{X: 7, Y: 2}
	cb, result := capture()
	pf.FindPath(start, end, cb)

	require.Len(t, pool.payloads, 1)
	called, _ := result()
	require.False(t, called)

	// Прогоняем задачу через настоящий обработчик воркера
	reply := NewSearchWorker().Handle(context.Background(), pool.payloads[0])
	pool.callbacks[0](reply)

	called, path := result()
	require.True(t, called)
	require.NotEmpty(t, path)
	assert.NotEqual(t, start, path[0], "start cell must be stripped")
	assertValidPath(t, pf.Grid(), append([]domain.Point{start}, path...), start, end)
}

func TestSearchWorker_RevalidatesRequest(t *testing.T) {
	g := NewGrid(worldFrom(walledWorld...))
	frame, err := encodeGrid(g)
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end domain.Point
	}{
		{"outside", domain.Point{X: 0, Y: 0}, domain.Point{X: 20, Y: 0}},
		{"blocked end", domain.Point{X: 0, Y: 2}, domain.Point{X: 3, Y: 2}},
		{"same cell", domain.Point{X: 1, Y: 1}, domain.Point{X: 1, Y: 1}},
	}

	w := NewSearchWorker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := encodeRequest(frame, tt.start, tt.end)
			require.NoError(t, err)
			path, err := decodeResponse(w.Handle(context.Background(), payload))
			require.NoError(t, err)
			assert.Nil(t, path)
		})
	}

	path, err := decodeResponse(w.Handle(context.Background(), []byte("garbage")))
	require.NoError(t, err)
	assert.Nil(t, path)
}

func TestFindPath_ThroughWorkerPool(t *testing.T) {
	pool := workers.NewPool(NewSearchWorker, workers.Config{Workers: 2, MaxWorkers: 2})
	defer pool.Shutdown()

	pf, err := New(worldFrom(
		"........",
		"...#....",
		"...#....",
		"...#....",
		"...#....",
	), pool)
	require.NoError(t, err)

	start, end := domain.Point{X: 1, Y: 3}, domain.Point{X: 6, Y: 3}
	cb, result := capture()
	pf.FindPath(start, end, cb)

	require.Eventually(t, func() bool {
		called, _ := result()
		return called
	}, 2*time.Second, time.Millisecond)

	_, path := result()
	require.NotEmpty(t, path)
	assertValidPath(t, pf.Grid(), append([]domain.Point{start}, path...), start, end)

	// Недостижимая цель: колонка стены от края до края
	closed, err := New(worldFrom(
		"...#....",
		"...#....",
	), pool)
	require.NoError(t, err)

	cb, result = capture()
	closed.FindPath(domain.Point{X: 0, Y: 0}, domain.Point{X: 7, Y: 1}, cb)
	require.Eventually(t, func() bool {
		called, _ := result()
		return called
	}, 2*time.Second, time.Millisecond)
	_, path = result()
	assert.Nil(t, path)
}

func TestToWaypoints(t *testing.T) {
	assert.Nil(t, ToWaypoints(nil, 32))
	got := ToWaypoints([]domain.Point{{X: 0, Y: 0}, {X: 2, Y: 1}}, 32)
	assert.Equal(t, []domain.Pixel{{X: 16, Y: 16}, {X: 80, Y: 48}}, got)
}
