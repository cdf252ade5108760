package pathfinding

import (
	"arpg-server/internal/domain"
	"arpg-server/internal/workers"
	"arpg-server/pkg/logger"
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Сообщения между Pathfinder и воркерами поиска. Сетка передаётся байтами,
// так что каждый воркер декодирует свою собственную копию.

// request is what the pathfinder sends. Grid is the snapshot encoded once per level.
type request struct {
	Grid  msgpack.RawMessage `msgpack:"grid"`
	Start domain.Point       `msgpack:"start"`
	End   domain.Point       `msgpack:"end"`
}

// searchRequest is the worker-side view of the same frame.
type searchRequest struct {
	Grid  Grid         `msgpack:"grid"`
	Start domain.Point `msgpack:"start"`
	End   domain.Point `msgpack:"end"`
}

// response carries nil when there is no path.
type response struct {
	Path []domain.Point `msgpack:"path"`
}

func encodeGrid(g Grid) (msgpack.RawMessage, error) {
	b, err := msgpack.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode grid: %w", err)
	}
	return b, nil
}

func encodeRequest(grid msgpack.RawMessage, start, end domain.Point) ([]byte, error) {
	b, err := msgpack.Marshal(&request{Grid: grid, Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("encode path request: %w", err)
	}
	return b, nil
}

func decodeResponse(msg []byte) ([]domain.Point, error) {
	var res response
	if err := msgpack.Unmarshal(msg, &res); err != nil {
		return nil, fmt.Errorf("decode path response: %w", err)
	}
	if len(res.Path) == 0 {
		return nil, nil
	}
	return res.Path, nil
}

// NewSearchWorker is the workers.Script for path search workers.
func NewSearchWorker() workers.Handler {
	return &searchWorker{}
}

type searchWorker struct{}

// Handle re-validates the request against its own grid copy, runs the search
// and strips the start cell from the result.
func (w *searchWorker) Handle(ctx context.Context, msg []byte) []byte {
	var req searchRequest
	if err := msgpack.Unmarshal(msg, &req); err != nil {
		logger.Component("path_worker").WithError(err).Debug("Bad path request")
		return noPath()
	}

	g := req.Grid
	if !g.InBounds(req.Start.X, req.Start.Y) || !g.InBounds(req.End.X, req.End.Y) {
		return noPath()
	}
	if !g.Walkable(req.Start.X, req.Start.Y) || !g.Walkable(req.End.X, req.End.Y) || req.Start == req.End {
		return noPath()
	}

	path := BiAStar(ctx, g, req.Start, req.End)
	if len(path) == 0 {
		return noPath()
	}

	// первую точку убираем: актёр уже стоит на ней
	out, err := msgpack.Marshal(&response{Path: path[1:]})
	if err != nil {
		return noPath()
	}
	return out
}

func noPath() []byte {
	b, _ := msgpack.Marshal(&response{})
	return b
}
