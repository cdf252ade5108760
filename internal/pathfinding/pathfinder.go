package pathfinding

import (
	"arpg-server/internal/domain"
	"arpg-server/internal/workers"
	"arpg-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

// Submitter принимает задачу поиска; в проде это *workers.Pool.
type Submitter interface {
	AddTask(payload []byte, callback workers.Callback)
}

// Pathfinder answers path requests for one level. Requests with a clear
// straight line are answered on the spot; the rest go to the worker pool.
type Pathfinder struct {
	grid  Grid
	frame msgpack.RawMessage
	pool  Submitter
	log   *logrus.Entry
}

// New snapshots the world's walkability. Later changes to world are not seen.
func New(world *domain.WorldMap, pool Submitter) (*Pathfinder, error) {
	grid := NewGrid(world)
	frame, err := encodeGrid(grid)
	if err != nil {
		return nil, err
	}
	return &Pathfinder{
		grid:  grid,
		frame: frame,
		pool:  pool,
		log:   logger.Component("pathfinder"),
	}, nil
}

// Grid returns the binary walkability grid. Callers must not modify it.
func (p *Pathfinder) Grid() Grid { return p.grid }

// FindPath calls callback exactly once with the cells from start (exclusive)
// to end, or nil when the request is out of the grid, degenerate or
// unreachable. Rejections and line-of-sight hits call back synchronously;
// searched paths arrive later on the pool's delivery goroutine.
func (p *Pathfinder) FindPath(start, end domain.Point, callback func([]domain.Point)) {
	reqLog := p.log.WithFields(logrus.Fields{"start": start, "end": end})

	if !p.grid.InBounds(start.X, start.Y) || !p.grid.InBounds(end.X, end.Y) {
		reqLog.Debug("Start or end position is outside the grid")
		callback(nil)
		return
	}
	if start == end {
		callback(nil)
		return
	}

	if p.grid.LineOfSight(start, end) {
		callback([]domain.Point{end})
		return
	}

	payload, err := encodeRequest(p.frame, start, end)
	if err != nil {
		reqLog.WithError(err).Error("Path request not sent")
		callback(nil)
		return
	}
	p.pool.AddTask(payload, func(msg []byte) {
		path, err := decodeResponse(msg)
		if err != nil {
			reqLog.WithError(err).Debug("Bad worker response")
		}
		callback(path)
	})
}

// ToWaypoints переводит клетки пути в пиксели центров тайлов.
func ToWaypoints(path []domain.Point, tileSize int) []domain.Pixel {
	if path == nil {
		return nil
	}
	out := make([]domain.Pixel, len(path))
	for i, c := range path {
		out[i] = domain.PixelCenter(c, tileSize)
	}
	return out
}
