package server

import (
	"arpg-server/internal/chunks"
	"arpg-server/internal/domain"
	"arpg-server/internal/engine"
	"arpg-server/internal/pathfinding"
	"arpg-server/pkg/api"
	"arpg-server/pkg/logger"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// streamTick - шаг, с которым сессия продвигает свой стример чанков
const streamTick = 25 * time.Millisecond

// Ограничение FIND_PATH на сессию
const (
	pathRequestsPerSecond = 20
	pathRequestBurst      = 10
)

var errRateLimited = errors.New("too many path requests")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService.
// Команды разбираются в readPump, чанки стримит streamPump,
// всё исходящее идёт через Hub в writePump.
type Client struct {
	ID   string
	Game *engine.GameService
	Conn *websocket.Conn

	updates   <-chan api.ServerMessage
	limiter   *rate.Limiter
	viewports chan domain.Pixel
	done      chan struct{}

	// принадлежат streamPump
	level       *engine.Level
	streamer    *chunks.Streamer
	viewport    domain.Pixel
	hasViewport bool
	lastTick    time.Time
	undelivered []chunks.Coord

	log *logrus.Entry
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		ID:      id,
		Game:    game,
		Conn:    conn,
		updates:   game.Hub.Register(id),
		limiter:   rate.NewLimiter(pathRequestsPerSecond, pathRequestBurst),
		viewports: make(chan domain.Pixel, 1),
		done:      make(chan struct{}),
		log:       logger.Component("ws_client").WithField("session_id", id),
	}
}

// send кладёт сообщение в личный канал сессии.
// false: сессии уже нет или её буфер переполнен.
func (c *Client) send(msg api.ServerMessage) bool {
	return c.Game.Hub.SendTo(c.ID, msg)
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		close(c.done)
		c.Game.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.log.Info("Client connected")

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("WS read error")
			}
			return
		}
		c.dispatch(cmd)
	}
}

// dispatch выполняет команду; ошибки уходят только этому клиенту.
func (c *Client) dispatch(cmd api.ClientCommand) {
	handler, ok := actionHandlers[cmd.Action]
	if !ok {
		c.send(api.ErrorMessage("unknown action: " + cmd.Action))
		return
	}
	if err := handler(c, cmd.Payload); err != nil {
		c.log.WithError(err).WithField("action", cmd.Action).Debug("Command rejected")
		c.send(api.ErrorMessage(err.Error()))
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.updates:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

// streamPump продвигает стример каждый streamTick, а не только по сообщениям:
// смена чанка внутри cooldown доезжает до клиента и при неподвижной камере.
func (c *Client) streamPump() {
	ticker := time.NewTicker(streamTick)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case vp := <-c.viewports:
			c.viewport, c.hasViewport = vp, true
			c.stream(time.Now())
		case now := <-ticker.C:
			c.stream(now)
		}
	}
}

// stream - один шаг стримера для последнего известного viewport.
func (c *Client) stream(now time.Time) {
	if !c.hasViewport {
		return
	}
	c.syncLevel()

	var dt time.Duration
	if !c.lastTick.IsZero() && now.After(c.lastTick) {
		dt = now.Sub(c.lastTick)
	}
	c.lastTick = now

	c.streamer.Update(dt, c.viewport)

	// Недоставленные переходы повторятся на следующем пассе
	for _, coord := range c.undelivered {
		c.streamer.Redeliver(coord)
	}
	c.undelivered = c.undelivered[:0]
}

// syncLevel переключает сессию на текущий уровень, если он сменился.
func (c *Client) syncLevel() {
	level := c.Game.Level()
	if level != c.level {
		c.level = level
		c.streamer = c.Game.NewStreamer(level, c)
		c.lastTick = time.Time{}
		c.undelivered = c.undelivered[:0]
	}
}

// --- chunks.Listener ---

func (c *Client) ChunkLoaded(ch *chunks.Chunk) {
	if !c.send(api.ServerMessage{Type: api.MsgChunkLoaded, Chunk: chunkView(ch)}) {
		c.dropped(ch, api.MsgChunkLoaded)
	}
}

func (c *Client) ChunkVisibility(ch *chunks.Chunk, visible bool) {
	msg := api.ServerMessage{
		Type:       api.MsgChunkVisibility,
		Visibility: &api.VisibilityView{Key: ch.Key(), Visible: visible},
	}
	if !c.send(msg) {
		c.dropped(ch, api.MsgChunkVisibility)
	}
}

func (c *Client) dropped(ch *chunks.Chunk, msgType string) {
	c.log.WithFields(logrus.Fields{"chunk": ch.Key(), "type": msgType}).Warn("Chunk update not delivered, will resend")
	c.undelivered = append(c.undelivered, ch.Coord)
}

func chunkView(ch *chunks.Chunk) *api.ChunkView {
	l := ch.Layer
	tiles := make([][]int8, len(l.Tiles))
	for y, row := range l.Tiles {
		out := make([]int8, len(row))
		for x, t := range row {
			out[x] = int8(t)
		}
		tiles[y] = out
	}
	return &api.ChunkView{
		Key:       ch.Key(),
		Origin:    api.CellView{X: l.Origin.X, Y: l.Origin.Y},
		Size:      l.Size,
		Tiles:     tiles,
		Collision: l.Collision,
	}
}

// --- Хендлеры действий ---

func handleInit(c *Client) error {
	c.send(api.ServerMessage{Type: api.MsgLevel, Level: c.Game.LevelView(c.Game.Level())})
	return nil
}

// handleViewport только передаёт камеру в streamPump; непрочитанный
// viewport вытесняется новым.
func handleViewport(c *Client, p api.ViewportPayload) error {
	select {
	case <-c.viewports:
	default:
	}
	select {
	case c.viewports <- domain.Pixel{X: p.X, Y: p.Y}:
	default:
	}
	return nil
}

func handleFindPath(c *Client, p api.FindPathPayload) error {
	if !c.limiter.Allow() {
		return errRateLimited
	}

	level := c.Game.Level()
	tileSize := c.Game.Config().TileSize
	start := domain.CellFromPixel(domain.Pixel{X: p.Start.X, Y: p.Start.Y}, tileSize)
	end := domain.CellFromPixel(domain.Pixel{X: p.End.X, Y: p.End.Y}, tileSize)

	id := p.ID
	level.Pathfinder.FindPath(start, end, func(path []domain.Point) {
		var waypoints []api.PixelView
		if path != nil {
			pixels := pathfinding.ToWaypoints(path, tileSize)
			waypoints = make([]api.PixelView, len(pixels))
			for i, px := range pixels {
				waypoints[i] = api.PixelView{X: px.X, Y: px.Y}
			}
		}
		c.send(api.ServerMessage{Type: api.MsgPath, Path: &api.PathView{ID: id, Waypoints: waypoints}})
	})
	return nil
}
