package api

import (
	"encoding/json"
)

// Действия клиента
const (
	ActionInit     = "INIT"
	ActionViewport = "VIEWPORT"
	ActionFindPath = "FIND_PATH"
)

// Типы сообщений сервера
const (
	MsgLevel           = "LEVEL"
	MsgChunkLoaded     = "CHUNK_LOADED"
	MsgChunkVisibility = "CHUNK_VISIBILITY"
	MsgPath            = "PATH"
	MsgError           = "ERROR"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerMessage это корневой объект, который сервер отправляет клиенту.
// Заполнено ровно одно поле, соответствующее Type.
type ServerMessage struct {
	Type string `json:"type"`

	Level      *LevelView      `json:"level,omitempty"`
	Chunk      *ChunkView      `json:"chunk,omitempty"`
	Visibility *VisibilityView `json:"visibility,omitempty"`
	Path       *PathView       `json:"path,omitempty"`

	// Error текст ошибки для MsgError.
	Error string `json:"error,omitempty"`
}

// PixelView - точка в мировых пикселях.
type PixelView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CellView - клетка сетки.
type CellView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LevelView описывает загруженный уровень: всё, что нужно клиенту,
// чтобы подготовить сетку и начать слать VIEWPORT.
type LevelView struct {
	ID        int64        `json:"id"`
	Seed      int64        `json:"seed"`
	Width     int          `json:"w"`
	Height    int          `json:"h"`
	TileSize  int          `json:"tileSize"`
	ChunkSize int          `json:"chunkSize"`
	Spawn     PixelView    `json:"spawn"`
	Rooms     []RoomView   `json:"rooms"`
	Doors     [][]CellView `json:"doors"`
}

// RoomView это DTO для комнаты.
type RoomView struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"w"`
	Height  int    `json:"h"`
	Type    string `json:"type"`
	IsStart bool   `json:"isStart,omitempty"`
	IsEnd   bool   `json:"isEnd,omitempty"`
}

// ChunkView это материализованный чанк. Tiles содержит индексы тайлсета,
// -1 означает пустую (невидимую) клетку.
type ChunkView struct {
	Key       string   `json:"key"`
	Origin    CellView `json:"origin"`
	Size      int      `json:"size"`
	Tiles     [][]int8 `json:"tiles"`
	Collision [][]bool `json:"collision"`
}

// VisibilityView сообщает, что чанк надо показать или спрятать.
type VisibilityView struct {
	Key     string `json:"key"`
	Visible bool   `json:"visible"`
}

// PathView - ответ на FIND_PATH. Waypoints == null, если пути нет.
type PathView struct {
	ID        string      `json:"id"`
	Waypoints []PixelView `json:"waypoints"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// ViewportPayload - центр камеры в мировых пикселях.
type ViewportPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FindPathPayload - запрос пути между двумя точками в пикселях.
// ID возвращается в ответе без изменений.
type FindPathPayload struct {
	ID    string    `json:"id"`
	Start PixelView `json:"start"`
	End   PixelView `json:"end"`
}

func ErrorMessage(text string) ServerMessage {
	return ServerMessage{Type: MsgError, Error: text}
}
