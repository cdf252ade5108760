package server

import (
	"arpg-server/internal/engine"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/level", h.handleLevel)
	mux.HandleFunc("/debug/map", h.handleMap)
	mux.HandleFunc("/debug/pool", h.handlePool)
	mux.HandleFunc("/debug/regenerate", h.handleRegenerate)
}

// /debug/level - описание текущего уровня
func (h *DebugHandler) handleLevel(w http.ResponseWriter, r *http.Request) {
	level := h.Service.Level()

	type LevelSummary struct {
		LevelID   int64     `json:"level_id"`
		Seed      int64     `json:"seed"`
		CreatedAt time.Time `json:"created_at"`
		Walkable  int       `json:"walkable"`
		Leaves    int       `json:"leaves"`
		View      any       `json:"view"`
	}

	writeJSON(w, LevelSummary{
		LevelID:   level.ID,
		Seed:      level.Seed,
		CreatedAt: level.CreatedAt,
		Walkable:  level.World().CountWalkable(),
		Leaves:    len(level.Dungeon.Leaves),
		View:      h.Service.LevelView(level),
	})
}

// /debug/map - ASCII-дамп текущего уровня
func (h *DebugHandler) handleMap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.Service.Level().Dungeon.ASCII()))
}

// /debug/pool - занятость воркеров поиска пути
func (h *DebugHandler) handlePool(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.PoolStats())
}

// POST /debug/regenerate?seed=N - новый уровень для всех сессий
func (h *DebugHandler) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var seed int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "bad seed: "+err.Error(), http.StatusBadRequest)
			return
		}
		seed = v
	}

	level, err := h.Service.LoadLevel(seed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, h.Service.LevelView(level))
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
