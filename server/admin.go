package server

import (
	"encoding/json"
	"net/http"
)

// adminConfig 可读配置；只有 maxInputsPerTick 支持热更新，其余为本局固定参数
type adminConfig struct {
	MaxInputsPerTick *int     `json:"maxInputsPerTick,omitempty"`
	TicksPerSecond   *int     `json:"ticksPerSecond,omitempty"`
	ArenaSize        *float64 `json:"arenaSize,omitempty"`
	PlayerCount      *int     `json:"playerCount,omitempty"`
	RestartDelay     *int     `json:"restartDelay,omitempty"`
	MaxWaypoints     *int     `json:"maxWaypoints,omitempty"`
}

func roomFromQuery(w http.ResponseWriter, r *http.Request) (*Room, bool) {
	room, err := GetRoomManager().GetOrCreateRoom(r.URL.Query().Get("room"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return room, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// HandleAdminConfigGet GET /admin/config?room=room-1  返回当前配置
func HandleAdminConfigGet(w http.ResponseWriter, r *http.Request) {
	room, ok := roomFromQuery(w, r)
	if !ok {
		return
	}
	cfg := room.game.Config()
	maxInputs := int(room.maxInputsPerTick.Load())
	writeJSON(w, adminConfig{
		MaxInputsPerTick: &maxInputs,
		TicksPerSecond:   &room.tickRate,
		ArenaSize:        &cfg.ArenaSize,
		PlayerCount:      &cfg.PlayerCount,
		RestartDelay:     &cfg.RestartDelay,
		MaxWaypoints:     &cfg.MaxWaypoints,
	})
}

// HandleAdminConfigPost POST /admin/config?room=room-1 以 JSON 载荷更新可调字段
func HandleAdminConfigPost(w http.ResponseWriter, r *http.Request) {
	room, ok := roomFromQuery(w, r)
	if !ok {
		return
	}
	var body adminConfig
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if body.TicksPerSecond != nil || body.ArenaSize != nil || body.PlayerCount != nil ||
		body.RestartDelay != nil || body.MaxWaypoints != nil {
		http.Error(w, "only maxInputsPerTick can be changed at runtime", http.StatusBadRequest)
		return
	}
	if body.MaxInputsPerTick != nil {
		if *body.MaxInputsPerTick <= 0 {
			http.Error(w, "maxInputsPerTick must be positive", http.StatusBadRequest)
			return
		}
		room.maxInputsPerTick.Store(int64(*body.MaxInputsPerTick))
	}
	writeJSON(w, map[string]any{"ok": true})
	Log.Infow("config updated", "room", room.ID, "maxInputsPerTick", room.maxInputsPerTick.Load())
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	room, ok := roomFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"room":    room.ID,
		"tick":    room.tickSeq.Load(),
		"round":   room.round.Load(),
		"metrics": room.metrics.Snapshot(),
	})
}

// HandleRooms GET /rooms 列出当前房间
func HandleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"rooms": GetRoomManager().RoomIDs()})
}
