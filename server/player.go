package server

import (
	"github.com/google/uuid"

	"lightcycle/tron"
)

// PlayerID 连接级唯一标识（每次 WebSocket 接入分配一个 uuid）
type PlayerID string

// NewPlayerID 生成新的会话 ID
func NewPlayerID() PlayerID { return PlayerID(uuid.NewString()) }

// Conn 房间向客户端推送数据所需的最小接口
type Conn interface {
	Enqueue(b []byte)
	Close()
}

// Player 房间内的一个会话：连接、编码方式以及它控制的光轮槽位
type Player struct {
	ID    PlayerID
	Slot  int
	Conn  Conn
	Codec Codec

	lastSeq        int64 // 已处理的最大输入序号
	inputsThisTick int
}

// WelcomeMessage 加入成功后发给客户端
type WelcomeMessage struct {
	Type      string     `json:"type" msgpack:"type"`
	ID        string     `json:"id" msgpack:"id"`
	Slot      int        `json:"slot" msgpack:"slot"`
	Color     tron.Color `json:"color" msgpack:"color"`
	ArenaSize float64    `json:"arenaSize" msgpack:"arenaSize"`
}

// ErrorMessage 拒绝加入等错误通知
type ErrorMessage struct {
	Type  string `json:"type" msgpack:"type"`
	Error string `json:"error" msgpack:"error"`
}

// StateMessage 每个 tick 广播一次的绘制快照
type StateMessage struct {
	Type         string             `json:"type" msgpack:"type"`
	Tick         int                `json:"tick" msgpack:"tick"`
	Round        int                `json:"round" msgpack:"round"`
	Alive        int                `json:"alive" msgpack:"alive"`
	RestartTimer int                `json:"restartTimer" msgpack:"restartTimer"`
	Players      []tron.RenderEntry `json:"players" msgpack:"players"`
}
