package server

import (
	"encoding/json"
	"strings"
)

// Input 客户端的转向意图，在下一次 Tick 开始时应用
type Input struct {
	PlayerID  PlayerID
	TurnRight bool
	Seq       int64 // 客户端本地序列号，用于去重；0 表示不带序号
}

// 入站输入的 JSON 结构（WebSocket 文本消息）
// 示例：{"type":"turn","command":"left","seq":3}
type InputMessage struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Seq     int64  `json:"seq,omitempty"`
}

// ParseInput 解析一条入站消息；不是合法的转向指令时返回 false
func ParseInput(id PlayerID, payload []byte) (Input, bool) {
	var im InputMessage
	if err := json.Unmarshal(payload, &im); err != nil {
		return Input{}, false
	}
	if strings.ToLower(im.Type) != "turn" {
		return Input{}, false
	}
	in := Input{PlayerID: id, Seq: im.Seq}
	switch strings.ToLower(im.Command) {
	case "right":
		in.TurnRight = true
	case "left":
	default:
		return Input{}, false
	}
	return in, true
}
