package server

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec 出站消息的编码方式，按连接选择
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	// MessageType 对应的 WebSocket 帧类型
	MessageType() int
}

type jsonCodec struct{}

func (jsonCodec) Name() string                  { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) MessageType() int              { return websocket.TextMessage }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                  { return "msgpack" }
func (msgpackCodec) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }
func (msgpackCodec) MessageType() int              { return websocket.BinaryMessage }

var (
	JSONCodec    Codec = jsonCodec{}
	MsgpackCodec Codec = msgpackCodec{}
)

// CodecByName 空字符串返回 JSON
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec, nil
	case "msgpack":
		return MsgpackCodec, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
