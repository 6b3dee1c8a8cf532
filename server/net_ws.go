package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lightcycle/tron"
)

const (
	writeWait   = 5 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = pongWait * 9 / 10
	joinTimeout = 2 * time.Second
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws      *websocket.Conn
	msgType int
	send    chan []byte
	closed  chan struct{}
}

func NewClientConn(ws *websocket.Conn, msgType int) *ClientConn {
	return &ClientConn{
		ws:      ws,
		msgType: msgType,
		send:    make(chan []byte, 64),
		closed:  make(chan struct{}),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) {
	select {
	case <-c.closed:
	case c.send <- b:
	default:
		// 为了实时性，丢弃本帧（防止阻塞 Tick）
	}
}

// Close 通知写协程退出；只在 Tick 协程中调用
func (c *ClientConn) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期发送 ping
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case <-c.closed:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(c.msgType, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端转向指令，注入房间
func (c *ClientConn) readPump(room *Room, playerID PlayerID) {
	defer c.ws.Close()
	// 读泵退出时，通知房间在 Tick 协程中移除该玩家
	defer room.RequestLeave(playerID)
	c.ws.SetReadLimit(4 << 10)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				Log.Debugw("read failed", "room", room.ID, "player", playerID, "err", err)
			}
			return
		}
		if in, ok := ParseInput(playerID, payload); ok {
			room.OnInput(in)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：/ws?room=room-1&codec=json|msgpack
func HandleWS(w http.ResponseWriter, r *http.Request) {
	codec, err := CodecByName(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	room, err := GetRoomManager().GetOrCreateRoom(r.URL.Query().Get("room"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnw("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	id := NewPlayerID()
	client := NewClientConn(ws, codec.MessageType())

	var res JoinResult
	reply := room.RequestJoin(id, client, codec)
	select {
	case res = <-reply:
	case <-time.After(joinTimeout):
		res = JoinResult{Err: errors.New("join timed out")}
		// 迟到的成功应答：撤销这次加入
		go func() {
			if late := <-reply; late.Err == nil {
				room.RequestLeave(id)
			}
		}()
	}
	if res.Err != nil {
		reason := res.Err.Error()
		if errors.Is(res.Err, tron.ErrTooManyPlayers) {
			reason = "room full"
		}
		if b, err := codec.Marshal(ErrorMessage{Type: "error", Error: reason}); err == nil {
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ws.WriteMessage(codec.MessageType(), b)
		}
		_ = ws.Close()
		return
	}

	go client.writePump()
	go client.readPump(room, id)
}
