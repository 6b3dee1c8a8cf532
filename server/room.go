package server

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"lightcycle/tron"
)

// RoomOptions 创建房间时的参数
type RoomOptions struct {
	Game             tron.Config
	TicksPerSecond   int
	MaxInputsPerTick int // 每名玩家每个 Tick 最多应用的转向数
}

// DefaultRoomOptions 参考宿主的 60 TPS
func DefaultRoomOptions() RoomOptions {
	return RoomOptions{
		Game:             tron.DefaultConfig(),
		TicksPerSecond:   60,
		MaxInputsPerTick: 4,
	}
}

func (o RoomOptions) Validate() error {
	if o.TicksPerSecond <= 0 {
		return fmt.Errorf("ticks per second must be positive, got %d", o.TicksPerSecond)
	}
	if o.MaxInputsPerTick <= 0 {
		return fmt.Errorf("max inputs per tick must be positive, got %d", o.MaxInputsPerTick)
	}
	return o.Game.Validate()
}

// ErrRoomStopped 房间已停止，不再接受加入
var ErrRoomStopped = errors.New("room stopped")

// JoinResult 加入请求的应答
type JoinResult struct {
	Slot int
	Err  error
}

type joinRequest struct {
	id    PlayerID
	conn  Conn
	codec Codec
	reply chan JoinResult
}

// Room 房间世界：tron.Game 只在 Tick 协程中被访问
type Room struct {
	ID string

	game    *tron.Game
	Players map[PlayerID]*Player

	inputChan chan Input
	joinChan  chan joinRequest
	leaveChan chan PlayerID

	tickRate         int
	maxInputsPerTick atomic.Int64 // 可由 /admin/config 热更新

	// 供 HTTP 协程读取的镜像值
	tickSeq atomic.Int64
	round   atomic.Int64

	metrics *RoomMetrics

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
}

// NewRoom 创建房间并开始第一回合（尚未启动 Tick）
func NewRoom(id string, opts RoomOptions) (*Room, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("room %s: %w", id, err)
	}
	game, err := tron.New(opts.Game)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", id, err)
	}
	r := &Room{
		ID:        id,
		game:      game,
		Players:   make(map[PlayerID]*Player),
		inputChan: make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		joinChan:  make(chan joinRequest, 16),
		leaveChan: make(chan PlayerID, 64),
		tickRate:  opts.TicksPerSecond,
		metrics:   &RoomMetrics{},
		stop:      make(chan struct{}),
	}
	r.maxInputsPerTick.Store(int64(opts.MaxInputsPerTick))
	r.round.Store(int64(game.Round()))
	return r, nil
}

// RequestJoin 请求在 Tick 协程中分配槽位；应答通道带缓冲，调用方可超时放弃
func (r *Room) RequestJoin(id PlayerID, conn Conn, codec Codec) <-chan JoinResult {
	reply := make(chan JoinResult, 1)
	select {
	case r.joinChan <- joinRequest{id: id, conn: conn, codec: codec, reply: reply}:
	case <-r.stop:
		reply <- JoinResult{Err: ErrRoomStopped}
	}
	return reply
}

// OnInput 入站输入（不立即改变状态），等下一次 Tick 处理
func (r *Room) OnInput(in Input) {
	select {
	case r.inputChan <- in:
	default:
		// 丢弃：为了实时性，避免背压影响世界推进
		r.metrics.IncChanFullDiscarded()
	}
}

// RequestLeave 请求在 Tick 协程中移除玩家，避免并发改动房间状态
func (r *Room) RequestLeave(pid PlayerID) {
	select {
	case r.leaveChan <- pid:
	case <-r.stop:
	}
}

// BeginTick 重置帧内计数
func (r *Room) BeginTick() {
	for _, p := range r.Players {
		p.inputsThisTick = 0
	}
}

// ProcessInputs 处理当前帧的加入、离开与转向（非阻塞 drain）
func (r *Room) ProcessInputs() {
	for {
		select {
		case req := <-r.joinChan:
			req.reply <- r.joinPlayer(req)
		case pid := <-r.leaveChan:
			r.LeavePlayer(pid)
		case in := <-r.inputChan:
			if p, ok := r.Players[in.PlayerID]; ok {
				r.applyTurn(p, in)
			}
		default:
			return
		}
	}
}

// UpdateWorld 推进模拟一步并记录死亡与重开
func (r *Room) UpdateWorld() {
	res := r.game.Tick()
	for _, slot := range res.Deaths {
		r.metrics.IncDeaths()
		Log.Infow("player died", "room", r.ID, "slot", slot, "tick", res.Tick, "alive", res.Alive)
	}
	if res.RoundReset {
		r.metrics.IncRounds()
		Log.Infow("round reset", "room", r.ID, "round", r.game.Round())
	}
	r.tickSeq.Add(1)
	r.round.Store(int64(r.game.Round()))
}

// Broadcast 将当前绘制快照广播给所有玩家，每种编码只序列化一次
func (r *Room) Broadcast() {
	if len(r.Players) == 0 {
		return
	}
	state := r.Snapshot()
	encoded := make(map[string][]byte, 2)
	for _, p := range r.Players {
		b, ok := encoded[p.Codec.Name()]
		if !ok {
			var err error
			b, err = p.Codec.Marshal(state)
			if err != nil {
				Log.Errorw("encode state failed", "room", r.ID, "codec", p.Codec.Name(), "err", err)
				continue
			}
			encoded[p.Codec.Name()] = b
		}
		p.Conn.Enqueue(b)
	}
}

// Snapshot 当前回合的绘制数据（只能在 Tick 协程中调用）
func (r *Room) Snapshot() StateMessage {
	return StateMessage{
		Type:         "state",
		Tick:         r.game.Ticks(),
		Round:        r.game.Round(),
		Alive:        r.game.AliveCount(),
		RestartTimer: r.game.RestartTimer(),
		Players:      r.game.Render(),
	}
}

// LeavePlayer 将会话移出房间；槽位不回收，光轮按规则继续运行
func (r *Room) LeavePlayer(id PlayerID) {
	if p, ok := r.Players[id]; ok {
		if p.Conn != nil {
			p.Conn.Close()
		}
		delete(r.Players, id)
		Log.Infow("player left", "room", r.ID, "player", id, "slot", p.Slot)
	}
}

func (r *Room) joinPlayer(req joinRequest) JoinResult {
	slot, err := r.game.Join()
	if err != nil {
		r.metrics.IncJoinRejected()
		Log.Warnw("join rejected", "room", r.ID, "player", req.id, "err", err)
		return JoinResult{Err: err}
	}
	p := &Player{ID: req.id, Slot: slot, Conn: req.conn, Codec: req.codec}
	r.Players[req.id] = p
	r.metrics.IncJoined()
	Log.Infow("player joined", "room", r.ID, "player", req.id, "slot", slot, "codec", req.codec.Name())

	welcome := WelcomeMessage{
		Type:      "welcome",
		ID:        string(req.id),
		Slot:      slot,
		Color:     tron.SlotColor(slot),
		ArenaSize: r.game.Config().ArenaSize,
	}
	if b, err := req.codec.Marshal(welcome); err == nil {
		req.conn.Enqueue(b)
	}
	return JoinResult{Slot: slot}
}

// applyTurn 限流、去重后把转向交给模拟核心
func (r *Room) applyTurn(p *Player, in Input) {
	if in.Seq != 0 && in.Seq <= p.lastSeq {
		r.metrics.IncOldSeqIgnored()
		return
	}
	if int64(p.inputsThisTick) >= r.maxInputsPerTick.Load() {
		r.metrics.IncRateLimited()
		return
	}
	if err := r.game.Turn(in.TurnRight, p.Slot); err != nil {
		r.metrics.IncRejected()
		Log.Debugw("turn rejected", "room", r.ID, "player", p.ID, "slot", p.Slot, "err", err)
		return
	}
	if in.Seq != 0 {
		p.lastSeq = in.Seq
	}
	p.inputsThisTick++
	r.metrics.IncAccepted()
}
