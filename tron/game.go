// Package tron 实现光轮（Tron 风格）多人对战的确定性定步长模拟核心。
//
// Game 不做任何 I/O，也不加锁：调用方必须串行调用 Join / Reset / Turn / Tick / Render。
package tron

import "fmt"

// Game 一个房间的完整回合状态
type Game struct {
	cfg     Config
	players []Player

	restartTimer int // 存活 <=1 期间每 tick 递增
	connected    int // 自构造以来的 Join 次数，Reset 不清零
	round        int // 已开始的回合数（构造时为 1）
	ticks        int // 本回合内已执行的 tick 数
}

// TickResult 单次 Tick 的结果，供宿主记录日志或触发表现
type TickResult struct {
	Tick       int   // 本回合内的 tick 序号（重开时为重开前的序号）
	Deaths     []int // 本 tick 死亡的槽位，按槽位顺序
	Alive      int   // tick 结束后存活人数
	RoundReset bool  // 本 tick 是否触发了自动重开
}

// New 按配置创建一局全新的比赛
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.StartPositions = append([]Vec2(nil), cfg.StartPositions...)
	cfg.StartDirections = append([]Direction(nil), cfg.StartDirections...)
	g := &Game{
		cfg:     cfg,
		players: make([]Player, cfg.PlayerCount),
	}
	g.Reset()
	return g, nil
}

// Config 返回构造时使用的配置副本
func (g *Game) Config() Config {
	cfg := g.cfg
	cfg.StartPositions = append([]Vec2(nil), g.cfg.StartPositions...)
	cfg.StartDirections = append([]Direction(nil), g.cfg.StartDirections...)
	return cfg
}

// Reset 所有槽位回到出生点，清空轨迹与重开计时；Join 计数保持不变
func (g *Game) Reset() {
	for i := range g.players {
		g.players[i].spawn(g.cfg.StartPositions[i], g.cfg.StartDirections[i])
	}
	g.restartTimer = 0
	g.ticks = 0
	g.round++
}

// Join 分配下一个未使用的槽位
func (g *Game) Join() (int, error) {
	if g.connected >= len(g.players) {
		return 0, fmt.Errorf("%w: all %d slots taken", ErrTooManyPlayers, len(g.players))
	}
	slot := g.connected
	g.connected++
	return slot, nil
}

// Turn 把当前头部固定为拐点并转向。死亡玩家同样接受转向（不影响碰撞结果）。
func (g *Game) Turn(turnRight bool, slot int) error {
	if err := g.checkSlot(slot); err != nil {
		return err
	}
	p := &g.players[slot]
	if len(p.waypoints)+1 > g.cfg.MaxWaypoints {
		return fmt.Errorf("%w: slot %d holds %d of %d waypoints",
			ErrTrailCapacityExceeded, slot, len(p.waypoints), g.cfg.MaxWaypoints)
	}
	p.waypoints = append(p.waypoints, p.head())
	if turnRight {
		p.dir = p.dir.Right()
	} else {
		p.dir = p.dir.Left()
	}
	return nil
}

// Tick 推进一个定步长：存活玩家前进一格并检测碰撞，随后更新重开计时
func (g *Game) Tick() TickResult {
	g.ticks++
	res := TickResult{Tick: g.ticks}

	for i := range g.players {
		p := &g.players[i]
		if !p.alive {
			continue
		}
		p.advance()
		if g.checkCollision(i) {
			// 致命的那一步保留在轨迹里，不回滚
			p.alive = false
			res.Deaths = append(res.Deaths, i)
		}
	}

	res.Alive = g.AliveCount()
	if res.Alive > 1 {
		g.restartTimer = 0
		return res
	}

	g.restartTimer++
	if g.restartTimer > g.cfg.RestartDelay {
		g.Reset()
		res.RoundReset = true
		res.Alive = len(g.players)
	}
	return res
}

// AliveCount 当前存活人数
func (g *Game) AliveCount() int {
	n := 0
	for i := range g.players {
		if g.players[i].alive {
			n++
		}
	}
	return n
}

func (g *Game) RestartTimer() int { return g.restartTimer }

func (g *Game) Connected() int { return g.connected }

func (g *Game) Round() int { return g.round }

func (g *Game) Ticks() int { return g.ticks }

func (g *Game) PlayerCount() int { return len(g.players) }

// Player 返回槽位玩家的只读副本
func (g *Game) Player(slot int) (PlayerView, error) {
	if err := g.checkSlot(slot); err != nil {
		return PlayerView{}, err
	}
	return g.players[slot].view(slot), nil
}

func (g *Game) checkSlot(slot int) error {
	if slot < 0 || slot >= len(g.players) {
		return fmt.Errorf("%w: %d (valid 0..%d)", ErrInvalidPlayerIndex, slot, len(g.players)-1)
	}
	return nil
}
