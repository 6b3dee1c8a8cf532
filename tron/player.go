package tron

// Player 单个光轮的轨迹与状态
//
// waypoints[:len-1] 为已固定的拐点，最后一个元素为头部（每 tick 前进的位置），
// 因此 count() == len(waypoints)-1，且 (waypoints[count-1], waypoints[count])
// 是唯一仍在增长的线段。
type Player struct {
	waypoints []Vec2
	dir       Direction
	alive     bool
}

func (p *Player) count() int { return len(p.waypoints) - 1 }

func (p *Player) head() Vec2 { return p.waypoints[len(p.waypoints)-1] }

// growing 当前正在增长的线段
func (p *Player) growing() Segment {
	n := len(p.waypoints)
	return Segment{From: p.waypoints[n-2], To: p.waypoints[n-1]}
}

// segment 第 k 段 (waypoints[k], waypoints[k+1])
func (p *Player) segment(k int) Segment {
	return Segment{From: p.waypoints[k], To: p.waypoints[k+1]}
}

// advance 头部沿当前方向前进一个单位
func (p *Player) advance() {
	p.waypoints[len(p.waypoints)-1] = p.head().Add(p.dir.Step())
}

// spawn 重置为出生状态：一个拐点加一个与之重合的头部
func (p *Player) spawn(pos Vec2, dir Direction) {
	if p.waypoints == nil {
		p.waypoints = make([]Vec2, 0, 16)
	}
	p.waypoints = append(p.waypoints[:0], pos, pos)
	p.dir = dir
	p.alive = true
}

// PlayerView 玩家状态的只读副本
type PlayerView struct {
	Slot           int
	Alive          bool
	Direction      Direction
	WaypointsCount int
	Head           Vec2
	Waypoints      []Vec2 // 含头部，长度为 WaypointsCount+1
}

func (p *Player) view(slot int) PlayerView {
	return PlayerView{
		Slot:           slot,
		Alive:          p.alive,
		Direction:      p.dir,
		WaypointsCount: p.count(),
		Head:           p.head(),
		Waypoints:      append([]Vec2(nil), p.waypoints...),
	}
}
