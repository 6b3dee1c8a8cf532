package tron

// Intersects 判断线段 a1-a2 与 b1-b2 是否相交，端点接触也算相交。
//
// 平行的情况不只看是否共线：共线时还要求两段在直线上确有重叠，
// 因此同一条直线上相距很远的两段不会被误判为碰撞。长度为 0 的线段按点处理。
func Intersects(a1, a2, b1, b2 Vec2) bool {
	r := a2.Sub(a1)
	s := b2.Sub(b1)
	qp := b1.Sub(a1)

	denominator := r.cross(s)
	if denominator == 0 {
		return onSegment(b1, a1, a2) || onSegment(b2, a1, a2) ||
			onSegment(a1, b1, b2) || onSegment(a2, b1, b2)
	}

	t := qp.cross(s) / denominator
	u := qp.cross(r) / denominator
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// onSegment 点 p 是否落在线段 s1-s2 上（含端点）
func onSegment(p, s1, s2 Vec2) bool {
	if s2.Sub(s1).cross(p.Sub(s1)) != 0 {
		return false
	}
	return p.X >= min(s1.X, s2.X) && p.X <= max(s1.X, s2.X) &&
		p.Y >= min(s1.Y, s2.Y) && p.Y <= max(s1.Y, s2.Y)
}

// outOfArena 头部是否越出 [0, size]
func outOfArena(p Vec2, size float64) bool {
	return p.X < 0 || p.X > size || p.Y < 0 || p.Y > size
}

// checkCollision 只检查 slot 玩家正在增长的线段：
// 越界，或与任意参与碰撞的轨迹相交。自身轨迹跳过最后两段
// （增长段本身以及与之共享拐点的上一段）。
func (g *Game) checkCollision(slot int) bool {
	p := &g.players[slot]
	seg := p.growing()

	if outOfArena(seg.To, g.cfg.ArenaSize) {
		return true
	}

	for i := range g.players {
		other := &g.players[i]
		if !other.alive && !g.cfg.DeadTrailsCollide {
			continue
		}
		limit := other.count()
		if i == slot {
			limit -= 2
		}
		for k := 0; k < limit; k++ {
			b := other.segment(k)
			if Intersects(seg.From, seg.To, b.From, b.To) {
				return true
			}
		}
	}
	return false
}
