package tron

// Color 固定的槽位颜色（RGBA）
type Color struct {
	R uint8 `json:"r" msgpack:"r"`
	G uint8 `json:"g" msgpack:"g"`
	B uint8 `json:"b" msgpack:"b"`
	A uint8 `json:"a" msgpack:"a"`
}

// Palette 槽位 0..3 依次为红、绿、蓝、品红
var Palette = [...]Color{
	{R: 255, A: 255},
	{G: 255, A: 255},
	{B: 255, A: 255},
	{R: 255, B: 255, A: 255},
}

// SlotColor 槽位颜色；超过调色板的槽位循环取色
func SlotColor(slot int) Color { return Palette[slot%len(Palette)] }

// RenderEntry 一名存活玩家的绘制数据
type RenderEntry struct {
	Slot     int       `json:"slot" msgpack:"slot"`
	Color    Color     `json:"color" msgpack:"color"`
	Head     Vec2      `json:"head" msgpack:"head"`
	Segments []Segment `json:"segments" msgpack:"segments"`
}

// Render 只读遍历：按槽位顺序返回每名存活玩家的头部与全部线段。
// 死亡玩家整体跳过（其轨迹仍可能参与碰撞，只是不绘制）。
func (g *Game) Render() []RenderEntry {
	out := make([]RenderEntry, 0, len(g.players))
	for i := range g.players {
		p := &g.players[i]
		if !p.alive {
			continue
		}
		n := p.count()
		segs := make([]Segment, n)
		for k := 0; k < n; k++ {
			segs[k] = p.segment(k)
		}
		out = append(out, RenderEntry{
			Slot:     i,
			Color:    SlotColor(i),
			Head:     p.head(),
			Segments: segs,
		})
	}
	return out
}
