package main

import (
	"math"

	"lightcycle/tron"
)

// viewport 把 [0, size] 的竞技场投影到 cols x rows 个终端单元格
type viewport struct {
	cols, rows int
	size       float64
}

// cell 竞技场坐标对应的单元格；越界返回 false
func (v viewport) cell(p tron.Vec2) (int, int, bool) {
	if v.cols <= 0 || v.rows <= 0 || p.X < 0 || p.Y < 0 || p.X > v.size || p.Y > v.size {
		return 0, 0, false
	}
	x := int(p.X / v.size * float64(v.cols-1))
	y := int(p.Y / v.size * float64(v.rows-1))
	return x, y, true
}

// rasterize 沿线段逐单位采样，对每个落点调用 plot（相邻重复的格子只报告一次）
func (v viewport) rasterize(seg tron.Segment, plot func(x, y int)) {
	d := seg.To.Sub(seg.From)
	n := int(math.Max(math.Abs(d.X), math.Abs(d.Y)))
	lastX, lastY := -1, -1
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		p := tron.Vec2{X: seg.From.X + d.X*t, Y: seg.From.Y + d.Y*t}
		x, y, ok := v.cell(p)
		if !ok || (x == lastX && y == lastY) {
			continue
		}
		lastX, lastY = x, y
		plot(x, y)
	}
}
