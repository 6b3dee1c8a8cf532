package tron

// Vec2 竞技场中的二维坐标（拐点、头部、线段端点共用）
type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Add 返回 v+o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub 返回 v-o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// cross 二维叉积 v×o
func (v Vec2) cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Segment 轨迹上的一条线段
type Segment struct {
	From Vec2 `json:"from" msgpack:"from"`
	To   Vec2 `json:"to" msgpack:"to"`
}
