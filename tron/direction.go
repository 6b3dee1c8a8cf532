package tron

import "fmt"

// Direction 四个正交朝向：0=+x, 1=+y, 2=-x, 3=-y
type Direction int

const (
	DirPosX Direction = iota
	DirPosY
	DirNegX
	DirNegY
)

// Right 右转：方向 +1，4 回绕为 0
func (d Direction) Right() Direction { return (d + 1) % 4 }

// Left 左转：方向 -1，-1 回绕为 3
func (d Direction) Left() Direction { return (d + 3) % 4 }

// Valid 是否落在 0..3
func (d Direction) Valid() bool { return d >= DirPosX && d <= DirNegY }

// Step 沿该方向前进一个单位的位移
func (d Direction) Step() Vec2 {
	switch d {
	case DirPosX:
		return Vec2{X: 1}
	case DirPosY:
		return Vec2{Y: 1}
	case DirNegX:
		return Vec2{X: -1}
	case DirNegY:
		return Vec2{Y: -1}
	}
	return Vec2{}
}

func (d Direction) String() string {
	switch d {
	case DirPosX:
		return "+x"
	case DirPosY:
		return "+y"
	case DirNegX:
		return "-x"
	case DirNegY:
		return "-y"
	default:
		return fmt.Sprintf("dir(%d)", int(d))
	}
}
