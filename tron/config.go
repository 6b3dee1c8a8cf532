package tron

import "fmt"

// 参考实现的兼容常量
const (
	DefaultArenaSize    = 256
	DefaultPlayerCount  = 4
	DefaultMaxWaypoints = 1000
	DefaultRestartDelay = 130
)

// Config 一局比赛的固定参数，构造后不再变化
type Config struct {
	ArenaSize    float64 // 竞技场为 [0, ArenaSize] x [0, ArenaSize]
	PlayerCount  int
	MaxWaypoints int // 每名玩家轨迹可存储的点数上限（含头部）
	RestartDelay int // 存活 <=1 后，计时超过该值即重开

	// 按槽位固定的出生点与初始方向，长度必须等于 PlayerCount
	StartPositions  []Vec2
	StartDirections []Direction

	// 死亡玩家的轨迹是否仍作为障碍参与碰撞。
	// 默认 true：轨迹在下次 Reset 前一直是障碍。
	// 最早的实现扫描时跳过死亡玩家，等价于 false。
	DeadTrailsCollide bool
}

// DefaultConfig 返回参考实现的配置：256 竞技场、4 名玩家、四角出生
func DefaultConfig() Config {
	third := float64(DefaultArenaSize / 3)
	return Config{
		ArenaSize:    DefaultArenaSize,
		PlayerCount:  DefaultPlayerCount,
		MaxWaypoints: DefaultMaxWaypoints,
		RestartDelay: DefaultRestartDelay,
		StartPositions: []Vec2{
			{X: third, Y: third * 2},
			{X: third * 2, Y: third * 2},
			{X: third - 30, Y: third},
			{X: third*2 + 30, Y: third},
		},
		StartDirections:   []Direction{DirNegY, DirNegY, DirPosY, DirPosY},
		DeadTrailsCollide: true,
	}
}

// Validate 校验配置，失败时返回包装了 ErrInvalidConfig 的错误
func (c Config) Validate() error {
	if c.ArenaSize <= 0 {
		return fmt.Errorf("%w: arena size %v", ErrInvalidConfig, c.ArenaSize)
	}
	if c.PlayerCount <= 0 {
		return fmt.Errorf("%w: player count %d", ErrInvalidConfig, c.PlayerCount)
	}
	if c.MaxWaypoints < 2 {
		return fmt.Errorf("%w: max waypoints %d (need at least 2)", ErrInvalidConfig, c.MaxWaypoints)
	}
	if c.RestartDelay < 0 {
		return fmt.Errorf("%w: restart delay %d", ErrInvalidConfig, c.RestartDelay)
	}
	if len(c.StartPositions) != c.PlayerCount || len(c.StartDirections) != c.PlayerCount {
		return fmt.Errorf("%w: %d start positions and %d start directions for %d players",
			ErrInvalidConfig, len(c.StartPositions), len(c.StartDirections), c.PlayerCount)
	}
	for i, p := range c.StartPositions {
		if p.X < 0 || p.X > c.ArenaSize || p.Y < 0 || p.Y > c.ArenaSize {
			return fmt.Errorf("%w: start position %d %+v outside arena", ErrInvalidConfig, i, p)
		}
		if !c.StartDirections[i].Valid() {
			return fmt.Errorf("%w: start direction %d is %d", ErrInvalidConfig, i, c.StartDirections[i])
		}
	}
	return nil
}
