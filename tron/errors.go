package tron

import "errors"

var (
	// ErrInvalidPlayerIndex 槽位越界（调用方/协议错误）
	ErrInvalidPlayerIndex = errors.New("tron: invalid player index")
	// ErrTooManyPlayers 所有槽位都已分配
	ErrTooManyPlayers = errors.New("tron: too many players")
	// ErrTrailCapacityExceeded 轨迹拐点数达到上限
	ErrTrailCapacityExceeded = errors.New("tron: trail capacity exceeded")
	// ErrInvalidConfig 配置不合法
	ErrInvalidConfig = errors.New("tron: invalid config")
)
