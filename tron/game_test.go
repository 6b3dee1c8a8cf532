package tron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(DefaultConfig())
	require.NoError(t, err)
	return g
}

func twoPlayerGame(t *testing.T, a, b Vec2, da, db Direction) *Game {
	t.Helper()
	cfg := DefaultConfig()
	cfg.PlayerCount = 2
	cfg.StartPositions = []Vec2{a, b}
	cfg.StartDirections = []Direction{da, db}
	g, err := New(cfg)
	require.NoError(t, err)
	return g
}

// setTrail 直接摆放一条轨迹：pts 最后一个点为头部
func setTrail(g *Game, slot int, dir Direction, pts ...Vec2) {
	p := &g.players[slot]
	p.waypoints = append([]Vec2(nil), pts...)
	p.dir = dir
	p.alive = true
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := map[string]func(*Config){
		"arena":     func(c *Config) { c.ArenaSize = 0 },
		"players":   func(c *Config) { c.PlayerCount = 0 },
		"waypoints": func(c *Config) { c.MaxWaypoints = 1 },
		"delay":     func(c *Config) { c.RestartDelay = -1 },
		"slots":     func(c *Config) { c.PlayerCount = 3 },
		"direction": func(c *Config) { c.StartDirections[2] = 4 },
		"off-arena": func(c *Config) { c.StartPositions[1] = Vec2{X: 300, Y: 10} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			_, err := New(cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDefaultStartingLayout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []Vec2{{85, 170}, {170, 170}, {55, 85}, {200, 85}}, cfg.StartPositions)
	assert.Equal(t, []Direction{DirNegY, DirNegY, DirPosY, DirPosY}, cfg.StartDirections)
}

func TestResetInitialState(t *testing.T) {
	g := newDefaultGame(t)
	cfg := g.Config()

	check := func() {
		for i := 0; i < g.PlayerCount(); i++ {
			p, err := g.Player(i)
			require.NoError(t, err)
			assert.Equal(t, 1, p.WaypointsCount)
			assert.Equal(t, cfg.StartPositions[i], p.Head)
			assert.Equal(t, cfg.StartPositions[i], p.Waypoints[0])
			assert.Equal(t, cfg.StartDirections[i], p.Direction)
			assert.True(t, p.Alive)
		}
		assert.Equal(t, 0, g.RestartTimer())
	}
	check()

	for i := 0; i < 10; i++ {
		g.Tick()
	}
	require.NoError(t, g.Turn(true, 0))
	g.players[2].alive = false
	g.restartTimer = 7

	g.Reset()
	check()
	assert.Equal(t, 2, g.Round())
	assert.Equal(t, 0, g.Ticks())
}

func TestJoinAllocatesSlotsInOrder(t *testing.T) {
	g := newDefaultGame(t)
	for want := 0; want < DefaultPlayerCount; want++ {
		slot, err := g.Join()
		require.NoError(t, err)
		assert.Equal(t, want, slot)
	}
	_, err := g.Join()
	require.ErrorIs(t, err, ErrTooManyPlayers)

	// Reset 不会释放槽位
	g.Reset()
	_, err = g.Join()
	require.ErrorIs(t, err, ErrTooManyPlayers)
	assert.Equal(t, DefaultPlayerCount, g.Connected())
}

func TestTurnWrapsDirection(t *testing.T) {
	g := newDefaultGame(t)

	// 槽位 0 初始方向为 3
	for _, want := range []Direction{0, 1, 2, 3} {
		require.NoError(t, g.Turn(true, 0))
		p, _ := g.Player(0)
		assert.Equal(t, want, p.Direction)
	}

	setTrail(g, 1, DirPosX, v(50, 50), v(50, 50))
	for _, want := range []Direction{3, 2, 1, 0} {
		require.NoError(t, g.Turn(false, 1))
		p, _ := g.Player(1)
		assert.Equal(t, want, p.Direction)
	}
}

func TestTurnCommitsHeadAsCorner(t *testing.T) {
	g := newDefaultGame(t)
	for i := 0; i < 5; i++ {
		g.Tick()
	}
	require.NoError(t, g.Turn(false, 0))

	p, _ := g.Player(0)
	assert.Equal(t, 2, p.WaypointsCount)
	assert.Equal(t, v(85, 165), p.Waypoints[1])
	assert.Equal(t, p.Waypoints[1], p.Head)
	assert.Equal(t, DirNegX, p.Direction)

	g.Tick()
	p, _ = g.Player(0)
	assert.Equal(t, v(84, 165), p.Head)
	assert.True(t, p.Alive)
}

func TestTurnInvalidIndex(t *testing.T) {
	g := newDefaultGame(t)
	for _, slot := range []int{-1, DefaultPlayerCount, 100} {
		require.ErrorIs(t, g.Turn(true, slot), ErrInvalidPlayerIndex)
	}
	_, err := g.Player(-1)
	require.ErrorIs(t, err, ErrInvalidPlayerIndex)
}

func TestTurnCapacityExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxWaypoints = 4
	g, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, g.Turn(true, 0))
	require.NoError(t, g.Turn(true, 0))
	before, _ := g.Player(0)

	require.ErrorIs(t, g.Turn(true, 0), ErrTrailCapacityExceeded)
	after, _ := g.Player(0)
	assert.Equal(t, before, after)
}

func TestTurnAcceptedForDeadPlayer(t *testing.T) {
	g := newDefaultGame(t)
	g.players[3].alive = false
	require.NoError(t, g.Turn(true, 3))
	p, _ := g.Player(3)
	assert.False(t, p.Alive)
	assert.Equal(t, 2, p.WaypointsCount)
}

func TestStraightRunNoSelfCollision(t *testing.T) {
	g := newDefaultGame(t)
	for i := 0; i < 50; i++ {
		res := g.Tick()
		require.Empty(t, res.Deaths, "tick %d", i+1)
	}
	assert.Equal(t, 4, g.AliveCount())

	// 转弯之后继续直行同样不会撞到自己
	require.NoError(t, g.Turn(true, 2))
	for i := 0; i < 20; i++ {
		g.Tick()
	}
	p, _ := g.Player(2)
	assert.True(t, p.Alive)
	assert.Equal(t, v(35, 135), p.Head)
}

func TestUTurnIntoOwnTrailIsFatal(t *testing.T) {
	g := twoPlayerGame(t, v(100, 100), v(10, 10), DirPosX, DirPosY)
	for i := 0; i < 5; i++ {
		g.Tick()
	}
	require.NoError(t, g.Turn(true, 0))
	require.NoError(t, g.Turn(true, 0))

	res := g.Tick()
	assert.Equal(t, []int{0}, res.Deaths)
}

func TestBoundaryDeath(t *testing.T) {
	t.Run("past max", func(t *testing.T) {
		g := twoPlayerGame(t, v(250, 128), v(10, 10), DirPosX, DirPosY)
		for i := 0; i < 6; i++ {
			g.Tick()
		}
		a, _ := g.Player(0)
		assert.Equal(t, 256.0, a.Head.X)
		assert.True(t, a.Alive, "the arena edge itself is inside")

		res := g.Tick()
		a, _ = g.Player(0)
		b, _ := g.Player(1)
		assert.Equal(t, 257.0, a.Head.X)
		assert.False(t, a.Alive)
		assert.True(t, b.Alive)
		assert.Equal(t, []int{0}, res.Deaths)
		assert.Equal(t, 1, res.Alive)
		assert.Equal(t, 1, g.RestartTimer())
	})

	t.Run("below zero", func(t *testing.T) {
		g := twoPlayerGame(t, v(1, 128), v(10, 10), DirNegX, DirPosY)
		g.Tick()
		a, _ := g.Player(0)
		assert.True(t, a.Alive)

		g.Tick()
		a, _ = g.Player(0)
		assert.Equal(t, -1.0, a.Head.X)
		assert.False(t, a.Alive)
	})
}

func TestDeadPlayerIsFrozen(t *testing.T) {
	g := twoPlayerGame(t, v(255, 128), v(10, 10), DirPosX, DirPosY)
	g.Tick()
	g.Tick()
	a, _ := g.Player(0)
	require.False(t, a.Alive)

	for i := 0; i < 5; i++ {
		g.Tick()
	}
	frozen, _ := g.Player(0)
	assert.Equal(t, a, frozen)
	assert.Equal(t, v(257, 128), frozen.Head, "the lethal step is kept")
}

func TestDeadTrailCollision(t *testing.T) {
	build := func(t *testing.T, deadCollide bool) *Game {
		cfg := DefaultConfig()
		cfg.PlayerCount = 2
		cfg.StartPositions = []Vec2{{40, 30}, {30, 50}}
		cfg.StartDirections = []Direction{DirPosY, DirPosX}
		cfg.DeadTrailsCollide = deadCollide
		g, err := New(cfg)
		require.NoError(t, err)
		setTrail(g, 0, DirPosY, v(40, 30), v(40, 70))
		g.players[0].alive = false
		return g
	}

	t.Run("obstacle", func(t *testing.T) {
		g := build(t, true)
		for i := 0; i < 9; i++ {
			g.Tick()
		}
		b, _ := g.Player(1)
		require.True(t, b.Alive)

		res := g.Tick()
		assert.Equal(t, []int{1}, res.Deaths)
	})

	t.Run("ghost", func(t *testing.T) {
		g := build(t, false)
		for i := 0; i < 20; i++ {
			g.Tick()
		}
		b, _ := g.Player(1)
		assert.True(t, b.Alive)
		assert.Equal(t, v(50, 50), b.Head)
	})
}

func TestRestartCountdown(t *testing.T) {
	g := twoPlayerGame(t, v(250, 128), v(10, 10), DirPosX, DirPosY)
	for i := 0; i < 7; i++ {
		g.Tick()
	}
	require.Equal(t, 1, g.AliveCount())
	require.Equal(t, 1, g.RestartTimer())

	for want := 2; want <= DefaultRestartDelay; want++ {
		res := g.Tick()
		require.False(t, res.RoundReset)
		require.Equal(t, want, g.RestartTimer())
	}

	res := g.Tick()
	assert.True(t, res.RoundReset)
	assert.Equal(t, 0, g.RestartTimer())
	assert.Equal(t, 2, g.AliveCount())
	assert.Equal(t, 2, g.Round())

	a, _ := g.Player(0)
	assert.Equal(t, v(250, 128), a.Head)
	assert.Equal(t, 1, a.WaypointsCount)
}

func TestRestartTimerClearsWhileSeveralAlive(t *testing.T) {
	g := newDefaultGame(t)
	g.restartTimer = 5
	g.Tick()
	assert.Equal(t, 0, g.RestartTimer())
}

func TestSimultaneousDeathsAllCounted(t *testing.T) {
	g := twoPlayerGame(t, v(256, 10), v(0, 20), DirPosX, DirNegX)
	res := g.Tick()
	assert.Equal(t, []int{0, 1}, res.Deaths)
	assert.Equal(t, 0, res.Alive)
	assert.Equal(t, 1, g.RestartTimer())
}

func TestConfigReturnsCopy(t *testing.T) {
	g := newDefaultGame(t)
	cfg := g.Config()
	cfg.StartPositions[0] = v(1, 1)
	cfg.StartDirections[0] = DirPosX

	g.Reset()
	p, _ := g.Player(0)
	assert.Equal(t, v(85, 170), p.Head)
	assert.Equal(t, DirNegY, p.Direction)
}
