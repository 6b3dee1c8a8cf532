package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount         int64 // 统计的 Tick 次数
	InputsAccepted    int64 // 被接受的转向数
	RateLimited       int64 // 因同帧限流被拒绝的输入数
	OldSeqIgnored     int64 // 因旧序列被忽略的输入数
	InputsRejected    int64 // 被模拟核心拒绝的转向（如轨迹已满）
	ChanFullDiscarded int64 // 因通道满被丢弃的输入数
	Joined            int64
	JoinRejected      int64 // 槽位已满
	Deaths            int64
	Rounds            int64 // 自动重开次数
	TotalTickNs       int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) IncAccepted()          { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncRateLimited()       { atomic.AddInt64(&m.RateLimited, 1) }
func (m *RoomMetrics) IncOldSeqIgnored()     { atomic.AddInt64(&m.OldSeqIgnored, 1) }
func (m *RoomMetrics) IncRejected()          { atomic.AddInt64(&m.InputsRejected, 1) }
func (m *RoomMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *RoomMetrics) IncJoined()            { atomic.AddInt64(&m.Joined, 1) }
func (m *RoomMetrics) IncJoinRejected()      { atomic.AddInt64(&m.JoinRejected, 1) }
func (m *RoomMetrics) IncDeaths()            { atomic.AddInt64(&m.Deaths, 1) }
func (m *RoomMetrics) IncRounds()            { atomic.AddInt64(&m.Rounds, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"rate_limited":        atomic.LoadInt64(&m.RateLimited),
		"old_seq_ignored":     atomic.LoadInt64(&m.OldSeqIgnored),
		"inputs_rejected":     atomic.LoadInt64(&m.InputsRejected),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"joined":              atomic.LoadInt64(&m.Joined),
		"join_rejected":       atomic.LoadInt64(&m.JoinRejected),
		"deaths":              atomic.LoadInt64(&m.Deaths),
		"rounds":              atomic.LoadInt64(&m.Rounds),
		"avg_tick_ms":         avgMs,
	}
}
