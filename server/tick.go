package server

import "time"

// StartTicker 启动房间的 Tick 循环（单协程推进世界）
func (r *Room) StartTicker() {
	r.startOnce.Do(func() {
		go r.run(time.Second / time.Duration(r.tickRate))
	})
}

// Stop 停止 Tick 循环并断开所有会话
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Room) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			r.shutdown()
			return
		case <-ticker.C:
			r.step()
		}
	}
}

// step 核心循环：处理输入 → 更新世界 → 广播结果
func (r *Room) step() {
	start := time.Now()
	r.BeginTick()
	r.ProcessInputs()
	r.UpdateWorld()
	r.Broadcast()
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}

// shutdown 断开所有会话，并拒绝停止前已排队的加入请求
func (r *Room) shutdown() {
	for id := range r.Players {
		r.LeavePlayer(id)
	}
	for {
		select {
		case req := <-r.joinChan:
			req.reply <- JoinResult{Err: ErrRoomStopped}
		default:
			return
		}
	}
}
