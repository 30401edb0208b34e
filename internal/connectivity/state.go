package connectivity

import (
	"time"

	"go.uber.org/atomic"
)

// State 保存进程级的在线/离线状态。读取无副作用且可并发；写入只发生在
// Gate 处理信号时，由单一分发 goroutine 串行化。状态从不持久化。
type State struct {
	online  *atomic.Bool
	changed *atomic.Time
}

// NewState 以启动时的环境信号作为初始状态。
func NewState(initialOnline bool) *State {
	return &State{
		online:  atomic.NewBool(initialOnline),
		changed: atomic.NewTime(time.Now().UTC()),
	}
}

// Online 返回当前状态。
func (s *State) Online() bool {
	return s.online.Load()
}

// Since 返回最近一次状态变化（或初始化）的时间。
func (s *State) Since() time.Time {
	return s.changed.Load()
}

// apply 写入新状态并返回此前的状态。
func (s *State) apply(online bool, at time.Time) (previous bool) {
	previous = s.online.Swap(online)
	if previous != online {
		s.changed.Store(at)
	}
	return previous
}
