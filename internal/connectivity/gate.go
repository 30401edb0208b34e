package connectivity

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nabha-learn/nabha-shell/internal/logging"
)

// Item 是参与门控的内容条目；Downloaded 表示已在本地可用，与连接状态无关。
type Item struct {
	ID         string
	Downloaded bool
}

// Gate 是两状态（online/offline）的状态机，同时回答"能否播放"。
type Gate struct {
	state  *State
	logger *logrus.Logger

	mu        sync.RWMutex
	observers []StatusObserver
}

// NewGate 基于已有的 State 构造 Gate。
func NewGate(state *State, logger *logrus.Logger) *Gate {
	return &Gate{state: state, logger: logger}
}

// Observe 注册状态变化的观察者（状态指示器、toast 通道等）。
func (g *Gate) Observe(o StatusObserver) {
	if o == nil {
		return
	}
	g.mu.Lock()
	g.observers = append(g.observers, o)
	g.mu.Unlock()
}

// IsOnline 返回当前状态，无副作用。
func (g *Gate) IsOnline() bool {
	return g.state.Online()
}

// CanPlay 当且仅当条目已下载或当前在线时返回 true。拒绝时不发通知，
// 由调用方展示 DenialMessage。
func (g *Gate) CanPlay(item Item) bool {
	return item.Downloaded || g.IsOnline()
}

// HandleEvent 应用一次环境信号。与当前状态相同的信号被忽略。
func (g *Gate) HandleEvent(ev Event) {
	target := ev.Online()
	previous := g.state.apply(target, ev.At)
	if previous == target {
		return
	}

	change := StatusChange{Online: target, At: ev.At}
	if !target {
		change.Warning = &Notification{Level: LevelWarning, Message: OfflineWarning, At: ev.At}
	}

	if g.logger != nil {
		entry := g.logger.WithFields(logging.ConnectivityFields(previous, target, ev.Source))
		if target {
			entry.Info("connectivity_restored")
		} else {
			entry.Warn("connectivity_lost")
		}
	}

	g.mu.RLock()
	observers := append([]StatusObserver(nil), g.observers...)
	g.mu.RUnlock()
	for _, o := range observers {
		o.StatusChanged(change)
	}
}
