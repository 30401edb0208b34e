package connectivity

import (
	"sync"
	"time"
)

const defaultFeedSize = 20

// Indicator 保存可见的状态指示与最近的提示（toast feed），供 UI 轮询。
type Indicator struct {
	mu       sync.RWMutex
	online   bool
	since    time.Time
	feed     []Notification
	feedSize int
}

// IndicatorSnapshot 是 Indicator 的只读视图。
type IndicatorSnapshot struct {
	Online        bool           `json:"online"`
	Since         time.Time      `json:"since"`
	Notifications []Notification `json:"notifications"`
}

// NewIndicator 以当前状态初始化指示器。
func NewIndicator(state *State) *Indicator {
	return &Indicator{
		online:   state.Online(),
		since:    state.Since(),
		feedSize: defaultFeedSize,
	}
}

// StatusChanged 更新指示器；若变化携带警告则追加到 feed。
func (i *Indicator) StatusChanged(change StatusChange) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.online = change.Online
	i.since = change.At
	if change.Warning != nil {
		i.push(*change.Warning)
	}
}

// Notify 追加一条由调用方产生的提示，例如门控拒绝或同步结果。
func (i *Indicator) Notify(level Level, message string) Notification {
	n := Notification{Level: level, Message: message, At: time.Now().UTC()}
	i.mu.Lock()
	i.push(n)
	i.mu.Unlock()
	return n
}

// Snapshot 返回当前指示状态与 feed 副本（最新的在最后）。
func (i *Indicator) Snapshot() IndicatorSnapshot {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return IndicatorSnapshot{
		Online:        i.online,
		Since:         i.since,
		Notifications: append([]Notification(nil), i.feed...),
	}
}

func (i *Indicator) push(n Notification) {
	i.feed = append(i.feed, n)
	if over := len(i.feed) - i.feedSize; over > 0 {
		i.feed = append([]Notification(nil), i.feed[over:]...)
	}
}
