package connectivity

import "time"

// Level 对应前端 toast 的样式。
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// 面向用户的提示文案。
const (
	OfflineWarning         = "You are offline. Some features may be limited."
	DenialMessage          = "This lesson is not downloaded and you are offline"
	SyncRequiresConnection = "Sync requires internet connection"
	SyncInProgress         = "Syncing data..."
)

// Notification 是一条非阻塞的用户提示。
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// StatusChange 是 Gate 在状态迁移后发布给 UI 的通知。
// 仅 online -> offline 迁移携带 Warning。
type StatusChange struct {
	Online  bool
	At      time.Time
	Warning *Notification
}

// StatusObserver 接收 Gate 发布的状态变化。
type StatusObserver interface {
	StatusChanged(StatusChange)
}

// StatusObserverFunc adapts a function to the StatusObserver interface.
type StatusObserverFunc func(StatusChange)

// StatusChanged makes StatusObserverFunc satisfy StatusObserver.
func (f StatusObserverFunc) StatusChanged(change StatusChange) {
	f(change)
}
