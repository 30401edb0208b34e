package connectivity

import (
	"fmt"
	"strings"
	"time"
)

// Kind 标识环境推送的连接信号类型。
type Kind string

const (
	// WentOffline 对应环境的 "offline" 信号。
	WentOffline Kind = "offline"
	// CameOnline 对应环境的 "online" 信号。
	CameOnline Kind = "online"
)

// Event 是一次环境推送的连接状态信号。
type Event struct {
	Kind   Kind
	Source string
	At     time.Time
}

// Online 返回信号所描述的目标状态。
func (e Event) Online() bool {
	return e.Kind == CameOnline
}

// NewEvent 构造指定来源的连接信号，时间戳取当前时刻。
func NewEvent(online bool, source string) Event {
	kind := WentOffline
	if online {
		kind = CameOnline
	}
	return Event{Kind: kind, Source: source, At: time.Now().UTC()}
}

// ParseKind 解析 "online"/"offline" 字符串。
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case CameOnline:
		return CameOnline, nil
	case WentOffline:
		return WentOffline, nil
	default:
		return "", fmt.Errorf("unknown connectivity signal: %q", raw)
	}
}
