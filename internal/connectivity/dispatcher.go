package connectivity

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// Listener 接收分发器转发的连接信号。HandleEvent 在分发 goroutine 中同步执行，
// 同一时刻只有一个 HandleEvent 在运行。
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// HandleEvent makes ListenerFunc satisfy Listener.
func (f ListenerFunc) HandleEvent(ev Event) {
	f(ev)
}

// ErrDispatcherStopped 表示分发器已经退出，信号不会再被处理。
var ErrDispatcherStopped = errors.New("connectivity dispatcher stopped")

// Dispatcher 通过 channel 接收类型化的连接信号，并按订阅顺序逐个转发给 Listener。
type Dispatcher struct {
	events chan Event
	done   chan struct{}
	logger *logrus.Logger

	mu        sync.RWMutex
	listeners []Listener
}

// NewDispatcher 创建分发器；buffer 为信号队列长度。
func NewDispatcher(logger *logrus.Logger, buffer int) *Dispatcher {
	if buffer < 0 {
		buffer = 0
	}
	return &Dispatcher{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Subscribe 注册 Listener，应在 Run 之前完成。
func (d *Dispatcher) Subscribe(l Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	d.listeners = append(d.listeners, l)
	d.mu.Unlock()
}

// Publish 将信号放入队列，直到入队成功、ctx 结束或分发器退出。
func (d *Dispatcher) Publish(ctx context.Context, ev Event) error {
	select {
	case <-d.done:
		return ErrDispatcherStopped
	default:
	}
	select {
	case d.events <- ev:
		return nil
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run 串行处理信号直到 ctx 结束。每个进程只应调用一次。
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.events:
			d.deliver(ev)
		}
	}
}

// Done 在 Run 退出后关闭。
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) deliver(ev Event) {
	d.mu.RLock()
	listeners := append([]Listener(nil), d.listeners...)
	d.mu.RUnlock()

	if d.logger != nil {
		d.logger.WithFields(logrus.Fields{
			"action":    "connectivity_dispatch",
			"signal":    string(ev.Kind),
			"source":    ev.Source,
			"listeners": len(listeners),
		}).Debug("connectivity_signal")
	}
	for _, l := range listeners {
		l.HandleEvent(ev)
	}
}
