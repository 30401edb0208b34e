//go:build !windows

package connectivity

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// WatchSignals 将进程信号桥接为连接信号：SIGUSR1 = 断网，SIGUSR2 = 恢复。
// 阻塞直到 ctx 结束。
func WatchSignals(ctx context.Context, d *Dispatcher, logger *logrus.Logger) {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			ev := NewEvent(sig == syscall.SIGUSR2, "os_signal")
			if err := d.Publish(ctx, ev); err != nil && logger != nil {
				logger.WithError(err).WithField("action", "connectivity_signal").Warn("signal_dropped")
			}
		}
	}
}
