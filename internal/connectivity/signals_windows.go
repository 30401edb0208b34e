//go:build windows

package connectivity

import (
	"context"

	"github.com/sirupsen/logrus"
)

// WatchSignals 在 Windows 上没有对应的用户信号，仅等待 ctx 结束。
func WatchSignals(ctx context.Context, _ *Dispatcher, _ *logrus.Logger) {
	<-ctx.Done()
}
