package connectivity

import (
	"context"
	"net/http"
)

// Probe 在启动时对源站做一次可达性采样，作为初始连接信号。
// 任何 HTTP 响应（包括错误状态码）都视为在线；之后不再轮询。
func Probe(ctx context.Context, client *http.Client, origin string) bool {
	if client == nil || origin == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, origin, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
