package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/nabha-learn/nabha-shell/internal/assetcache"
	"github.com/nabha-learn/nabha-shell/internal/logging"
)

// interceptor 是所有资源请求的拦截点：受控客户端走缓存优先解析，
// 未受控客户端直接走网络。
type interceptor struct {
	assets AssetResolver
	logger *logrus.Logger
}

func newInterceptor(assets AssetResolver, logger *logrus.Logger) *interceptor {
	return &interceptor{assets: assets, logger: logger}
}

func (i *interceptor) handle(c fiber.Ctx) error {
	started := time.Now()
	req := assetcache.Request{
		Method: c.Method(),
		Key:    requestKey(c),
		Header: forwardHeaders(c),
	}

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	controller := Controller(c)
	var (
		resp *assetcache.Response
		err  error
	)
	if controller == "" {
		resp, err = i.assets.Passthrough(ctx, req)
	} else {
		resp, err = i.assets.Resolve(ctx, req)
	}
	if err != nil {
		i.logResult(c, req, controller, 0, false, started, err)
		return WriteError(c, fiber.StatusBadGateway, "network_failed")
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		if key == fiber.HeaderContentLength {
			continue
		}
		for idx, value := range values {
			if idx == 0 {
				c.Set(key, value)
			} else {
				c.Response().Header.Add(key, value)
			}
		}
	}
	hit := resp.FromCache()
	c.Set(HeaderCacheHit, fmt.Sprintf("%t", hit))
	c.Status(resp.Status)

	if req.Method == http.MethodHead {
		i.logResult(c, req, controller, resp.Status, hit, started, nil)
		return nil
	}

	_, err = io.Copy(c.Response().BodyWriter(), resp.Body)
	i.logResult(c, req, controller, resp.Status, hit, started, err)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("read response failed: %v", err))
	}
	return nil
}

func (i *interceptor) logResult(
	c fiber.Ctx,
	req assetcache.Request,
	controller string,
	status int,
	cacheHit bool,
	started time.Time,
	err error,
) {
	fields := logging.RequestFields(i.assets.Version(), req.Key, ClientID(c), cacheHit)
	fields["action"] = "resolve"
	fields["method"] = req.Method
	fields["controlled"] = controller != ""
	fields["status"] = status
	fields["elapsed_ms"] = time.Since(started).Milliseconds()
	if requestID := RequestID(c); requestID != "" {
		fields["request_id"] = requestID
	}
	if err != nil {
		fields["error"] = err.Error()
		i.logger.WithFields(fields).Error("resolve_failed")
		return
	}
	i.logger.WithFields(fields).Info("resolve_complete")
}

// requestKey 返回缓存匹配使用的精确键：原始路径加查询串。
func requestKey(c fiber.Ctx) string {
	uri := c.Request().URI()
	key := string(uri.PathOriginal())
	if key == "" {
		key = "/"
	}
	if query := uri.QueryString(); len(query) > 0 {
		key += "?" + string(query)
	}
	return key
}

// forwardHeaders 复制请求头用于回源，剔除 Host 与内部的客户端视图标识。
// fasthttp 会把键规范化为 "X-Client-Id"，因此按不区分大小写比较。
func forwardHeaders(c fiber.Ctx) http.Header {
	header := http.Header{}
	for key, values := range c.GetReqHeaders() {
		if strings.EqualFold(key, fiber.HeaderHost) || strings.EqualFold(key, HeaderClientID) {
			continue
		}
		for _, value := range values {
			header.Add(key, value)
		}
	}
	return header
}
