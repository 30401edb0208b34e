package server

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nabha-learn/nabha-shell/internal/assetcache"
)

// AssetResolver describes the asset cache as seen by the interception route.
// It allows injecting fake resolvers during tests.
type AssetResolver interface {
	Resolve(ctx context.Context, req assetcache.Request) (*assetcache.Response, error)
	Passthrough(ctx context.Context, req assetcache.Request) (*assetcache.Response, error)
	Clients() *assetcache.ClientSet
	Version() string
}

// AppOptions controls how the Fiber application should behave.
type AppOptions struct {
	Logger *logrus.Logger
	Assets AssetResolver
}

const (
	contextKeyRequestID  = "_nabha_request_id"
	contextKeyClientID   = "_nabha_client_id"
	contextKeyController = "_nabha_controller"

	// HeaderClientID 标识发起请求的客户端视图（浏览器标签页）。
	HeaderClientID = "X-Client-ID"
	// HeaderCacheHit 标识响应是否来自缓存。
	HeaderCacheHit = "X-Nabha-Cache-Hit"
	// HeaderCacheVersion 标识接管该客户端的缓存版本，未受控时为空。
	HeaderCacheVersion = "X-Nabha-Cache-Version"
)

// NewApp builds a Fiber application with request/client middleware and the
// catch-all asset interception route. Diagnostics routes under /-/ must be
// registered on the returned app by the caller.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Assets == nil {
		return nil, errors.New("asset resolver is required")
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
	})

	app.Use(recover.New())
	app.Use(requestContextMiddleware(opts))

	interceptor := newInterceptor(opts.Assets, opts.Logger)
	app.All("/*", func(c fiber.Ctx) error {
		if isDiagnosticsPath(string(c.Request().URI().Path())) {
			return c.Next()
		}
		return interceptor.handle(c)
	})

	return app, nil
}

// requestContextMiddleware 负责生成请求 ID，并登记客户端视图以确定其控制版本。
func requestContextMiddleware(opts AppOptions) fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)

		clients := opts.Assets.Clients()
		clientID := strings.TrimSpace(c.Get(HeaderClientID))
		controller := clients.Active()
		if clientID != "" {
			controller = clients.Register(clientID)
		}
		c.Locals(contextKeyClientID, clientID)
		c.Locals(contextKeyController, controller)
		if controller != "" {
			c.Set(HeaderCacheVersion, controller)
		}
		return c.Next()
	}
}

// RequestID returns the request identifier stored by the router middleware.
func RequestID(c fiber.Ctx) string {
	return localString(c, contextKeyRequestID)
}

// ClientID returns the client view identifier supplied by the request, if any.
func ClientID(c fiber.Ctx) string {
	return localString(c, contextKeyClientID)
}

// Controller returns the cache version controlling the requesting client.
func Controller(c fiber.Ctx) string {
	return localString(c, contextKeyController)
}

func localString(c fiber.Ctx, key string) string {
	if value := c.Locals(key); value != nil {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

func isDiagnosticsPath(path string) bool {
	return strings.HasPrefix(path, "/-/")
}

// WriteError 输出统一的 {"error": code} JSON。
func WriteError(c fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{"error": code})
}
