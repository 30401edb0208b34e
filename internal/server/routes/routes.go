// Package routes registers the /-/ collaborator endpoints the portal UI calls:
// connectivity status, play gating, quizzes, settings, sync and cache
// diagnostics.
package routes

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/nabha-learn/nabha-shell/internal/assetcache"
	"github.com/nabha-learn/nabha-shell/internal/cache"
	"github.com/nabha-learn/nabha-shell/internal/connectivity"
	"github.com/nabha-learn/nabha-shell/internal/content"
	"github.com/nabha-learn/nabha-shell/internal/i18n"
	"github.com/nabha-learn/nabha-shell/internal/settings"
)

// Publisher 接收外部推送的连接信号，通常是 connectivity.Dispatcher。
type Publisher interface {
	Publish(ctx context.Context, ev connectivity.Event) error
}

// Dependencies 汇总各路由需要的协作者，全部在启动阶段构造一次。
type Dependencies struct {
	Logger          *logrus.Logger
	Assets          *assetcache.AssetCache
	Store           cache.Store
	Gate            *connectivity.Gate
	Indicator       *connectivity.Indicator
	Signals         Publisher
	Catalog         *content.Catalog
	Settings        *settings.Repository
	Translator      *i18n.Translator
	DefaultLanguage string
	SyncDelay       time.Duration
}

// Register 在 app 上注册全部 /-/ 路由。
func Register(app *fiber.App, deps Dependencies) {
	if app == nil {
		return
	}
	registerStatusRoutes(app, deps)
	registerCacheRoutes(app, deps)
	registerLessonRoutes(app, deps)
	registerSettingsRoutes(app, deps)
	registerSyncRoutes(app, deps)
	registerI18nRoutes(app, deps)
}

// language 按 ?lang= → 默认语言 的顺序确定响应语言。
func (d Dependencies) language(c fiber.Ctx) string {
	if lang := strings.ToLower(strings.TrimSpace(c.Query("lang"))); lang != "" && i18n.Supported(lang) {
		return lang
	}
	if d.DefaultLanguage != "" {
		return d.DefaultLanguage
	}
	return i18n.Fallback
}

func requestContext(c fiber.Ctx) context.Context {
	if ctx := c.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
