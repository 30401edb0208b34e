package routes

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/nabha-learn/nabha-shell/internal/connectivity"
	"github.com/nabha-learn/nabha-shell/internal/server"
)

// 同步是模拟的：在线时等待 SyncDelay 后报告成功，离线时直接拒绝。
func registerSyncRoutes(app *fiber.App, deps Dependencies) {
	app.Post("/-/sync", func(c fiber.Ctx) error {
		if !deps.Gate.IsOnline() {
			note := deps.Indicator.Notify(connectivity.LevelError, connectivity.SyncRequiresConnection)
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":        "offline",
				"notification": note,
			})
		}

		deps.Indicator.Notify(connectivity.LevelInfo, connectivity.SyncInProgress)

		started := time.Now()
		ctx := requestContext(c)
		timer := time.NewTimer(deps.SyncDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return server.WriteError(c, fiber.StatusServiceUnavailable, "sync_cancelled")
		case <-timer.C:
		}

		message := deps.Translator.T(deps.language(c), "synced")
		note := deps.Indicator.Notify(connectivity.LevelSuccess, message)
		deps.Logger.WithFields(logrus.Fields{
			"action":     "sync",
			"elapsed_ms": time.Since(started).Milliseconds(),
			"request_id": server.RequestID(c),
		}).Info("sync_complete")
		return c.JSON(fiber.Map{"notification": note})
	})
}
