package routes

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/nabha-learn/nabha-shell/internal/connectivity"
	"github.com/nabha-learn/nabha-shell/internal/server"
)

type statusPayload struct {
	Online       bool      `json:"online"`
	Label        string    `json:"label"`
	Since        time.Time `json:"since"`
	CacheVersion string    `json:"cache_version"`
	Controller   string    `json:"controller,omitempty"`
	Clients      int       `json:"clients"`
}

type signalPayload struct {
	Signal string `json:"signal"`
}

func registerStatusRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/-/status", func(c fiber.Ctx) error {
		snap := deps.Indicator.Snapshot()
		return c.JSON(statusPayload{
			Online:       snap.Online,
			Label:        deps.Translator.StatusLabel(deps.language(c), snap.Online),
			Since:        snap.Since,
			CacheVersion: deps.Assets.Version(),
			Controller:   server.Controller(c),
			Clients:      deps.Assets.Clients().Len(),
		})
	})

	app.Get("/-/notifications", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"notifications": deps.Indicator.Snapshot().Notifications})
	})

	// 环境信号入口：宿主（浏览器壳、网络管理器）在连接变化时推送 online/offline。
	app.Post("/-/connectivity", func(c fiber.Ctx) error {
		var payload signalPayload
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return server.WriteError(c, fiber.StatusBadRequest, "invalid_body")
		}
		kind, err := connectivity.ParseKind(payload.Signal)
		if err != nil {
			return server.WriteError(c, fiber.StatusBadRequest, "invalid_signal")
		}
		ev := connectivity.NewEvent(kind == connectivity.CameOnline, "http")
		if err := deps.Signals.Publish(requestContext(c), ev); err != nil {
			deps.Logger.WithError(err).WithFields(logrus.Fields{
				"action":     "connectivity_signal",
				"signal":     string(kind),
				"request_id": server.RequestID(c),
			}).Warn("signal_dropped")
			return server.WriteError(c, fiber.StatusServiceUnavailable, "dispatcher_unavailable")
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"signal": string(kind)})
	})
}
