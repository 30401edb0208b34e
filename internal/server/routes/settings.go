package routes

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/nabha-learn/nabha-shell/internal/server"
	"github.com/nabha-learn/nabha-shell/internal/settings"
)

func registerSettingsRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/-/settings", func(c fiber.Ctx) error {
		current, err := deps.Settings.Load(requestContext(c))
		if err != nil {
			deps.Logger.WithError(err).WithField("action", "settings").Warn("settings_load_failed")
		}
		return c.JSON(current)
	})

	app.Put("/-/settings", func(c fiber.Ctx) error {
		ctx := requestContext(c)
		current, _ := deps.Settings.Load(ctx)
		if err := json.Unmarshal(c.Body(), &current); err != nil {
			return server.WriteError(c, fiber.StatusBadRequest, "invalid_body")
		}
		if err := deps.Settings.Save(ctx, current); err != nil {
			var verr *settings.ValidationError
			if errors.As(err, &verr) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"error":  "invalid_settings",
					"fields": verr.Fields,
				})
			}
			deps.Logger.WithError(err).WithField("action", "settings").Error("settings_save_failed")
			return server.WriteError(c, fiber.StatusInternalServerError, "settings_unavailable")
		}
		return c.JSON(current)
	})
}
