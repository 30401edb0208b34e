package routes

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/nabha-learn/nabha-shell/internal/i18n"
	"github.com/nabha-learn/nabha-shell/internal/server"
)

func registerI18nRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/-/i18n/:lang", func(c fiber.Ctx) error {
		lang := strings.ToLower(strings.TrimSpace(c.Params("lang")))
		if !i18n.Supported(lang) {
			return server.WriteError(c, fiber.StatusNotFound, "language_not_supported")
		}
		return c.JSON(fiber.Map{
			"language": lang,
			"messages": deps.Translator.Table(lang),
		})
	})
}
