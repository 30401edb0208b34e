package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/nabha-learn/nabha-shell/internal/server"
)

type cachesPayload struct {
	Version  string          `json:"version"`
	Names    []string        `json:"names"`
	Manifest map[string]bool `json:"manifest"`
}

func registerCacheRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/-/caches", func(c fiber.Ctx) error {
		ctx := requestContext(c)
		names, err := deps.Store.Names(ctx)
		if err != nil {
			deps.Logger.WithError(err).WithField("action", "caches").Warn("cache_enumerate_failed")
			return server.WriteError(c, fiber.StatusInternalServerError, "cache_unavailable")
		}
		return c.JSON(cachesPayload{
			Version:  deps.Assets.Version(),
			Names:    names,
			Manifest: deps.Assets.CachedKeys(ctx),
		})
	})
}
