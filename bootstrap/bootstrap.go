package bootstrap

import (
	"github.com/ilmsadmin/zbase-sub005/internal/app"
	"github.com/ilmsadmin/zbase-sub005/internal/config"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless deployment (the api handler imports
// this package, not internal).
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	fiberApp, _, _, err := app.CreateApp(cfg)
	return fiberApp, err
}
