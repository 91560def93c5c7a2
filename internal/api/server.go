package api

import (
	"cropsync/internal/dashboard"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// NewServer returns an echo instance with middleware and every route
// registered over d.
func NewServer(d *dashboard.Dashboard, level log.Lvl) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = goJSONSerializer{}
	e.Logger.SetLevel(level)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	NewHandler(d).RegisterRoutes(e)
	return e
}
