package server

import (
	"log/slog"
	"net/http"

	"app/internal/config"
	"app/internal/handler"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New はechoアプリを組み立てる（ミドルウェア＋ルート登録）。
func New(cfg config.Config, productH *handler.ProductHandler, authH *handler.AuthHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// アクセスログはslogへ流す
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				slog.Error("request",
					"method", v.Method, "uri", v.URI, "status", v.Status, "err", v.Error)
				return nil
			}
			slog.Info("request",
				"method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	// CORSはフロントのオリジンだけ許可
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	productH.RegisterRoutes(e)
	authH.RegisterRoutes(e)

	return e
}

// Start はサーバーを起動する。
func Start(e *echo.Echo, addr string) error {
	slog.Info("server starting", "addr", addr)
	return e.Start(addr)
}
