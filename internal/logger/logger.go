package logger

import (
	"log/slog"
	"os"
	"time"

	"app/internal/config"

	"github.com/lmittmann/tint"
)

// New は設定に従ってslogロガーを組み立て、デフォルトにも設定する。
func New(cfg config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: time.RFC3339,
		})
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}
