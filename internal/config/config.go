package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Configはアプリ全体の設定。環境変数から読み込む。
type Config struct {
	Port string `env:"PORT" envDefault:"8080"` // サーバーポート

	DatabaseURL string `env:"DATABASE_URL"` // あればこちらを最優先で使う

	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"app"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	FEURL string `env:"FE_URL" envDefault:"http://localhost:5173"` // フロントURL（CORSで使う）

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"` // text / json
}

// Loadは環境変数からConfigを組み立てる。
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN はDB接続文字列を返す。DATABASE_URLがあればそのまま使う。
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// Addr はListenするアドレス（":8080" 形式）。
func (c Config) Addr() string {
	if c.Port == "" {
		return ":8080"
	}
	if c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}
