package main

import (
	"log/slog"
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// .envがあれば読む（無くてもよい）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger.New(cfg)

	//DB接続
	gormDB, err := db.Connect(cfg.DSN())
	if err != nil {
		slog.Error("connect db", "err", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.User{},
	); err != nil {
		slog.Error("migrate", "err", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo)
	userUC := usecase.NewUserUsecase(userRepo, hasher, verifier)

	//Handler生成
	productH := handler.NewProductHandler(productUC)
	authH := handler.NewAuthHandler(userUC)

	//Server起動
	e := server.New(cfg, productH, authH)
	if err := server.Start(e, cfg.Addr()); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
