package repository

import (
	"app/internal/domain/model"
	"context"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	//メールからユーザーを一件取得する。見つからなければnilを返す（エラーではない）。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
