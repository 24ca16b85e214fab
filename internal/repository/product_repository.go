package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// IDが0なら新規採番してINSERT、既存IDならその行を上書き。
	Save(ctx context.Context, p model.Product) (model.Product, error)
	// IDで1件取得。なければErrNotFound。
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// 全件取得。並び順は保証しない。
	FindAll(ctx context.Context) ([]model.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error

	// name/description/categoryのいずれかにキーワードが部分一致（大文字小文字無視）。
	SearchByKeyword(ctx context.Context, keyword string) ([]model.Product, error)
	// categoryの完全一致（大文字小文字無視）。
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)
}
