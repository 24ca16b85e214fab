package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 保存。IDが0ならINSERT（採番）、既存IDならその行を上書き。
func (r *ProductGormRepository) Save(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Save(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 全件取得。並び順は保証しない。
func (r *ProductGormRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductGormRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// 商品削除
func (r *ProductGormRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// name/description/categoryのいずれかに部分一致（大文字小文字無視）。
func (r *ProductGormRepository) SearchByKeyword(ctx context.Context, keyword string) ([]model.Product, error) {
	var products []model.Product
	like := "%" + keyword + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR description ILIKE ? OR category ILIKE ?", like, like, like).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// categoryの完全一致（大文字小文字無視）。
func (r *ProductGormRepository) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(category) = LOWER(?)", category).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
