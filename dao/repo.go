package dao

import (
	"context"

	"gorm.io/gorm"
)

// Repo 通用 CRUD, 各表 DAO 通过内嵌复用
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Create(ctx context.Context, data *T) error {
	return r.Db.WithContext(ctx).Create(data).Error
}

// FindById 主键查询, 不存在时返回 gorm.ErrRecordNotFound
func (r *Repo[T]) FindById(ctx context.Context, id any) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByWhere 条件查询单条
func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindAll(ctx context.Context, order string, where string, args ...any) ([]*T, error) {
	items := make([]*T, 0)
	q := r.Db.WithContext(ctx)
	if where != "" {
		q = q.Where(where, args...)
	}
	if order != "" {
		q = q.Order(order)
	}
	err := q.Find(&items).Error
	return items, err
}

// IsExist 判断记录是否存在
func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	var model T
	err := r.Db.WithContext(ctx).Model(&model).Where(where, args...).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo[T]) UpdateById(ctx context.Context, id any, data map[string]any) (int64, error) {
	var model T
	res := r.Db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(data)
	return res.RowsAffected, res.Error
}
