package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jammon/stationsplan-sub000/internal/model"
)

// WardRepository 病区（值班类别）数据访问接口
type WardRepository interface {
	Create(ctx context.Context, ward *model.Ward) error
	GetByID(ctx context.Context, id string) (*model.Ward, error)
	List(ctx context.Context) ([]model.Ward, error)
	Update(ctx context.Context, ward *model.Ward) error
	Delete(ctx context.Context, id string) error
	// ReplaceAll 以事务整体替换病区表
	ReplaceAll(ctx context.Context, wards []model.Ward) error
}

type wardRepo struct {
	db *gorm.DB
}

// NewWardRepo 创建 WardRepository 实例
func NewWardRepo(db *gorm.DB) WardRepository {
	return &wardRepo{db: db}
}

func (r *wardRepo) Create(ctx context.Context, ward *model.Ward) error {
	return r.db.WithContext(ctx).Create(ward).Error
}

func (r *wardRepo) GetByID(ctx context.Context, id string) (*model.Ward, error) {
	var ward model.Ward
	err := r.db.WithContext(ctx).
		Where("ward_id = ?", id).
		First(&ward).Error
	if err != nil {
		return nil, err
	}
	return &ward, nil
}

func (r *wardRepo) List(ctx context.Context) ([]model.Ward, error) {
	var wards []model.Ward
	err := r.db.WithContext(ctx).
		Order("position, ward_id").
		Find(&wards).Error
	return wards, err
}

func (r *wardRepo) Update(ctx context.Context, ward *model.Ward) error {
	return r.db.WithContext(ctx).Save(ward).Error
}

func (r *wardRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("ward_id = ?", id).
		Delete(&model.Ward{}).Error
}

func (r *wardRepo) ReplaceAll(ctx context.Context, wards []model.Ward) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Ward{}).Error; err != nil {
			return err
		}
		if len(wards) == 0 {
			return nil
		}
		return tx.CreateInBatches(wards, 100).Error
	})
}
