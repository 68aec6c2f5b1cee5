package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jammon/stationsplan-sub000/internal/model"
)

// HolidayRepository 节假日数据访问接口
type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	List(ctx context.Context) ([]model.Holiday, error)
	Delete(ctx context.Context, date time.Time) error
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo 创建 HolidayRepository 实例
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepo) List(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Order("holiday_date").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Delete(ctx context.Context, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("holiday_date = ?", date).
		Delete(&model.Holiday{}).Error
}
