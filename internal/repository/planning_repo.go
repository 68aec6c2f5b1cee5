package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jammon/stationsplan-sub000/internal/model"
)

// PlanningRepository 已审批排班区间数据访问接口
type PlanningRepository interface {
	Create(ctx context.Context, planning *model.Planning) error
	BatchCreate(ctx context.Context, plannings []model.Planning) error
	List(ctx context.Context) ([]model.Planning, error)
	ListOverlapping(ctx context.Context, start, end time.Time) ([]model.Planning, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type planningRepo struct {
	db *gorm.DB
}

// NewPlanningRepo 创建 PlanningRepository 实例
func NewPlanningRepo(db *gorm.DB) PlanningRepository {
	return &planningRepo{db: db}
}

func (r *planningRepo) Create(ctx context.Context, planning *model.Planning) error {
	return r.db.WithContext(ctx).Create(planning).Error
}

func (r *planningRepo) BatchCreate(ctx context.Context, plannings []model.Planning) error {
	if len(plannings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(plannings, 100).Error
}

func (r *planningRepo) List(ctx context.Context) ([]model.Planning, error) {
	var plannings []model.Planning
	err := r.db.WithContext(ctx).
		Order("start_date").
		Find(&plannings).Error
	return plannings, err
}

// ListOverlapping 查询与 [start, end] 区间有交集的排班区间
func (r *planningRepo) ListOverlapping(ctx context.Context, start, end time.Time) ([]model.Planning, error) {
	var plannings []model.Planning
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date").
		Find(&plannings).Error
	return plannings, err
}

func (r *planningRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("planning_id = ?", id).
		Delete(&model.Planning{}).Error
}
