package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jammon/stationsplan-sub000/internal/model"
)

// ChangeLogRepository 排班变更日志数据访问接口（追加式）
type ChangeLogRepository interface {
	Append(ctx context.Context, entry *model.ChangeLog) error
	ListAll(ctx context.Context) ([]model.ChangeLog, error)
}

type changeLogRepo struct {
	db *gorm.DB
}

// NewChangeLogRepo 创建 ChangeLogRepository 实例
func NewChangeLogRepo(db *gorm.DB) ChangeLogRepository {
	return &changeLogRepo{db: db}
}

func (r *changeLogRepo) Append(ctx context.Context, entry *model.ChangeLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListAll 按写入顺序返回全部变更日志，用于启动时回放
func (r *changeLogRepo) ListAll(ctx context.Context) ([]model.ChangeLog, error) {
	var entries []model.ChangeLog
	err := r.db.WithContext(ctx).
		Order("applied_at, change_id").
		Find(&entries).Error
	return entries, err
}
