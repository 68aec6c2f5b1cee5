package model

import (
	"time"

	"github.com/google/uuid"
)

// Planning 已审批排班区间表 — 对应 plannings
// 一条记录表示某人在 [start_date, end_date] 区间内固定承担某病区。
type Planning struct {
	PlanningID uuid.UUID `gorm:"column:planning_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"planning_id"`
	PersonID   string    `gorm:"column:person_id;not null"  json:"person_id"`
	WardID     string    `gorm:"column:ward_id;not null"    json:"ward_id"`
	StartDate  time.Time `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"column:end_date;type:date;not null"   json:"end_date"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"   json:"created_at"`
}

// TableName 指定表名
func (Planning) TableName() string { return "plannings" }
