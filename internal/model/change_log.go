package model

import (
	"time"

	"github.com/google/uuid"
)

// ChangeLog 排班变更日志表 — 对应 change_logs
// 追加式日志：服务启动时按 applied_at 顺序回放，重建内存排班状态。
type ChangeLog struct {
	ChangeID   uuid.UUID  `gorm:"column:change_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"change_id"`
	PersonID   string     `gorm:"column:person_id;not null"  json:"person_id"`
	WardID     string     `gorm:"column:ward_id;not null"    json:"ward_id"`
	Day        time.Time  `gorm:"type:date;not null"         json:"day"`
	Action     string     `gorm:"type:varchar(10);not null"  json:"action"` // add / remove
	Continued  bool       `gorm:"not null;default:false"     json:"continued"`
	UntilDay   *time.Time `gorm:"column:until_day;type:date" json:"until_day,omitempty"`
	OperatorID *uuid.UUID `gorm:"column:operator_id;type:uuid" json:"operator_id,omitempty"`
	AppliedAt  time.Time  `gorm:"column:applied_at;not null;default:CURRENT_TIMESTAMP" json:"applied_at"`
}

// TableName 指定表名
func (ChangeLog) TableName() string { return "change_logs" }
