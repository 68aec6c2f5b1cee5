package model

import "time"

// Ward 值班类别表 — 对应 wards
// 普通病区、夜班、请假、特殊任务共用一张表，以布尔标志区分语义。
type Ward struct {
	WardID        string      `gorm:"column:ward_id;primaryKey"       json:"ward_id"`
	Name          string      `gorm:"type:varchar(100);not null"      json:"name"`
	MinStaff      int         `gorm:"column:min_staff;not null"       json:"min"`
	MaxStaff      int         `gorm:"column:max_staff;not null"       json:"max"`
	Nightshift    bool        `gorm:"not null;default:false"          json:"nightshift"`
	Everyday      bool        `gorm:"not null;default:false"          json:"everyday"`
	Freedays      bool        `gorm:"not null;default:false"          json:"freedays"`
	Continued     bool        `gorm:"not null;default:false"          json:"continued"`
	OnLeave       bool        `gorm:"column:on_leave;not null;default:false" json:"on_leave"`
	ApprovedUntil *time.Time  `gorm:"type:date"                       json:"approved_until,omitempty"` // 审批锁定日（含），NULL = 未锁定
	AfterThis     StringArray `gorm:"type:text[]"                     json:"after_this,omitempty"`     // 次日允许接续的病区，NULL = 不限制
	CallWeight    int         `gorm:"column:call_weight;not null;default:0" json:"call_weight"` // 值班计分权重，0 = 不统计
	Position      int         `gorm:"not null;default:0"              json:"position"`          // 展示排序
	BaseModel
}

// TableName 指定表名
func (Ward) TableName() string { return "wards" }
