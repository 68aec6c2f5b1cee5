package model

import "time"

// Holiday 法定节假日表 — 对应 holidays
type Holiday struct {
	HolidayDate time.Time `gorm:"column:holiday_date;type:date;primaryKey" json:"holiday_date"`
	Name        string    `gorm:"type:varchar(100);not null;default:''"    json:"name"`
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }
