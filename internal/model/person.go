package model

import "time"

// Person 医护人员表 — 对应 persons
type Person struct {
	PersonID  string      `gorm:"column:person_id;primaryKey"  json:"person_id"`
	Name      string      `gorm:"type:varchar(100);not null"   json:"name"`
	StartDate *time.Time  `gorm:"type:date"                    json:"start_date,omitempty"` // 在职起始日（含），NULL = 无下界
	EndDate   *time.Time  `gorm:"type:date"                    json:"end_date,omitempty"`   // 在职结束日（含），NULL = 无上界
	Functions StringArray `gorm:"type:text[]"                  json:"functions,omitempty"`  // 胜任病区，NULL/空 = 全部
	BaseModel
}

// TableName 指定表名
func (Person) TableName() string { return "persons" }
