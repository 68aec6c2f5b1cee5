package dto

// ── 目录模块 DTO（人员 / 病区 / 节假日）──
// 日期字段统一使用 "2006-01-02" 格式字符串，空串表示未设置。

// PersonRequest 创建/更新人员请求
type PersonRequest struct {
	PersonID  string   `json:"person_id" binding:"required,max=64"`
	Name      string   `json:"name"      binding:"required,max=100"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Functions []string `json:"functions"` // 胜任病区，空 = 全部
}

// WardRequest 创建/更新病区请求
type WardRequest struct {
	WardID        string   `json:"ward_id" binding:"required,max=64"`
	Name          string   `json:"name"    binding:"required,max=100"`
	Min           int      `json:"min"     binding:"min=0"`
	Max           int      `json:"max"     binding:"min=0"`
	Nightshift    bool     `json:"nightshift"`
	Everyday      bool     `json:"everyday"`
	Freedays      bool     `json:"freedays"`
	Continued     bool     `json:"continued"`
	OnLeave       bool     `json:"on_leave"`
	ApprovedUntil string   `json:"approved_until"`
	AfterThis     []string `json:"after_this"` // nil = 不限制次日接续
	CallWeight    int      `json:"call_weight" binding:"min=0"`
	Position      int      `json:"position"`
}

// HolidayRequest 创建节假日请求
type HolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"max=100"`
}
