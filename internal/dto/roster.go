package dto

// ── 排班查询模块 DTO ──

// StaffingResponse 某日某病区的人员配置
type StaffingResponse struct {
	WardID       string   `json:"ward_id"`
	WardName     string   `json:"ward_name"`
	Members      []string `json:"members"`  // 已排人员 ID，有序
	Eligible     []string `json:"eligible"` // 可排人员 ID，有序
	Understaffed bool     `json:"understaffed"`
	HasRoom      bool     `json:"has_room"`
}

// DayResponse 单日排班视图
type DayResponse struct {
	Day       string             `json:"day"` // 2006-01-02
	FreeDay   bool               `json:"free_day"`
	Staffings []StaffingResponse `json:"staffings"`
}

// MonthResponse 整月排班视图
type MonthResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []DayResponse `json:"days"`
}

// PersonDutiesResponse 某日某人的全部值班（倒排索引视图）
type PersonDutiesResponse struct {
	PersonID string   `json:"person_id"`
	Day      string   `json:"day"`
	Wards    []string `json:"wards"`
}

// AvailableResponse 某日某病区的可选人员
type AvailableResponse struct {
	WardID  string   `json:"ward_id"`
	Day     string   `json:"day"`
	Persons []string `json:"persons"`
}
