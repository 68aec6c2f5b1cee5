package dto

// ── 值班计分模块 DTO ──

// TallyResponse 某人某月的值班计分
type TallyResponse struct {
	PersonID    string         `json:"person_id"`
	Month       string         `json:"month"`  // 200601
	Counts      map[string]int `json:"counts"` // 病区 ID → 次数
	WeightTotal int            `json:"weight_total"`
	Tracked     bool           `json:"tracked"` // false = 当月无计分值班
}
