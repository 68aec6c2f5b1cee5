package roster

import (
	"time"

	"go.uber.org/zap"
)

// ── 日链 ──
//
// 稀疏、单调增长的按日期有序索引。保证每个日历日至多一个 Day 实例，
// 且任何请求返回的 Day 都与其前驱正确链接（缺失的中间日按序补建）。
// Day 一经构造绝不替换，只原地变更。

// DayChain 日链
type DayChain struct {
	catalog  *Catalog
	holidays map[string]bool // dayID → 节假日
	days     map[string]*Day
	first    time.Time // 已物化区间下界，零值 = 空链
	last     time.Time // 已物化区间上界
	epoch    time.Time // 配置纪元：空链首次取日时从纪元起建链，零值 = 从请求日起
	tallies  *TallyBook
	logger   *zap.Logger
}

// NewDayChain 创建日链。epoch 为零值时链从首个被请求的日期开始。
func NewDayChain(catalog *Catalog, epoch time.Time, logger *zap.Logger) *DayChain {
	if !epoch.IsZero() {
		epoch = normalizeDate(epoch)
	}
	return &DayChain{
		catalog:  catalog,
		holidays: make(map[string]bool),
		days:     make(map[string]*Day),
		epoch:    epoch,
		tallies:  NewTallyBook(),
		logger:   logger,
	}
}

// Catalog 目录
func (c *DayChain) Catalog() *Catalog { return c.catalog }

// Tallies 月度值班计分簿
func (c *DayChain) Tallies() *TallyBook { return c.tallies }

// LoadHolidays 整体替换节假日表
func (c *DayChain) LoadHolidays(dates []time.Time) {
	m := make(map[string]bool, len(dates))
	for _, dt := range dates {
		m[DayID(dt)] = true
	}
	c.holidays = m
}

// IsFreeDay 休息日判定：周六/周日或节假日表命中
func (c *DayChain) IsFreeDay(date time.Time) bool {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return true
	}
	return c.holidays[DayID(date)]
}

// peek 只读查询，绝不触发构建
func (c *DayChain) peek(date time.Time) *Day {
	return c.days[DayID(normalizeDate(date))]
}

// GetDay 返回指定日期的 Day，不存在则构建。向后补齐缺口保证链接不断裂；
// 向前（更早）扩展时为既有链头补建前驱并重接链接。
func (c *DayChain) GetDay(date time.Time) *Day {
	date = normalizeDate(date)
	if d := c.days[DayID(date)]; d != nil {
		return d
	}

	// 空链：从纪元（若早于请求日）起按序建链
	if c.first.IsZero() {
		start := date
		if !c.epoch.IsZero() && c.epoch.Before(date) {
			start = c.epoch
		}
		c.buildForward(start, date, nil)
		c.first, c.last = start, date
		return c.days[DayID(date)]
	}

	if date.After(c.last) {
		c.buildForward(c.last.AddDate(0, 0, 1), date, c.days[DayID(c.last)])
		c.last = date
		return c.days[DayID(date)]
	}

	// date 早于链头：补建 [date, first) 区间并把原链头接到新前驱上。
	// 原链头此前无昨日，链接建立后其全部可排子集需按新前驱重算。
	c.buildForward(date, c.first.AddDate(0, 0, -1), nil)
	head := c.days[DayID(c.first)]
	head.yesterday = c.days[DayID(c.first.AddDate(0, 0, -1))]
	for _, st := range head.staffings {
		st.RecomputeEligible()
	}
	c.first = date
	return c.days[DayID(date)]
}

// buildForward 在 [from, to] 上按日历顺序逐日构建并链接
func (c *DayChain) buildForward(from, to time.Time, yesterday *Day) {
	for dt := from; !dt.After(to); dt = dt.AddDate(0, 0, 1) {
		d := newDay(c, dt, yesterday)
		c.days[d.id] = d
		yesterday = d
	}
}

// GetOrExtendMonth 返回指定月份的全部 Day（28–31 个，日历顺序），缺失者按序构建
func (c *DayChain) GetOrExtendMonth(year int, month time.Month) []*Day {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
	out := make([]*Day, 0, lastOfMonth.Day())
	for dt := firstOfMonth; !dt.After(lastOfMonth); dt = dt.AddDate(0, 0, 1) {
		out = append(out, c.GetDay(dt))
	}
	return out
}
