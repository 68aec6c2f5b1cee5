package roster

import "time"

// ── 月度值班计分 ──
//
// 按 (人员, 月份) 维护各值班类型的次数与加权总分，随排班成员变更增量更新。
// 权重来自病区目录的静态 CallWeight 表，仅 CallWeight > 0 的病区纳入统计。

// CallTally 单人单月的值班计分
type CallTally struct {
	counts map[string]int // wardID → 次数
	weight int            // 加权总分
}

// Count 指定值班类型的次数
func (t *CallTally) Count(wardID string) int { return t.counts[wardID] }

// Weight 加权总分
func (t *CallTally) Weight() int { return t.weight }

// Counts 各值班类型次数（副本）
func (t *CallTally) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// TallyBook 全部月份的计分簿
type TallyBook struct {
	months map[string]map[string]*CallTally // monthKey → personID → CallTally
}

// NewTallyBook 创建空计分簿
func NewTallyBook() *TallyBook {
	return &TallyBook{months: make(map[string]map[string]*CallTally)}
}

const monthKeyLayout = "200601"

func monthKey(date time.Time) string { return date.Format(monthKeyLayout) }

// onMembershipChanged 随成员变更增量记账。次数归零的类型与空记录随之清除，
// 使"本月无被统计值班"与"次数为零"可区分。
func (b *TallyBook) onMembershipChanged(p *Person, w *Ward, date time.Time, action Action) {
	key := monthKey(date)
	persons := b.months[key]
	if persons == nil {
		persons = make(map[string]*CallTally)
		b.months[key] = persons
	}
	t := persons[p.ID]
	if t == nil {
		t = &CallTally{counts: make(map[string]int)}
		persons[p.ID] = t
	}

	delta := 1
	if action == ActionRemove {
		delta = -1
	}
	t.counts[w.ID] += delta
	t.weight += delta * w.CallWeight

	if t.counts[w.ID] <= 0 {
		delete(t.counts, w.ID)
	}
	if len(t.counts) == 0 {
		delete(persons, p.ID)
		if len(persons) == 0 {
			delete(b.months, key)
		}
	}
}

// Tally 人员当月指定值班类型的次数，未统计返回 0
func (b *TallyBook) Tally(personID string, month time.Time, wardID string) int {
	if t := b.months[monthKey(month)][personID]; t != nil {
		return t.Count(wardID)
	}
	return 0
}

// WeightTotal 人员当月加权总分。本月无任何被统计值班时 ok 为 false，
// 区分"零次"与"未统计"。
func (b *TallyBook) WeightTotal(personID string, month time.Time) (int, bool) {
	t := b.months[monthKey(month)][personID]
	if t == nil {
		return 0, false
	}
	return t.weight, true
}

// Get 单人单月计分，未统计返回 nil
func (b *TallyBook) Get(personID string, month time.Time) *CallTally {
	return b.months[monthKey(month)][personID]
}
