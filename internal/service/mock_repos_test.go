package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jammon/stationsplan-sub000/internal/model"
)

// ── Mock PersonRepository ──

type mockPersonRepo struct {
	persons map[string]*model.Person
}

func newMockPersonRepo() *mockPersonRepo {
	return &mockPersonRepo{persons: make(map[string]*model.Person)}
}

func (m *mockPersonRepo) Create(_ context.Context, person *model.Person) error {
	m.persons[person.PersonID] = person
	return nil
}

func (m *mockPersonRepo) GetByID(_ context.Context, id string) (*model.Person, error) {
	if p, ok := m.persons[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonRepo) List(_ context.Context) ([]model.Person, error) {
	ids := make([]string, 0, len(m.persons))
	for id := range m.persons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]model.Person, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.persons[id])
	}
	return result, nil
}

func (m *mockPersonRepo) Update(_ context.Context, person *model.Person) error {
	m.persons[person.PersonID] = person
	return nil
}

func (m *mockPersonRepo) Delete(_ context.Context, id string) error {
	delete(m.persons, id)
	return nil
}

func (m *mockPersonRepo) ReplaceAll(_ context.Context, persons []model.Person) error {
	m.persons = make(map[string]*model.Person, len(persons))
	for i := range persons {
		m.persons[persons[i].PersonID] = &persons[i]
	}
	return nil
}

// ── Mock WardRepository ──

type mockWardRepo struct {
	wards map[string]*model.Ward
}

func newMockWardRepo() *mockWardRepo {
	return &mockWardRepo{wards: make(map[string]*model.Ward)}
}

func (m *mockWardRepo) Create(_ context.Context, ward *model.Ward) error {
	m.wards[ward.WardID] = ward
	return nil
}

func (m *mockWardRepo) GetByID(_ context.Context, id string) (*model.Ward, error) {
	if w, ok := m.wards[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWardRepo) List(_ context.Context) ([]model.Ward, error) {
	ids := make([]string, 0, len(m.wards))
	for id := range m.wards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]model.Ward, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.wards[id])
	}
	return result, nil
}

func (m *mockWardRepo) Update(_ context.Context, ward *model.Ward) error {
	m.wards[ward.WardID] = ward
	return nil
}

func (m *mockWardRepo) Delete(_ context.Context, id string) error {
	delete(m.wards, id)
	return nil
}

func (m *mockWardRepo) ReplaceAll(_ context.Context, wards []model.Ward) error {
	m.wards = make(map[string]*model.Ward, len(wards))
	for i := range wards {
		m.wards[wards[i].WardID] = &wards[i]
	}
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	m.holidays[holiday.HolidayDate.Format("2006-01-02")] = holiday
	return nil
}

func (m *mockHolidayRepo) List(_ context.Context) ([]model.Holiday, error) {
	keys := make([]string, 0, len(m.holidays))
	for k := range m.holidays {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make([]model.Holiday, 0, len(keys))
	for _, k := range keys {
		result = append(result, *m.holidays[k])
	}
	return result, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, date time.Time) error {
	delete(m.holidays, date.Format("2006-01-02"))
	return nil
}

// ── Mock PlanningRepository ──

type mockPlanningRepo struct {
	plannings []model.Planning
}

func newMockPlanningRepo() *mockPlanningRepo {
	return &mockPlanningRepo{}
}

func (m *mockPlanningRepo) Create(_ context.Context, planning *model.Planning) error {
	if planning.PlanningID == uuid.Nil {
		planning.PlanningID = uuid.New()
	}
	m.plannings = append(m.plannings, *planning)
	return nil
}

func (m *mockPlanningRepo) BatchCreate(_ context.Context, plannings []model.Planning) error {
	for i := range plannings {
		if plannings[i].PlanningID == uuid.Nil {
			plannings[i].PlanningID = uuid.New()
		}
		m.plannings = append(m.plannings, plannings[i])
	}
	return nil
}

func (m *mockPlanningRepo) List(_ context.Context) ([]model.Planning, error) {
	out := make([]model.Planning, len(m.plannings))
	copy(out, m.plannings)
	return out, nil
}

func (m *mockPlanningRepo) ListOverlapping(_ context.Context, start, end time.Time) ([]model.Planning, error) {
	var out []model.Planning
	for _, p := range m.plannings {
		if !p.StartDate.After(end) && !p.EndDate.Before(start) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPlanningRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range m.plannings {
		if p.PlanningID == id {
			m.plannings = append(m.plannings[:i], m.plannings[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ChangeLogRepository ──

type mockChangeLogRepo struct {
	entries []model.ChangeLog
}

func newMockChangeLogRepo() *mockChangeLogRepo {
	return &mockChangeLogRepo{}
}

func (m *mockChangeLogRepo) Append(_ context.Context, entry *model.ChangeLog) error {
	if entry.ChangeID == uuid.Nil {
		entry.ChangeID = uuid.New()
	}
	if entry.AppliedAt.IsZero() {
		entry.AppliedAt = time.Now()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockChangeLogRepo) ListAll(_ context.Context) ([]model.ChangeLog, error) {
	out := make([]model.ChangeLog, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: username 或 user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == uuid.Nil {
		user.UserID = uuid.New()
	}
	m.users[user.Username] = user
	m.users[user.UserID.String()] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.Username] = user
	m.users[user.UserID.String()] = user
	return nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	seen := make(map[uuid.UUID]bool)
	for _, u := range m.users {
		seen[u.UserID] = true
	}
	return int64(len(seen)), nil
}
