package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jammon/stationsplan-sub000/internal/dto"
	"github.com/jammon/stationsplan-sub000/internal/repository"
)

func newTestCatalogService(t *testing.T, repo *repository.Repository) (CatalogService, RosterService) {
	t.Helper()
	rosterSvc := newBootstrappedService(t, repo)
	return NewCatalogService(repo, rosterSvc, zap.NewNop()), rosterSvc
}

func TestCreatePerson_Duplicate(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, _ := newTestCatalogService(t, repo)

	_, err := svc.CreatePerson(context.Background(), &dto.PersonRequest{
		PersonID: "p1", Name: "重复人员",
	})
	if !errors.Is(err, ErrPersonExists) {
		t.Errorf("期望 ErrPersonExists，实际: %v", err)
	}
}

func TestCreatePerson_BadRange(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, _ := newTestCatalogService(t, repo)

	_, err := svc.CreatePerson(context.Background(), &dto.PersonRequest{
		PersonID: "p9", Name: "时间倒流",
		StartDate: "2026-06-01", EndDate: "2026-05-01",
	})
	if !errors.Is(err, ErrBadRange) {
		t.Errorf("期望 ErrBadRange，实际: %v", err)
	}
}

func TestUpdateWard_NotFound(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, _ := newTestCatalogService(t, repo)

	_, err := svc.UpdateWard(context.Background(), "nowhere", &dto.WardRequest{
		WardID: "nowhere", Name: "不存在",
	})
	if !errors.Is(err, ErrWardNotFound) {
		t.Errorf("期望 ErrWardNotFound，实际: %v", err)
	}
}

func TestCreateWard_ReloadsEngine(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, rosterSvc := newTestCatalogService(t, repo)
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, &dto.WardRequest{
		WardID: "icu", Name: "重症监护", Min: 1, Max: 2,
	}); err != nil {
		t.Fatalf("CreateWard 失败: %v", err)
	}

	// 新病区应立即出现在单日视图中
	day, err := rosterSvc.GetDay(ctx, "2026-04-06")
	if err != nil {
		t.Fatalf("GetDay 失败: %v", err)
	}
	staffingOf(t, day, "icu")
}

// 目录变更前已物化的日期同样获得新病区的排班：
// 修改须立即生效，而非仅在重启回放后浮现
func TestCreateWard_AppliesToMaterializedDays(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, rosterSvc := newTestCatalogService(t, repo)
	ctx := context.Background()

	// 先物化目标日，再新建病区
	if _, err := rosterSvc.GetDay(ctx, "2026-04-06"); err != nil {
		t.Fatalf("GetDay 失败: %v", err)
	}
	if _, err := svc.CreateWard(ctx, &dto.WardRequest{
		WardID: "icu", Name: "重症监护", Min: 1, Max: 2,
	}); err != nil {
		t.Fatalf("CreateWard 失败: %v", err)
	}

	if err := rosterSvc.ApplyChange(ctx, &dto.ChangeRequest{
		PersonID: "p1", WardID: "icu", Day: "2026-04-06", Action: "add",
	}, ""); err != nil {
		t.Fatalf("已物化日期上的新病区应可直接排班: %v", err)
	}
	day, err := rosterSvc.GetDay(ctx, "2026-04-06")
	if err != nil {
		t.Fatalf("GetDay 失败: %v", err)
	}
	if !hasMember(staffingOf(t, day, "icu"), "p1") {
		t.Error("修改应立即可见于单日视图")
	}
}

func TestCreatePerson_VisibleToEngine(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, rosterSvc := newTestCatalogService(t, repo)
	ctx := context.Background()

	if _, err := svc.CreatePerson(ctx, &dto.PersonRequest{
		PersonID: "p3", Name: "新医生",
	}); err != nil {
		t.Fatalf("CreatePerson 失败: %v", err)
	}

	if err := rosterSvc.ApplyChange(ctx, &dto.ChangeRequest{
		PersonID: "p3", WardID: "station", Day: "2026-04-06", Action: "add",
	}, ""); err != nil {
		t.Errorf("新人员应可直接排班: %v", err)
	}
}

func TestCreateHoliday_BadDate(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, _ := newTestCatalogService(t, repo)

	err := svc.CreateHoliday(context.Background(), &dto.HolidayRequest{Date: "not-a-date"})
	if !errors.Is(err, ErrBadDateFormat) {
		t.Errorf("期望 ErrBadDateFormat，实际: %v", err)
	}
}

func TestReplaceWards_DuplicateID(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, _ := newTestCatalogService(t, repo)

	err := svc.ReplaceWards(context.Background(), []dto.WardRequest{
		{WardID: "station", Name: "内科病区", Min: 1, Max: 3},
		{WardID: "station", Name: "重复编号", Min: 1, Max: 3},
	})
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("期望 ErrDuplicateEntry，实际: %v", err)
	}

	// 整批拒绝：原名单不受影响
	wards, err := svc.ListWards(context.Background())
	if err != nil {
		t.Fatalf("ListWards 失败: %v", err)
	}
	if len(wards) != 2 {
		t.Errorf("期望病区数 2，实际 %d", len(wards))
	}
}

func TestReplacePersons_VisibleToEngine(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, rosterSvc := newTestCatalogService(t, repo)
	ctx := context.Background()

	if err := svc.ReplacePersons(ctx, []dto.PersonRequest{
		{PersonID: "p1", Name: "王医生"},
		{PersonID: "p5", Name: "换班医生"},
	}); err != nil {
		t.Fatalf("ReplacePersons 失败: %v", err)
	}

	// 新名单立即生效：新人可排班，被移除者不可
	if err := rosterSvc.ApplyChange(ctx, &dto.ChangeRequest{
		PersonID: "p5", WardID: "station", Day: "2026-04-06", Action: "add",
	}, ""); err != nil {
		t.Errorf("新名单人员应可排班: %v", err)
	}
	if err := rosterSvc.ApplyChange(ctx, &dto.ChangeRequest{
		PersonID: "p2", WardID: "station", Day: "2026-04-06", Action: "add",
	}, ""); err == nil {
		t.Error("被替换掉的人员不应再可排班")
	}
}

func TestDeletePerson_NotFound(t *testing.T) {
	repo := newTestRepo()
	seedCatalog(t, repo)
	svc, _ := newTestCatalogService(t, repo)

	err := svc.DeletePerson(context.Background(), "ghost")
	if !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("期望 ErrPersonNotFound，实际: %v", err)
	}
}
