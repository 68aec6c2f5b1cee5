package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jammon/stationsplan-sub000/internal/dto"
	"github.com/jammon/stationsplan-sub000/internal/service"
	"github.com/jammon/stationsplan-sub000/pkg/response"
)

// CatalogHandler 目录模块 HTTP 处理器（人员 / 病区 / 节假日）
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ── 人员 ──

// ListPersons 人员列表
// GET /api/v1/catalog/persons
func (h *CatalogHandler) ListPersons(c *gin.Context) {
	persons, err := h.catalogSvc.ListPersons(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, persons)
}

// CreatePerson 创建人员
// POST /api/v1/catalog/persons
func (h *CatalogHandler) CreatePerson(c *gin.Context) {
	var req dto.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	person, err := h.catalogSvc.CreatePerson(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, person)
}

// ReplacePersons 整体替换人员名单
// PUT /api/v1/catalog/persons
func (h *CatalogHandler) ReplacePersons(c *gin.Context) {
	var reqs []dto.PersonRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.catalogSvc.ReplacePersons(c.Request.Context(), reqs); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdatePerson 更新人员
// PUT /api/v1/catalog/persons/:id
func (h *CatalogHandler) UpdatePerson(c *gin.Context) {
	var req dto.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	person, err := h.catalogSvc.UpdatePerson(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, person)
}

// DeletePerson 删除人员
// DELETE /api/v1/catalog/persons/:id
func (h *CatalogHandler) DeletePerson(c *gin.Context) {
	if err := h.catalogSvc.DeletePerson(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 病区 ──

// ListWards 病区列表
// GET /api/v1/catalog/wards
func (h *CatalogHandler) ListWards(c *gin.Context) {
	wards, err := h.catalogSvc.ListWards(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, wards)
}

// CreateWard 创建病区
// POST /api/v1/catalog/wards
func (h *CatalogHandler) CreateWard(c *gin.Context) {
	var req dto.WardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ward, err := h.catalogSvc.CreateWard(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, ward)
}

// ReplaceWards 整体替换病区名单
// PUT /api/v1/catalog/wards
func (h *CatalogHandler) ReplaceWards(c *gin.Context) {
	var reqs []dto.WardRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.catalogSvc.ReplaceWards(c.Request.Context(), reqs); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateWard 更新病区
// PUT /api/v1/catalog/wards/:id
func (h *CatalogHandler) UpdateWard(c *gin.Context) {
	var req dto.WardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ward, err := h.catalogSvc.UpdateWard(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, ward)
}

// DeleteWard 删除病区
// DELETE /api/v1/catalog/wards/:id
func (h *CatalogHandler) DeleteWard(c *gin.Context) {
	if err := h.catalogSvc.DeleteWard(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 节假日 ──

// ListHolidays 节假日列表
// GET /api/v1/catalog/holidays
func (h *CatalogHandler) ListHolidays(c *gin.Context) {
	holidays, err := h.catalogSvc.ListHolidays(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, holidays)
}

// CreateHoliday 创建节假日
// POST /api/v1/catalog/holidays
func (h *CatalogHandler) CreateHoliday(c *gin.Context) {
	var req dto.HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.catalogSvc.CreateHoliday(c.Request.Context(), &req); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, nil)
}

// DeleteHoliday 删除节假日
// DELETE /api/v1/catalog/holidays/:date
func (h *CatalogHandler) DeleteHoliday(c *gin.Context) {
	if err := h.catalogSvc.DeleteHoliday(c.Request.Context(), c.Param("date")); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPersonExists):
		response.Conflict(c, 13001, "人员编号已存在")
	case errors.Is(err, service.ErrWardExists):
		response.Conflict(c, 13002, "病区编号已存在")
	case errors.Is(err, service.ErrPersonNotFound):
		response.NotFound(c, 13003, "人员不存在")
	case errors.Is(err, service.ErrWardNotFound):
		response.NotFound(c, 13004, "病区不存在")
	case errors.Is(err, service.ErrBadDateFormat):
		response.BadRequest(c, 13005, "日期格式应为 2006-01-02")
	case errors.Is(err, service.ErrBadRange):
		response.BadRequest(c, 13006, "结束日期早于起始日期")
	case errors.Is(err, service.ErrDuplicateEntry):
		response.BadRequest(c, 13007, "列表中存在重复编号")
	default:
		response.InternalError(c)
	}
}
