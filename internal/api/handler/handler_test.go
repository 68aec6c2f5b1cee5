package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jammon/stationsplan-sub000/internal/dto"
	"github.com/jammon/stationsplan-sub000/internal/roster"
	"github.com/jammon/stationsplan-sub000/internal/service"
	"github.com/jammon/stationsplan-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.LoginResponse
	loginErr      error
	logoutErr     error
	logoutJTI     string
	currentUser   *dto.UserInfo
	currentErr    error
	changePassErr error
	ensureErr     error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, _ time.Time) error {
	m.logoutJTI = jti
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserInfo, error) {
	return m.currentUser, m.currentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}
func (m *mockAuthService) EnsureAdmin(_ context.Context) error {
	return m.ensureErr
}

// ── Mock RosterService ──

type mockRosterService struct {
	applyErr      error
	importResult  *dto.PlanningImportResponse
	importErr     error
	dayResult     *dto.DayResponse
	dayErr        error
	monthResult   *dto.MonthResponse
	monthErr      error
	availResult   *dto.AvailableResponse
	availErr      error
	dutiesResult  *dto.PersonDutiesResponse
	dutiesErr     error
	tallyResult   *dto.TallyResponse
	tallyErr      error
	lastOperator  string
	lastChangeReq *dto.ChangeRequest
}

func (m *mockRosterService) Bootstrap(_ context.Context) error     { return nil }
func (m *mockRosterService) ReloadCatalog(_ context.Context) error { return nil }
func (m *mockRosterService) ApplyChange(_ context.Context, req *dto.ChangeRequest, operatorID string) error {
	m.lastChangeReq = req
	m.lastOperator = operatorID
	return m.applyErr
}
func (m *mockRosterService) ImportPlanning(_ context.Context, _ *dto.PlanningImportRequest) (*dto.PlanningImportResponse, error) {
	return m.importResult, m.importErr
}
func (m *mockRosterService) GetDay(_ context.Context, _ string) (*dto.DayResponse, error) {
	return m.dayResult, m.dayErr
}
func (m *mockRosterService) GetMonth(_ context.Context, _, _ int) (*dto.MonthResponse, error) {
	return m.monthResult, m.monthErr
}
func (m *mockRosterService) GetAvailable(_ context.Context, _, _ string) (*dto.AvailableResponse, error) {
	return m.availResult, m.availErr
}
func (m *mockRosterService) GetPersonDuties(_ context.Context, _, _ string) (*dto.PersonDutiesResponse, error) {
	return m.dutiesResult, m.dutiesErr
}
func (m *mockRosterService) GetTally(_ context.Context, _, _ string) (*dto.TallyResponse, error) {
	return m.tallyResult, m.tallyErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return resp
}

func performChange(t *testing.T, svc *mockRosterService, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	h := NewRosterHandler(svc)
	r := gin.New()
	r.POST("/roster/changes", func(c *gin.Context) {
		c.Set("user_id", "op-1")
		c.Set("role", "planner")
		h.ApplyChange(c)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/roster/changes", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// RosterHandler
// ═══════════════════════════════════════════════════════════

func TestApplyChange_OK(t *testing.T) {
	svc := &mockRosterService{}
	w := performChange(t, svc, jsonBody(dto.ChangeRequest{
		PersonID: "p1", WardID: "station", Day: "2026-04-06", Action: "add",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
	if svc.lastOperator != "op-1" {
		t.Errorf("应透传操作者 ID，实际 %q", svc.lastOperator)
	}
}

func TestApplyChange_InvalidAction(t *testing.T) {
	svc := &mockRosterService{}
	w := performChange(t, svc, jsonBody(dto.ChangeRequest{
		PersonID: "p1", WardID: "station", Day: "2026-04-06", Action: "toggle",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("非法 action 期望 400，实际 %d", w.Code)
	}
	if svc.lastChangeReq != nil {
		t.Error("参数校验失败不应到达 Service")
	}
}

func TestApplyChange_UnknownReferenceMapsTo404(t *testing.T) {
	svc := &mockRosterService{applyErr: roster.ErrUnknownReference}
	w := performChange(t, svc, jsonBody(dto.ChangeRequest{
		PersonID: "ghost", WardID: "station", Day: "2026-04-06", Action: "add",
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际 %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 12001 {
		t.Errorf("期望业务码 12001，实际 %d", resp.Code)
	}
}

func TestApplyChange_ApprovedLockedMapsTo409(t *testing.T) {
	svc := &mockRosterService{applyErr: roster.ErrApprovedLocked}
	w := performChange(t, svc, jsonBody(dto.ChangeRequest{
		PersonID: "p1", WardID: "station", Day: "2026-04-06", Action: "remove",
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际 %d", w.Code)
	}
}

func TestImportPlanning_DisabledMapsTo403(t *testing.T) {
	svc := &mockRosterService{importErr: service.ErrPlanningDisabled}
	h := NewRosterHandler(svc)
	r := gin.New()
	r.POST("/roster/plannings/import", h.ImportPlanning)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/roster/plannings/import", jsonBody(dto.PlanningImportRequest{
		Records: []dto.PlanningRecordRequest{
			{PersonID: "p1", WardID: "station", Start: "2026-04-06", End: "2026-04-08"},
		},
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际 %d", w.Code)
	}
}

func TestGetMonth_BadYear(t *testing.T) {
	h := NewRosterHandler(&mockRosterService{})
	r := gin.New()
	r.GET("/roster/months/:year/:month", h.GetMonth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/roster/months/not-a-year/4", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler
// ═══════════════════════════════════════════════════════════

func TestLoginHandler_InvalidCredentialsMapsTo401(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})
	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(dto.LoginRequest{
		Username: "zhangsan", Password: "bad",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际 %d", w.Code)
	}
}

func TestLoginHandler_MissingBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(nil))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", w.Code)
	}
}

func TestLogoutHandler_BlacklistsToken(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		c.Set("token_jti", "jti-1")
		c.Set("token_exp", time.Now().Add(time.Hour))
		h.Logout(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
	if svc.logoutJTI != "jti-1" {
		t.Errorf("应透传 Token jti，实际 %q", svc.logoutJTI)
	}
}

func TestGetCurrentUserHandler_OK(t *testing.T) {
	svc := &mockAuthService{currentUser: &dto.UserInfo{UserID: "u1", Username: "zhangsan", Role: "planner"}}
	h := NewAuthHandler(svc)
	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		c.Set("user_id", "u1")
		h.GetCurrentUser(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(t, w); resp.Code != 0 {
		t.Errorf("期望业务码 0，实际 %d", resp.Code)
	}
}
