package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hrms/internal/dto"
	"hrms/internal/service"
	pkgerrors "hrms/pkg/errors"
	"hrms/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testID = "5b3c1f0e-8a4d-4c2e-9f10-2d6a7b8c9d01"

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock DepartmentService ──

type mockDepartmentService struct {
	listResult []dto.DepartmentResponse
	listReq    *dto.DepartmentListRequest
	getResult  *dto.DepartmentResponse
	getErr     error
	createErr  error
	patchReq   *dto.PatchDepartmentRequest
	deleteErr  error
}

func (m *mockDepartmentService) List(_ context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, error) {
	m.listReq = req
	return m.listResult, nil
}
func (m *mockDepartmentService) GetByID(_ context.Context, _ string) (*dto.DepartmentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockDepartmentService) Create(_ context.Context, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &dto.DepartmentResponse{ID: testID, Name: req.Name, Code: req.Code}, nil
}
func (m *mockDepartmentService) Replace(_ context.Context, id string, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	return &dto.DepartmentResponse{ID: id, Name: req.Name, Code: req.Code}, nil
}
func (m *mockDepartmentService) Patch(_ context.Context, id string, req *dto.PatchDepartmentRequest) (*dto.DepartmentResponse, error) {
	m.patchReq = req
	return &dto.DepartmentResponse{ID: id}, nil
}
func (m *mockDepartmentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock EmployeeService ──

type mockEmployeeService struct {
	listReq     *dto.EmployeeListRequest
	listResult  []dto.EmployeeListItem
	detail      *dto.EmployeeDetail
	err         error
	patchReq    *dto.PatchEmployeeRequest
	chainResult *dto.ManagementChainResponse
}

func (m *mockEmployeeService) List(_ context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeListItem, error) {
	m.listReq = req
	return m.listResult, m.err
}
func (m *mockEmployeeService) GetDetail(_ context.Context, _ string) (*dto.EmployeeDetail, error) {
	return m.detail, m.err
}
func (m *mockEmployeeService) Create(_ context.Context, _ *dto.EmployeeRequest) (*dto.EmployeeDetail, error) {
	return m.detail, m.err
}
func (m *mockEmployeeService) Replace(_ context.Context, _ string, _ *dto.EmployeeRequest) (*dto.EmployeeDetail, error) {
	return m.detail, m.err
}
func (m *mockEmployeeService) Patch(_ context.Context, _ string, req *dto.PatchEmployeeRequest) (*dto.EmployeeDetail, error) {
	m.patchReq = req
	return m.detail, m.err
}
func (m *mockEmployeeService) Delete(_ context.Context, _ string) error {
	return m.err
}
func (m *mockEmployeeService) ManagementChain(_ context.Context, _ string) (*dto.ManagementChainResponse, error) {
	return m.chainResult, m.err
}
func (m *mockEmployeeService) Subordinates(_ context.Context, _ string) ([]dto.EmployeeListItem, error) {
	return m.listResult, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	body   string
	err    error
	format string
	req    *dto.EmployeeListRequest
}

func (m *mockExportService) ExportEmployees(_ context.Context, req *dto.EmployeeListRequest, format string, w io.Writer) (int, error) {
	m.req = req
	m.format = format
	if m.err != nil {
		return 0, m.err
	}
	_, _ = io.WriteString(w, m.body)
	return 1, nil
}

// ── Mock AnalyticsService ──

type mockAnalyticsService struct {
	result *dto.AnalyticsSummary
	err    error
}

func (m *mockAnalyticsService) Summary(_ context.Context) (*dto.AnalyticsSummary, error) {
	return m.result, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, target string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func departmentRouter(mock *mockDepartmentService) *gin.Engine {
	h := NewDepartmentHandler(mock)
	r := gin.New()
	r.GET("/departments", h.ListDepartments)
	r.GET("/departments/:id", h.GetDepartment)
	r.POST("/departments", h.CreateDepartment)
	r.PATCH("/departments/:id", h.PatchDepartment)
	r.DELETE("/departments/:id", h.DeleteDepartment)
	return r
}

func employeeRouter(mock *mockEmployeeService) *gin.Engine {
	h := NewEmployeeHandler(mock)
	r := gin.New()
	r.GET("/employees", h.ListEmployees)
	r.GET("/employees/:id", h.GetEmployee)
	r.POST("/employees", h.CreateEmployee)
	r.PATCH("/employees/:id", h.PatchEmployee)
	r.GET("/employees/:id/chain", h.GetManagementChain)
	return r
}

// ═══════════════════════════════════════════════════════════
// DepartmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDepartmentHandler_List_Success(t *testing.T) {
	mock := &mockDepartmentService{listResult: []dto.DepartmentResponse{{ID: testID, Code: "ENG"}}}
	w := serve(departmentRouter(mock), "GET", "/departments?code=ENG&unknown=1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.listReq == nil || mock.listReq.Code != "ENG" {
		t.Errorf("code 过滤未传递: %+v", mock.listReq)
	}

	var resp struct {
		Data response.ListData `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Total != 1 {
		t.Errorf("expected total 1, got %d", resp.Data.Total)
	}
}

func TestDepartmentHandler_Get_InvalidID(t *testing.T) {
	w := serve(departmentRouter(&mockDepartmentService{}), "GET", "/departments/not-a-uuid", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Field != "id" {
		t.Errorf("expected field id, got %q", resp.Field)
	}
}

func TestDepartmentHandler_Get_NotFound(t *testing.T) {
	mock := &mockDepartmentService{getErr: service.ErrDepartmentNotFound}
	w := serve(departmentRouter(mock), "GET", "/departments/"+testID, nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected code 11001, got %d", resp.Code)
	}
}

func TestDepartmentHandler_Create_Success(t *testing.T) {
	w := serve(departmentRouter(&mockDepartmentService{}), "POST", "/departments",
		jsonBody(dto.DepartmentRequest{Name: "Engineering", Code: "ENG"}))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
}

func TestDepartmentHandler_Create_BindingFieldName(t *testing.T) {
	w := serve(departmentRouter(&mockDepartmentService{}), "POST", "/departments",
		jsonBody(map[string]string{"code": "ENG"}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 || resp.Field != "name" {
		t.Errorf("expected 10001/name, got %d/%q", resp.Code, resp.Field)
	}
}

func TestDepartmentHandler_Create_DuplicateCode(t *testing.T) {
	mock := &mockDepartmentService{createErr: pkgerrors.NewFieldError("code", "部门编码已存在")}
	w := serve(departmentRouter(mock), "POST", "/departments",
		jsonBody(dto.DepartmentRequest{Name: "Engineering", Code: "ENG"}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 || resp.Field != "code" {
		t.Errorf("expected 11002/code, got %d/%q", resp.Code, resp.Field)
	}
}

func TestDepartmentHandler_Patch_NullHead(t *testing.T) {
	mock := &mockDepartmentService{}
	w := serve(departmentRouter(mock), "PATCH", "/departments/"+testID, strings.NewReader(`{"head_id":null}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.patchReq == nil || !mock.patchReq.HeadID.Set || mock.patchReq.HeadID.Value != nil {
		t.Errorf("head_id 显式 null 应传递为 Set=true, Value=nil: %+v", mock.patchReq)
	}
}

func TestDepartmentHandler_Delete_InternalError(t *testing.T) {
	mock := &mockDepartmentService{deleteErr: errors.New("db down")}
	w := serve(departmentRouter(mock), "DELETE", "/departments/"+testID, nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 50000 {
		t.Errorf("expected code 50000, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EmployeeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEmployeeHandler_List_QueryParams(t *testing.T) {
	mock := &mockEmployeeService{}
	w := serve(employeeRouter(mock), "GET",
		"/employees?department__code=ENG&role__title=Engineer&status=active&search=ann&ordering=-salary", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	req := mock.listReq
	if req.DepartmentCode != "ENG" || req.RoleTitle != "Engineer" || req.Status != "active" {
		t.Errorf("过滤参数未正确绑定: %+v", req)
	}
	if req.Search != "ann" || req.Ordering != "-salary" {
		t.Errorf("搜索 / 排序参数未正确绑定: %+v", req)
	}
}

func TestEmployeeHandler_List_InvalidStatus(t *testing.T) {
	w := serve(employeeRouter(&mockEmployeeService{}), "GET", "/employees?status=retired", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Field != "status" {
		t.Errorf("expected field status, got %q", resp.Field)
	}
}

func TestEmployeeHandler_Create_UnresolvedDepartment(t *testing.T) {
	mock := &mockEmployeeService{err: pkgerrors.Fieldf("department", "部门不存在: %q", "Nope")}
	w := serve(employeeRouter(mock), "POST", "/employees", jsonBody(dto.EmployeeRequest{
		EmpID: "E1", FirstName: "A", LastName: "B", Email: "e1@example.com", HireDate: "2024-01-02",
	}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13002 || resp.Field != "department" {
		t.Errorf("expected 13002/department, got %d/%q", resp.Code, resp.Field)
	}
}

func TestEmployeeHandler_Create_BadEmail(t *testing.T) {
	w := serve(employeeRouter(&mockEmployeeService{}), "POST", "/employees", jsonBody(dto.EmployeeRequest{
		EmpID: "E1", FirstName: "A", LastName: "B", Email: "not-an-email", HireDate: "2024-01-02",
	}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Field != "email" {
		t.Errorf("expected field email, got %q", resp.Field)
	}
}

func TestEmployeeHandler_Create_WrongType(t *testing.T) {
	w := serve(employeeRouter(&mockEmployeeService{}), "POST", "/employees",
		strings.NewReader(`{"emp_id":"E1","salary":"lots"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Field != "salary" {
		t.Errorf("expected field salary, got %q", resp.Field)
	}
}

func TestEmployeeHandler_Patch_ManagerNullVsOmitted(t *testing.T) {
	mock := &mockEmployeeService{detail: &dto.EmployeeDetail{ID: testID}}
	r := employeeRouter(mock)

	serve(r, "PATCH", "/employees/"+testID, strings.NewReader(`{"manager":null}`))
	if !mock.patchReq.Manager.Set || mock.patchReq.Manager.Value != nil {
		t.Errorf("manager:null 应为 Set=true, Value=nil: %+v", mock.patchReq.Manager)
	}

	serve(r, "PATCH", "/employees/"+testID, strings.NewReader(`{"salary":10}`))
	if mock.patchReq.Manager.Set {
		t.Error("未提供 manager 时 Set 应为 false")
	}
}

func TestEmployeeHandler_Get_NotFound(t *testing.T) {
	mock := &mockEmployeeService{err: service.ErrEmployeeNotFound}
	w := serve(employeeRouter(mock), "GET", "/employees/"+testID, nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13001 {
		t.Errorf("expected code 13001, got %d", resp.Code)
	}
}

func TestEmployeeHandler_Chain(t *testing.T) {
	mock := &mockEmployeeService{chainResult: &dto.ManagementChainResponse{
		Employee: dto.EmployeeListItem{EmpID: "E1"},
		Chain:    []dto.EmployeeListItem{{EmpID: "E2"}, {EmpID: "E1"}},
		Cycle:    true,
	}}
	w := serve(employeeRouter(mock), "GET", "/employees/"+testID+"/chain", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"cycle":true`) {
		t.Errorf("响应应包含 cycle=true: %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func exportRouter(mock *mockExportService) *gin.Engine {
	h := NewExportHandler(mock, zap.NewNop())
	r := gin.New()
	r.GET("/employees/export", h.ExportEmployees)
	return r
}

func TestExportHandler_CSV(t *testing.T) {
	mock := &mockExportService{body: "emp_id\nE1\n"}
	w := serve(exportRouter(mock), "GET", "/employees/export?status=terminated", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="employees.csv"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.String() != "emp_id\nE1\n" {
		t.Errorf("body = %q", w.Body.String())
	}
	if mock.format != service.ExportFormatCSV || mock.req.Status != "terminated" {
		t.Errorf("格式或过滤参数未传递: %s %+v", mock.format, mock.req)
	}
}

func TestExportHandler_XLSX(t *testing.T) {
	mock := &mockExportService{body: "PK"}
	w := serve(exportRouter(mock), "GET", "/employees/export?format=xlsx", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "employees.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestExportHandler_InvalidFormat(t *testing.T) {
	w := serve(exportRouter(&mockExportService{}), "GET", "/employees/export?format=pdf", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Field != "format" {
		t.Errorf("expected field format, got %q", resp.Field)
	}
}

func TestExportHandler_ErrorBeforeWrite(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportGenerateFail}
	w := serve(exportRouter(mock), "GET", "/employees/export", nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Header().Get("Content-Disposition") != "" {
		t.Error("失败时不应保留下载响应头")
	}
	if resp := parseResponse(w); resp.Code != 16002 {
		t.Errorf("expected code 16002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AnalyticsHandler / HealthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAnalyticsHandler_Summary(t *testing.T) {
	mock := &mockAnalyticsService{result: &dto.AnalyticsSummary{
		TotalEmployees:          3,
		AvgSalary:               1500.5,
		EmployeesByDepartment:   []dto.DepartmentCount{{Name: "Engineering", Count: 3}},
		PerformanceDistribution: dto.RatingDistribution{{Rating: 5, Count: 2}, {Rating: 3, Count: 1}},
	}}
	h := NewAnalyticsHandler(mock)
	r := gin.New()
	r.GET("/analytics/summary", h.Summary)

	w := serve(r, "GET", "/analytics/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"performance_distribution":{"3":1,"5":2}`) {
		t.Errorf("评分分布应按评分升序: %s", w.Body.String())
	}
}

func TestAnalyticsHandler_Error(t *testing.T) {
	h := NewAnalyticsHandler(&mockAnalyticsService{err: errors.New("boom")})
	r := gin.New()
	r.GET("/analytics/summary", h.Summary)

	w := serve(r, "GET", "/analytics/summary", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		name string
		ping PingFunc
		want int
	}{
		{"no ping", nil, http.StatusOK},
		{"db ok", func(context.Context) error { return nil }, http.StatusOK},
		{"db down", func(context.Context) error { return errors.New("refused") }, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(tc.ping)
			r := gin.New()
			r.GET("/health", h.Health)
			if w := serve(r, "GET", "/health", nil); w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}
