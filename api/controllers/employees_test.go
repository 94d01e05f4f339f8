package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/jalvarez-dev/employee-gateway/pkg/errors"
	"github.com/jalvarez-dev/employee-gateway/pkg/logger"
	"github.com/jalvarez-dev/employee-gateway/pkg/upstream"
)

type testEmployeesService struct {
	listFn          func(ctx context.Context) ([]upstream.Employee, error)
	searchFn        func(ctx context.Context, query string) ([]upstream.Employee, error)
	getFn           func(ctx context.Context, id uuid.UUID) (upstream.Employee, error)
	highestSalaryFn func(ctx context.Context) (int, error)
	topEarnersFn    func(ctx context.Context) ([]string, error)
	createFn        func(ctx context.Context, input upstream.CreateEmployeeInput) (upstream.Employee, error)
	deleteFn        func(ctx context.Context, id uuid.UUID) (string, error)
}

func (s *testEmployeesService) List(ctx context.Context) ([]upstream.Employee, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *testEmployeesService) SearchByName(ctx context.Context, query string) ([]upstream.Employee, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query)
	}
	return nil, nil
}

func (s *testEmployeesService) Get(ctx context.Context, id uuid.UUID) (upstream.Employee, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return upstream.Employee{}, nil
}

func (s *testEmployeesService) HighestSalary(ctx context.Context) (int, error) {
	if s.highestSalaryFn != nil {
		return s.highestSalaryFn(ctx)
	}
	return 0, nil
}

func (s *testEmployeesService) TopEarnerNames(ctx context.Context) ([]string, error) {
	if s.topEarnersFn != nil {
		return s.topEarnersFn(ctx)
	}
	return nil, nil
}

func (s *testEmployeesService) Create(ctx context.Context, input upstream.CreateEmployeeInput) (upstream.Employee, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return upstream.Employee{}, nil
}

func (s *testEmployeesService) DeleteByID(ctx context.Context, id uuid.UUID) (string, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return "", nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func intPtr(v int) *int {
	return &v
}

func TestEmployeeListSuccess(t *testing.T) {
	svc := &testEmployeesService{
		listFn: func(ctx context.Context) ([]upstream.Employee, error) {
			return []upstream.Employee{
				{ID: uuid.New(), Name: "John Doe", Salary: intPtr(50000)},
				{ID: uuid.New(), Name: "Jane Smith", Salary: intPtr(80000)},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	resp := httptest.NewRecorder()
	EmployeeList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []employeeResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 employees got %d", len(envelope.Data))
	}
	if envelope.Data[0].Name != "John Doe" {
		t.Fatalf("unexpected first employee %q", envelope.Data[0].Name)
	}
}

func TestEmployeeListEmptyIsArray(t *testing.T) {
	svc := &testEmployeesService{
		listFn: func(ctx context.Context) ([]upstream.Employee, error) {
			return []upstream.Employee{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	resp := httptest.NewRecorder()
	EmployeeList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty array payload, got %s", resp.Body.String())
	}
}

func TestEmployeeListUpstreamExhausted(t *testing.T) {
	svc := &testEmployeesService{
		listFn: func(ctx context.Context) ([]upstream.Employee, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUpstream, "list_employees failed after 3 attempts")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	resp := httptest.NewRecorder()
	EmployeeList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestEmployeeSearchPassesQuery(t *testing.T) {
	var gotQuery string
	svc := &testEmployeesService{
		searchFn: func(ctx context.Context, query string) ([]upstream.Employee, error) {
			gotQuery = query
			return []upstream.Employee{{Name: "John Doe"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/search/john", nil)
	req = addRouteParam(req, "searchString", "john")
	resp := httptest.NewRecorder()
	EmployeeSearch(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if gotQuery != "john" {
		t.Fatalf("expected query john got %q", gotQuery)
	}
}

func TestEmployeeByIDSuccess(t *testing.T) {
	id := uuid.New()
	svc := &testEmployeesService{
		getFn: func(ctx context.Context, got uuid.UUID) (upstream.Employee, error) {
			if got != id {
				t.Fatalf("unexpected id %s", got)
			}
			return upstream.Employee{ID: id, Name: "John Doe", Salary: intPtr(50000)}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+id.String(), nil)
	req = addRouteParam(req, "employeeId", id.String())
	resp := httptest.NewRecorder()
	EmployeeByID(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data employeeResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Name != "John Doe" {
		t.Fatalf("unexpected employee %q", envelope.Data.Name)
	}
}

func TestEmployeeByIDInvalidID(t *testing.T) {
	called := false
	svc := &testEmployeesService{
		getFn: func(ctx context.Context, id uuid.UUID) (upstream.Employee, error) {
			called = true
			return upstream.Employee{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/not-a-uuid", nil)
	req = addRouteParam(req, "employeeId", "not-a-uuid")
	resp := httptest.NewRecorder()
	EmployeeByID(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if called {
		t.Fatal("service must not be called for malformed ids")
	}
}

func TestEmployeeByIDNotFound(t *testing.T) {
	svc := &testEmployeesService{
		getFn: func(ctx context.Context, id uuid.UUID) (upstream.Employee, error) {
			return upstream.Employee{}, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		},
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+id, nil)
	req = addRouteParam(req, "employeeId", id)
	resp := httptest.NewRecorder()
	EmployeeByID(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestEmployeeHighestSalary(t *testing.T) {
	svc := &testEmployeesService{
		highestSalaryFn: func(ctx context.Context) (int, error) {
			return 80000, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/highest-salary", nil)
	resp := httptest.NewRecorder()
	EmployeeHighestSalary(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data int `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data != 80000 {
		t.Fatalf("expected 80000 got %d", envelope.Data)
	}
}

func TestEmployeeTopEarners(t *testing.T) {
	svc := &testEmployeesService{
		topEarnersFn: func(ctx context.Context) ([]string, error) {
			return []string{"Jane Smith", "John Doe"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/top-earners", nil)
	resp := httptest.NewRecorder()
	EmployeeTopEarners(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[0] != "Jane Smith" {
		t.Fatalf("unexpected names %v", envelope.Data)
	}
}

func TestEmployeeCreateSuccess(t *testing.T) {
	var gotInput upstream.CreateEmployeeInput
	svc := &testEmployeesService{
		createFn: func(ctx context.Context, input upstream.CreateEmployeeInput) (upstream.Employee, error) {
			gotInput = input
			return upstream.Employee{ID: uuid.New(), Name: input.Name, Salary: &input.Salary}, nil
		},
	}

	body := `{"name":"John Doe","salary":50000,"age":30,"title":"Engineer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
	resp := httptest.NewRecorder()
	EmployeeCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if gotInput.Name != "John Doe" || gotInput.Salary != 50000 || gotInput.Age != 30 || gotInput.Title != "Engineer" {
		t.Fatalf("unexpected input %+v", gotInput)
	}
}

func TestEmployeeCreateValidation(t *testing.T) {
	cases := map[string]string{
		"missing name":   `{"salary":50000,"age":30,"title":"Engineer"}`,
		"zero salary":    `{"name":"John","salary":0,"age":30,"title":"Engineer"}`,
		"negative":       `{"name":"John","salary":-1,"age":30,"title":"Engineer"}`,
		"age too low":    `{"name":"John","salary":50000,"age":15,"title":"Engineer"}`,
		"age too high":   `{"name":"John","salary":50000,"age":76,"title":"Engineer"}`,
		"missing title":  `{"name":"John","salary":50000,"age":30}`,
		"unknown field":  `{"name":"John","salary":50000,"age":30,"title":"Engineer","email":"x@y.z"}`,
		"malformed body": `{"name":`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			called := false
			svc := &testEmployeesService{
				createFn: func(ctx context.Context, input upstream.CreateEmployeeInput) (upstream.Employee, error) {
					called = true
					return upstream.Employee{}, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
			resp := httptest.NewRecorder()
			EmployeeCreate(svc, testLogger())(resp, req)

			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
			}
			if called {
				t.Fatal("service must not be called for invalid payloads")
			}
		})
	}
}

func TestEmployeeCreateUpstreamRefused(t *testing.T) {
	svc := &testEmployeesService{
		createFn: func(ctx context.Context, input upstream.CreateEmployeeInput) (upstream.Employee, error) {
			return upstream.Employee{}, pkgerrors.New(pkgerrors.CodeOperationFailed, "creation failed upstream")
		},
	}

	body := `{"name":"John Doe","salary":50000,"age":30,"title":"Engineer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
	resp := httptest.NewRecorder()
	EmployeeCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d", resp.Code)
	}
}

func TestEmployeeDeleteReturnsName(t *testing.T) {
	id := uuid.New()
	svc := &testEmployeesService{
		deleteFn: func(ctx context.Context, got uuid.UUID) (string, error) {
			if got != id {
				t.Fatalf("unexpected id %s", got)
			}
			return "John Doe", nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/employees/"+id.String(), nil)
	req = addRouteParam(req, "employeeId", id.String())
	resp := httptest.NewRecorder()
	EmployeeDelete(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data != "John Doe" {
		t.Fatalf("expected deleted name, got %q", envelope.Data)
	}
}

func TestEmployeeDeleteMissingEmployee(t *testing.T) {
	svc := &testEmployeesService{
		deleteFn: func(ctx context.Context, id uuid.UUID) (string, error) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		},
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/employees/"+id, nil)
	req = addRouteParam(req, "employeeId", id)
	resp := httptest.NewRecorder()
	EmployeeDelete(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
