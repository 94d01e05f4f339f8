package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jalvarez-dev/employee-gateway/api/responses"
	"github.com/jalvarez-dev/employee-gateway/api/validators"
	"github.com/jalvarez-dev/employee-gateway/internal/employees"
	pkgerrors "github.com/jalvarez-dev/employee-gateway/pkg/errors"
	"github.com/jalvarez-dev/employee-gateway/pkg/logger"
	"github.com/jalvarez-dev/employee-gateway/pkg/upstream"
)

type employeeCreateRequest struct {
	Name   string `json:"name" validate:"required"`
	Salary *int   `json:"salary" validate:"required,gt=0"`
	Age    *int   `json:"age" validate:"required,min=16,max=75"`
	Title  string `json:"title" validate:"required"`
}

func (r employeeCreateRequest) toInput() (upstream.CreateEmployeeInput, error) {
	name := strings.TrimSpace(r.Name)
	title := strings.TrimSpace(r.Title)
	if name == "" {
		return upstream.CreateEmployeeInput{}, pkgerrors.New(pkgerrors.CodeValidation, "name must not be blank")
	}
	if title == "" {
		return upstream.CreateEmployeeInput{}, pkgerrors.New(pkgerrors.CodeValidation, "title must not be blank")
	}

	return upstream.CreateEmployeeInput{
		Name:   name,
		Salary: *r.Salary,
		Age:    *r.Age,
		Title:  title,
	}, nil
}

func employeeIDFromPath(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "employeeId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid employee id")
	}
	return id, nil
}

// EmployeeList handles fetching every employee from the provider.
func EmployeeList(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "employee service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, employeeResponsesFrom(list))
	}
}

// EmployeeSearch handles the case-insensitive name search.
func EmployeeSearch(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "employee service unavailable"))
			return
		}

		query := chi.URLParam(r, "searchString")
		matches, err := svc.SearchByName(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, employeeResponsesFrom(matches))
	}
}

// EmployeeByID handles fetching a single employee.
func EmployeeByID(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "employee service unavailable"))
			return
		}

		id, err := employeeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, employeeResponseFrom(employee))
	}
}

// EmployeeHighestSalary handles the maximum-salary aggregate.
func EmployeeHighestSalary(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "employee service unavailable"))
			return
		}

		highest, err := svc.HighestSalary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, highest)
	}
}

// EmployeeTopEarners handles the ten-highest-salaries name projection.
func EmployeeTopEarners(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "employee service unavailable"))
			return
		}

		names, err := svc.TopEarnerNames(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, names)
	}
}

// EmployeeCreate handles forwarding a creation to the provider.
func EmployeeCreate(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "employee service unavailable"))
			return
		}

		var payload employeeCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, employeeResponseFrom(created))
	}
}

// EmployeeDelete handles deletion by id and returns the deleted name.
func EmployeeDelete(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "employee service unavailable"))
			return
		}

		id, err := employeeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		name, err := svc.DeleteByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, name)
	}
}

type employeeResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Salary *int      `json:"salary"`
	Age    *int      `json:"age"`
	Title  string    `json:"title"`
	Email  string    `json:"email"`
}

func employeeResponseFrom(e upstream.Employee) employeeResponse {
	return employeeResponse{
		ID:     e.ID,
		Name:   e.Name,
		Salary: e.Salary,
		Age:    e.Age,
		Title:  e.Title,
		Email:  e.Email,
	}
}

func employeeResponsesFrom(list []upstream.Employee) []employeeResponse {
	out := make([]employeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, employeeResponseFrom(e))
	}
	return out
}
