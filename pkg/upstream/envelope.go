package upstream

import (
	"fmt"

	"github.com/google/uuid"
)

// Envelope is the provider's uniform response wrapper. Data is absent on
// failure-shaped responses.
type Envelope[T any] struct {
	Data   *T     `json:"data"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Employee is the provider's entity reshaped with the field names this
// gateway serves. The gateway never interprets these fields beyond unwrapping
// the envelope; nullable provider fields stay pointers.
type Employee struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Salary *int      `json:"salary"`
	Age    *int      `json:"age"`
	Title  string    `json:"title"`
	Email  string    `json:"email"`
}

// CreateEmployeeInput is the creation payload forwarded to the provider.
type CreateEmployeeInput struct {
	Name   string `json:"name"`
	Salary int    `json:"salary"`
	Age    int    `json:"age"`
	Title  string `json:"title"`
}

// employeeRecord is the provider's wire shape with employee_* field names.
type employeeRecord struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"employee_name"`
	Salary *int      `json:"employee_salary"`
	Age    *int      `json:"employee_age"`
	Title  string    `json:"employee_title"`
	Email  string    `json:"employee_email"`
}

func (r employeeRecord) toEmployee() Employee {
	return Employee{
		ID:     r.ID,
		Name:   r.Name,
		Salary: r.Salary,
		Age:    r.Age,
		Title:  r.Title,
		Email:  r.Email,
	}
}

// deleteRequest addresses a deletion by name, as the provider requires.
type deleteRequest struct {
	Name string `json:"name"`
}

// StatusError reports a non-2xx response from the provider.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.Code)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Body)
}

// HTTPStatus exposes the status for error dumps.
func (e *StatusError) HTTPStatus() int {
	return e.Code
}
