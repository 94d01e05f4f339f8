// Package employees exposes the gateway's employee operations: retried
// pass-through calls against the provider plus deterministic reads derived
// from a single fetch-all.
package employees

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jalvarez-dev/employee-gateway/pkg/upstream"
)

// topEarnersLimit caps the top-earner projection.
const topEarnersLimit = 10

type upstreamClient interface {
	ListEmployees(ctx context.Context) ([]upstream.Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (upstream.Employee, error)
	CreateEmployee(ctx context.Context, input upstream.CreateEmployeeInput) (upstream.Employee, error)
	DeleteEmployee(ctx context.Context, name string) error
}

// Service exposes list, search, fetch, aggregate, create, and delete
// semantics over the employee provider.
type Service interface {
	List(ctx context.Context) ([]upstream.Employee, error)
	SearchByName(ctx context.Context, query string) ([]upstream.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (upstream.Employee, error)
	HighestSalary(ctx context.Context) (int, error)
	TopEarnerNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, input upstream.CreateEmployeeInput) (upstream.Employee, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (string, error)
}

type service struct {
	client upstreamClient
}

// NewService builds the employee service on top of the provider client.
func NewService(client upstreamClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("upstream client required")
	}
	return &service{client: client}, nil
}

func (s *service) List(ctx context.Context) ([]upstream.Employee, error) {
	return s.client.ListEmployees(ctx)
}

// SearchByName matches the query case-insensitively against each employee's
// name. The result keeps the provider's ordering; the search itself is never
// retried beyond the fetch it derives from.
func (s *service) SearchByName(ctx context.Context, query string) ([]upstream.Employee, error) {
	all, err := s.client.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return filterByName(all, query), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (upstream.Employee, error) {
	return s.client.GetEmployee(ctx, id)
}

// HighestSalary returns 0 for an empty list or all-absent salaries; that is a
// valid aggregate, not a failure.
func (s *service) HighestSalary(ctx context.Context) (int, error) {
	all, err := s.client.ListEmployees(ctx)
	if err != nil {
		return 0, err
	}
	return highestSalary(all), nil
}

func (s *service) TopEarnerNames(ctx context.Context) ([]string, error) {
	all, err := s.client.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return topEarnerNames(all, topEarnersLimit), nil
}

func (s *service) Create(ctx context.Context, input upstream.CreateEmployeeInput) (upstream.Employee, error) {
	return s.client.CreateEmployee(ctx, input)
}

// DeleteByID resolves the employee's name first because the provider only
// deletes by name. The resolving GET and the DELETE are each retried calls.
func (s *service) DeleteByID(ctx context.Context, id uuid.UUID) (string, error) {
	employee, err := s.client.GetEmployee(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.client.DeleteEmployee(ctx, employee.Name); err != nil {
		return "", err
	}
	return employee.Name, nil
}
