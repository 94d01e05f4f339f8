// Package upstream talks to the employee provider: it issues the HTTP calls,
// unwraps the provider's {data,status,error} envelope, and classifies every
// attempt as success, retryable, or terminal for the retry executor.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jalvarez-dev/employee-gateway/pkg/config"
	pkgerrors "github.com/jalvarez-dev/employee-gateway/pkg/errors"
	"github.com/jalvarez-dev/employee-gateway/pkg/logger"
	"github.com/jalvarez-dev/employee-gateway/pkg/metrics"
	"github.com/jalvarez-dev/employee-gateway/pkg/retry"
)

const (
	opListEmployees  = "list_employees"
	opGetEmployee    = "get_employee"
	opCreateEmployee = "create_employee"
	opDeleteEmployee = "delete_employee"
)

var (
	errBaseURLRequired  = errors.New("upstream base URL is required")
	errExecutorRequired = errors.New("upstream retry executor is required")
	errLoggerRequired   = errors.New("upstream logger is required")
)

// Client wraps the employee provider with retries, envelope unwrapping, and
// centralized logging and error mapping.
type Client struct {
	baseURL string
	httpc   *http.Client
	exec    *retry.Executor
	logg    *logger.Logger
}

// NewClient validates the configuration and builds the provider client.
func NewClient(cfg config.UpstreamConfig, exec *retry.Executor, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	if exec == nil {
		return nil, errExecutorRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	if parsed, err := url.Parse(baseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("upstream base URL %q must be absolute", cfg.BaseURL)
	}

	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: cfg.HTTPTimeout},
		exec:    exec,
		logg:    logg,
	}, nil
}

// ListEmployees fetches every employee. An envelope without data unwraps to an
// empty list, not a failure.
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	return retry.Do(ctx, c.exec, opListEmployees, func(ctx context.Context) retry.Outcome[[]Employee] {
		env, err := attempt[[]employeeRecord](ctx, c, opListEmployees, http.MethodGet, c.baseURL, nil)
		if err != nil {
			return classify[[]Employee](c, opListEmployees, err, nil)
		}
		c.count(opListEmployees, metrics.ResultSuccess)
		if env.Data == nil {
			c.log(ctx, "response", opListEmployees, map[string]any{"count": 0, "empty_payload": true})
			return retry.Success([]Employee{})
		}

		records := *env.Data
		employees := make([]Employee, 0, len(records))
		for _, rec := range records {
			employees = append(employees, rec.toEmployee())
		}
		c.log(ctx, "response", opListEmployees, map[string]any{"count": len(employees)})
		return retry.Success(employees)
	})
}

// GetEmployee fetches a single employee. A 404 or an envelope without data is
// a terminal not-found.
func (c *Client) GetEmployee(ctx context.Context, id uuid.UUID) (Employee, error) {
	notFound := pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("employee %s not found", id))
	return retry.Do(ctx, c.exec, opGetEmployee, func(ctx context.Context) retry.Outcome[Employee] {
		env, err := attempt[employeeRecord](ctx, c, opGetEmployee, http.MethodGet, c.baseURL+"/"+id.String(), nil)
		if err != nil {
			return classify[Employee](c, opGetEmployee, err, notFound)
		}
		if env.Data == nil {
			c.count(opGetEmployee, metrics.ResultTerminal)
			return retry.Terminal[Employee](notFound)
		}
		c.count(opGetEmployee, metrics.ResultSuccess)
		employee := env.Data.toEmployee()
		c.log(ctx, "response", opGetEmployee, map[string]any{"employee_id": employee.ID.String()})
		return retry.Success(employee)
	})
}

// CreateEmployee forwards a creation payload. An envelope without data means
// the provider acknowledged the call but refused it.
func (c *Client) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (Employee, error) {
	return retry.Do(ctx, c.exec, opCreateEmployee, func(ctx context.Context) retry.Outcome[Employee] {
		env, err := attempt[employeeRecord](ctx, c, opCreateEmployee, http.MethodPost, c.baseURL, input)
		if err != nil {
			return classify[Employee](c, opCreateEmployee, err, nil)
		}
		if env.Data == nil {
			c.count(opCreateEmployee, metrics.ResultTerminal)
			return retry.Terminal[Employee](pkgerrors.New(
				pkgerrors.CodeOperationFailed,
				fmt.Sprintf("provider returned no employee for create of %q", input.Name),
			))
		}
		c.count(opCreateEmployee, metrics.ResultSuccess)
		employee := env.Data.toEmployee()
		c.log(ctx, "response", opCreateEmployee, map[string]any{"employee_id": employee.ID.String()})
		return retry.Success(employee)
	})
}

// DeleteEmployee removes an employee by name, the only addressing mode the
// provider supports for deletion. A false or absent confirmation flag is a
// terminal operation failure.
func (c *Client) DeleteEmployee(ctx context.Context, name string) error {
	_, err := retry.Do(ctx, c.exec, opDeleteEmployee, func(ctx context.Context) retry.Outcome[bool] {
		env, err := attempt[bool](ctx, c, opDeleteEmployee, http.MethodDelete, c.baseURL, deleteRequest{Name: name})
		if err != nil {
			return classify[bool](c, opDeleteEmployee, err, nil)
		}
		if env.Data == nil || !*env.Data {
			c.count(opDeleteEmployee, metrics.ResultTerminal)
			return retry.Terminal[bool](pkgerrors.New(
				pkgerrors.CodeOperationFailed,
				fmt.Sprintf("provider did not confirm deletion of %q", name),
			))
		}
		c.count(opDeleteEmployee, metrics.ResultSuccess)
		c.log(ctx, "response", opDeleteEmployee, map[string]any{"deleted": true})
		return retry.Success(true)
	})
	return err
}

// attempt performs one HTTP call and decodes the envelope. Errors come back
// raw: a *StatusError for non-2xx responses, the transport error otherwise.
func attempt[T any](ctx context.Context, c *Client, op, method, target string, body any) (Envelope[T], error) {
	var env Envelope[T]

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return env, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode upstream request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return env, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log(ctx, "request", op, map[string]any{"method": method})

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.UpstreamLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		return env, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return env, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return env, fmt.Errorf("decode upstream response: %w", err)
	}
	return env, nil
}

// classify maps the raw error of one attempt into a retry outcome: 429 and
// 5xx are retryable, other statuses terminal, and anything without an HTTP
// status is a transport failure expected to resolve on retry. on404 overrides
// the terminal error used when an addressed entity is missing.
func classify[T any](c *Client, op string, err error, on404 error) retry.Outcome[T] {
	var typed *pkgerrors.Error
	if errors.As(err, &typed) && typed.Code() == pkgerrors.CodeInternal {
		c.count(op, metrics.ResultTerminal)
		return retry.Terminal[T](err)
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= http.StatusInternalServerError {
			c.count(op, metrics.ResultRetryable)
			return retry.Retryable[T](statusErr)
		}

		c.count(op, metrics.ResultTerminal)
		if statusErr.Code == http.StatusNotFound && on404 != nil {
			return retry.Terminal[T](on404)
		}
		return retry.Terminal[T](pkgerrors.Wrap(
			codeForStatus(statusErr.Code),
			statusErr,
			fmt.Sprintf("provider rejected %s", op),
		))
	}

	c.count(op, metrics.ResultRetryable)
	return retry.Retryable[T](err)
}

func codeForStatus(status int) pkgerrors.Code {
	switch {
	case status == http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return pkgerrors.CodeValidation
	default:
		return pkgerrors.CodeUpstream
	}
}

func (c *Client) count(op, result string) {
	metrics.UpstreamRequests.WithLabelValues(op, result).Inc()
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logg == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	c.logg.Debug(c.logg.WithFields(ctx, logFields), fmt.Sprintf("upstream %s", phase))
}
