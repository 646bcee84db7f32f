// Package gateway mediates between this service and the studio's legacy REST
// backend. It is the normalization boundary: envelopes are unwrapped,
// snake_case wire records are mapped to the stable shapes in internal/models,
// and loosely-typed fields are coerced before anything reaches a caller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/logger"
)

// ErrNotFound is returned when the backend reports a missing record.
var ErrNotFound = errors.New("record not found")

// FetchError wraps a failed backend call with enough context for callers to
// build a user-facing message.
type FetchError struct {
	Op     string // e.g. "GET /clients/4"
	Status int    // HTTP status, 0 on transport failure
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend %s failed with status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("backend %s failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TokenSource supplies the bearer token to attach to an outgoing request.
// The auth middleware stores the caller's token on the request context and
// the gateway forwards it unchanged.
type TokenSource func(ctx context.Context) string

// Gateway holds the transport client and the typed resource clients.
type Gateway struct {
	baseURL string
	http    *http.Client
	token   TokenSource

	// OnUnauthorized is invoked when the backend answers 401. Forcing a
	// logout is a policy decision left to the wiring in main; the default
	// is log-only.
	OnUnauthorized func()

	Clients  *Resource[ClientDTO, models.Client]
	Projects *Resource[ProjectDTO, models.Project]
	Invoices *Resource[InvoiceDTO, models.Invoice]
	Incomes  *Resource[IncomeDTO, models.Income]
	Expenses *Resource[ExpenseDTO, models.Expense]
}

// New creates a gateway for the given backend base URL.
func New(baseURL string, timeout time.Duration, token TokenSource) *Gateway {
	gw := &Gateway{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}
	gw.Clients = newResource(gw, "clients", mapClient)
	gw.Projects = newResource(gw, "projects", mapProject)
	gw.Invoices = newResource(gw, "invoices", mapInvoice)
	gw.Incomes = newResource(gw, "income", mapIncome)
	gw.Expenses = newResource(gw, "expenses", mapExpense)
	return gw
}

// envelope is the optional wrapper the backend may use around response
// bodies.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// unwrap strips the {success, message, data} envelope when present. Bodies
// without a data key pass through unchanged.
func unwrap(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		if env.Success != nil && !*env.Success {
			return nil, fmt.Errorf("backend error: %s", env.Message)
		}
		return env.Data, nil
	}
	return body, nil
}

// do performs one backend call and returns the unwrapped payload.
func (g *Gateway) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	op := method + " /" + path

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, &FetchError{Op: op, Err: fmt.Errorf("encode payload: %w", err)}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+"/"+path, body)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != nil {
		if tok := g.token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, Status: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		g.handleUnauthorized(op)
		return nil, &FetchError{Op: op, Status: resp.StatusCode, Err: errors.New("unauthorized")}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{Op: op, Status: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode >= 400:
		return nil, &FetchError{Op: op, Status: resp.StatusCode, Err: backendMessage(raw)}
	}

	if len(raw) == 0 {
		return nil, nil
	}

	data, err := unwrap(raw)
	if err != nil {
		return nil, &FetchError{Op: op, Status: resp.StatusCode, Err: err}
	}
	return data, nil
}

func (g *Gateway) handleUnauthorized(op string) {
	logger.Warn("Backend rejected credentials", "op", op)
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "gateway",
		Message:  "401 from backend on " + op,
		Level:    sentry.LevelWarning,
	})
	if g.OnUnauthorized != nil {
		g.OnUnauthorized()
	}
}

// backendMessage extracts the error message from an envelope body, falling
// back to the raw body.
func backendMessage(raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return errors.New(env.Message)
	}
	return fmt.Errorf("unexpected response: %s", truncate(raw, 200))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}
