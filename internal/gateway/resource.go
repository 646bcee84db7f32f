package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/atelierhq/atelier-api/pkg/logger"
)

// Resource is the uniform client for one backend collection. D is the loose
// wire record, M the normalized model it maps to.
//
// Failure semantics follow the screen they serve: GetAll never returns an
// error (a list rendering "no data" is acceptable, a crashed dashboard is
// not), while GetByID and the mutations fail loud so callers can surface the
// problem instead of silently losing a write.
type Resource[D any, M any] struct {
	gw    *Gateway
	path  string
	mapFn func(*D) M
}

func newResource[D any, M any](gw *Gateway, path string, mapFn func(*D) M) *Resource[D, M] {
	return &Resource[D, M]{gw: gw, path: path, mapFn: mapFn}
}

// GetAll fetches the whole collection. On any failure it logs, reports and
// returns an empty slice; it never returns nil.
func (r *Resource[D, M]) GetAll(ctx context.Context) []M {
	data, err := r.gw.do(ctx, http.MethodGet, r.path, nil)
	if err != nil {
		logger.CaptureError("Failed to list "+r.path, err)
		return []M{}
	}

	var dtos []D
	if err := json.Unmarshal(data, &dtos); err != nil {
		logger.CaptureError("Failed to decode "+r.path+" list", err)
		return []M{}
	}

	out := make([]M, 0, len(dtos))
	for i := range dtos {
		out = append(out, r.mapFn(&dtos[i]))
	}
	return out
}

// GetByID fetches a single record.
func (r *Resource[D, M]) GetByID(ctx context.Context, id uint) (M, error) {
	var zero M
	data, err := r.gw.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.path, id), nil)
	if err != nil {
		return zero, err
	}
	return r.decodeOne(data)
}

// Create posts a payload and returns the created record, normalized through
// the same mapper as the read paths.
func (r *Resource[D, M]) Create(ctx context.Context, payload any) (M, error) {
	var zero M
	data, err := r.gw.do(ctx, http.MethodPost, r.path, payload)
	if err != nil {
		return zero, err
	}
	return r.decodeOne(data)
}

// Update puts a payload and returns the updated record.
func (r *Resource[D, M]) Update(ctx context.Context, id uint, payload any) (M, error) {
	var zero M
	data, err := r.gw.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), payload)
	if err != nil {
		return zero, err
	}
	return r.decodeOne(data)
}

// Delete removes a record. Callers must catch the error and surface it.
func (r *Resource[D, M]) Delete(ctx context.Context, id uint) error {
	_, err := r.gw.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil)
	return err
}

func (r *Resource[D, M]) decodeOne(data json.RawMessage) (M, error) {
	var zero M
	var dto D
	if err := json.Unmarshal(data, &dto); err != nil {
		return zero, &FetchError{Op: "decode " + r.path, Err: err}
	}
	return r.mapFn(&dto), nil
}
