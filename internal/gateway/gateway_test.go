package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier-api/pkg/logger"
)

func init() {
	logger.Setup("test")
}

func newTestGateway(handler http.HandlerFunc) (*Gateway, *httptest.Server) {
	srv := httptest.NewServer(handler)
	gw := New(srv.URL, 5*time.Second, func(ctx context.Context) string { return "test-token" })
	return gw, srv
}

func TestGetAllUnwrapsEnvelope(t *testing.T) {
	gw, srv := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success": true, "message": "", "data": [
			{"id": 1, "name": "Studio North", "status": "active"},
			{"id": 2, "client_name": "Harbor Co", "status": "archived"}
		]}`))
	})
	defer srv.Close()

	clients := gw.Clients.GetAll(context.Background())
	require.Len(t, clients, 2)
	assert.Equal(t, "Studio North", clients[0].Name)
	assert.Equal(t, "Harbor Co", clients[1].Name, "legacy client_name is accepted")
	assert.Equal(t, "archived", clients[1].Status)
}

func TestGetAllAcceptsBareArray(t *testing.T) {
	gw, srv := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "7", "name": "Atelier East"}]`))
	})
	defer srv.Close()

	clients := gw.Clients.GetAll(context.Background())
	require.Len(t, clients, 1)
	assert.Equal(t, uint(7), clients[0].ID, "string id is coerced")
	assert.Equal(t, "active", clients[0].Status, "missing status defaults")
}

func TestGetAllFailSafe(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"Server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"Malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": "not an array"}`))
		}},
		{"Envelope failure", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false, "message": "backend down", "data": []}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, srv := newTestGateway(tt.handler)
			defer srv.Close()

			clients := gw.Clients.GetAll(context.Background())
			assert.NotNil(t, clients)
			assert.Empty(t, clients)
		})
	}
}

func TestGetAllFailSafeOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening

	gw := New(srv.URL, time.Second, nil)
	clients := gw.Clients.GetAll(context.Background())
	assert.NotNil(t, clients)
	assert.Empty(t, clients)
}

func TestGetByIDFailsLoud(t *testing.T) {
	gw, srv := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "boom"}`))
	})
	defer srv.Close()

	_, err := gw.Clients.GetByID(context.Background(), 3)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusInternalServerError, fe.Status)
	assert.Contains(t, err.Error(), "boom")
}

func TestGetByIDNotFound(t *testing.T) {
	gw, srv := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	_, err := gw.Clients.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnauthorizedInvokesHook(t *testing.T) {
	gw, srv := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	called := false
	gw.OnUnauthorized = func() { called = true }

	_, err := gw.Clients.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, called)
}

func TestCreateNormalizesResponse(t *testing.T) {
	gw, srv := newTestGateway(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"success": true, "data": {"id": 12, "name": "New Client", "budget": "15,000.50"}}`))
	})
	defer srv.Close()

	created, err := gw.Clients.Create(context.Background(), ClientPayload{Name: "New Client"})
	require.NoError(t, err)
	assert.Equal(t, uint(12), created.ID)
	assert.Equal(t, 15000.50, created.Budget, "thousands separators are tolerated")
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
		wantErr  bool
	}{
		{"Envelope", `{"success": true, "data": {"a": 1}}`, `{"a": 1}`, false},
		{"No envelope", `{"a": 1}`, `{"a": 1}`, false},
		{"Array passthrough", `[1,2]`, `[1,2]`, false},
		{"Declared failure", `{"success": false, "message": "nope", "data": {}}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := unwrap([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(out))
		})
	}
}
