package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier-api/internal/listview"
)

func TestClientDetailAggregatesRelations(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/clients/2":
			w.Write([]byte(`{"success": true, "data": {"id": 2, "name": "Harbor Co", "status": "active"}}`))
		case "/projects":
			w.Write([]byte(`[
				{"id": 1, "name": "Pavilion", "client_id": 2},
				{"id": 2, "name": "Loft", "client_id": 9}
			]`))
		case "/invoices":
			w.Write([]byte(`[
				{"id": 7, "invoice_number": "INV-7", "client_id": 2, "status": "sent"},
				{"id": 8, "invoice_number": "INV-8", "client_id": 3, "status": "sent"}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	svc := NewClientService(newTestGateway(t, handler))

	detail, err := svc.Detail(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "Harbor Co", detail.Client.Name)
	require.Len(t, detail.Projects, 1)
	assert.Equal(t, "Pavilion", detail.Projects[0].Name)
	require.Len(t, detail.Invoices, 1)
	assert.Equal(t, uint(7), detail.Invoices[0].ID)
}

func TestClientDetailSurvivesRelationOutage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/clients/2" {
			w.Write([]byte(`{"success": true, "data": {"id": 2, "name": "Harbor Co"}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc := NewClientService(newTestGateway(t, handler))

	detail, err := svc.Detail(context.Background(), 2)
	require.NoError(t, err, "relation outages do not fail the detail view")
	assert.Equal(t, "Harbor Co", detail.Client.Name)
	assert.Empty(t, detail.Projects)
	assert.Empty(t, detail.Invoices)
}

func TestClientDetailMissingClientFailsLoud(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	svc := NewClientService(newTestGateway(t, handler))

	_, err := svc.Detail(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientCreateValidation(t *testing.T) {
	svc := NewClientService(newTestGateway(t, http.NotFoundHandler()))

	_, err := svc.Create(context.Background(), &ClientForm{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestClientListAppliesQuery(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "name": "Beta Studio", "status": "active", "budget": 100},
			{"id": 2, "name": "alpha workshop", "status": "active", "budget": 300},
			{"id": 3, "name": "Gamma", "status": "archived", "budget": 200}
		]`))
	})
	svc := NewClientService(newTestGateway(t, handler))

	got := svc.List(context.Background(), listview.Query{
		Statuses: []string{"active"},
		SortKey:  "name",
		SortDir:  listview.SortAsc,
	})
	require.Len(t, got, 2)
	assert.Equal(t, "alpha workshop", got[0].Name, "sorting ignores case")
	assert.Equal(t, "Beta Studio", got[1].Name)
}
