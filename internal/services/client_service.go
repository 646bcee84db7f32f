package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/atelierhq/atelier-api/internal/gateway"
	"github.com/atelierhq/atelier-api/internal/listview"
	"github.com/atelierhq/atelier-api/internal/models"
)

// ClientService exposes client operations over the gateway.
type ClientService struct {
	gw *gateway.Gateway
}

// ClientForm carries the UI's field names for create/update. Field naming
// is translated to the backend's convention when the payload is built.
type ClientForm struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Budget  float64 `json:"budget"`
	Status  string  `json:"status"`
	Address string  `json:"address"`
	Notes   string  `json:"notes"`
}

// ClientDetail is a client plus the related records its detail view shows.
type ClientDetail struct {
	Client   models.Client    `json:"client"`
	Projects []models.Project `json:"projects"`
	Invoices []models.Invoice `json:"invoices"`
}

func NewClientService(gw *gateway.Gateway) *ClientService {
	return &ClientService{gw: gw}
}

// clientFields defines how list queries read a client row.
func clientFields() listview.Fields[models.Client] {
	return listview.Fields[models.Client]{
		Search: []func(models.Client) string{
			func(c models.Client) string { return c.Name },
			func(c models.Client) string { return c.Email },
			func(c models.Client) string { return c.Phone },
		},
		Status: func(c models.Client) string { return c.Status },
		Sort: map[string]func(models.Client) any{
			"name":          func(c models.Client) any { return c.Name },
			"email":         func(c models.Client) any { return c.Email },
			"budget":        func(c models.Client) any { return c.Budget },
			"status":        func(c models.Client) any { return c.Status },
			"project_count": func(c models.Client) any { return c.ProjectCount },
		},
	}
}

// List loads all clients and applies the UI's search/filter/sort. Never
// fails; a backend outage yields an empty list.
func (s *ClientService) List(ctx context.Context, q listview.Query) []models.Client {
	return listview.Apply(s.gw.Clients.GetAll(ctx), q, clientFields())
}

// Get fetches one client by id.
func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.gw.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &client, nil
}

// Detail fetches a client together with its projects and invoices. The
// related collections load in parallel and are fail-safe, so a partial
// backend outage still renders the client itself.
func (s *ClientService) Detail(ctx context.Context, id uint) (*ClientDetail, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ClientDetail{Client: *client}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, p := range s.gw.Projects.GetAll(ctx) {
			if p.ClientID == id {
				detail.Projects = append(detail.Projects, p)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for _, inv := range s.gw.Invoices.GetAll(ctx) {
			if inv.ClientID == id {
				detail.Invoices = append(detail.Invoices, inv)
			}
		}
	}()
	wg.Wait()

	return detail, nil
}

// Create validates the form and creates the client.
func (s *ClientService) Create(ctx context.Context, form *ClientForm) (*models.Client, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, ErrInvalidPayload
	}
	created, err := s.gw.Clients.Create(ctx, form.payload())
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update validates the form and updates the client.
func (s *ClientService) Update(ctx context.Context, id uint, form *ClientForm) (*models.Client, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, ErrInvalidPayload
	}
	updated, err := s.gw.Clients.Update(ctx, id, form.payload())
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &updated, nil
}

// Delete removes the client. Callers surface the error to the user.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	return mapGatewayErr(s.gw.Clients.Delete(ctx, id))
}

func (f *ClientForm) payload() gateway.ClientPayload {
	return gateway.ClientPayload{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Budget:  f.Budget,
		Status:  f.Status,
		Address: f.Address,
		Notes:   f.Notes,
	}
}

// mapGatewayErr translates gateway sentinels into service sentinels.
func mapGatewayErr(err error) error {
	if errors.Is(err, gateway.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
