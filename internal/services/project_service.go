package services

import (
	"context"
	"strings"
	"sync"

	"github.com/atelierhq/atelier-api/internal/gateway"
	"github.com/atelierhq/atelier-api/internal/listview"
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/dates"
)

// ProjectService exposes project operations over the gateway.
type ProjectService struct {
	gw *gateway.Gateway
}

// ProjectForm carries the UI's field names. Dates arrive in ISO input form
// and are converted to the backend's wire form.
type ProjectForm struct {
	Name            string  `json:"name" binding:"required"`
	ClientID        uint    `json:"clientId" binding:"required"`
	Status          string  `json:"status"`
	StartDate       string  `json:"startDate"`
	ExpectedEndDate string  `json:"expectedEndDate"`
	ProjectValue    float64 `json:"projectValue"`
	Completion      float64 `json:"completion"`
	Description     string  `json:"description"`
	Location        string  `json:"location"`
}

// ProjectDetail is a project plus the related records its detail view shows.
type ProjectDetail struct {
	Project  models.Project   `json:"project"`
	Invoices []models.Invoice `json:"invoices"`
	Expenses []models.Expense `json:"expenses"`
}

func NewProjectService(gw *gateway.Gateway) *ProjectService {
	return &ProjectService{gw: gw}
}

func projectFields() listview.Fields[models.Project] {
	return listview.Fields[models.Project]{
		Search: []func(models.Project) string{
			func(p models.Project) string { return p.Name },
			func(p models.Project) string { return p.ClientName },
			func(p models.Project) string { return p.Location },
		},
		Status: func(p models.Project) string { return p.Status },
		Date:   func(p models.Project) string { return p.StartDate },
		Sort: map[string]func(models.Project) any{
			"name":       func(p models.Project) any { return p.Name },
			"client":     func(p models.Project) any { return p.ClientName },
			"status":     func(p models.Project) any { return p.Status },
			"value":      func(p models.Project) any { return p.ProjectValue },
			"completion": func(p models.Project) any { return p.Completion },
			"start_date": func(p models.Project) any { return listview.DateString(p.StartDate) },
		},
	}
}

// List loads all projects and applies the UI's search/filter/sort.
func (s *ProjectService) List(ctx context.Context, q listview.Query) []models.Project {
	return listview.Apply(s.gw.Projects.GetAll(ctx), q, projectFields())
}

// Get fetches one project by id.
func (s *ProjectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.gw.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &project, nil
}

// Detail fetches a project with its invoices and expenses.
func (s *ProjectService) Detail(ctx context.Context, id uint) (*ProjectDetail, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{Project: *project}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, inv := range s.gw.Invoices.GetAll(ctx) {
			if inv.ProjectID == id {
				detail.Invoices = append(detail.Invoices, inv)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for _, e := range s.gw.Expenses.GetAll(ctx) {
			if e.ProjectID == id {
				detail.Expenses = append(detail.Expenses, e)
			}
		}
	}()
	wg.Wait()

	return detail, nil
}

// Create validates the form and creates the project.
func (s *ProjectService) Create(ctx context.Context, form *ProjectForm) (*models.Project, error) {
	if strings.TrimSpace(form.Name) == "" || form.ClientID == 0 {
		return nil, ErrInvalidPayload
	}
	created, err := s.gw.Projects.Create(ctx, form.payload())
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update validates the form and updates the project.
func (s *ProjectService) Update(ctx context.Context, id uint, form *ProjectForm) (*models.Project, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, ErrInvalidPayload
	}
	updated, err := s.gw.Projects.Update(ctx, id, form.payload())
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &updated, nil
}

// UpdateStatus changes only the project status.
func (s *ProjectService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Project, error) {
	switch status {
	case models.ProjectStatusPlanned, models.ProjectStatusOngoing,
		models.ProjectStatusCompleted, models.ProjectStatusPaused:
	default:
		return nil, ErrInvalidState
	}

	updated, err := s.gw.Projects.Update(ctx, id, map[string]any{"status": status})
	if err != nil {
		return nil, mapGatewayErr(err)
	}
	return &updated, nil
}

// Delete removes the project.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return mapGatewayErr(s.gw.Projects.Delete(ctx, id))
}

func (f *ProjectForm) payload() gateway.ProjectPayload {
	return gateway.ProjectPayload{
		Name:            strings.TrimSpace(f.Name),
		ClientID:        f.ClientID,
		Status:          f.Status,
		StartDate:       dates.ToAPIFormat(f.StartDate),
		ExpectedEndDate: dates.ToAPIFormat(f.ExpectedEndDate),
		ProjectValue:    f.ProjectValue,
		Completion:      f.Completion,
		Description:     f.Description,
		Location:        f.Location,
	}
}
