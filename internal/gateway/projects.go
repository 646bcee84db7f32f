package gateway

import (
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/dates"
)

// ProjectDTO is the loose wire record for a project. Dates arrive as
// dd/mm/yyyy, occasionally as ISO from newer backend endpoints; both are
// normalized to the wire form.
type ProjectDTO struct {
	ID          LooseID    `json:"id"`
	Name        *string    `json:"name"`
	ProjectName *string    `json:"project_name"`
	ClientID    LooseID    `json:"client_id"`
	Client      *string    `json:"client"`
	ClientName  *string    `json:"client_name"`
	Status      *string    `json:"status"`
	StartDate   *string    `json:"start_date"`
	EndDate     *string    `json:"expected_end_date"`
	EndDateAlt  *string    `json:"end_date"`
	Value       LooseFloat `json:"project_value"`
	ValueAlt    LooseFloat `json:"value"`
	Completion  LooseFloat `json:"completion"`
	CompletionP LooseFloat `json:"completion_percentage"`
	Income      LooseFloat `json:"income"`
	Expense     LooseFloat `json:"expense"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
}

var projectStatuses = []string{
	models.ProjectStatusPlanned,
	models.ProjectStatusOngoing,
	models.ProjectStatusCompleted,
	models.ProjectStatusPaused,
}

func mapProject(d *ProjectDTO) models.Project {
	value := float64(d.Value)
	if value == 0 {
		value = float64(d.ValueAlt)
	}
	completion := float64(d.Completion)
	if completion == 0 {
		completion = float64(d.CompletionP)
	}

	return models.Project{
		ID:              uint(d.ID),
		Name:            firstString("", d.Name, d.ProjectName),
		ClientID:        uint(d.ClientID),
		ClientName:      firstString("", d.Client, d.ClientName),
		Status:          normalizeStatus(d.Status, projectStatuses, models.ProjectStatusPlanned),
		StartDate:       dates.ToAPIFormat(firstString("", d.StartDate)),
		ExpectedEndDate: dates.ToAPIFormat(firstString("", d.EndDate, d.EndDateAlt)),
		ProjectValue:    value,
		Completion:      completion,
		Income:          float64(d.Income),
		Expense:         float64(d.Expense),
		Description:     firstString("", d.Description),
		Location:        firstString("", d.Location),
	}
}

// ProjectPayload is the create/update body in the backend's naming. Dates
// must already be in dd/mm/yyyy; use pkg/dates to convert form input.
type ProjectPayload struct {
	Name            string  `json:"name"`
	ClientID        uint    `json:"client_id"`
	Status          string  `json:"status,omitempty"`
	StartDate       string  `json:"start_date,omitempty"`
	ExpectedEndDate string  `json:"expected_end_date,omitempty"`
	ProjectValue    float64 `json:"project_value"`
	Completion      float64 `json:"completion"`
	Description     string  `json:"description"`
	Location        string  `json:"location"`
}
