package gateway

import (
	"github.com/atelierhq/atelier-api/internal/models"
)

// ClientDTO is the loose wire record for a client. Older backend versions
// used client_name and projects_count, so both spellings are accepted.
type ClientDTO struct {
	ID         LooseID    `json:"id"`
	Name       *string    `json:"name"`
	ClientName *string    `json:"client_name"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	PhoneNo    *string    `json:"phone_number"`
	Budget     LooseFloat `json:"budget"`
	Status     *string    `json:"status"`
	Address    *string    `json:"address"`
	Notes      *string    `json:"notes"`
	Projects   *int       `json:"project_count"`
	ProjectsNo *int       `json:"projects_count"`
}

var clientStatuses = []string{
	models.ClientStatusActive,
	models.ClientStatusInactive,
	models.ClientStatusArchived,
}

func mapClient(d *ClientDTO) models.Client {
	count := 0
	if d.Projects != nil {
		count = *d.Projects
	} else if d.ProjectsNo != nil {
		count = *d.ProjectsNo
	}

	return models.Client{
		ID:           uint(d.ID),
		Name:         firstString("", d.Name, d.ClientName),
		Email:        firstString("", d.Email),
		Phone:        firstString("", d.Phone, d.PhoneNo),
		Budget:       float64(d.Budget),
		Status:       normalizeStatus(d.Status, clientStatuses, models.ClientStatusActive),
		Address:      firstString("", d.Address),
		Notes:        firstString("", d.Notes),
		ProjectCount: count,
	}
}

// ClientPayload is the create/update body in the backend's naming.
type ClientPayload struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Budget  float64 `json:"budget"`
	Status  string  `json:"status,omitempty"`
	Address string  `json:"address"`
	Notes   string  `json:"notes"`
}
