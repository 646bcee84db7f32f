package models

// Project status constants
const (
	ProjectStatusPlanned   = "planned"
	ProjectStatusOngoing   = "ongoing"
	ProjectStatusCompleted = "completed"
	ProjectStatusPaused    = "paused"
)

// Project is the normalized shape of a studio project. Dates are carried in
// the backend's dd/mm/yyyy wire form; use pkg/dates for comparison and
// display, never lexical ordering.
type Project struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	ClientID        uint    `json:"client_id"`
	ClientName      string  `json:"client_name"`
	Status          string  `json:"status"`
	StartDate       string  `json:"start_date"`
	ExpectedEndDate string  `json:"expected_end_date"`
	ProjectValue    float64 `json:"project_value"`
	Completion      float64 `json:"completion"`
	Income          float64 `json:"income"`
	Expense         float64 `json:"expense"`
	Description     string  `json:"description"`
	Location        string  `json:"location"`
}

// Profit returns income minus expense recorded against the project.
func (p *Project) Profit() float64 {
	return p.Income - p.Expense
}
