package models

// Client status constants
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusArchived = "archived"
)

// Client is the normalized shape of a studio client. Every field is defined:
// the gateway mapper defaults anything the legacy backend omits, so views
// never render a missing value.
type Client struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Budget       float64 `json:"budget"`
	Status       string  `json:"status"`
	Address      string  `json:"address"`
	Notes        string  `json:"notes"`
	ProjectCount int     `json:"project_count"`
}

// IsArchived reports whether the client has been archived.
func (c *Client) IsArchived() bool {
	return c.Status == ClientStatusArchived
}
