package models

// DashboardStats is the KPI snapshot shown on the main dashboard. Every field
// defaults to zero so a dashboard rendered after total backend failure still
// shows a complete (all-zero) stats object.
type DashboardStats struct {
	TotalClients    int     `json:"total_clients"`
	ActiveClients   int     `json:"active_clients"`
	TotalProjects   int     `json:"total_projects"`
	OngoingProjects int     `json:"ongoing_projects"`
	TotalInvoices   int     `json:"total_invoices"`
	OpenInvoices    int     `json:"open_invoices"`
	OverdueInvoices int     `json:"overdue_invoices"`
	TotalIncome     float64 `json:"total_income"`
	TotalExpense    float64 `json:"total_expense"`
	NetProfit       float64 `json:"net_profit"`
	Receivable      float64 `json:"receivable"`

	TopProjects []ProjectProfitability `json:"top_projects"`
}

// ProjectProfitability ranks a project by profit for the top-N widget.
type ProjectProfitability struct {
	ProjectID   uint    `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	Profit      float64 `json:"profit"`
}
