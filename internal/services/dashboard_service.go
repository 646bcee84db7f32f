package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atelierhq/atelier-api/internal/gateway"
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/logger"
)

// topProjectCount is how many projects the profitability widget shows.
const topProjectCount = 5

// DashboardService computes the KPI snapshot. Every collection fetch is
// fail-safe, so the worst case is an all-zero stats object, never a crash.
// A background job keeps a cached snapshot warm for cheap reads.
type DashboardService struct {
	gw *gateway.Gateway

	mu          sync.RWMutex
	snapshot    *models.DashboardStats
	refreshedAt time.Time
}

func NewDashboardService(gw *gateway.Gateway) *DashboardService {
	return &DashboardService{gw: gw}
}

// Stats computes a fresh KPI snapshot from all five collections, fetched in
// parallel.
func (s *DashboardService) Stats(ctx context.Context) *models.DashboardStats {
	var (
		clients  []models.Client
		projects []models.Project
		invoices []models.Invoice
		incomes  []models.Income
		expenses []models.Expense
	)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() { defer wg.Done(); clients = s.gw.Clients.GetAll(ctx) }()
	go func() { defer wg.Done(); projects = s.gw.Projects.GetAll(ctx) }()
	go func() { defer wg.Done(); invoices = s.gw.Invoices.GetAll(ctx) }()
	go func() { defer wg.Done(); incomes = s.gw.Incomes.GetAll(ctx) }()
	go func() { defer wg.Done(); expenses = s.gw.Expenses.GetAll(ctx) }()
	wg.Wait()

	stats := &models.DashboardStats{
		TotalClients:  len(clients),
		TotalProjects: len(projects),
		TotalInvoices: len(invoices),
	}

	for _, c := range clients {
		if c.Status == models.ClientStatusActive {
			stats.ActiveClients++
		}
	}
	for _, p := range projects {
		if p.Status == models.ProjectStatusOngoing {
			stats.OngoingProjects++
		}
	}
	for _, inv := range invoices {
		switch {
		case inv.Status == models.InvoiceStatusOverdue:
			stats.OverdueInvoices++
			stats.OpenInvoices++
			stats.Receivable += inv.Amount
		case inv.IsOpen():
			stats.OpenInvoices++
			stats.Receivable += inv.Amount
		}
	}
	for _, in := range incomes {
		stats.TotalIncome += in.AmountReceived
	}
	for _, e := range expenses {
		if e.Status != models.ExpenseStatusRejected {
			stats.TotalExpense += e.Amount
		}
	}
	stats.NetProfit = stats.TotalIncome - stats.TotalExpense
	stats.TopProjects = topProjects(projects)

	return stats
}

// topProjects ranks projects by profit, highest first, keeping the original
// order among ties.
func topProjects(projects []models.Project) []models.ProjectProfitability {
	ranked := make([]models.ProjectProfitability, 0, len(projects))
	for _, p := range projects {
		ranked = append(ranked, models.ProjectProfitability{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Income:      p.Income,
			Expense:     p.Expense,
			Profit:      p.Profit(),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Profit > ranked[j].Profit
	})
	if len(ranked) > topProjectCount {
		ranked = ranked[:topProjectCount]
	}
	return ranked
}

// RefreshSnapshot recomputes and stores the cached snapshot. Scheduled on
// the background worker.
func (s *DashboardService) RefreshSnapshot(ctx context.Context) error {
	stats := s.Stats(ctx)

	s.mu.Lock()
	s.snapshot = stats
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	logger.Debug("Dashboard snapshot refreshed",
		"clients", stats.TotalClients, "projects", stats.TotalProjects)
	return nil
}

// Snapshot returns the cached stats and when they were computed. Callers
// fall back to Stats when no snapshot exists yet.
func (s *DashboardService) Snapshot() (*models.DashboardStats, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, time.Time{}, false
	}
	return s.snapshot, s.refreshedAt, true
}
