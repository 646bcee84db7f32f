package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/atelierhq/atelier-api/internal/listview"
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/pkg/dates"
)

// ExportService produces downloadable financial and invoice-aging reports.
type ExportService struct {
	dashboardSvc *DashboardService
	invoiceSvc   *InvoiceService
}

func NewExportService(dashboardSvc *DashboardService, invoiceSvc *InvoiceService) *ExportService {
	return &ExportService{dashboardSvc: dashboardSvc, invoiceSvc: invoiceSvc}
}

// FinancialsCSV renders the KPI summary as CSV.
func (s *ExportService) FinancialsCSV(ctx context.Context) ([]byte, string, error) {
	stats := s.dashboardSvc.Stats(ctx)

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Studio Financial Report", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Overview"})
	_ = writer.Write([]string{"Metric", "Value"})
	_ = writer.Write([]string{"Total Clients", fmt.Sprintf("%d", stats.TotalClients)})
	_ = writer.Write([]string{"Active Clients", fmt.Sprintf("%d", stats.ActiveClients)})
	_ = writer.Write([]string{"Total Projects", fmt.Sprintf("%d", stats.TotalProjects)})
	_ = writer.Write([]string{"Ongoing Projects", fmt.Sprintf("%d", stats.OngoingProjects)})
	_ = writer.Write([]string{"Open Invoices", fmt.Sprintf("%d", stats.OpenInvoices)})
	_ = writer.Write([]string{"Overdue Invoices", fmt.Sprintf("%d", stats.OverdueInvoices)})
	_ = writer.Write([]string{"Total Income", fmt.Sprintf("%.2f", stats.TotalIncome)})
	_ = writer.Write([]string{"Total Expense", fmt.Sprintf("%.2f", stats.TotalExpense)})
	_ = writer.Write([]string{"Net Profit", fmt.Sprintf("%.2f", stats.NetProfit)})
	_ = writer.Write([]string{"Receivable", fmt.Sprintf("%.2f", stats.Receivable)})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Top Projects by Profit"})
	_ = writer.Write([]string{"Project", "Income", "Expense", "Profit"})
	for _, p := range stats.TopProjects {
		_ = writer.Write([]string{
			p.ProjectName,
			fmt.Sprintf("%.2f", p.Income),
			fmt.Sprintf("%.2f", p.Expense),
			fmt.Sprintf("%.2f", p.Profit),
		})
	}

	writer.Flush()

	filename := fmt.Sprintf("financial_report_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// FinancialsXLSX renders the KPI summary as a spreadsheet.
func (s *ExportService) FinancialsXLSX(ctx context.Context) ([]byte, string, error) {
	stats := s.dashboardSvc.Stats(ctx)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Financials"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Studio Financial Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	rows := []struct {
		label string
		value any
	}{
		{"Total Clients", stats.TotalClients},
		{"Active Clients", stats.ActiveClients},
		{"Total Projects", stats.TotalProjects},
		{"Ongoing Projects", stats.OngoingProjects},
		{"Open Invoices", stats.OpenInvoices},
		{"Overdue Invoices", stats.OverdueInvoices},
		{"Total Income", stats.TotalIncome},
		{"Total Expense", stats.TotalExpense},
		{"Net Profit", stats.NetProfit},
		{"Receivable", stats.Receivable},
	}

	_ = f.SetCellValue(sheet, "A3", "Metric")
	_ = f.SetCellValue(sheet, "B3", "Value")
	for i, row := range rows {
		cell := 4 + i
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", cell), row.label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", cell), row.value)
	}

	top := 5 + len(rows)
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", top), "Top Projects by Profit")
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", top+1), "Project")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", top+1), "Income")
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", top+1), "Expense")
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", top+1), "Profit")
	for i, p := range stats.TopProjects {
		row := top + 2 + i
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.ProjectName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Income)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Expense)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Profit)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("financial_report_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// FinancialsPDF renders the KPI summary as a PDF.
func (s *ExportService) FinancialsPDF(ctx context.Context) ([]byte, string, error) {
	stats := s.dashboardSvc.Stats(ctx)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "Studio Financial Report")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, time.Now().Format("2006-01-02"), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	writeRow := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(60, 7, label)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	writeRow("Total Clients", fmt.Sprintf("%d", stats.TotalClients))
	writeRow("Total Projects", fmt.Sprintf("%d", stats.TotalProjects))
	writeRow("Open Invoices", fmt.Sprintf("%d", stats.OpenInvoices))
	writeRow("Overdue Invoices", fmt.Sprintf("%d", stats.OverdueInvoices))
	writeRow("Total Income", fmt.Sprintf("%.2f", stats.TotalIncome))
	writeRow("Total Expense", fmt.Sprintf("%.2f", stats.TotalExpense))
	writeRow("Net Profit", fmt.Sprintf("%.2f", stats.NetProfit))
	writeRow("Receivable", fmt.Sprintf("%.2f", stats.Receivable))
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Top Projects by Profit", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, p := range stats.TopProjects {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %.2f", p.ProjectName, p.Profit), "", 1, "L", false, 0, "")
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("financial_report_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// agingLine is one open invoice placed in its aging bucket.
type agingLine struct {
	invoice     models.Invoice
	daysPastDue int
	bucket      string
}

var agingBucketOrder = []string{"Current", "1-30", "31-60", "61-90", "90+"}

func agingBucketLabel(daysPastDue int) string {
	switch {
	case daysPastDue <= 0:
		return "Current"
	case daysPastDue <= 30:
		return "1-30"
	case daysPastDue <= 60:
		return "31-60"
	case daysPastDue <= 90:
		return "61-90"
	default:
		return "90+"
	}
}

// agingLines collects open invoices with their days past due. Invoices
// without a parseable due date count as current.
func (s *ExportService) agingLines(ctx context.Context) []agingLine {
	now := time.Now()
	var lines []agingLine
	for _, inv := range s.invoiceSvc.List(ctx, listview.Query{}) {
		if !inv.IsOpen() {
			continue
		}
		days := 0
		if due, err := dates.ParseAPI(inv.DueDate); err == nil {
			days = int(now.Sub(due).Hours() / 24)
		}
		if days < 0 {
			days = 0
		}
		lines = append(lines, agingLine{
			invoice:     inv,
			daysPastDue: days,
			bucket:      agingBucketLabel(days),
		})
	}
	return lines
}

func agingTotals(lines []agingLine) map[string]float64 {
	totals := make(map[string]float64, len(agingBucketOrder))
	for _, l := range lines {
		totals[l.bucket] += l.invoice.Amount
	}
	return totals
}

// InvoiceAgingCSV renders the open-invoice aging report as CSV.
func (s *ExportService) InvoiceAgingCSV(ctx context.Context) ([]byte, string, error) {
	lines := s.agingLines(ctx)

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Invoice Aging Report", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Invoice", "Client", "Due Date", "Amount", "Days Past Due", "Bucket"})
	for _, l := range lines {
		_ = writer.Write([]string{
			l.invoice.InvoiceNumber,
			l.invoice.ClientName,
			l.invoice.DueDate,
			fmt.Sprintf("%.2f", l.invoice.Amount),
			fmt.Sprintf("%d", l.daysPastDue),
			l.bucket,
		})
	}

	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Bucket", "Outstanding"})
	totals := agingTotals(lines)
	for _, bucket := range agingBucketOrder {
		_ = writer.Write([]string{bucket, fmt.Sprintf("%.2f", totals[bucket])})
	}

	writer.Flush()

	filename := fmt.Sprintf("invoice_aging_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// InvoiceAgingXLSX renders the open-invoice aging report as a spreadsheet.
func (s *ExportService) InvoiceAgingXLSX(ctx context.Context) ([]byte, string, error) {
	lines := s.agingLines(ctx)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Aging"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Invoice Aging Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Invoice", "Client", "Due Date", "Amount", "Days Past Due", "Bucket"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, l := range lines {
		row := 4 + i
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), l.invoice.InvoiceNumber)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), l.invoice.ClientName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), l.invoice.DueDate)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), l.invoice.Amount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), l.daysPastDue)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), l.bucket)
	}

	top := 5 + len(lines)
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", top), "Bucket")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", top), "Outstanding")
	totals := agingTotals(lines)
	for i, bucket := range agingBucketOrder {
		row := top + 1 + i
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), bucket)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), totals[bucket])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("invoice_aging_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// InvoiceAgingPDF renders the open-invoice aging report as a PDF.
func (s *ExportService) InvoiceAgingPDF(ctx context.Context) ([]byte, string, error) {
	lines := s.agingLines(ctx)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "Invoice Aging Report")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, time.Now().Format("2006-01-02"), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 7, "Invoice", "1", 0, "L", false, 0, "")
	pdf.CellFormat(55, 7, "Client", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Due Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Bucket", "1", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, l := range lines {
		pdf.CellFormat(35, 7, l.invoice.InvoiceNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, l.invoice.ClientName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, l.invoice.DueDate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", l.invoice.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, l.bucket, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Outstanding by Bucket", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	totals := agingTotals(lines)
	for _, bucket := range agingBucketOrder {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %.2f", bucket, totals[bucket]), "", 1, "L", false, 0, "")
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("invoice_aging_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
