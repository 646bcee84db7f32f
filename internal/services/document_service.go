package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/atelierhq/atelier-api/internal/jobs"
	"github.com/atelierhq/atelier-api/internal/models"
	"github.com/atelierhq/atelier-api/internal/storage"
	"github.com/atelierhq/atelier-api/pkg/dates"
	"github.com/atelierhq/atelier-api/pkg/logger"
)

// DocumentService renders printable invoice documents and archives a copy
// locally through the background worker.
type DocumentService struct {
	invoiceSvc *InvoiceService
	store      *storage.LocalStorage
	worker     *jobs.Worker
}

func NewDocumentService(invoiceSvc *InvoiceService, store *storage.LocalStorage, worker *jobs.Worker) *DocumentService {
	return &DocumentService{invoiceSvc: invoiceSvc, store: store, worker: worker}
}

// GenerateInvoicePDF renders the invoice as a PDF and returns the bytes. The
// archive copy is written by the worker pool so the download response never
// waits on disk; archive failure is logged, not fatal.
func (s *DocumentService) GenerateInvoicePDF(ctx context.Context, id uint) (*bytes.Buffer, string, error) {
	invoice, err := s.invoiceSvc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	buf, err := renderInvoicePDF(invoice)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("invoice_%s.pdf", invoice.InvoiceNumber)
	data := buf.Bytes()
	s.worker.Enqueue(func(context.Context) error {
		relPath, err := s.store.Save(data, filename, "invoices")
		if err != nil {
			return fmt.Errorf("failed to archive invoice %d pdf: %w", id, err)
		}
		logger.Info("Archived invoice PDF", "invoice_id", id, "path", relPath)
		return nil
	})

	return buf, filename, nil
}

// ReadArchived returns a previously archived document by its storage path,
// as logged when the archive copy was written.
func (s *DocumentService) ReadArchived(relPath string) ([]byte, error) {
	data, err := s.store.Read(relPath)
	if err != nil {
		return nil, ErrNotFound
	}
	return data, nil
}

func renderInvoicePDF(invoice *models.Invoice) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "INVOICE")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 10, invoice.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(30, 7, "Billed to:")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, invoice.ClientName, "", 1, "L", false, 0, "")

	if invoice.ProjectName != "" {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(30, 7, "Project:")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, invoice.ProjectName, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(30, 7, "Issued:")
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(50, 7, dates.ToDisplay(invoice.GeneratedDate))
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(30, 7, "Due:")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, dates.ToDisplay(invoice.DueDate), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Line items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	items := invoice.Items
	if len(items) == 0 {
		items = []models.InvoiceItem{{
			Description: invoice.Description,
			Quantity:    1,
			Rate:        invoice.Amount,
			Amount:      invoice.Amount,
		}}
	}
	for _, it := range items {
		pdf.CellFormat(90, 8, it.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.2f", it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", it.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", it.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 9, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 9, fmt.Sprintf("%.2f", invoice.Amount), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", invoice.Status), "", 1, "L", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf, nil
}
