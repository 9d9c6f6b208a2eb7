// Package reports renders employee review reports as PDF documents.
package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ocena/internal/domain/employees"
	"ocena/internal/domain/identity"
)

// Service reuses the employee read rule: whoever may read the profile may
// download its report.
type Service struct {
	employees *employees.Service
}

func NewService(employeeSvc *employees.Service) *Service {
	return &Service{employees: employeeSvc}
}

func (s *Service) ReviewPDF(ctx context.Context, actor identity.Actor, employeeID string) ([]byte, error) {
	view, err := s.employees.GetByID(ctx, actor, employeeID)
	if err != nil {
		return nil, err
	}
	return BuildReviewPDF(view, time.Now())
}

func BuildReviewPDF(view *employees.View, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Review")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", view.FirstName, view.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", view.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", view.Position))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Evaluation period: %s", view.EvaluationPeriod))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Final score: %s", view.FinalScore))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Achievements")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, view.AchievementsSummary, "", "L", false)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", generatedAt.Format("2006-01-02 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
