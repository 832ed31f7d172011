package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"tripapi/internal/domain/models"
	"tripapi/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportDocService renders the analytics report as a PDF document.
type ReportDocService struct {
	Trips     TripService
	RequestID string
	Loader    func(context.Context) (models.TripAnalytics, error)
}

// Generate computes a fresh analytics report and returns the rendered PDF
// bytes plus a suggested filename.
func (s ReportDocService) Generate(ctx context.Context) ([]byte, string, error) {
	report, err := s.loadReport(ctx)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_analytics_report", fmt.Sprintf("total_trips=%d", report.TotalTrips))
	return buildAnalyticsPDF(report, time.Now().UTC())
}

func (s ReportDocService) loadReport(ctx context.Context) (models.TripAnalytics, error) {
	if s.Loader != nil {
		return s.Loader(ctx)
	}
	return s.Trips.Analytics(ctx)
}

func buildAnalyticsPDF(report models.TripAnalytics, generatedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Analytics Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP ANALYTICS REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Generated at (UTC)        : %s", generatedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Total trips               : %d", report.TotalTrips),
		fmt.Sprintf("Avg trip duration (min)   : %.2f", report.AvgTripDurationMinutes),
		fmt.Sprintf("Peak pickup hour          : %02d:00", report.PeakHour),
		fmt.Sprintf("Trips in peak hour        : %d", report.PeakHourTripCount),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Top vendors by trip count:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	if len(report.VendorDistribution) == 0 {
		pdf.Cell(0, 6, "(no trips recorded)")
		pdf.Ln(6)
	}
	for i, vc := range report.VendorDistribution {
		pdf.Cell(0, 6, fmt.Sprintf("%2d) %-20s %d", i+1, vc.VendorID, vc.TripCount))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Metrics are computed from the live dataset at generation time and may drift under concurrent writes.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("trip-analytics-%s.pdf", generatedAt.Format("20060102-150405"))
	return buf.Bytes(), filename, nil
}
