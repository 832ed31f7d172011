package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tripapi/internal/domain/models"
)

func TestReportDocServiceGenerate(t *testing.T) {
	loader := func(ctx context.Context) (models.TripAnalytics, error) {
		return models.TripAnalytics{
			TotalTrips:             1458644,
			AvgTripDurationMinutes: 16.23,
			PeakHour:               18,
			PeakHourTripCount:      96321,
			VendorDistribution: []models.VendorCount{
				{VendorID: "2", TripCount: 780302},
				{VendorID: "1", TripCount: 678342},
			},
		}, nil
	}

	svc := ReportDocService{Loader: loader}

	pdf, filename, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("Generate returned empty document")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
	if !strings.HasPrefix(filename, "trip-analytics-") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestReportDocServiceEmptyDataset(t *testing.T) {
	loader := func(ctx context.Context) (models.TripAnalytics, error) {
		return models.TripAnalytics{VendorDistribution: []models.VendorCount{}}, nil
	}

	svc := ReportDocService{Loader: loader}

	pdf, _, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("Generate returned empty document")
	}
}
