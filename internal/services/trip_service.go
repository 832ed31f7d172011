package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"tripapi/internal/domain"
	"tripapi/internal/domain/models"
	"tripapi/internal/repositories"
	"tripapi/internal/utils"
)

const (
	minPageSize = 1
	maxPageSize = 1000

	defaultSampleSize = 5
	maxSampleSize     = 100

	topVendorLimit = 10

	// sentinel for "count not computed"; never confused with an empty table
	countNotComputed = -1
)

// TripStore is the narrow capability the service needs from the record store.
// The real implementation is repositories.TripRepository; tests substitute an
// in-memory fake.
type TripStore interface {
	Count(ctx context.Context) (int64, error)
	SampleIDs(ctx context.Context, n int) ([]int64, error)
	GetByID(ctx context.Context, id int64) (models.Trip, error)
	ListWindow(ctx context.Context, offset, limit int) ([]models.Trip, error)
	ListAfter(ctx context.Context, cursor int64, limit int) ([]models.Trip, error)
	UpdateVendorID(ctx context.Context, id int64, vendorID string) (int64, error)
	AvgDurationMinutes(ctx context.Context) (float64, error)
	PeakPickupHour(ctx context.Context) (int, int64, error)
	VendorDistribution(ctx context.Context, limit int) ([]models.VendorCount, error)
}

// TripService implements the paginated query and analytics operations. Each
// call is a self-contained unit of work; the service keeps no state between
// requests.
type TripService struct {
	Store     TripStore
	RequestID string
}

func (s TripService) store() TripStore {
	if s.Store != nil {
		return s.Store
	}
	return repositories.TripRepository{}
}

// Count returns the total number of trips.
func (s TripService) Count(ctx context.Context) (models.TripCount, error) {
	n, err := s.store().Count(ctx)
	if err != nil {
		return models.TripCount{}, err
	}
	return models.TripCount{TotalTrips: n}, nil
}

// Sample returns the first n trip IDs. n defaults to 5 and is capped so the
// endpoint can never turn into a bulk export.
func (s TripService) Sample(ctx context.Context, n int) (models.TripSample, error) {
	if n <= 0 {
		n = defaultSampleSize
	}
	if n > maxSampleSize {
		n = maxSampleSize
	}
	ids, err := s.store().SampleIDs(ctx, n)
	if err != nil {
		return models.TripSample{}, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return models.TripSample{SampleTripIDs: ids}, nil
}

// GetByID fetches one trip by its stable identity.
func (s TripService) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "trip_id", Msg: "must be a positive integer"}
	}
	return s.store().GetByID(ctx, id)
}

// ListByPage returns an offset-based window: page_size rows starting at
// (page-1)*page_size, ordered ascending by id. One look-ahead row decides
// has_next. The count query runs only when includeCount is set; when the
// count and list disagree under concurrent writes, the list wins and the
// count is a close approximation.
func (s TripService) ListByPage(ctx context.Context, page, pageSize int, includeCount bool) (models.TripPage, error) {
	var out models.TripPage
	if page < 1 {
		return out, domain.ValidationError{Field: "page", Msg: "must be >= 1"}
	}
	if err := validatePageSize(pageSize); err != nil {
		return out, err
	}

	totalCount := int64(countNotComputed)
	totalPages := int64(countNotComputed)
	if includeCount {
		n, err := s.store().Count(ctx)
		if err != nil {
			return out, err
		}
		totalCount = n
		totalPages = (n + int64(pageSize) - 1) / int64(pageSize)
	}

	offset := (page - 1) * pageSize
	trips, err := s.store().ListWindow(ctx, offset, pageSize+1)
	if err != nil {
		return out, err
	}

	hasNext := len(trips) > pageSize
	if hasNext {
		trips = trips[:pageSize]
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	hasPrevious := page > 1

	info := models.PageInfo{
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNext:     hasNext,
		HasPrevious: hasPrevious,
	}
	if hasNext && len(trips) > 0 {
		last := trips[len(trips)-1].ID
		info.NextCursor = &last
	}
	if hasPrevious && len(trips) > 0 {
		// approximate jump-back hint; only exact when IDs are gap-free
		prev := trips[0].ID - int64(pageSize)
		if prev < 0 {
			prev = 0
		}
		info.PreviousCursor = &prev
	}

	out.Trips = trips
	out.Pagination = info
	return out, nil
}

// ListByCursor returns a keyset window: up to page_size rows with id > cursor
// in ascending order. No count query ever runs here; cost stays proportional
// to page_size no matter how deep the caller has paged.
func (s TripService) ListByCursor(ctx context.Context, cursor int64, pageSize int) (models.TripCursorPage, error) {
	var out models.TripCursorPage
	if cursor < 0 {
		return out, domain.ValidationError{Field: "cursor", Msg: "must be >= 0"}
	}
	if err := validatePageSize(pageSize); err != nil {
		return out, err
	}

	trips, err := s.store().ListAfter(ctx, cursor, pageSize+1)
	if err != nil {
		return out, err
	}

	hasNext := len(trips) > pageSize
	if hasNext {
		trips = trips[:pageSize]
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	hasPrevious := cursor > 0

	info := models.CursorInfo{
		PageSize:    pageSize,
		HasNext:     hasNext,
		HasPrevious: hasPrevious,
	}
	if hasNext && len(trips) > 0 {
		last := trips[len(trips)-1].ID
		info.NextCursor = &last
	}
	if hasPrevious {
		prev := cursor - int64(pageSize)
		if prev < 0 {
			prev = 0
		}
		info.PreviousCursor = &prev
	}

	out.Trips = trips
	out.Pagination = info
	return out, nil
}

// Analytics computes the four metrics as independent queries against the
// live dataset and assembles one report. No caching, no cross-query
// snapshot: the metrics may observe slightly different dataset states under
// concurrent writes.
func (s TripService) Analytics(ctx context.Context) (models.TripAnalytics, error) {
	utils.LogEvent(s.RequestID, "trips", "analytics", "computing trip analytics")

	var out models.TripAnalytics

	total, err := s.store().Count(ctx)
	if err != nil {
		return out, err
	}

	avg, err := s.store().AvgDurationMinutes(ctx)
	if err != nil {
		return out, err
	}

	hour, hourCount, err := s.store().PeakPickupHour(ctx)
	if err != nil {
		return out, err
	}

	dist, err := s.store().VendorDistribution(ctx, topVendorLimit)
	if err != nil {
		return out, err
	}
	if dist == nil {
		dist = []models.VendorCount{}
	}

	return models.TripAnalytics{
		TotalTrips:             total,
		AvgTripDurationMinutes: roundTwoDecimals(avg),
		PeakHour:               hour,
		PeakHourTripCount:      hourCount,
		VendorDistribution:     dist,
	}, nil
}

// UpdateVendor assigns a new vendor to one trip. The write is a single
// atomic conditional update committed before returning; zero affected rows
// means the trip does not exist.
func (s TripService) UpdateVendor(ctx context.Context, tripID int64, vendorID string) (models.VendorUpdateResult, error) {
	var out models.VendorUpdateResult
	if tripID <= 0 {
		return out, domain.ValidationError{Field: "trip_id", Msg: "must be a positive integer"}
	}
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return out, domain.ValidationError{Field: "vendor_id", Msg: "must not be empty"}
	}

	affected, err := s.store().UpdateVendorID(ctx, tripID, vendorID)
	if err != nil {
		return out, err
	}
	if affected == 0 {
		return out, domain.NotFoundError{Resource: "trip", ID: tripID}
	}

	utils.LogEvent(s.RequestID, "trips", "update_vendor", fmt.Sprintf("trip_id=%d", tripID))

	return models.VendorUpdateResult{
		ID:       tripID,
		VendorID: vendorID,
		Message:  "vendor ID updated successfully",
	}, nil
}

func validatePageSize(pageSize int) error {
	if pageSize < minPageSize || pageSize > maxPageSize {
		return domain.ValidationError{
			Field: "page_size",
			Msg:   fmt.Sprintf("must be between %d and %d", minPageSize, maxPageSize),
		}
	}
	return nil
}

func roundTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
