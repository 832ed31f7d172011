package models

import "time"

// Trip is one row of the trips dataset. ID is assigned in insertion order,
// never reused, and doubles as the cursor token for keyset pagination.
type Trip struct {
	ID          int64     `json:"id"`
	VendorID    string    `json:"vendor_id"`
	PickupTime  time.Time `json:"pickup_time"`
	DropoffTime time.Time `json:"dropoff_time"`
}

// VendorCount is one entry of the vendor distribution. The report keeps these
// in a slice so the count-descending order survives JSON encoding.
type VendorCount struct {
	VendorID  string `json:"vendor_id"`
	TripCount int64  `json:"trip_count"`
}

// TripAnalytics combines the four independently computed metrics. It carries
// no identity and is recomputed from the live dataset on every request.
type TripAnalytics struct {
	TotalTrips             int64         `json:"total_trips"`
	AvgTripDurationMinutes float64       `json:"avg_trip_duration_minutes"`
	PeakHour               int           `json:"peak_hour"`
	PeakHourTripCount      int64         `json:"peak_hour_trip_count"`
	VendorDistribution     []VendorCount `json:"vendor_distribution"`
}

// PageInfo describes an offset-based window. TotalPages and TotalCount are -1
// when the caller skipped the count query; -1 means "not computed", never
// "zero rows".
type PageInfo struct {
	Page           int    `json:"page"`
	PageSize       int    `json:"page_size"`
	TotalPages     int64  `json:"total_pages"`
	TotalCount     int64  `json:"total_count"`
	HasNext        bool   `json:"has_next"`
	HasPrevious    bool   `json:"has_previous"`
	NextCursor     *int64 `json:"next_cursor,omitempty"`
	PreviousCursor *int64 `json:"previous_cursor,omitempty"`
}

// CursorInfo describes a keyset window. PreviousCursor is an approximate
// jump-back hint; it assumes dense IDs and is only exact when none were
// deleted.
type CursorInfo struct {
	PageSize       int    `json:"page_size"`
	HasNext        bool   `json:"has_next"`
	HasPrevious    bool   `json:"has_previous"`
	NextCursor     *int64 `json:"next_cursor,omitempty"`
	PreviousCursor *int64 `json:"previous_cursor,omitempty"`
}

type TripPage struct {
	Trips      []Trip   `json:"trips"`
	Pagination PageInfo `json:"pagination"`
}

type TripCursorPage struct {
	Trips      []Trip     `json:"trips"`
	Pagination CursorInfo `json:"pagination"`
}

type TripCount struct {
	TotalTrips int64 `json:"total_trips"`
}

type TripSample struct {
	SampleTripIDs []int64 `json:"sample_trip_ids"`
}

type VendorUpdateResult struct {
	ID       int64  `json:"id"`
	VendorID string `json:"vendor_id"`
	Message  string `json:"message"`
}
