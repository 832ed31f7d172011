package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	intconfig "tripapi/internal/config"
	"tripapi/internal/domain"
	"tripapi/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

const tripColumns = "id, vendor_id, pickup_time, dropoff_time"

// TripRepository is the real record-store accessor over the shared MySQL
// pool. Every method is a single self-contained statement; no connection is
// held across calls.
type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Count returns the full-table trip count.
func (r TripRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM trips`).Scan(&n)
	if err != nil {
		return 0, classifyStoreErr("count trips", err)
	}
	return n, nil
}

// SampleIDs returns the first n trip IDs, for smoke-testing clients.
func (r TripRepository) SampleIDs(ctx context.Context, n int) ([]int64, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT id FROM trips ORDER BY id ASC LIMIT ?`, n)
	if err != nil {
		return nil, classifyStoreErr("sample trips", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, classifyStoreErr("scan sample trips", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreErr("iterate sample trips", err)
	}
	return ids, nil
}

// GetByID fetches a single trip. Absent rows surface as a NotFoundError.
func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	var t models.Trip
	err := r.db().QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id,
	).Scan(&t.ID, &t.VendorID, &t.PickupTime, &t.DropoffTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, domain.NotFoundError{Resource: "trip", ID: id}
		}
		return t, classifyStoreErr("get trip", err)
	}
	return t, nil
}

// ListWindow fetches limit rows starting at offset, ordered ascending by id.
// Callers pass page_size+1 to detect a following page without a count query.
func (r TripRepository) ListWindow(ctx context.Context, offset, limit int) ([]models.Trip, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY id ASC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, classifyStoreErr("list trips by page", err)
	}
	return scanTrips(rows)
}

// ListAfter fetches up to limit rows with id > cursor, ordered ascending.
// Cost is proportional to limit regardless of where the cursor points.
func (r TripRepository) ListAfter(ctx context.Context, cursor int64, limit int) ([]models.Trip, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id > ? ORDER BY id ASC LIMIT ?`, cursor, limit)
	if err != nil {
		return nil, classifyStoreErr("list trips by cursor", err)
	}
	return scanTrips(rows)
}

// UpdateVendorID applies the single permitted mutation as one atomic
// conditional statement and reports how many rows it touched. Zero means the
// trip does not exist; there is no separate existence read to race against.
func (r TripRepository) UpdateVendorID(ctx context.Context, id int64, vendorID string) (int64, error) {
	res, err := r.db().ExecContext(ctx, `UPDATE trips SET vendor_id = ? WHERE id = ?`, vendorID, id)
	if err != nil {
		return 0, classifyStoreErr("update trip vendor", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, classifyStoreErr("update trip vendor", err)
	}
	return affected, nil
}

// AvgDurationMinutes averages (dropoff - pickup) in minutes over trips with a
// strictly positive duration. With no qualifying rows it reports 0.
func (r TripRepository) AvgDurationMinutes(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := r.db().QueryRowContext(ctx, `
		SELECT AVG(TIMESTAMPDIFF(SECOND, pickup_time, dropoff_time) / 60)
		FROM trips
		WHERE dropoff_time > pickup_time
	`).Scan(&avg)
	if err != nil {
		return 0, classifyStoreErr("average trip duration", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// PeakPickupHour returns the pickup hour (0-23) with the most trips and that
// count. Ties break to the lowest hour. Empty dataset reports (0, 0).
func (r TripRepository) PeakPickupHour(ctx context.Context) (int, int64, error) {
	var hour int
	var count int64
	err := r.db().QueryRowContext(ctx, `
		SELECT HOUR(pickup_time) AS pickup_hour, COUNT(*) AS trip_count
		FROM trips
		GROUP BY HOUR(pickup_time)
		ORDER BY trip_count DESC, pickup_hour ASC
		LIMIT 1
	`).Scan(&hour, &count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, nil
		}
		return 0, 0, classifyStoreErr("peak pickup hour", err)
	}
	return hour, count, nil
}

// VendorDistribution returns per-vendor trip counts, largest first, capped at
// limit entries. Vendors with zero trips never appear.
func (r TripRepository) VendorDistribution(ctx context.Context, limit int) ([]models.VendorCount, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT vendor_id, COUNT(*) AS trip_count
		FROM trips
		GROUP BY vendor_id
		ORDER BY trip_count DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, classifyStoreErr("vendor distribution", err)
	}
	defer rows.Close()

	out := []models.VendorCount{}
	for rows.Next() {
		var vc models.VendorCount
		if err := rows.Scan(&vc.VendorID, &vc.TripCount); err != nil {
			return nil, classifyStoreErr("scan vendor distribution", err)
		}
		out = append(out, vc)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreErr("iterate vendor distribution", err)
	}
	return out, nil
}

func scanTrips(rows *sql.Rows) ([]models.Trip, error) {
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.VendorID, &t.PickupTime, &t.DropoffTime); err != nil {
			return nil, classifyStoreErr("scan trips", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreErr("iterate trips", err)
	}
	return out, nil
}

// classifyStoreErr sorts driver failures into the retry-hintable kinds.
// Transient connection problems and deadline hits get their own types so the
// transport layer can map them distinctly; everything else is opaque.
func classifyStoreErr(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.TimeoutError{Err: err}
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, mysql.ErrInvalidConn), errors.Is(err, sql.ErrConnDone):
		return domain.UnavailableError{Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return domain.TimeoutError{Err: err}
		}
		return domain.UnavailableError{Err: err}
	}

	return domain.InternalError{Msg: "failed to " + op, Err: err}
}
