package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/checkin"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// The single-active-checkin invariant is enforced by a partial unique index:
//
//	CREATE UNIQUE INDEX uq_checkins_one_active
//	    ON checkins (employee_id) WHERE status = 'checked_in';
//
// The constraint is the authority. This repository never pre-reads to decide
// whether an insert may proceed; it inserts and translates the unique
// violation.
type checkinRepository struct {
	db *database.DB
}

func NewCheckinRepository(db *database.DB) checkin.LedgerRepository {
	return &checkinRepository{db: db}
}

const uniqueViolation = "23505"

// TryOpenCheckin implements checkin.LedgerRepository.
func (r *checkinRepository) TryOpenCheckin(ctx context.Context, row checkin.Checkin) (checkin.Checkin, error) {
	query := `
		INSERT INTO checkins (
			id, employee_id, client_id, checkin_time, distance_from_client,
			status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		row.ID,
		row.EmployeeID,
		row.ClientID,
		row.CheckinTime,
		row.DistanceFromClient,
		row.Status,
		row.Notes,
	).Scan(&row.CreatedAt, &row.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return checkin.Checkin{}, checkin.ErrAlreadyCheckedIn
		}
		return checkin.Checkin{}, fmt.Errorf("failed to open checkin: %w", err)
	}

	return row, nil
}

// TryCloseCheckin implements checkin.LedgerRepository. The WHERE clause makes
// the update conditional; a concurrent double checkout sees zero rows.
func (r *checkinRepository) TryCloseCheckin(ctx context.Context, employeeID string, checkoutTime time.Time) (checkin.Checkin, error) {
	query := `
		UPDATE checkins
		SET checkout_time = $2, status = $3, updated_at = NOW()
		WHERE employee_id = $1
		  AND status = $4
		RETURNING id, employee_id, client_id, checkin_time, checkout_time,
				  distance_from_client, status, notes, created_at, updated_at
	`

	var row checkin.Checkin
	err := r.db.QueryRow(ctx, query, employeeID, checkoutTime, checkin.StatusCheckedOut, checkin.StatusCheckedIn).Scan(
		&row.ID, &row.EmployeeID, &row.ClientID, &row.CheckinTime, &row.CheckoutTime,
		&row.DistanceFromClient, &row.Status, &row.Notes, &row.CreatedAt, &row.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkin.Checkin{}, checkin.ErrNoActiveCheckin
		}
		return checkin.Checkin{}, fmt.Errorf("failed to close checkin: %w", err)
	}

	return row, nil
}

// GetActiveByEmployee implements checkin.LedgerRepository.
func (r *checkinRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (checkin.Checkin, error) {
	query := `
		SELECT c.id, c.employee_id, c.client_id, c.checkin_time, c.checkout_time,
			   c.distance_from_client, c.status, c.notes, c.created_at, c.updated_at,
			   cl.name AS client_name
		FROM checkins c
		LEFT JOIN clients cl ON cl.id = c.client_id
		WHERE c.employee_id = $1
		  AND c.status = $2
		LIMIT 1
	`

	var row checkin.Checkin
	err := r.db.QueryRow(ctx, query, employeeID, checkin.StatusCheckedIn).Scan(
		&row.ID, &row.EmployeeID, &row.ClientID, &row.CheckinTime, &row.CheckoutTime,
		&row.DistanceFromClient, &row.Status, &row.Notes, &row.CreatedAt, &row.UpdatedAt,
		&row.ClientName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkin.Checkin{}, checkin.ErrNoActiveCheckin
		}
		return checkin.Checkin{}, fmt.Errorf("failed to get active checkin: %w", err)
	}

	return row, nil
}

// ListByEmployeeOnDate implements checkin.LedgerRepository. Date matching is
// a UTC half-open window so the checkin_time index stays usable.
func (r *checkinRepository) ListByEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) ([]checkin.Checkin, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.AddDate(0, 0, 1)

	query := `
		SELECT c.id, c.employee_id, c.client_id, c.checkin_time, c.checkout_time,
			   c.distance_from_client, c.status, c.notes, c.created_at, c.updated_at,
			   cl.name AS client_name
		FROM checkins c
		LEFT JOIN clients cl ON cl.id = c.client_id
		WHERE c.employee_id = $1
		  AND c.checkin_time >= $2 AND c.checkin_time < $3
		ORDER BY c.checkin_time ASC
	`

	rows, err := r.db.Query(ctx, query, employeeID, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	checkins := make([]checkin.Checkin, 0)
	for rows.Next() {
		var row checkin.Checkin
		if err := rows.Scan(
			&row.ID, &row.EmployeeID, &row.ClientID, &row.CheckinTime, &row.CheckoutTime,
			&row.DistanceFromClient, &row.Status, &row.Notes, &row.CreatedAt, &row.UpdatedAt,
			&row.ClientName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan checkin row: %w", err)
		}
		checkins = append(checkins, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checkin rows: %w", err)
	}

	return checkins, nil
}
