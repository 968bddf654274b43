package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"placetrack/internal/models"
)

// ==========================
// RecordRepo
// ==========================
type RecordRepo struct {
	DB *sql.DB
}

func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{DB: db}
}

// ==========================
// Create Record
// ==========================
func (r *RecordRepo) Create(ctx context.Context, placeID string, date time.Time, moneyGiven, moneyUsed, powerUnits float64) (*models.Record, error) {
	query := `
		INSERT INTO records (id, place_id, date, money_given, money_used, power_units)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, place_id, date, money_given, money_used, power_units, created_at
	`

	record := &models.Record{}

	err := r.DB.QueryRowContext(ctx, query, uuid.NewString(), placeID, date, moneyGiven, moneyUsed, powerUnits).
		Scan(&record.ID, &record.PlaceID, &record.Date, &record.MoneyGiven, &record.MoneyUsed, &record.PowerUnits, &record.CreatedAt)

	if err != nil {
		return nil, err
	}

	return record, nil
}

// ==========================
// List By Place
// ==========================
func (r *RecordRepo) ListByPlace(ctx context.Context, placeID string) ([]models.Record, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, place_id, date, money_given, money_used, power_units, created_at
		 FROM records WHERE place_id = $1 ORDER BY date DESC`,
		placeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ==========================
// List By User
// ==========================
// ListByUser returns all records across a user's places, for in-memory
// aggregation.
func (r *RecordRepo) ListByUser(ctx context.Context, userID string) ([]models.Record, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.place_id, r.date, r.money_given, r.money_used, r.power_units, r.created_at
		 FROM records r
		 JOIN places p ON p.id = r.place_id
		 WHERE p.user_id = $1
		 ORDER BY r.date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ==========================
// Delete Record
// ==========================
// Delete removes a record only when it belongs to one of the user's places.
func (r *RecordRepo) Delete(ctx context.Context, userID, recordID string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM records r
		 USING places p
		 WHERE r.id = $1 AND r.place_id = p.id AND p.user_id = $2`,
		recordID, userID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func scanRecords(rows *sql.Rows) ([]models.Record, error) {
	var records []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.PlaceID, &rec.Date, &rec.MoneyGiven, &rec.MoneyUsed, &rec.PowerUnits, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
