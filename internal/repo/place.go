package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"placetrack/internal/models"
)

// ==========================
// PlaceRepo
// ==========================
type PlaceRepo struct {
	DB *sql.DB
}

func NewPlaceRepo(db *sql.DB) *PlaceRepo {
	return &PlaceRepo{DB: db}
}

// ==========================
// Create Place
// ==========================
// Create inserts a place with a slug derived from the name. Slugs are unique
// per user; a name whose slug is already taken returns ErrDuplicate.
func (r *PlaceRepo) Create(ctx context.Context, userID, name string) (*models.Place, error) {
	slug := models.Slugify(name)

	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM places WHERE user_id = $1 AND slug = $2)`,
		userID, slug,
	).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	query := `
		INSERT INTO places (id, user_id, name, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, slug, created_at
	`

	place := &models.Place{}

	err = r.DB.QueryRowContext(ctx, query, uuid.NewString(), userID, name, slug).
		Scan(&place.ID, &place.UserID, &place.Name, &place.Slug, &place.CreatedAt)

	if err != nil {
		return nil, err
	}

	return place, nil
}

// ==========================
// List By User
// ==========================
func (r *PlaceRepo) ListByUser(ctx context.Context, userID string) ([]models.Place, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, name, slug, created_at FROM places WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Slug, &p.CreatedAt); err != nil {
			return nil, err
		}
		places = append(places, p)
	}

	return places, rows.Err()
}

// ==========================
// Get By Slug
// ==========================
func (r *PlaceRepo) GetBySlug(ctx context.Context, userID, slug string) (*models.Place, error) {
	query := `
		SELECT id, user_id, name, slug, created_at
		FROM places
		WHERE user_id = $1 AND slug = $2
	`

	place := &models.Place{}

	err := r.DB.QueryRowContext(ctx, query, userID, slug).
		Scan(&place.ID, &place.UserID, &place.Name, &place.Slug, &place.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return place, nil
}

// ==========================
// Get By ID
// ==========================
func (r *PlaceRepo) GetByID(ctx context.Context, userID, id string) (*models.Place, error) {
	query := `
		SELECT id, user_id, name, slug, created_at
		FROM places
		WHERE user_id = $1 AND id = $2
	`

	place := &models.Place{}

	err := r.DB.QueryRowContext(ctx, query, userID, id).
		Scan(&place.ID, &place.UserID, &place.Name, &place.Slug, &place.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return place, nil
}

// ==========================
// Delete Place
// ==========================
// Delete removes a place by id. Records cascade at the database level.
func (r *PlaceRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM places WHERE user_id = $1 AND id = $2`,
		userID, id,
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

// ==========================
// Count By User
// ==========================
func (r *PlaceRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM places WHERE user_id = $1`,
		userID,
	).Scan(&count)
	return count, err
}
