package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// HotelRepo encapsulates read-only queries against hotels.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// List returns all hotels ordered by name.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		var image sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		if image.Valid {
			img := image.String
			h.Image = &img
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hotels, nil
}

// GetByID fetches a hotel by its ID.  ErrNotFound is returned when no
// row exists.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels WHERE id = ?`
	var h model.Hotel
	var image sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &image, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if image.Valid {
		img := image.String
		h.Image = &img
	}
	return &h, nil
}
