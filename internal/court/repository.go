package court

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCourtNotFound = errors.New("court not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCourtByID(ctx context.Context, id string) (*Court, error) {
	query := `
		SELECT id, name, location, hourly_rate_cents, created_at
		FROM courts
		WHERE id = $1
	`

	var court Court
	err := r.db.GetContext(ctx, &court, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	return &court, nil
}
