package court

import "time"

// Court is an externally managed catalog entry. This service only reads it to
// resolve court references and hourly rates; court management lives elsewhere.
type Court struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Location        string    `db:"location" json:"location"`
	HourlyRateCents int64     `db:"hourly_rate_cents" json:"hourly_rate_cents"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
