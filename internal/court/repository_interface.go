package court

import "context"

type Repository interface {
	GetCourtByID(ctx context.Context, id string) (*Court, error)
}
