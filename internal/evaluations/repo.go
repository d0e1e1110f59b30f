package evaluations

import "context"

// Repo defines persistence operations for evaluations.
type Repo interface {
	Create(ctx context.Context, ev Evaluation) error
	GetByID(ctx context.Context, id string) (Evaluation, error)
	List(ctx context.Context, limit, offset int) ([]Evaluation, error)
}
