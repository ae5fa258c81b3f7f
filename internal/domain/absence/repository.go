package absence

import "context"

type AbsenceTypeRepository interface {
	Create(ctx context.Context, label string) (AbsenceType, error)
	GetByID(ctx context.Context, id string) (AbsenceType, error)
	// List returns absence types ordered by label.
	List(ctx context.Context) ([]AbsenceType, error)
	Update(ctx context.Context, id string, label string) error
	Delete(ctx context.Context, id string) error
}
