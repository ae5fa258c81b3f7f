package timeslot

import "context"

type TimeSlotRepository interface {
	Create(ctx context.Context, slot TimeSlot) (TimeSlot, error)
	GetByID(ctx context.Context, id string) (TimeSlot, error)
	List(ctx context.Context) ([]TimeSlot, error)
	Update(ctx context.Context, slot TimeSlot) error
	Delete(ctx context.Context, id string) error
}
