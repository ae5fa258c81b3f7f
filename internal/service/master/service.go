package master

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/storeplan/planning-backend-go/internal/domain/absence"
	"github.com/storeplan/planning-backend-go/internal/domain/store"
	"github.com/storeplan/planning-backend-go/internal/domain/timeslot"
	"github.com/storeplan/planning-backend-go/internal/pkg/cache"
	"github.com/storeplan/planning-backend-go/internal/pkg/validator"
)

// Cache keys of the registry lists
const (
	CacheKeyStores       = "registry:stores"
	CacheKeyTimeSlots    = "registry:time_slots"
	CacheKeyAbsenceTypes = "registry:absence_types"
)

type MasterService interface {
	// Store operations
	CreateStore(ctx context.Context, req store.CreateStoreRequest) (store.StoreResponse, error)
	GetStore(ctx context.Context, id string) (store.StoreResponse, error)
	ListStores(ctx context.Context) ([]store.StoreResponse, error)
	UpdateStore(ctx context.Context, req store.UpdateStoreRequest) (store.StoreResponse, error)
	DeleteStore(ctx context.Context, id string) error

	// Time slot operations
	CreateTimeSlot(ctx context.Context, req timeslot.TimeSlotRequest) (timeslot.TimeSlotResponse, error)
	GetTimeSlot(ctx context.Context, id string) (timeslot.TimeSlotResponse, error)
	ListTimeSlots(ctx context.Context) ([]timeslot.TimeSlotResponse, error)
	UpdateTimeSlot(ctx context.Context, req timeslot.TimeSlotRequest) (timeslot.TimeSlotResponse, error)
	DeleteTimeSlot(ctx context.Context, id string) error

	// Absence type operations
	CreateAbsenceType(ctx context.Context, req absence.CreateAbsenceTypeRequest) (absence.AbsenceTypeResponse, error)
	GetAbsenceType(ctx context.Context, id string) (absence.AbsenceTypeResponse, error)
	ListAbsenceTypes(ctx context.Context) ([]absence.AbsenceTypeResponse, error)
	UpdateAbsenceType(ctx context.Context, req absence.UpdateAbsenceTypeRequest) (absence.AbsenceTypeResponse, error)
	DeleteAbsenceType(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	storeRepo    store.StoreRepository
	timeSlotRepo timeslot.TimeSlotRepository
	absenceRepo  absence.AbsenceTypeRepository
	cache        cache.Cache
}

func NewMasterService(
	storeRepo store.StoreRepository,
	timeSlotRepo timeslot.TimeSlotRepository,
	absenceRepo absence.AbsenceTypeRepository,
	c cache.Cache,
) MasterService {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &masterServiceImpl{
		storeRepo:    storeRepo,
		timeSlotRepo: timeSlotRepo,
		absenceRepo:  absenceRepo,
		cache:        c,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// cachedList serves a list from the cache, loading and storing it on a miss.
// Cache failures only cost a database round trip.
func cachedList[T any](ctx context.Context, c cache.Cache, key string, load func(ctx context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	err := c.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("Registry cache read failed", "key", key, "error", err)
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	if err := c.Set(ctx, key, items); err != nil {
		slog.Warn("Registry cache write failed", "key", key, "error", err)
	}
	return items, nil
}

func (s *masterServiceImpl) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		slog.Warn("Registry cache invalidation failed", "key", key, "error", err)
	}
}

// ==================== STORE OPERATIONS ====================

func (s *masterServiceImpl) CreateStore(ctx context.Context, req store.CreateStoreRequest) (store.StoreResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return store.StoreResponse{}, err
	}

	created, err := s.storeRepo.Create(ctx, store.Store{Name: req.Name, Address: req.Address})
	if err != nil {
		if isUniqueViolation(err) {
			return store.StoreResponse{}, store.ErrStoreNameExists
		}
		return store.StoreResponse{}, fmt.Errorf("failed to create store: %w", err)
	}
	s.invalidate(ctx, CacheKeyStores)

	return store.NewStoreResponse(created), nil
}

func (s *masterServiceImpl) GetStore(ctx context.Context, id string) (store.StoreResponse, error) {
	if !validator.IsValidUUID(id) {
		return store.StoreResponse{}, store.ErrStoreNotFound
	}

	entity, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return store.StoreResponse{}, err
	}
	return store.NewStoreResponse(entity), nil
}

func (s *masterServiceImpl) ListStores(ctx context.Context) ([]store.StoreResponse, error) {
	return cachedList(ctx, s.cache, CacheKeyStores, func(ctx context.Context) ([]store.StoreResponse, error) {
		stores, err := s.storeRepo.List(ctx)
		if err != nil {
			return nil, err
		}

		responses := make([]store.StoreResponse, 0, len(stores))
		for _, st := range stores {
			responses = append(responses, store.NewStoreResponse(st))
		}
		return responses, nil
	})
}

func (s *masterServiceImpl) UpdateStore(ctx context.Context, req store.UpdateStoreRequest) (store.StoreResponse, error) {
	if err := req.Validate(); err != nil {
		return store.StoreResponse{}, err
	}

	if err := s.storeRepo.Update(ctx, req); err != nil {
		if isUniqueViolation(err) {
			return store.StoreResponse{}, store.ErrStoreNameExists
		}
		return store.StoreResponse{}, err
	}
	s.invalidate(ctx, CacheKeyStores)

	return s.GetStore(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteStore(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return store.ErrStoreNotFound
	}

	if err := s.storeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, CacheKeyStores)
	return nil
}

// ==================== TIME SLOT OPERATIONS ====================

func (s *masterServiceImpl) CreateTimeSlot(ctx context.Context, req timeslot.TimeSlotRequest) (timeslot.TimeSlotResponse, error) {
	if err := req.Validate(); err != nil {
		return timeslot.TimeSlotResponse{}, err
	}

	created, err := s.timeSlotRepo.Create(ctx, req.ToEntity())
	if err != nil {
		if isUniqueViolation(err) {
			return timeslot.TimeSlotResponse{}, timeslot.ErrTimeSlotExists
		}
		return timeslot.TimeSlotResponse{}, fmt.Errorf("failed to create time slot: %w", err)
	}
	s.invalidate(ctx, CacheKeyTimeSlots)

	return timeslot.NewTimeSlotResponse(created), nil
}

func (s *masterServiceImpl) GetTimeSlot(ctx context.Context, id string) (timeslot.TimeSlotResponse, error) {
	if !validator.IsValidUUID(id) {
		return timeslot.TimeSlotResponse{}, timeslot.ErrTimeSlotNotFound
	}

	entity, err := s.timeSlotRepo.GetByID(ctx, id)
	if err != nil {
		return timeslot.TimeSlotResponse{}, err
	}
	return timeslot.NewTimeSlotResponse(entity), nil
}

func (s *masterServiceImpl) ListTimeSlots(ctx context.Context) ([]timeslot.TimeSlotResponse, error) {
	return cachedList(ctx, s.cache, CacheKeyTimeSlots, func(ctx context.Context) ([]timeslot.TimeSlotResponse, error) {
		slots, err := s.timeSlotRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		timeslot.Sort(slots)

		responses := make([]timeslot.TimeSlotResponse, 0, len(slots))
		for _, slot := range slots {
			responses = append(responses, timeslot.NewTimeSlotResponse(slot))
		}
		return responses, nil
	})
}

func (s *masterServiceImpl) UpdateTimeSlot(ctx context.Context, req timeslot.TimeSlotRequest) (timeslot.TimeSlotResponse, error) {
	if err := req.Validate(); err != nil {
		return timeslot.TimeSlotResponse{}, err
	}

	entity := req.ToEntity()
	if err := s.timeSlotRepo.Update(ctx, entity); err != nil {
		if isUniqueViolation(err) {
			return timeslot.TimeSlotResponse{}, timeslot.ErrTimeSlotExists
		}
		return timeslot.TimeSlotResponse{}, err
	}
	s.invalidate(ctx, CacheKeyTimeSlots)

	return timeslot.NewTimeSlotResponse(entity), nil
}

func (s *masterServiceImpl) DeleteTimeSlot(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return timeslot.ErrTimeSlotNotFound
	}

	if err := s.timeSlotRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, CacheKeyTimeSlots)
	return nil
}

// ==================== ABSENCE TYPE OPERATIONS ====================

func (s *masterServiceImpl) CreateAbsenceType(ctx context.Context, req absence.CreateAbsenceTypeRequest) (absence.AbsenceTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceTypeResponse{}, err
	}

	created, err := s.absenceRepo.Create(ctx, req.Label)
	if err != nil {
		if isUniqueViolation(err) {
			return absence.AbsenceTypeResponse{}, absence.ErrAbsenceTypeLabelExists
		}
		return absence.AbsenceTypeResponse{}, fmt.Errorf("failed to create absence type: %w", err)
	}
	s.invalidate(ctx, CacheKeyAbsenceTypes)

	return absence.NewAbsenceTypeResponse(created), nil
}

func (s *masterServiceImpl) GetAbsenceType(ctx context.Context, id string) (absence.AbsenceTypeResponse, error) {
	if !validator.IsValidUUID(id) {
		return absence.AbsenceTypeResponse{}, absence.ErrAbsenceTypeNotFound
	}

	entity, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return absence.AbsenceTypeResponse{}, err
	}
	return absence.NewAbsenceTypeResponse(entity), nil
}

func (s *masterServiceImpl) ListAbsenceTypes(ctx context.Context) ([]absence.AbsenceTypeResponse, error) {
	return cachedList(ctx, s.cache, CacheKeyAbsenceTypes, func(ctx context.Context) ([]absence.AbsenceTypeResponse, error) {
		types, err := s.absenceRepo.List(ctx)
		if err != nil {
			return nil, err
		}

		responses := make([]absence.AbsenceTypeResponse, 0, len(types))
		for _, a := range types {
			responses = append(responses, absence.NewAbsenceTypeResponse(a))
		}
		return responses, nil
	})
}

func (s *masterServiceImpl) UpdateAbsenceType(ctx context.Context, req absence.UpdateAbsenceTypeRequest) (absence.AbsenceTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceTypeResponse{}, err
	}

	if err := s.absenceRepo.Update(ctx, req.ID, req.Label); err != nil {
		if isUniqueViolation(err) {
			return absence.AbsenceTypeResponse{}, absence.ErrAbsenceTypeLabelExists
		}
		return absence.AbsenceTypeResponse{}, err
	}
	s.invalidate(ctx, CacheKeyAbsenceTypes)

	return absence.AbsenceTypeResponse{ID: req.ID, Label: req.Label}, nil
}

func (s *masterServiceImpl) DeleteAbsenceType(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return absence.ErrAbsenceTypeNotFound
	}

	if err := s.absenceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, CacheKeyAbsenceTypes)
	return nil
}
