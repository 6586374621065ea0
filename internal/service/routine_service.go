package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/planner"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/pkg/entity"
)

type RoutineService struct {
	routineRepo repository.RoutineRepositoryI
	blocksRepo  repository.BlocksRepositoryI
}

func NewRoutineService(routineRepo repository.RoutineRepositoryI, blocksRepo repository.BlocksRepositoryI) *RoutineService {
	if routineRepo == nil || blocksRepo == nil {
		log.Fatal("on routine service provided nil repos")
	}
	return &RoutineService{
		routineRepo: routineRepo,
		blocksRepo:  blocksRepo,
	}
}

func (rs *RoutineService) CreateEntry(ctx context.Context, uid uuid.UUID, req *RoutineEntryRequest) (*entity.RoutineEntry, error) {
	if err := validateEntryTimes(req); err != nil {
		return nil, err
	}
	state := req.State
	if state == "" {
		state = entity.RoutineStateActive
	}
	// Fixed blocks are inflexible regardless of what the client sent
	inflexible := req.Inflexible
	if req.Type == entity.RoutineTypeFixed {
		inflexible = true
	}
	entry, err := rs.routineRepo.Create(ctx, &entity.RoutineEntry{
		UserID:       uid,
		ActivityName: req.ActivityName,
		Days:         req.Days,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Inflexible:   inflexible,
		NeedReminder: req.NeedReminder,
		Type:         req.Type,
		State:        state,
		Location:     req.Location,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("routine repository error: " + err.Error())
	}
	return entry, nil
}

func (rs *RoutineService) ListEntries(ctx context.Context, uid uuid.UUID) ([]*entity.RoutineEntry, error) {
	entries, err := rs.routineRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, errors.New("routine repository error: " + err.Error())
	}
	return entries, nil
}

func (rs *RoutineService) UpdateEntry(ctx context.Context, entryID, userID uuid.UUID, req *RoutineEntryRequest) (*entity.RoutineEntry, error) {
	if err := validateEntryTimes(req); err != nil {
		return nil, err
	}
	entry, err := rs.getOwned(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	entry.ActivityName = req.ActivityName
	entry.Days = req.Days
	entry.StartTime = req.StartTime
	entry.EndTime = req.EndTime
	entry.Inflexible = req.Inflexible || req.Type == entity.RoutineTypeFixed
	entry.NeedReminder = req.NeedReminder
	entry.Type = req.Type
	if req.State != "" {
		entry.State = req.State
	}
	entry.Location = req.Location
	entry.CategoryID = req.CategoryID
	err = rs.routineRepo.Update(ctx, entry)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return nil, err
		}
		return nil, errors.New("routine repository error: " + err.Error())
	}
	return entry, nil
}

func (rs *RoutineService) DeleteEntry(ctx context.Context, entryID, userID uuid.UUID) error {
	_, err := rs.getOwned(ctx, entryID, userID)
	if err != nil {
		return err
	}
	err = rs.routineRepo.Delete(ctx, entryID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return err
		}
		return errors.New("routine repository error: " + err.Error())
	}
	return nil
}

// Materialize ensures every routine entry due on the date has a concrete
// block. The insert is an upsert keyed by (user, routine entry, date), so
// repeated and concurrent invocations cannot double-insert; a block the
// user deleted earlier the same day is recreated.
func (rs *RoutineService) Materialize(ctx context.Context, uid uuid.UUID, date time.Time) (int, error) {
	entries, err := rs.routineRepo.ListByUser(ctx, uid)
	if err != nil {
		return 0, errors.New("routine repository error: " + err.Error())
	}
	inserted := 0
	for _, entry := range planner.DueEntries(entries, date) {
		block, err := planner.Materialize(entry, date)
		if err != nil {
			return inserted, errors.New("projecting entry " + entry.ID.String() + " error: " + err.Error())
		}
		ok, err := rs.blocksRepo.UpsertMaterialized(ctx, block)
		if err != nil {
			return inserted, errors.New("blocks repository error: " + err.Error())
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

func (rs *RoutineService) getOwned(ctx context.Context, entryID, userID uuid.UUID) (*entity.RoutineEntry, error) {
	entry, err := rs.routineRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return nil, err
		}
		return nil, errors.New("routine repository error: " + err.Error())
	}
	if entry.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return entry, nil
}

func validateEntryTimes(req *RoutineEntryRequest) error {
	if err := validateStruct(*req); err != nil {
		return err
	}
	start, err := planner.ParseClock(req.StartTime)
	if err != nil {
		return err
	}
	end, err := planner.ParseClock(req.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return errorvalues.ErrEndBeforeStart
	}
	return nil
}
