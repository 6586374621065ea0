package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/pkg/entity"
)

type SleepService struct {
	repo repository.SleepRepositoryI
}

func NewSleepService(sleepRepo repository.SleepRepositoryI) *SleepService {
	if sleepRepo == nil {
		log.Fatal("provided nil sleepRepo")
	}
	return &SleepService{
		repo: sleepRepo,
	}
}

func (ss *SleepService) Get(ctx context.Context, uid uuid.UUID) (*entity.SleepSettings, error) {
	settings, err := ss.repo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSleepSettingsNotFound) {
			return nil, err
		}
		return nil, errors.New("sleep repository error: " + err.Error())
	}
	return settings, nil
}

func (ss *SleepService) Save(ctx context.Context, uid uuid.UUID, req *SleepSettingsRequest) (*entity.SleepSettings, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	settings := &entity.SleepSettings{
		UserID:           uid,
		PreferredBedtime: req.PreferredBedtime,
		CycleMinutes:     req.CycleMinutes,
		AlarmScheme:      req.AlarmScheme,
		SleepGoals:       req.SleepGoals,
		LastSleepStart:   req.LastSleepStart,
		LastWake:         req.LastWake,
	}
	err := ss.repo.Upsert(ctx, settings)
	if err != nil {
		return nil, errors.New("sleep repository error: " + err.Error())
	}
	return settings, nil
}
