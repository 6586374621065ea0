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

type NeedsService struct {
	repo repository.NeedsRepositoryI
}

func NewNeedsService(needsRepo repository.NeedsRepositoryI) *NeedsService {
	if needsRepo == nil {
		log.Fatal("provided nil needsRepo")
	}
	return &NeedsService{
		repo: needsRepo,
	}
}

func (ns *NeedsService) CreateNeed(ctx context.Context, uid uuid.UUID, req *BasicNeedRequest) (*entity.BasicNeed, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	need, err := ns.repo.Create(ctx, &entity.BasicNeed{
		UserID:          uid,
		Type:            req.Type,
		Hour:            req.Hour,
		DurationMinutes: req.DurationMinutes,
		FlexibleRange:   req.FlexibleRange,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("needs repository error: " + err.Error())
	}
	return need, nil
}

func (ns *NeedsService) ListNeeds(ctx context.Context, uid uuid.UUID) ([]*entity.BasicNeed, error) {
	needs, err := ns.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, errors.New("needs repository error: " + err.Error())
	}
	return needs, nil
}

func (ns *NeedsService) DeleteNeed(ctx context.Context, needID, userID uuid.UUID) error {
	need, err := ns.repo.GetByID(ctx, needID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNeedNotFound) {
			return err
		}
		return errors.New("needs repository error: " + err.Error())
	}
	if need.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	err = ns.repo.Delete(ctx, needID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNeedNotFound) {
			return err
		}
		return errors.New("needs repository error: " + err.Error())
	}
	return nil
}
