package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/pkg/entity"
)

type BlocksService struct {
	repo repository.BlocksRepositoryI
}

func NewBlocksService(blocksRepo repository.BlocksRepositoryI) *BlocksService {
	if blocksRepo == nil {
		log.Fatal("provided nil blocksRepo")
	}
	return &BlocksService{
		repo: blocksRepo,
	}
}

func (bs *BlocksService) CreateBlock(ctx context.Context, uid uuid.UUID, req *CreateBlockRequest) (*entity.Block, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	tier := req.Tier
	if tier == 0 {
		tier = 2
	}
	block, err := bs.repo.Create(ctx, &entity.Block{
		UserID:     uid,
		Title:      req.Title,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Tier:       tier,
		Status:     entity.BlockStatusPending,
		Source:     entity.BlockSourceManual,
		CategoryID: req.CategoryID,
		Icon:       req.Icon,
		Color:      req.Color,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("blocks repository error: " + err.Error())
	}
	return block, nil
}

func (bs *BlocksService) GetBlock(ctx context.Context, blockID, userID uuid.UUID) (*entity.Block, error) {
	block, err := bs.repo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrBlockNotFound) {
			return nil, err
		}
		return nil, errors.New("blocks repository error: " + err.Error())
	}
	if block.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return block, nil
}

func (bs *BlocksService) ListBlocks(ctx context.Context, uid uuid.UUID, date *time.Time, status string, pagination PaginationOpts) ([]*entity.Block, error) {
	blocks, err := bs.repo.ListByUser(ctx, uid, repository.BlocksFilter{
		Date:   date,
		Status: status,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		return nil, errors.New("blocks repository error: " + err.Error())
	}
	return blocks, nil
}

func (bs *BlocksService) UpdateBlock(ctx context.Context, blockID, userID uuid.UUID, req *UpdateBlockRequest) (*entity.Block, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	block, err := bs.GetBlock(ctx, blockID, userID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		block.Title = *req.Title
	}
	if req.StartTime != nil {
		block.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		block.EndTime = *req.EndTime
	}
	if !block.EndTime.After(block.StartTime) {
		return nil, errorvalues.ErrEndBeforeStart
	}
	if req.Tier != nil {
		block.Tier = *req.Tier
	}
	if req.Status != nil {
		block.Status = *req.Status
	}
	if req.CategoryID != nil {
		block.CategoryID = req.CategoryID
	}
	if req.Icon != nil {
		block.Icon = *req.Icon
	}
	if req.Color != nil {
		block.Color = *req.Color
	}
	err = bs.repo.Update(ctx, block)
	if err != nil {
		if errors.Is(err, errorvalues.ErrBlockNotFound) {
			return nil, err
		}
		return nil, errors.New("blocks repository error: " + err.Error())
	}
	return block, nil
}

func (bs *BlocksService) DeleteBlock(ctx context.Context, blockID, userID uuid.UUID) error {
	_, err := bs.GetBlock(ctx, blockID, userID)
	if err != nil {
		return err
	}
	// Deleting a materialized block never touches the routine entry that
	// produced it; the next materialization for the same day recreates it.
	err = bs.repo.Delete(ctx, blockID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrBlockNotFound) {
			return err
		}
		return errors.New("blocks repository error: " + err.Error())
	}
	return nil
}
