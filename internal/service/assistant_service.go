package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/planner"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/pkg/entity"
	"github.com/lefi/digital-brain/pkg/presentation"
)

type AssistantService struct {
	blocksRepo repository.BlocksRepositoryI
	styles     *presentation.Mapping
}

func NewAssistantService(blocksRepo repository.BlocksRepositoryI, styles *presentation.Mapping) *AssistantService {
	if blocksRepo == nil {
		log.Fatal("provided nil blocksRepo")
	}
	if styles == nil {
		styles = presentation.Default()
	}
	return &AssistantService{
		blocksRepo: blocksRepo,
		styles:     styles,
	}
}

// PlanDay validates the aggregate time budget of the selected activities
// against the day window minus the kept blocks, then creates the whole
// batch of sequential blocks in one transaction. An infeasible plan is
// refused before any write.
func (as *AssistantService) PlanDay(ctx context.Context, uid uuid.UUID, req *PlanDayRequest) ([]*entity.Block, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	breakMinutes := 0
	if req.IncludeBreaks {
		breakMinutes = req.BreakMinutes
		if breakMinutes == 0 {
			breakMinutes = 15
		}
	}
	kept := make([]*entity.Block, 0, len(req.KeptBlockIDs))
	for _, id := range req.KeptBlockIDs {
		block, err := as.blocksRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, errorvalues.ErrBlockNotFound) {
				return nil, err
			}
			return nil, errors.New("blocks repository error: " + err.Error())
		}
		if block.UserID != uid {
			return nil, errorvalues.ErrWrongOwner
		}
		kept = append(kept, block)
	}
	activities := make([]planner.Activity, 0, len(req.Activities))
	for _, a := range req.Activities {
		activities = append(activities, planner.Activity{
			Name:            a.Name,
			DurationMinutes: a.DurationMinutes,
			Category:        a.Category,
		})
	}
	budget, err := planner.ComputeBudget(req.WindowStart, req.WindowEnd, kept, activities, breakMinutes)
	if err != nil {
		return nil, err
	}
	if !budget.Feasible() {
		return nil, errorvalues.ErrInfeasiblePlan
	}
	slots, err := planner.Place(req.Date, req.WindowStart, activities, breakMinutes)
	if err != nil {
		return nil, err
	}
	blocks := make([]*entity.Block, 0, len(slots))
	for _, slot := range slots {
		style := as.styles.Lookup(slot.Activity.Category)
		blocks = append(blocks, &entity.Block{
			UserID:    uid,
			Title:     slot.Activity.Name,
			StartTime: slot.Start,
			EndTime:   slot.End,
			Tier:      2,
			Status:    entity.BlockStatusPending,
			Source:    entity.BlockSourceAssistant,
			Icon:      style.Icon,
			Color:     style.Color,
		})
	}
	created, err := as.blocksRepo.CreateBatch(ctx, blocks)
	if err != nil {
		return nil, errors.New("blocks repository error: " + err.Error())
	}
	return created, nil
}
