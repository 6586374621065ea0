package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/service"
	"github.com/lefi/digital-brain/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDay(t *testing.T) {
	blocksMock := newBlocksRepoMock()
	s := service.NewAssistantService(blocksMock, nil)
	ctx := context.Background()
	date := monday
	t.Run("feasible plan creates sequential blocks with breaks", func(t *testing.T) {
		blocks, err := s.PlanDay(ctx, userID, &service.PlanDayRequest{
			Date:        date,
			WindowStart: "07:00",
			WindowEnd:   "22:00",
			Activities: []service.PlanActivity{
				{Name: "Deep work", DurationMinutes: 45, Category: "Trabajo"},
				{Name: "Reading", DurationMinutes: 60, Category: "Estudio"},
			},
			IncludeBreaks: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, len(blocks))
		assert.Equal(t, 7, blocks[0].StartTime.Hour())
		assert.Equal(t, 45, blocks[0].EndTime.Minute())
		// Default 15 minute break between activities
		assert.Equal(t, 8, blocks[1].StartTime.Hour())
		assert.Equal(t, 0, blocks[1].StartTime.Minute())
		for _, b := range blocks {
			assert.Equal(t, entity.BlockSourceAssistant, b.Source)
			assert.Equal(t, entity.BlockStatusPending, b.Status)
			assert.Equal(t, 2, b.Tier)
			assert.NotEmpty(t, b.Icon)
			assert.NotEmpty(t, b.Color)
		}
	})
	t.Run("infeasible plan creates nothing", func(t *testing.T) {
		before := len(blocksMock.batches)
		_, err := s.PlanDay(ctx, userID, &service.PlanDayRequest{
			Date:        date,
			WindowStart: "07:00",
			WindowEnd:   "08:00",
			Activities: []service.PlanActivity{
				{Name: "Deep work", DurationMinutes: 45},
				{Name: "Reading", DurationMinutes: 60},
			},
			IncludeBreaks: true,
		})
		assert.ErrorIs(t, err, errorvalues.ErrInfeasiblePlan)
		assert.Equal(t, before, len(blocksMock.batches))
	})
	t.Run("without breaks the same window fits more", func(t *testing.T) {
		blocks, err := s.PlanDay(ctx, userID, &service.PlanDayRequest{
			Date:        date,
			WindowStart: "07:00",
			WindowEnd:   "09:00",
			Activities: []service.PlanActivity{
				{Name: "Deep work", DurationMinutes: 60},
				{Name: "Reading", DurationMinutes: 60},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, len(blocks))
		assert.Equal(t, blocks[0].EndTime, blocks[1].StartTime)
	})
	t.Run("kept blocks eat into the window", func(t *testing.T) {
		occupied := &entity.Block{
			UserID:    userID,
			Title:     "Standup",
			StartTime: time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			Status:    entity.BlockStatusPending,
			Source:    entity.BlockSourceManual,
		}
		created, err := blocksMock.Create(ctx, occupied)
		require.NoError(t, err)
		blocksMock.materialized[created.ID.String()] = created
		// 90 minutes don't fit once the kept hour is subtracted from the
		// two hour window
		_, err = s.PlanDay(ctx, userID, &service.PlanDayRequest{
			Date:         date,
			WindowStart:  "07:00",
			WindowEnd:    "09:00",
			KeptBlockIDs: []uuid.UUID{created.ID},
			Activities: []service.PlanActivity{
				{Name: "Deep work", DurationMinutes: 90},
			},
		})
		assert.ErrorIs(t, err, errorvalues.ErrInfeasiblePlan)
	})
	t.Run("unknown kept block", func(t *testing.T) {
		blocksMock.state = stateNotFoundError
		_, err := s.PlanDay(ctx, userID, &service.PlanDayRequest{
			Date:         date,
			WindowStart:  "07:00",
			WindowEnd:    "09:00",
			KeptBlockIDs: []uuid.UUID{uuid.New()},
			Activities: []service.PlanActivity{
				{Name: "Deep work", DurationMinutes: 30},
			},
		})
		assert.ErrorIs(t, err, errorvalues.ErrBlockNotFound)
		blocksMock.state = stateSuccess
	})
	t.Run("missing activities", func(t *testing.T) {
		_, err := s.PlanDay(ctx, userID, &service.PlanDayRequest{
			Date:        date,
			WindowStart: "07:00",
			WindowEnd:   "08:00",
		})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}
