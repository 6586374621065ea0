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

func TestCreateBlock(t *testing.T) {
	blocksMock := newBlocksRepoMock()
	s := service.NewBlocksService(blocksMock)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	t.Run("success with defaults", func(t *testing.T) {
		block, err := s.CreateBlock(ctx, userID, &service.CreateBlockRequest{
			Title:     "Deep work",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, userID, block.UserID)
		assert.Equal(t, 2, block.Tier)
		assert.Equal(t, entity.BlockStatusPending, block.Status)
		assert.Equal(t, entity.BlockSourceManual, block.Source)
	})
	t.Run("end before start", func(t *testing.T) {
		_, err := s.CreateBlock(ctx, userID, &service.CreateBlockRequest{
			Title:     "Deep work",
			StartTime: start,
			EndTime:   start.Add(-time.Hour),
		})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
	t.Run("missing title", func(t *testing.T) {
		_, err := s.CreateBlock(ctx, userID, &service.CreateBlockRequest{
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
	t.Run("db error", func(t *testing.T) {
		blocksMock.state = stateDBError
		_, err := s.CreateBlock(ctx, userID, &service.CreateBlockRequest{
			Title:     "Deep work",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		assert.Error(t, err)
		blocksMock.state = stateSuccess
	})
}

func TestGetBlock(t *testing.T) {
	blocksMock := newBlocksRepoMock()
	s := service.NewBlocksService(blocksMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		block, err := s.GetBlock(ctx, id, userID)
		require.NoError(t, err)
		assert.Equal(t, id, block.ID)
	})
	t.Run("wrong owner", func(t *testing.T) {
		blocksMock.state = stateWrongOwner
		_, err := s.GetBlock(ctx, uuid.New(), userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
		blocksMock.state = stateSuccess
	})
	t.Run("not found", func(t *testing.T) {
		blocksMock.state = stateNotFoundError
		_, err := s.GetBlock(ctx, uuid.New(), userID)
		assert.ErrorIs(t, err, errorvalues.ErrBlockNotFound)
		blocksMock.state = stateSuccess
	})
}

func TestUpdateBlock(t *testing.T) {
	blocksMock := newBlocksRepoMock()
	s := service.NewBlocksService(blocksMock)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	created, err := blocksMock.Create(ctx, &entity.Block{
		UserID:    userID,
		Title:     "Deep work",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    entity.BlockStatusPending,
		Tier:      2,
	})
	require.NoError(t, err)
	blocksMock.materialized[created.ID.String()] = created
	t.Run("status transition keeps other fields", func(t *testing.T) {
		completed := entity.BlockStatusCompleted
		block, err := s.UpdateBlock(ctx, created.ID, userID, &service.UpdateBlockRequest{
			Status: &completed,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.BlockStatusCompleted, block.Status)
		assert.Equal(t, "Deep work", block.Title)
		assert.Equal(t, start, block.StartTime)
	})
	t.Run("end before start", func(t *testing.T) {
		badEnd := start.Add(-time.Hour)
		_, err := s.UpdateBlock(ctx, created.ID, userID, &service.UpdateBlockRequest{
			EndTime: &badEnd,
		})
		assert.ErrorIs(t, err, errorvalues.ErrEndBeforeStart)
	})
	t.Run("invalid tier", func(t *testing.T) {
		tier := 9
		_, err := s.UpdateBlock(ctx, created.ID, userID, &service.UpdateBlockRequest{
			Tier: &tier,
		})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestDeleteBlock(t *testing.T) {
	blocksMock := newBlocksRepoMock()
	s := service.NewBlocksService(blocksMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		err := s.DeleteBlock(ctx, uuid.New(), userID)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		blocksMock.state = stateNotFoundError
		err := s.DeleteBlock(ctx, uuid.New(), userID)
		assert.ErrorIs(t, err, errorvalues.ErrBlockNotFound)
		blocksMock.state = stateSuccess
	})
}
