package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/service"
	"github.com/lefi/digital-brain/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inboxRepoMock struct {
	state     mockState
	note      *entity.InboxNote
	converted *entity.Block
}

func (irm *inboxRepoMock) Create(ctx context.Context, note *entity.InboxNote) (*entity.InboxNote, error) {
	if irm.state == stateDBError {
		return nil, errors.New("db error")
	}
	created := *note
	created.ID = uuid.New()
	created.CapturedAt = time.Now()
	return &created, nil
}

func (irm *inboxRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.InboxNote, error) {
	switch irm.state {
	case stateNotFoundError:
		return nil, errorvalues.ErrNoteNotFound
	case stateDBError:
		return nil, errors.New("db error")
	case stateWrongOwner:
		return &entity.InboxNote{ID: id, UserID: uuid.New(), Content: "other user's note"}, nil
	default:
		return irm.note, nil
	}
}

func (irm *inboxRepoMock) ListByUser(ctx context.Context, uid uuid.UUID) ([]*entity.InboxNote, error) {
	if irm.state == stateDBError {
		return nil, errors.New("db error")
	}
	return []*entity.InboxNote{irm.note}, nil
}

func (irm *inboxRepoMock) Update(ctx context.Context, note *entity.InboxNote) error {
	if irm.state == stateDBError {
		return errors.New("db error")
	}
	return nil
}

func (irm *inboxRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch irm.state {
	case stateNotFoundError:
		return errorvalues.ErrNoteNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func (irm *inboxRepoMock) ConvertToBlock(ctx context.Context, noteID uuid.UUID, block *entity.Block) (*entity.Block, error) {
	switch irm.state {
	case stateNotFoundError:
		return nil, errorvalues.ErrNoteNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		created := *block
		created.ID = uuid.New()
		irm.converted = &created
		return &created, nil
	}
}

func TestCaptureNote(t *testing.T) {
	mock := &inboxRepoMock{}
	s := service.NewInboxService(mock)
	ctx := context.Background()
	t.Run("success with default source", func(t *testing.T) {
		note, err := s.CaptureNote(ctx, userID, &service.CaptureNoteRequest{
			Content: "Buy milk",
			Type:    "text",
		})
		assert.NoError(t, err)
		assert.Equal(t, "manual", note.Source)
		assert.Equal(t, "Buy milk", note.Content)
	})
	t.Run("invalid type", func(t *testing.T) {
		_, err := s.CaptureNote(ctx, userID, &service.CaptureNoteRequest{
			Content: "Buy milk",
			Type:    "video",
		})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
	t.Run("empty content", func(t *testing.T) {
		_, err := s.CaptureNote(ctx, userID, &service.CaptureNoteRequest{Type: "text"})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestDeleteInboxNote(t *testing.T) {
	mock := &inboxRepoMock{note: &entity.InboxNote{ID: uuid.New(), UserID: userID, Content: "Buy milk"}}
	s := service.NewInboxService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, s.DeleteNote(ctx, mock.note.ID, userID))
	})
	t.Run("wrong owner", func(t *testing.T) {
		mock.state = stateWrongOwner
		assert.ErrorIs(t, s.DeleteNote(ctx, mock.note.ID, userID), errorvalues.ErrWrongOwner)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateNotFoundError
		assert.ErrorIs(t, s.DeleteNote(ctx, mock.note.ID, userID), errorvalues.ErrNoteNotFound)
		mock.state = stateSuccess
	})
}

func TestProcessNote(t *testing.T) {
	note := &entity.InboxNote{ID: uuid.New(), UserID: userID, Content: "Buy milk", Type: "text"}
	mock := &inboxRepoMock{note: note}
	s := service.NewInboxService(mock)
	ctx := context.Background()
	t.Run("title falls back to note content", func(t *testing.T) {
		block, err := s.ProcessNote(ctx, note.ID, userID, &service.ProcessNoteRequest{
			Date:      monday,
			StartTime: "09:00",
			EndTime:   "09:30",
		})
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", block.Title)
		assert.Equal(t, entity.BlockSourceProcessedNote, block.Source)
		assert.Equal(t, entity.BlockStatusPending, block.Status)
		assert.Equal(t, 2, block.Tier)
		assert.Equal(t, 9, block.StartTime.Hour())
		assert.Equal(t, 30, block.EndTime.Minute())
		assert.Equal(t, monday.Day(), block.StartTime.Day())
	})
	t.Run("explicit title wins", func(t *testing.T) {
		block, err := s.ProcessNote(ctx, note.ID, userID, &service.ProcessNoteRequest{
			Title:     "Groceries",
			Date:      monday,
			StartTime: "09:00",
			EndTime:   "10:00",
			Tier:      3,
		})
		require.NoError(t, err)
		assert.Equal(t, "Groceries", block.Title)
		assert.Equal(t, 3, block.Tier)
	})
	t.Run("end before start", func(t *testing.T) {
		_, err := s.ProcessNote(ctx, note.ID, userID, &service.ProcessNoteRequest{
			Date:      monday,
			StartTime: "10:00",
			EndTime:   "09:00",
		})
		assert.ErrorIs(t, err, errorvalues.ErrEndBeforeStart)
	})
	t.Run("bad clock value", func(t *testing.T) {
		_, err := s.ProcessNote(ctx, note.ID, userID, &service.ProcessNoteRequest{
			Date:      monday,
			StartTime: "25:00",
			EndTime:   "26:00",
		})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
	t.Run("wrong owner", func(t *testing.T) {
		mock.state = stateWrongOwner
		_, err := s.ProcessNote(ctx, note.ID, userID, &service.ProcessNoteRequest{
			Date:      monday,
			StartTime: "09:00",
			EndTime:   "09:30",
		})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("note not found", func(t *testing.T) {
		mock.state = stateNotFoundError
		_, err := s.ProcessNote(ctx, note.ID, userID, &service.ProcessNoteRequest{
			Date:      monday,
			StartTime: "09:00",
			EndTime:   "09:30",
		})
		assert.ErrorIs(t, err, errorvalues.ErrNoteNotFound)
		mock.state = stateSuccess
	})
}
