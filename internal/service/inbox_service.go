package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/planner"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/pkg/entity"
)

const maxDerivedTitleLen = 80

type InboxService struct {
	repo repository.InboxRepositoryI
}

func NewInboxService(inboxRepo repository.InboxRepositoryI) *InboxService {
	if inboxRepo == nil {
		log.Fatal("provided nil inboxRepo")
	}
	return &InboxService{
		repo: inboxRepo,
	}
}

func (is *InboxService) CaptureNote(ctx context.Context, uid uuid.UUID, req *CaptureNoteRequest) (*entity.InboxNote, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	source := req.Source
	if source == "" {
		source = "manual"
	}
	note, err := is.repo.Create(ctx, &entity.InboxNote{
		UserID:  uid,
		Content: req.Content,
		Type:    req.Type,
		Source:  source,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("inbox repository error: " + err.Error())
	}
	return note, nil
}

func (is *InboxService) ListNotes(ctx context.Context, uid uuid.UUID) ([]*entity.InboxNote, error) {
	notes, err := is.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, errors.New("inbox repository error: " + err.Error())
	}
	return notes, nil
}

func (is *InboxService) DeleteNote(ctx context.Context, noteID, userID uuid.UUID) error {
	note, err := is.repo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return err
		}
		return errors.New("inbox repository error: " + err.Error())
	}
	if note.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	err = is.repo.Delete(ctx, noteID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return err
		}
		return errors.New("inbox repository error: " + err.Error())
	}
	return nil
}

// ProcessNote turns a captured note into a scheduled block. The title falls
// back to the note content when not overridden. Block creation and note
// deletion happen in one repository transaction.
func (is *InboxService) ProcessNote(ctx context.Context, noteID, userID uuid.UUID, req *ProcessNoteRequest) (*entity.Block, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	start, err := planner.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := planner.ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return nil, errorvalues.ErrEndBeforeStart
	}
	note, err := is.repo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return nil, err
		}
		return nil, errors.New("inbox repository error: " + err.Error())
	}
	if note.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = deriveTitle(note.Content)
	}
	tier := req.Tier
	if tier == 0 {
		tier = 2
	}
	block, err := is.repo.ConvertToBlock(ctx, noteID, &entity.Block{
		UserID:     userID,
		Title:      title,
		StartTime:  planner.At(req.Date, start),
		EndTime:    planner.At(req.Date, end),
		Tier:       tier,
		Status:     entity.BlockStatusPending,
		Source:     entity.BlockSourceProcessedNote,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return nil, err
		}
		return nil, errors.New("inbox repository error: " + err.Error())
	}
	return block, nil
}

func deriveTitle(content string) string {
	title := strings.TrimSpace(content)
	if idx := strings.IndexByte(title, '\n'); idx > 0 {
		title = title[:idx]
	}
	if len(title) > maxDerivedTitleLen {
		title = strings.TrimSpace(title[:maxDerivedTitleLen])
	}
	return title
}
