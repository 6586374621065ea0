package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/service"
	"github.com/lefi/digital-brain/pkg/httputil"
)

type CaptureNoteRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
	Source  string `json:"source"`
}

type ProcessNoteRequest struct {
	Title      string     `json:"title"`
	Date       time.Time  `json:"date"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Tier       int        `json:"tier"`
	CategoryID *uuid.UUID `json:"category_id"`
}

func (s *Server) CaptureNote(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("capture note error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CaptureNoteRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("capture note error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	note, err := s.inboxService.CaptureNote(ctx, uid, &service.CaptureNoteRequest{
		Content: req.Content,
		Type:    req.Type,
		Source:  req.Source,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("capture note error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid note fields", vErr)
		default:
			logger.Error("capture note error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while capturing note", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, note)
	logger.Info("note captured")
}

func (s *Server) GetInbox(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get inbox error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	notes, err := s.inboxService.ListNotes(ctx, uid)
	if err != nil {
		logger.Error("getting inbox error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting inbox", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"notes": notes})
	logger.Info("inbox provided")
}

func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("note deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("note deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid note id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.inboxService.DeleteNote(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrNoteNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("note deletion error: unexist note")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "note doesn't exist", nil)
		default:
			logger.Error("note deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting note", nil)
		}
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("note deleted")
}

func (s *Server) ProcessNote(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("process note error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("process note error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid note id in path value", nil)
		return
	}
	var req ProcessNoteRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("process note error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	block, err := s.inboxService.ProcessNote(ctx, id, uid, &service.ProcessNoteRequest{
		Title:      req.Title,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Tier:       req.Tier,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("process note error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid block fields", vErr)
		case errors.Is(err, errorvalues.ErrEndBeforeStart):
			logger.Error("process note error: end before start")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "block must end after it starts", nil)
		case errors.Is(err, errorvalues.ErrNoteNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("process note error: unexist note")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "note doesn't exist", nil)
		default:
			logger.Error("process note error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while processing note", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, block)
	logger.Info("note processed into block")
}
