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

type RoutineEntryRequest struct {
	ActivityName string     `json:"nombre_actividad"`
	Days         string     `json:"dias"`
	StartTime    string     `json:"hora_inicio"`
	EndTime      string     `json:"hora_fin"`
	Inflexible   bool       `json:"es_inflexible"`
	NeedReminder bool       `json:"requiere_recordatorio"`
	Type         string     `json:"bloque_tipo"`
	State        string     `json:"estado"`
	Location     string     `json:"ubicacion"`
	CategoryID   *uuid.UUID `json:"category_id"`
}

func (r RoutineEntryRequest) toService() *service.RoutineEntryRequest {
	return &service.RoutineEntryRequest{
		ActivityName: r.ActivityName,
		Days:         r.Days,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Inflexible:   r.Inflexible,
		NeedReminder: r.NeedReminder,
		Type:         r.Type,
		State:        r.State,
		Location:     r.Location,
		CategoryID:   r.CategoryID,
	}
}

func (s *Server) CreateRoutineEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create routine entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req RoutineEntryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create routine entry error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.routineService.CreateEntry(ctx, uid, req.toService())
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("create routine entry error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid routine entry fields", vErr)
		case errors.Is(err, errorvalues.ErrEndBeforeStart):
			logger.Error("create routine entry error: end before start")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "entry must end after it starts", nil)
		default:
			logger.Error("create routine entry error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating routine entry", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, entry)
	logger.Info("routine entry created")
}

func (s *Server) GetRoutine(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get routine error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	entries, err := s.routineService.ListEntries(ctx, uid)
	if err != nil {
		logger.Error("getting routine error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting routine", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"entries": entries})
	logger.Info("routine provided")
}

func (s *Server) UpdateRoutineEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update routine entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update routine entry error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid entry id in path value", nil)
		return
	}
	var req RoutineEntryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update routine entry error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.routineService.UpdateEntry(ctx, id, uid, req.toService())
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("update routine entry error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid routine entry fields", vErr)
		case errors.Is(err, errorvalues.ErrEndBeforeStart):
			logger.Error("update routine entry error: end before start")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "entry must end after it starts", nil)
		case errors.Is(err, errorvalues.ErrRoutineNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update routine entry error: unexist entry")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine entry doesn't exist", nil)
		default:
			logger.Error("update routine entry error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating routine entry", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, entry)
	logger.Info("routine entry updated")
}

func (s *Server) DeleteRoutineEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("routine entry deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("routine entry deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid entry id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.routineService.DeleteEntry(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrRoutineNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("routine entry deletion error: unexist entry")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine entry doesn't exist", nil)
		default:
			logger.Error("routine entry deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting routine entry", nil)
		}
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("routine entry deleted")
}

func (s *Server) MaterializeRoutine(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("materialize routine error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			logger.Error("materialize routine error: invalid date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
			return
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	inserted, err := s.routineService.Materialize(ctx, uid, date)
	if err != nil {
		logger.Error("materialize routine error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while materializing routine", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"date":     date.Format("2006-01-02"),
		"inserted": inserted,
	})
	logger.Info("routine materialized", slog.Int("inserted", inserted))
}
