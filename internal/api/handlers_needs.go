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

type BasicNeedRequest struct {
	Type            string `json:"tipo"`
	Hour            string `json:"hora"`
	DurationMinutes int    `json:"duracion_minutos"`
	FlexibleRange   bool   `json:"rango_flexible"`
}

func (s *Server) CreateNeed(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create need error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req BasicNeedRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create need error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	need, err := s.needsService.CreateNeed(ctx, uid, &service.BasicNeedRequest{
		Type:            req.Type,
		Hour:            req.Hour,
		DurationMinutes: req.DurationMinutes,
		FlexibleRange:   req.FlexibleRange,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("create need error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid need fields", vErr)
		default:
			logger.Error("create need error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating need", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, need)
	logger.Info("basic need created")
}

func (s *Server) GetNeeds(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get needs error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	needs, err := s.needsService.ListNeeds(ctx, uid)
	if err != nil {
		logger.Error("getting needs error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting needs", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"needs": needs})
	logger.Info("needs provided")
}

func (s *Server) DeleteNeed(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("need deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("need deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid need id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.needsService.DeleteNeed(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrNeedNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("need deletion error: unexist need")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "need doesn't exist", nil)
		default:
			logger.Error("need deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting need", nil)
		}
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("basic need deleted")
}
