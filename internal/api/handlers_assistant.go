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

type PlanActivity struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Category        string `json:"category"`
}

type PlanDayRequest struct {
	Date          time.Time      `json:"date"`
	WindowStart   string         `json:"window_start"`
	WindowEnd     string         `json:"window_end"`
	KeptBlockIDs  []uuid.UUID    `json:"kept_block_ids"`
	Activities    []PlanActivity `json:"activities"`
	IncludeBreaks bool           `json:"include_breaks"`
	BreakMinutes  int            `json:"break_minutes"`
}

func (s *Server) PlanDay(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("plan day error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req PlanDayRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("plan day error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	activities := make([]service.PlanActivity, 0, len(req.Activities))
	for _, a := range req.Activities {
		activities = append(activities, service.PlanActivity{
			Name:            a.Name,
			DurationMinutes: a.DurationMinutes,
			Category:        a.Category,
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	blocks, err := s.assistantService.PlanDay(ctx, uid, &service.PlanDayRequest{
		Date:          req.Date,
		WindowStart:   req.WindowStart,
		WindowEnd:     req.WindowEnd,
		KeptBlockIDs:  req.KeptBlockIDs,
		Activities:    activities,
		IncludeBreaks: req.IncludeBreaks,
		BreakMinutes:  req.BreakMinutes,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("plan day error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid plan fields", vErr)
		case errors.Is(err, errorvalues.ErrInfeasiblePlan):
			logger.Error("plan day error: activities don't fit the window")
			httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, "activities don't fit into the requested window", nil)
		case errors.Is(err, errorvalues.ErrBlockNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("plan day error: unexist kept block")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "kept block doesn't exist", nil)
		default:
			logger.Error("plan day error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while planning day", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"blocks": blocks})
	logger.Info("productive day planned", slog.Int("blocks", len(blocks)))
}
