package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/service"
	"github.com/lefi/digital-brain/pkg/httputil"
)

type SleepSettingsRequest struct {
	PreferredBedtime string     `json:"preferred_bedtime"`
	CycleMinutes     int        `json:"cycle_minutes"`
	AlarmScheme      string     `json:"alarm_scheme"`
	SleepGoals       []string   `json:"sleep_goals"`
	LastSleepStart   *time.Time `json:"last_sleep_start"`
	LastWake         *time.Time `json:"last_wake"`
}

func (s *Server) GetSleepSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get sleep settings error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	settings, err := s.sleepService.Get(ctx, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrSleepSettingsNotFound):
			logger.Error("get sleep settings error: no settings yet")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "sleep settings aren't configured yet", nil)
		default:
			logger.Error("get sleep settings error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting sleep settings", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, settings)
	logger.Info("sleep settings provided")
}

func (s *Server) SaveSleepSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("save sleep settings error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req SleepSettingsRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("save sleep settings error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	settings, err := s.sleepService.Save(ctx, uid, &service.SleepSettingsRequest{
		PreferredBedtime: req.PreferredBedtime,
		CycleMinutes:     req.CycleMinutes,
		AlarmScheme:      req.AlarmScheme,
		SleepGoals:       req.SleepGoals,
		LastSleepStart:   req.LastSleepStart,
		LastWake:         req.LastWake,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("save sleep settings error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid sleep settings fields", vErr)
		default:
			logger.Error("save sleep settings error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while saving sleep settings", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, settings)
	logger.Info("sleep settings saved")
}
