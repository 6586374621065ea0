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

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
}

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	profile, err := s.profileService.GetOrCreate(ctx, uid, GetUsernameFromContext(r))
	if err != nil {
		logger.Error("get profile error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting profile", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profile)
	logger.Info("profile provided")
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UpdateProfileRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update profile error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	profile, err := s.profileService.Update(ctx, uid, &service.UpdateProfileRequest{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Bio:         req.Bio,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("update profile error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid profile fields", vErr)
		case errors.Is(err, errorvalues.ErrProfileNotFound):
			logger.Error("update profile error: unexist profile")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "profile doesn't exist", nil)
		default:
			logger.Error("update profile error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating profile", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profile)
	logger.Info("profile updated")
}

func (s *Server) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("complete onboarding error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.profileService.CompleteOnboarding(ctx, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrProfileNotFound):
			logger.Error("complete onboarding error: unexist profile")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "profile doesn't exist", nil)
		default:
			logger.Error("complete onboarding error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while completing onboarding", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"onboarding_completed": true})
	logger.Info("onboarding completed")
}

func (s *Server) SearchProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	code := r.URL.Query().Get("lefi_code")
	if code == "" {
		logger.Error("search profile error: missing lefi_code query param")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "lefi_code query param is required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	profile, err := s.profileService.SearchByLefiCode(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrProfileNotFound):
			logger.Error("search profile error: unknown lefi code")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no user with such lefi code", nil)
		default:
			logger.Error("search profile error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while searching profile", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profile)
	logger.Info("profile found by lefi code")
}
