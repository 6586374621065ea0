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

type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	categories, err := s.categoriesService.ListCategories(ctx)
	if err != nil {
		logger.Error("getting categories error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting categories", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"categories": categories})
	logger.Info("categories provided")
}

func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req CategoryRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create category error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	category, err := s.categoriesService.CreateCategory(ctx, &service.CreateCategoryRequest{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("create category error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category fields", vErr)
		case errors.Is(err, errorvalues.ErrCategoryExists):
			logger.Error("create category error: existed category")
			httputil.WriteErrorResponse(w, http.StatusConflict, "category with such name already exists", nil)
		default:
			logger.Error("create category error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating category", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, category)
	logger.Info("category created")
}

func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update category error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category id in path value", nil)
		return
	}
	var req CategoryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update category error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	category, err := s.categoriesService.UpdateCategory(ctx, id, &service.CreateCategoryRequest{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("update category error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category fields", vErr)
		case errors.Is(err, errorvalues.ErrCategoryNotFound):
			logger.Error("update category error: unexist category")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrCategoryExists):
			logger.Error("update category error: name already taken")
			httputil.WriteErrorResponse(w, http.StatusConflict, "category with such name already exists", nil)
		default:
			logger.Error("update category error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating category", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, category)
	logger.Info("category updated")
}

func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("category deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.categoriesService.DeleteCategory(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrCategoryNotFound):
			logger.Error("category deletion error: unexist category")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
		default:
			logger.Error("category deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting category", nil)
		}
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("category deleted")
}
