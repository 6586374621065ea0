package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/service"
	"github.com/lefi/digital-brain/pkg/entity"
	"github.com/lefi/digital-brain/pkg/httputil"
)

type CreateBlockRequest struct {
	Title      string     `json:"title"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	Tier       int        `json:"tier"`
	CategoryID *uuid.UUID `json:"category_id"`
	Icon       string     `json:"icon"`
	Color      string     `json:"color"`
}

type UpdateBlockRequest struct {
	Title      *string    `json:"title"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	Tier       *int       `json:"tier"`
	Status     *string    `json:"status"`
	CategoryID *uuid.UUID `json:"category_id"`
	Icon       *string    `json:"icon"`
	Color      *string    `json:"color"`
}

type GetBlocksResponse struct {
	UserID string          `json:"uid"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
	Blocks []*entity.Block `json:"blocks"`
}

func (s *Server) CreateBlock(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create block error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateBlockRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create block error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	block, err := s.blocksService.CreateBlock(ctx, uid, &service.CreateBlockRequest{
		Title:      req.Title,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Tier:       req.Tier,
		CategoryID: req.CategoryID,
		Icon:       req.Icon,
		Color:      req.Color,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("create block error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid block fields", vErr)
		case errors.Is(err, errorvalues.ErrCategoryNotFound):
			logger.Error("create block error: unexist category")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
		default:
			logger.Error("create block error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating block", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, block)
	logger.Info("block created")
}

func (s *Server) GetBlocks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get blocks error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 50
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			logger.Error("get blocks error: invalid date filter")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date filter, expected YYYY-MM-DD", nil)
			return
		}
		date = &parsed
	}
	status := r.URL.Query().Get("status")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	blocks, err := s.blocksService.ListBlocks(ctx, uid, date, status, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error("getting blocks list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting blocks list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetBlocksResponse{
		UserID: uid.String(),
		Page:   page,
		Limit:  limit,
		Blocks: blocks,
	})
	logger.Info("blocks provided")
}

func (s *Server) GetBlock(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get block error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get block error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid block id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	block, err := s.blocksService.GetBlock(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrBlockNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get block error: unexist block")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "block doesn't exist", nil)
		default:
			logger.Error("get block error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting block", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, block)
	logger.Info("block provided")
}

func (s *Server) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update block error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update block error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid block id in path value", nil)
		return
	}
	var req UpdateBlockRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update block error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	block, err := s.blocksService.UpdateBlock(ctx, id, uid, &service.UpdateBlockRequest{
		Title:      req.Title,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Tier:       req.Tier,
		Status:     req.Status,
		CategoryID: req.CategoryID,
		Icon:       req.Icon,
		Color:      req.Color,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			logger.Error("update block error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid block fields", vErr)
		case errors.Is(err, errorvalues.ErrEndBeforeStart):
			logger.Error("update block error: end before start")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "block must end after it starts", nil)
		case errors.Is(err, errorvalues.ErrBlockNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update block error: unexist block")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "block doesn't exist", nil)
		default:
			logger.Error("update block error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating block", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, block)
	logger.Info("block updated")
}

func (s *Server) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("block deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("block deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid block id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.blocksService.DeleteBlock(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrBlockNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("block deletion error: unexist block")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "block doesn't exist", nil)
		default:
			logger.Error("block deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting block", nil)
		}
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("block deleted")
}
