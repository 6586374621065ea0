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
	"github.com/lefi/digital-brain/pkg/httputil"
)

type SendFriendRequestBody struct {
	LefiCode string `json:"lefi_code"`
}

func (s *Server) GetFriends(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get friends error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	friends, err := s.friendsService.ListFriends(ctx, uid)
	if err != nil {
		logger.Error("getting friends error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting friends", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"friends": friends})
	logger.Info("friends provided")
}

func (s *Server) GetFriendRequests(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get friend requests error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	requests, err := s.friendsService.ListRequests(ctx, uid)
	if err != nil {
		logger.Error("getting friend requests error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting friend requests", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"requests": requests})
	logger.Info("friend requests provided")
}

func (s *Server) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("send friend request error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req SendFriendRequestBody
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("send friend request error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	friendship, err := s.friendsService.SendRequest(ctx, uid, req.LefiCode)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrProfileNotFound):
			logger.Error("send friend request error: unknown lefi code")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no user with such lefi code", nil)
		case errors.Is(err, errorvalues.ErrSelfFriendship):
			logger.Error("send friend request error: self request")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "can't send friend request to yourself", nil)
		case errors.Is(err, errorvalues.ErrFriendshipExists):
			logger.Error("send friend request error: friendship already exists")
			httputil.WriteErrorResponse(w, http.StatusConflict, "friendship already exists", nil)
		default:
			logger.Error("send friend request error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while sending friend request", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, friendship)
	logger.Info("friend request sent")
}

func (s *Server) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	s.resolveFriendRequest(w, r, "accept")
}

func (s *Server) RejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	s.resolveFriendRequest(w, r, "reject")
}

func (s *Server) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	s.resolveFriendRequest(w, r, "remove")
}

func (s *Server) BlockFriend(w http.ResponseWriter, r *http.Request) {
	s.resolveFriendRequest(w, r, "block")
}

func (s *Server) resolveFriendRequest(w http.ResponseWriter, r *http.Request, action string) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error(action+" friendship error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error(action + " friendship error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid friendship id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	switch action {
	case "accept":
		err = s.friendsService.AcceptRequest(ctx, uid, id)
	case "reject":
		err = s.friendsService.RejectRequest(ctx, uid, id)
	case "remove":
		err = s.friendsService.RemoveFriend(ctx, uid, id)
	case "block":
		err = s.friendsService.BlockFriend(ctx, uid, id)
	}
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrFriendshipNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error(action + " friendship error: unexist friendship")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "friendship doesn't exist", nil)
		default:
			logger.Error(action+" friendship error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating friendship", nil)
		}
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("friendship " + action + " done")
}
