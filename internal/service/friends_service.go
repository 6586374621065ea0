package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/pkg/entity"
)

type FriendsService struct {
	friendshipsRepo repository.FriendshipsRepositoryI
	profilesRepo    repository.ProfilesRepositoryI
}

func NewFriendsService(friendshipsRepo repository.FriendshipsRepositoryI, profilesRepo repository.ProfilesRepositoryI) *FriendsService {
	if friendshipsRepo == nil || profilesRepo == nil {
		log.Fatal("on friends service provided nil repos")
	}
	return &FriendsService{
		friendshipsRepo: friendshipsRepo,
		profilesRepo:    profilesRepo,
	}
}

// ListFriends returns accepted friendships normalized to the caller's point
// of view: FriendID is always the other user, whichever side sent the
// original request.
func (fs *FriendsService) ListFriends(ctx context.Context, uid uuid.UUID) ([]*entity.Friend, error) {
	friendships, err := fs.friendshipsRepo.ListAcceptedByUser(ctx, uid)
	if err != nil {
		return nil, errors.New("friendships repository error: " + err.Error())
	}
	friends := make([]*entity.Friend, 0, len(friendships))
	for _, f := range friendships {
		normalized := *f
		if normalized.FriendID == uid {
			normalized.UserID, normalized.FriendID = normalized.FriendID, normalized.UserID
		}
		friends = append(friends, &entity.Friend{Friendship: normalized})
	}
	if err = fs.attachProfiles(ctx, friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// ListRequests returns incoming pending requests decorated with the
// sender's profile.
func (fs *FriendsService) ListRequests(ctx context.Context, uid uuid.UUID) ([]*entity.Friend, error) {
	friendships, err := fs.friendshipsRepo.ListPendingForUser(ctx, uid)
	if err != nil {
		return nil, errors.New("friendships repository error: " + err.Error())
	}
	requests := make([]*entity.Friend, 0, len(friendships))
	for _, f := range friendships {
		normalized := *f
		// For requests the interesting side is the sender
		normalized.UserID, normalized.FriendID = normalized.FriendID, normalized.UserID
		requests = append(requests, &entity.Friend{Friendship: normalized})
	}
	if err = fs.attachProfiles(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (fs *FriendsService) attachProfiles(ctx context.Context, friends []*entity.Friend) error {
	if len(friends) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(friends))
	for _, f := range friends {
		ids = append(ids, f.FriendID)
	}
	profiles, err := fs.profilesRepo.GetByUserIDs(ctx, ids)
	if err != nil {
		return errors.New("profiles repository error: " + err.Error())
	}
	byUID := make(map[uuid.UUID]*entity.Profile, len(profiles))
	for _, p := range profiles {
		byUID[p.UserID] = p
	}
	for _, f := range friends {
		f.Profile = byUID[f.FriendID]
	}
	return nil
}

func (fs *FriendsService) SendRequest(ctx context.Context, uid uuid.UUID, lefiCode string) (*entity.Friendship, error) {
	target, err := fs.profilesRepo.FindByLefiCode(ctx, lefiCode)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return nil, err
		}
		return nil, errors.New("profiles repository error: " + err.Error())
	}
	if target.UserID == uid {
		return nil, errorvalues.ErrSelfFriendship
	}
	_, err = fs.friendshipsRepo.GetBetween(ctx, uid, target.UserID)
	if err == nil {
		return nil, errorvalues.ErrFriendshipExists
	}
	if !errors.Is(err, errorvalues.ErrFriendshipNotFound) {
		return nil, errors.New("friendships repository error: " + err.Error())
	}
	friendship, err := fs.friendshipsRepo.Create(ctx, uid, target.UserID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrFriendshipExists) {
			return nil, err
		}
		return nil, errors.New("friendships repository error: " + err.Error())
	}
	return friendship, nil
}

// AcceptRequest flips an incoming pending request to accepted. Only the
// recipient can accept.
func (fs *FriendsService) AcceptRequest(ctx context.Context, uid, friendshipID uuid.UUID) error {
	friendship, err := fs.getFriendship(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.FriendID != uid || friendship.Status != entity.FriendshipPending {
		return errorvalues.ErrFriendshipNotFound
	}
	err = fs.friendshipsRepo.UpdateStatus(ctx, friendshipID, entity.FriendshipAccepted)
	if err != nil {
		if errors.Is(err, errorvalues.ErrFriendshipNotFound) {
			return err
		}
		return errors.New("friendships repository error: " + err.Error())
	}
	return nil
}

func (fs *FriendsService) RejectRequest(ctx context.Context, uid, friendshipID uuid.UUID) error {
	friendship, err := fs.getFriendship(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.FriendID != uid || friendship.Status != entity.FriendshipPending {
		return errorvalues.ErrFriendshipNotFound
	}
	return fs.deleteFriendship(ctx, friendshipID)
}

func (fs *FriendsService) RemoveFriend(ctx context.Context, uid, friendshipID uuid.UUID) error {
	friendship, err := fs.getFriendship(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.UserID != uid && friendship.FriendID != uid {
		return errorvalues.ErrFriendshipNotFound
	}
	return fs.deleteFriendship(ctx, friendshipID)
}

func (fs *FriendsService) BlockFriend(ctx context.Context, uid, friendshipID uuid.UUID) error {
	friendship, err := fs.getFriendship(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.UserID != uid && friendship.FriendID != uid {
		return errorvalues.ErrFriendshipNotFound
	}
	err = fs.friendshipsRepo.UpdateStatus(ctx, friendshipID, entity.FriendshipBlocked)
	if err != nil {
		if errors.Is(err, errorvalues.ErrFriendshipNotFound) {
			return err
		}
		return errors.New("friendships repository error: " + err.Error())
	}
	return nil
}

func (fs *FriendsService) getFriendship(ctx context.Context, id uuid.UUID) (*entity.Friendship, error) {
	friendship, err := fs.friendshipsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrFriendshipNotFound) {
			return nil, err
		}
		return nil, errors.New("friendships repository error: " + err.Error())
	}
	return friendship, nil
}

func (fs *FriendsService) deleteFriendship(ctx context.Context, id uuid.UUID) error {
	err := fs.friendshipsRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrFriendshipNotFound) {
			return err
		}
		return errors.New("friendships repository error: " + err.Error())
	}
	return nil
}
