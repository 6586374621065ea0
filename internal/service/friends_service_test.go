package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/service"
	"github.com/lefi/digital-brain/pkg/entity"
	"github.com/stretchr/testify/assert"
)

// friendshipsRepoMock keeps rows in memory so direction and status checks
// run against real data instead of canned answers.
type friendshipsRepoMock struct {
	state mockState
	rows  map[uuid.UUID]*entity.Friendship
}

func newFriendshipsRepoMock() *friendshipsRepoMock {
	return &friendshipsRepoMock{rows: make(map[uuid.UUID]*entity.Friendship)}
}

func (frm *friendshipsRepoMock) Create(ctx context.Context, userID, friendID uuid.UUID) (*entity.Friendship, error) {
	if frm.state == stateDBError {
		return nil, errors.New("db error")
	}
	f := &entity.Friendship{
		ID:       uuid.New(),
		UserID:   userID,
		FriendID: friendID,
		Status:   entity.FriendshipPending,
	}
	frm.rows[f.ID] = f
	return f, nil
}

func (frm *friendshipsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Friendship, error) {
	if frm.state == stateDBError {
		return nil, errors.New("db error")
	}
	f, ok := frm.rows[id]
	if !ok {
		return nil, errorvalues.ErrFriendshipNotFound
	}
	copied := *f
	return &copied, nil
}

func (frm *friendshipsRepoMock) GetBetween(ctx context.Context, a, b uuid.UUID) (*entity.Friendship, error) {
	if frm.state == stateDBError {
		return nil, errors.New("db error")
	}
	for _, f := range frm.rows {
		if (f.UserID == a && f.FriendID == b) || (f.UserID == b && f.FriendID == a) {
			copied := *f
			return &copied, nil
		}
	}
	return nil, errorvalues.ErrFriendshipNotFound
}

func (frm *friendshipsRepoMock) ListAcceptedByUser(ctx context.Context, uid uuid.UUID) ([]*entity.Friendship, error) {
	if frm.state == stateDBError {
		return nil, errors.New("db error")
	}
	result := make([]*entity.Friendship, 0)
	for _, f := range frm.rows {
		if f.Status == entity.FriendshipAccepted && (f.UserID == uid || f.FriendID == uid) {
			copied := *f
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (frm *friendshipsRepoMock) ListPendingForUser(ctx context.Context, uid uuid.UUID) ([]*entity.Friendship, error) {
	if frm.state == stateDBError {
		return nil, errors.New("db error")
	}
	result := make([]*entity.Friendship, 0)
	for _, f := range frm.rows {
		if f.Status == entity.FriendshipPending && f.FriendID == uid {
			copied := *f
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (frm *friendshipsRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if frm.state == stateDBError {
		return errors.New("db error")
	}
	f, ok := frm.rows[id]
	if !ok {
		return errorvalues.ErrFriendshipNotFound
	}
	f.Status = status
	return nil
}

func (frm *friendshipsRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if frm.state == stateDBError {
		return errors.New("db error")
	}
	if _, ok := frm.rows[id]; !ok {
		return errorvalues.ErrFriendshipNotFound
	}
	delete(frm.rows, id)
	return nil
}

type profilesRepoMock struct {
	state    mockState
	profiles map[uuid.UUID]*entity.Profile
	byCode   map[string]*entity.Profile
}

func newProfilesRepoMock() *profilesRepoMock {
	return &profilesRepoMock{
		profiles: make(map[uuid.UUID]*entity.Profile),
		byCode:   make(map[string]*entity.Profile),
	}
}

func (prm *profilesRepoMock) add(uid uuid.UUID, name, code string) *entity.Profile {
	p := &entity.Profile{
		ID:          uuid.New(),
		UserID:      uid,
		DisplayName: name,
		LefiCode:    code,
	}
	prm.profiles[uid] = p
	prm.byCode[code] = p
	return p
}

func (prm *profilesRepoMock) Create(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	switch prm.state {
	case stateDBError:
		return nil, errors.New("db error")
	case stateCodeCollision:
		return nil, errorvalues.ErrLefiCodeTaken
	default:
		return prm.add(profile.UserID, profile.DisplayName, profile.LefiCode), nil
	}
}

func (prm *profilesRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	if prm.state == stateDBError {
		return nil, errors.New("db error")
	}
	p, ok := prm.profiles[uid]
	if !ok {
		return nil, errorvalues.ErrProfileNotFound
	}
	return p, nil
}

func (prm *profilesRepoMock) GetByUserIDs(ctx context.Context, uids []uuid.UUID) ([]*entity.Profile, error) {
	if prm.state == stateDBError {
		return nil, errors.New("db error")
	}
	result := make([]*entity.Profile, 0, len(uids))
	for _, uid := range uids {
		if p, ok := prm.profiles[uid]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (prm *profilesRepoMock) FindByLefiCode(ctx context.Context, code string) (*entity.Profile, error) {
	if prm.state == stateDBError {
		return nil, errors.New("db error")
	}
	p, ok := prm.byCode[code]
	if !ok {
		return nil, errorvalues.ErrProfileNotFound
	}
	return p, nil
}

func (prm *profilesRepoMock) Update(ctx context.Context, profile *entity.Profile) error {
	if prm.state == stateDBError {
		return errors.New("db error")
	}
	if _, ok := prm.profiles[profile.UserID]; !ok {
		return errorvalues.ErrProfileNotFound
	}
	prm.profiles[profile.UserID] = profile
	return nil
}

func (prm *profilesRepoMock) SetOnboardingCompleted(ctx context.Context, uid uuid.UUID) error {
	if prm.state == stateDBError {
		return errors.New("db error")
	}
	p, ok := prm.profiles[uid]
	if !ok {
		return errorvalues.ErrProfileNotFound
	}
	p.OnboardingCompleted = true
	return nil
}

const stateCodeCollision mockState = 100

func TestSendFriendRequest(t *testing.T) {
	friendships := newFriendshipsRepoMock()
	profiles := newProfilesRepoMock()
	other := uuid.New()
	profiles.add(userID, "me", "LEFI00001")
	profiles.add(other, "them", "LEFI00002")
	s := service.NewFriendsService(friendships, profiles)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		f, err := s.SendRequest(ctx, userID, "LEFI00002")
		assert.NoError(t, err)
		assert.Equal(t, userID, f.UserID)
		assert.Equal(t, other, f.FriendID)
		assert.Equal(t, entity.FriendshipPending, f.Status)
	})
	t.Run("duplicate either direction", func(t *testing.T) {
		_, err := s.SendRequest(ctx, userID, "LEFI00002")
		assert.ErrorIs(t, err, errorvalues.ErrFriendshipExists)
		_, err = s.SendRequest(ctx, other, "LEFI00001")
		assert.ErrorIs(t, err, errorvalues.ErrFriendshipExists)
	})
	t.Run("self request", func(t *testing.T) {
		_, err := s.SendRequest(ctx, userID, "LEFI00001")
		assert.ErrorIs(t, err, errorvalues.ErrSelfFriendship)
	})
	t.Run("unknown code", func(t *testing.T) {
		_, err := s.SendRequest(ctx, userID, "LEFI99999")
		assert.ErrorIs(t, err, errorvalues.ErrProfileNotFound)
	})
}

func TestAcceptFriendRequest(t *testing.T) {
	friendships := newFriendshipsRepoMock()
	profiles := newProfilesRepoMock()
	sender := uuid.New()
	profiles.add(userID, "me", "LEFI00001")
	profiles.add(sender, "them", "LEFI00002")
	s := service.NewFriendsService(friendships, profiles)
	ctx := context.Background()
	request, err := friendships.Create(ctx, sender, userID)
	assert.NoError(t, err)
	t.Run("sender can't accept their own request", func(t *testing.T) {
		err := s.AcceptRequest(ctx, sender, request.ID)
		assert.ErrorIs(t, err, errorvalues.ErrFriendshipNotFound)
	})
	t.Run("recipient accepts", func(t *testing.T) {
		assert.NoError(t, s.AcceptRequest(ctx, userID, request.ID))
		friends, err := s.ListFriends(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(friends))
		assert.Equal(t, sender, friends[0].FriendID)
	})
	t.Run("both sides see the friendship", func(t *testing.T) {
		friends, err := s.ListFriends(ctx, sender)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(friends))
		assert.Equal(t, userID, friends[0].FriendID)
	})
	t.Run("accepting twice fails", func(t *testing.T) {
		err := s.AcceptRequest(ctx, userID, request.ID)
		assert.ErrorIs(t, err, errorvalues.ErrFriendshipNotFound)
	})
}

func TestListFriendRequests(t *testing.T) {
	friendships := newFriendshipsRepoMock()
	profiles := newProfilesRepoMock()
	sender := uuid.New()
	profiles.add(userID, "me", "LEFI00001")
	profiles.add(sender, "them", "LEFI00002")
	s := service.NewFriendsService(friendships, profiles)
	ctx := context.Background()
	_, err := friendships.Create(ctx, sender, userID)
	assert.NoError(t, err)
	t.Run("incoming request shows the sender and their profile", func(t *testing.T) {
		requests, err := s.ListRequests(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(requests))
		assert.Equal(t, sender, requests[0].FriendID)
		if assert.NotNil(t, requests[0].Profile) {
			assert.Equal(t, "them", requests[0].Profile.DisplayName)
		}
	})
	t.Run("sender has no incoming requests", func(t *testing.T) {
		requests, err := s.ListRequests(ctx, sender)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(requests))
	})
}

func TestRemoveAndBlockFriend(t *testing.T) {
	friendships := newFriendshipsRepoMock()
	profiles := newProfilesRepoMock()
	other := uuid.New()
	stranger := uuid.New()
	profiles.add(userID, "me", "LEFI00001")
	profiles.add(other, "them", "LEFI00002")
	s := service.NewFriendsService(friendships, profiles)
	ctx := context.Background()
	f, err := friendships.Create(ctx, userID, other)
	assert.NoError(t, err)
	assert.NoError(t, friendships.UpdateStatus(ctx, f.ID, entity.FriendshipAccepted))
	t.Run("stranger can't touch the friendship", func(t *testing.T) {
		assert.ErrorIs(t, s.RemoveFriend(ctx, stranger, f.ID), errorvalues.ErrFriendshipNotFound)
		assert.ErrorIs(t, s.BlockFriend(ctx, stranger, f.ID), errorvalues.ErrFriendshipNotFound)
	})
	t.Run("either side can block", func(t *testing.T) {
		assert.NoError(t, s.BlockFriend(ctx, other, f.ID))
		friends, err := s.ListFriends(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(friends))
	})
	t.Run("either side can remove", func(t *testing.T) {
		assert.NoError(t, s.RemoveFriend(ctx, userID, f.ID))
		assert.ErrorIs(t, s.RemoveFriend(ctx, userID, f.ID), errorvalues.ErrFriendshipNotFound)
	})
}
