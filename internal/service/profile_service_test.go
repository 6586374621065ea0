package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestGetOrCreateProfile(t *testing.T) {
	profiles := newProfilesRepoMock()
	s := service.NewProfileService(profiles)
	ctx := context.Background()
	t.Run("first access creates profile with lefi code", func(t *testing.T) {
		profile, err := s.GetOrCreate(ctx, userID, "test_user")
		assert.NoError(t, err)
		assert.Equal(t, userID, profile.UserID)
		assert.Equal(t, "test_user", profile.DisplayName)
		assert.True(t, strings.HasPrefix(profile.LefiCode, "LEFI"))
		assert.False(t, profile.OnboardingCompleted)
	})
	t.Run("second access returns the same profile", func(t *testing.T) {
		first, err := s.GetOrCreate(ctx, userID, "test_user")
		assert.NoError(t, err)
		second, err := s.GetOrCreate(ctx, userID, "ignored")
		assert.NoError(t, err)
		assert.Equal(t, first.LefiCode, second.LefiCode)
		assert.Equal(t, first.ID, second.ID)
	})
	t.Run("gives up after repeated code collisions", func(t *testing.T) {
		profiles.state = stateCodeCollision
		_, err := s.GetOrCreate(ctx, uuid.New(), "unlucky")
		assert.ErrorIs(t, err, errorvalues.ErrLefiCodeTaken)
		profiles.state = stateSuccess
	})
	t.Run("db error", func(t *testing.T) {
		profiles.state = stateDBError
		_, err := s.GetOrCreate(ctx, uuid.New(), "test_user")
		assert.Error(t, err)
		profiles.state = stateSuccess
	})
}

func TestUpdateProfile(t *testing.T) {
	profiles := newProfilesRepoMock()
	s := service.NewProfileService(profiles)
	ctx := context.Background()
	profiles.add(userID, "test_user", "LEFI00001")
	newName := "Renamed"
	bio := "about me"
	t.Run("success", func(t *testing.T) {
		profile, err := s.Update(ctx, userID, &service.UpdateProfileRequest{
			DisplayName: &newName,
			Bio:         &bio,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Renamed", profile.DisplayName)
		assert.Equal(t, "about me", profile.Bio)
		// Untouched fields keep their values
		assert.Equal(t, "LEFI00001", profile.LefiCode)
	})
	t.Run("invalid avatar url", func(t *testing.T) {
		badURL := "not a url"
		_, err := s.Update(ctx, userID, &service.UpdateProfileRequest{
			AvatarURL: &badURL,
		})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Update(ctx, uuid.New(), &service.UpdateProfileRequest{
			DisplayName: &newName,
		})
		assert.ErrorIs(t, err, errorvalues.ErrProfileNotFound)
	})
}

func TestCompleteOnboarding(t *testing.T) {
	profiles := newProfilesRepoMock()
	s := service.NewProfileService(profiles)
	ctx := context.Background()
	profiles.add(userID, "test_user", "LEFI00001")
	t.Run("success", func(t *testing.T) {
		err := s.CompleteOnboarding(ctx, userID)
		assert.NoError(t, err)
		profile, err := s.GetOrCreate(ctx, userID, "test_user")
		assert.NoError(t, err)
		assert.True(t, profile.OnboardingCompleted)
	})
	t.Run("unknown user", func(t *testing.T) {
		err := s.CompleteOnboarding(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrProfileNotFound)
	})
}

func TestSearchByLefiCode(t *testing.T) {
	profiles := newProfilesRepoMock()
	s := service.NewProfileService(profiles)
	ctx := context.Background()
	profiles.add(userID, "test_user", "LEFI00001")
	t.Run("success", func(t *testing.T) {
		profile, err := s.SearchByLefiCode(ctx, "LEFI00001")
		assert.NoError(t, err)
		assert.Equal(t, userID, profile.UserID)
	})
	t.Run("unknown code", func(t *testing.T) {
		_, err := s.SearchByLefiCode(ctx, "LEFI99999")
		assert.ErrorIs(t, err, errorvalues.ErrProfileNotFound)
	})
}
