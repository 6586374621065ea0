package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/pkg/entity"
)

// Attempts at generating an unused LEFI code before giving up
const lefiCodeAttempts = 5

type ProfileService struct {
	repo repository.ProfilesRepositoryI
}

func NewProfileService(profilesRepo repository.ProfilesRepositoryI) *ProfileService {
	if profilesRepo == nil {
		log.Fatal("provided nil profilesRepo")
	}
	return &ProfileService{
		repo: profilesRepo,
	}
}

// GetOrCreate returns the user's profile, creating it on first access with
// the given display name and a freshly generated LEFI code.
func (ps *ProfileService) GetOrCreate(ctx context.Context, uid uuid.UUID, displayName string) (*entity.Profile, error) {
	profile, err := ps.repo.GetByUserID(ctx, uid)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, errorvalues.ErrProfileNotFound) {
		return nil, errors.New("profiles repository error: " + err.Error())
	}
	for attempt := 0; attempt < lefiCodeAttempts; attempt++ {
		profile, err = ps.repo.Create(ctx, &entity.Profile{
			UserID:      uid,
			DisplayName: displayName,
			LefiCode:    generateLefiCode(),
		})
		if err == nil {
			return profile, nil
		}
		// Retry on code collision; the insert is the atomic uniqueness
		// check
		if !errors.Is(err, errorvalues.ErrLefiCodeTaken) {
			return nil, errors.New("profiles repository error: " + err.Error())
		}
	}
	return nil, errorvalues.ErrLefiCodeTaken
}

func generateLefiCode() string {
	return fmt.Sprintf("LEFI%05d", rand.Intn(100000))
}

func (ps *ProfileService) Update(ctx context.Context, uid uuid.UUID, req *UpdateProfileRequest) (*entity.Profile, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	profile, err := ps.repo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return nil, err
		}
		return nil, errors.New("profiles repository error: " + err.Error())
	}
	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	err = ps.repo.Update(ctx, profile)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return nil, err
		}
		return nil, errors.New("profiles repository error: " + err.Error())
	}
	return profile, nil
}

func (ps *ProfileService) CompleteOnboarding(ctx context.Context, uid uuid.UUID) error {
	err := ps.repo.SetOnboardingCompleted(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return err
		}
		return errors.New("profiles repository error: " + err.Error())
	}
	return nil
}

func (ps *ProfileService) SearchByLefiCode(ctx context.Context, code string) (*entity.Profile, error) {
	profile, err := ps.repo.FindByLefiCode(ctx, code)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return nil, err
		}
		return nil, errors.New("profiles repository error: " + err.Error())
	}
	return profile, nil
}
