package profile

import (
	"context"

	profileRepo "bookify/database/repository/profile"
	"bookify/models"
	"bookify/utils"

	"go.uber.org/zap"
)

// FallbackDisplayName is used whenever a profile cannot be resolved; name
// lookup never fails a booking operation.
const FallbackDisplayName = "Bookify member"

// ProfileService resolves human-readable names for emails and notifications.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	GetDisplayName(ctx context.Context, userID string) string
}

// DefaultProfileService is the production implementation.
type DefaultProfileService struct {
	Repo profileRepo.ProfileRepository
}

func (s *DefaultProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.Repo.GetByID(ctx, userID)
}

// GetDisplayName returns the profile's display name, or the fallback label
// when the profile is missing or unreadable.
func (s *DefaultProfileService) GetDisplayName(ctx context.Context, userID string) string {
	p, err := s.Repo.GetByID(ctx, userID)
	if err != nil || p.DisplayName == "" {
		utils.GetLogger().Debug("display name lookup fell back", zap.String("userID", userID))
		return FallbackDisplayName
	}
	return p.DisplayName
}
