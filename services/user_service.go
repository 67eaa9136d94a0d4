package services

import (
	"context"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/repositories"
)

type IUserService interface {
	Self(ctx context.Context, userID string) (domain.Profile, error)
	SaveProfile(ctx context.Context, userID string, patch ProfilePatch) (domain.Profile, error)
	PublicProfile(ctx context.Context, userID string) (domain.PublicProfile, error)
	PublicProfiles(ctx context.Context, userIDs []string) (map[string]domain.PublicProfile, error)
}

// UserService covers the profile surface: self lookup, profile save and
// the public projections other participants may see.
type UserService struct {
	users    repositories.IUserRepository
	uploader contract.Uploader
	log      *slog.Logger
}

func NewUserService(log *slog.Logger, users repositories.IUserRepository, uploader contract.Uploader) *UserService {
	return &UserService{users: users, uploader: uploader, log: log}
}

func (s *UserService) Self(ctx context.Context, userID string) (domain.Profile, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return user.Profile(), nil
}

// SaveProfile patches name, description and avatar. A nil avatar keeps
// the stored one; a non-nil value passes through the upload collaborator
// first, soft-failing to an empty reference.
func (s *UserService) SaveProfile(ctx context.Context, userID string, patch ProfilePatch) (domain.Profile, error) {
	if err := validated(patch); err != nil {
		return domain.Profile{}, err
	}

	avatar := ""
	if patch.Avatar != nil && *patch.Avatar != "" {
		url, err := s.uploader.UploadAvatar(ctx, *patch.Avatar)
		if err != nil {
			s.log.Warn("avatar upload failed", "user_id", userID, "error", err)
		} else {
			avatar = url
		}
	}

	user, err := s.users.Mutate(userID, func(user *domain.Identity) error {
		user.Name = patch.Name
		user.Desc = patch.Desc
		if patch.Avatar != nil {
			user.Avatar = avatar
		}
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *UserService) PublicProfile(ctx context.Context, userID string) (domain.PublicProfile, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return domain.PublicProfile{}, err
	}
	return user.Public(), nil
}

// PublicProfiles resolves a batch; unknown ids are simply absent from the
// result, the caller decides whether that matters.
func (s *UserService) PublicProfiles(ctx context.Context, userIDs []string) (map[string]domain.PublicProfile, error) {
	users, err := s.users.GetMany(userIDs)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]domain.PublicProfile, len(users))
	for id, user := range users {
		profiles[id] = user.Public()
	}
	return profiles, nil
}
