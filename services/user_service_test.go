package services

import (
	"context"
	"log/slog"
	"testing"

	"chat-relay/domain"
	apperrors "chat-relay/errors"
	"chat-relay/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserService_Self(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockIUserRepository(ctrl)
	svc := NewUserService(slog.Default(), users, mocks.NewMockUploader(ctrl))

	users.EXPECT().Get("u1").Return(domain.Identity{
		ID: "u1", Name: "Alice", PasswordHash: "secret", Chats: []string{"room-a"},
	}, nil)

	profile, err := svc.Self(context.Background(), "u1")
	req.NoError(err)
	req.Equal("Alice", profile.Name)
	req.Equal([]string{"room-a"}, profile.Chats)
}

func TestUserService_SaveProfile(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockIUserRepository(ctrl)
	uploader := mocks.NewMockUploader(ctrl)
	svc := NewUserService(slog.Default(), users, uploader)

	avatar := "base64-image"
	uploader.EXPECT().UploadAvatar(gomock.Any(), avatar).Return("http://cdn/new.png", nil)
	users.EXPECT().
		Mutate("u1", gomock.Any()).
		DoAndReturn(func(userID string, fn func(*domain.Identity) error) (domain.Identity, error) {
			user := domain.Identity{ID: userID, Name: "Old", Avatar: "http://cdn/old.png"}
			req.NoError(fn(&user))
			req.Equal("New Name", user.Name)
			req.Equal("http://cdn/new.png", user.Avatar)
			return user, nil
		})

	profile, err := svc.SaveProfile(context.Background(), "u1", ProfilePatch{Name: "New Name", Avatar: &avatar})
	req.NoError(err)
	req.Equal("New Name", profile.Name)
}

func TestUserService_SaveProfile_NilAvatarKeepsStored(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockIUserRepository(ctrl)
	svc := NewUserService(slog.Default(), users, mocks.NewMockUploader(ctrl))

	users.EXPECT().
		Mutate("u1", gomock.Any()).
		DoAndReturn(func(userID string, fn func(*domain.Identity) error) (domain.Identity, error) {
			user := domain.Identity{ID: userID, Avatar: "http://cdn/old.png"}
			req.NoError(fn(&user))
			req.Equal("http://cdn/old.png", user.Avatar)
			return user, nil
		})

	_, err := svc.SaveProfile(context.Background(), "u1", ProfilePatch{Name: "Alice"})
	req.NoError(err)
}

func TestUserService_SaveProfile_RejectsEmptyName(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewUserService(slog.Default(), mocks.NewMockIUserRepository(ctrl), mocks.NewMockUploader(ctrl))

	_, err := svc.SaveProfile(context.Background(), "u1", ProfilePatch{})
	req.ErrorIs(err, apperrors.ErrValidation)
}

func TestUserService_PublicProfiles(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockIUserRepository(ctrl)
	svc := NewUserService(slog.Default(), users, mocks.NewMockUploader(ctrl))

	users.EXPECT().GetMany([]string{"u1", "gone"}).Return(map[string]domain.Identity{
		"u1": {ID: "u1", Name: "Alice", PasswordHash: "secret"},
	}, nil)

	profiles, err := svc.PublicProfiles(context.Background(), []string{"u1", "gone"})
	req.NoError(err)
	req.Len(profiles, 1)
	req.Equal(domain.PublicProfile{ID: "u1", Name: "Alice"}, profiles["u1"])
}
