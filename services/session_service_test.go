package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-relay/auth"
	"chat-relay/contract"
	"chat-relay/domain"
	apperrors "chat-relay/errors"
	"chat-relay/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testJWTSecret    = "jwt-secret"
	testServerSecret = "server-shared-secret"
)

func newSessionService(t *testing.T, ctrl *gomock.Controller) (*SessionService, *mocks.MockIUserRepository, *mocks.MockIRegistry, *mocks.MockIServerCache, *mocks.MockCryptor) {
	t.Helper()
	users := mocks.NewMockIUserRepository(ctrl)
	registry := mocks.NewMockIRegistry(ctrl)
	serverCache := mocks.NewMockIServerCache(ctrl)
	cryptor := mocks.NewMockCryptor(ctrl)
	svc := NewSessionService(slog.Default(), auth.NewVerifier(testJWTSecret),
		users, registry, serverCache, cryptor, testServerSecret)
	return svc, users, registry, serverCache, cryptor
}

func TestSessionService_Authenticate_User(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, users, registry, _, cryptor := newSessionService(t, ctrl)

	token, err := auth.GenerateToken(testJWTSecret, "12345678901234", time.Minute)
	req.NoError(err)

	cryptor.EXPECT().
		Decrypt(gomock.Any(), "sealed-request").
		Return(`{"token":"`+token+`"}`, nil)
	users.EXPECT().
		Get("12345678901234").
		Return(domain.Identity{ID: "12345678901234", Name: "Alice", Chats: []string{"room-a"}}, nil)
	registry.EXPECT().
		AttachIdentity("conn-1", "12345678901234", contract.RoleUser).
		Return(nil)
	cryptor.EXPECT().
		GenerateKeypair(gomock.Any()).
		Return(contract.Keypair{Public: "pub", Private: "priv"}, nil)
	cryptor.EXPECT().
		Encrypt(gomock.Any(), "client-key", gomock.Any()).
		Return("sealed-response", nil)

	result, err := svc.Authenticate(context.Background(), "conn-1", "sealed-request", "client-key")
	req.NoError(err)
	req.Equal(contract.RoleUser, result.Role)
	req.Equal("12345678901234", result.UserID)
	req.Equal(token, result.Token)
	req.Equal("pub", result.Keypair.Public)
	req.Equal("sealed-response", result.Envelope)
}

func TestSessionService_Authenticate_UnknownUserIsUnauthorized(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, users, _, _, cryptor := newSessionService(t, ctrl)

	token, err := auth.GenerateToken(testJWTSecret, "12345678901234", time.Minute)
	req.NoError(err)

	cryptor.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return(`{"token":"`+token+`"}`, nil)
	users.EXPECT().Get("12345678901234").Return(domain.Identity{}, apperrors.ErrUserNotFound)

	_, err = svc.Authenticate(context.Background(), "conn-1", "sealed", "key")
	req.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestSessionService_Authenticate_BadToken(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _, _, cryptor := newSessionService(t, ctrl)

	cryptor.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return(`{"token":"garbage"}`, nil)

	_, err := svc.Authenticate(context.Background(), "conn-1", "sealed", "key")
	req.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestSessionService_Authenticate_EmptyToken(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _, _, cryptor := newSessionService(t, ctrl)

	cryptor.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return(`{}`, nil)

	_, err := svc.Authenticate(context.Background(), "conn-1", "sealed", "key")
	req.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestSessionService_Authenticate_MalformedPayload(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _, _, cryptor := newSessionService(t, ctrl)

	cryptor.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return(`not json`, nil)

	_, err := svc.Authenticate(context.Background(), "conn-1", "sealed", "key")
	req.ErrorIs(err, apperrors.ErrDecryption)
}

func TestSessionService_Authenticate_Server(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, registry, serverCache, cryptor := newSessionService(t, ctrl)

	cryptor.EXPECT().
		Decrypt(gomock.Any(), gomock.Any()).
		Return(`{"token":"`+testServerSecret+`","chats":[{"id":"room-a"},{"id":"room-b"}]}`, nil)
	registry.EXPECT().
		AttachIdentity("conn-srv", "server:conn-srv", contract.RoleServer).
		Return(nil)
	serverCache.EXPECT().
		AddServer("conn-srv", gomock.Len(2))

	result, err := svc.Authenticate(context.Background(), "conn-srv", "sealed", "")
	req.NoError(err)
	req.Equal(contract.RoleServer, result.Role)
	req.Empty(result.UserID)
	req.Empty(result.Envelope)
}

func TestSessionService_VerifyServer(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _, _, _ := newSessionService(t, ctrl)

	req.NoError(svc.VerifyServer(testServerSecret))
	req.ErrorIs(svc.VerifyServer("wrong"), apperrors.ErrUnauthorized)
	req.ErrorIs(svc.VerifyServer(""), apperrors.ErrUnauthorized)
}

func TestSessionService_Verify(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _, _, _ := newSessionService(t, ctrl)

	token, err := auth.GenerateToken(testJWTSecret, "12345678901234", time.Minute)
	req.NoError(err)

	userID, err := svc.Verify(token)
	req.NoError(err)
	req.Equal("12345678901234", userID)

	_, err = svc.Verify("garbage")
	req.ErrorIs(err, apperrors.ErrUnauthorized)
}
