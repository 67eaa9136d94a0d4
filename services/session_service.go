package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"chat-relay/auth"
	"chat-relay/contract"
	"chat-relay/domain"
	apperrors "chat-relay/errors"
	"chat-relay/repositories"
)

// AuthPayload is the decrypted body of an authenticate request. End users
// carry a bearer token; federated servers carry the shared server secret
// plus the batch of rooms they host.
type AuthPayload struct {
	Token string        `json:"token"`
	Chats []domain.Room `json:"chats,omitempty"`
}

// AuthResult is what the gate hands back to the transport on success.
type AuthResult struct {
	Role    contract.Role
	UserID  string
	Token   string
	Keypair contract.Keypair
	// Envelope is the caller's profile encrypted for its ephemeral key.
	// Empty for federated servers.
	Envelope string
}

type ISessionService interface {
	Authenticate(ctx context.Context, connID, envelope, responseKey string) (AuthResult, error)
	Verify(token string) (string, error)
	VerifyServer(token string) error
}

// SessionService is the session/auth gate. Authenticate runs once per
// connection; Verify runs at the top of every other handler against the
// token bound to the connection.
type SessionService struct {
	verifier     auth.Verifier
	users        repositories.IUserRepository
	registry     contract.IRegistry
	serverCache  contract.IServerCache
	cryptor      contract.Cryptor
	serverSecret string
	log          *slog.Logger
}

func NewSessionService(
	log *slog.Logger,
	verifier auth.Verifier,
	users repositories.IUserRepository,
	registry contract.IRegistry,
	serverCache contract.IServerCache,
	cryptor contract.Cryptor,
	serverSecret string,
) *SessionService {
	return &SessionService{
		verifier:     verifier,
		users:        users,
		registry:     registry,
		serverCache:  serverCache,
		cryptor:      cryptor,
		serverSecret: serverSecret,
		log:          log,
	}
}

// Authenticate decrypts the envelope and binds an identity to the
// connection. Federated servers present the shared secret instead of a
// bearer token and have their advertised rooms loaded into the cache;
// credential verification is skipped for them. Any failure on the user
// path is unauthorized and closes the transport.
func (s *SessionService) Authenticate(ctx context.Context, connID, envelope, responseKey string) (AuthResult, error) {
	plaintext, err := s.cryptor.Decrypt(ctx, envelope)
	if err != nil {
		return AuthResult{}, err
	}

	var payload AuthPayload
	if err := json.Unmarshal([]byte(plaintext), &payload); err != nil {
		return AuthResult{}, fmt.Errorf("%w: malformed auth payload", apperrors.ErrDecryption)
	}
	if payload.Token == "" {
		return AuthResult{}, apperrors.ErrUnauthorized
	}

	if s.serverSecret != "" && payload.Token == s.serverSecret {
		return s.authenticateServer(connID, payload)
	}
	return s.authenticateUser(ctx, connID, payload, responseKey)
}

func (s *SessionService) authenticateServer(connID string, payload AuthPayload) (AuthResult, error) {
	if err := s.registry.AttachIdentity(connID, "server:"+connID, contract.RoleServer); err != nil {
		return AuthResult{}, err
	}
	s.serverCache.AddServer(connID, payload.Chats)
	s.log.Info("federated server authenticated", "conn_id", connID, "rooms", len(payload.Chats))
	return AuthResult{Role: contract.RoleServer, Token: payload.Token}, nil
}

func (s *SessionService) authenticateUser(ctx context.Context, connID string, payload AuthPayload, responseKey string) (AuthResult, error) {
	userID, err := s.verifier.Verify(payload.Token)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.Get(userID)
	if err != nil {
		// A valid token for an identity the store does not know is a
		// credential failure, not a lookup miss.
		return AuthResult{}, apperrors.ErrUnauthorized
	}

	if err := s.registry.AttachIdentity(connID, userID, contract.RoleUser); err != nil {
		return AuthResult{}, err
	}

	result := AuthResult{
		Role:   contract.RoleUser,
		UserID: userID,
		Token:  payload.Token,
	}

	keypair, err := s.cryptor.GenerateKeypair(ctx)
	if err != nil {
		s.log.Warn("keypair generation failed", "user_id", userID, "error", err)
	} else {
		result.Keypair = keypair
	}

	profile, err := json.Marshal(map[string]any{"code": 1, "user": user.Profile()})
	if err != nil {
		return AuthResult{}, fmt.Errorf("encode profile: %w", err)
	}
	sealed, err := s.cryptor.Encrypt(ctx, responseKey, string(profile))
	if err != nil {
		return AuthResult{}, err
	}
	result.Envelope = sealed

	s.log.Info("user authenticated", "user_id", userID, "conn_id", connID)
	return result, nil
}

// Verify re-checks the bearer token bound to a connection. Pure: no
// lookup, no side effects, callers decide what a failure does to the
// transport.
func (s *SessionService) Verify(token string) (string, error) {
	return s.verifier.Verify(token)
}

// VerifyServer re-checks a federated connection's shared secret.
func (s *SessionService) VerifyServer(token string) error {
	if s.serverSecret == "" || token != s.serverSecret {
		return apperrors.ErrUnauthorized
	}
	return nil
}
