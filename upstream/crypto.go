package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chat-relay/contract"
	apperrors "chat-relay/errors"
)

// CryptoClient talks to the crypto collaborator. Envelopes stay opaque:
// they travel as raw JSON between the socket and here, the relay never
// inspects key material or plaintext beyond its own handshake payloads.
type CryptoClient struct {
	client
}

func NewCryptoClient(baseURL string, timeout time.Duration) *CryptoClient {
	return &CryptoClient{client: newClient(baseURL, timeout)}
}

type encryptRequest struct {
	Key  string `json:"key"`
	Data string `json:"data"`
}

type encryptResponse struct {
	Code    int             `json:"code"`
	Message json.RawMessage `json:"message"`
}

// Encrypt seals plaintext for the given public key and returns the sealed
// envelope as a raw JSON string.
func (c *CryptoClient) Encrypt(ctx context.Context, key, plaintext string) (string, error) {
	var resp encryptResponse
	if err := c.postJSON(ctx, "/encryption", encryptRequest{Key: key, Data: plaintext}, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrEncryption, err)
	}
	if resp.Code != 1 || len(resp.Message) == 0 {
		return "", apperrors.ErrEncryption
	}
	return string(resp.Message), nil
}

type decryptRequest struct {
	Data json.RawMessage `json:"data"`
}

type decryptResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Decrypt opens an envelope previously sealed for the relay's key.
func (c *CryptoClient) Decrypt(ctx context.Context, envelope string) (string, error) {
	if !json.Valid([]byte(envelope)) {
		return "", apperrors.ErrDecryption
	}
	var resp decryptResponse
	if err := c.postJSON(ctx, "/decrypt", decryptRequest{Data: json.RawMessage(envelope)}, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDecryption, err)
	}
	if resp.Code != 1 {
		return "", apperrors.ErrDecryption
	}
	return resp.Message, nil
}

type generateResponse struct {
	Code   int `json:"code"`
	Result struct {
		PublicKey  string `json:"publicKey"`
		PrivateKey string `json:"privateKey"`
	} `json:"result"`
}

// GenerateKeypair issues a fresh ephemeral pair for a session handshake.
func (c *CryptoClient) GenerateKeypair(ctx context.Context) (contract.Keypair, error) {
	var resp generateResponse
	if err := c.postJSON(ctx, "/generate", struct{}{}, &resp); err != nil {
		return contract.Keypair{}, err
	}
	if resp.Code != 1 || resp.Result.PublicKey == "" {
		return contract.Keypair{}, apperrors.ErrUpstream
	}
	return contract.Keypair{
		Public:  resp.Result.PublicKey,
		Private: resp.Result.PrivateKey,
	}, nil
}
