package upstream

import (
	"context"
	"time"

	apperrors "chat-relay/errors"
)

// SiteClient registers temporary rooms with the public site so they show
// up in its open listing until their deadline passes.
type SiteClient struct {
	client
}

func NewSiteClient(baseURL string, timeout time.Duration) *SiteClient {
	return &SiteClient{client: newClient(baseURL, timeout)}
}

type setChatRequest struct {
	Chat            string  `json:"chat"`
	CreatedAt       string  `json:"createdAt"`
	ExpirationHours float64 `json:"expirationHours"`
	Pasw            string  `json:"pasw,omitempty"`
}

type setChatResponse struct {
	Code int `json:"code"`
}

func (c *SiteClient) RegisterTemporaryRoom(ctx context.Context, roomID, createdAt string, expirationHours float64, password string) error {
	req := setChatRequest{
		Chat:            roomID,
		CreatedAt:       createdAt,
		ExpirationHours: expirationHours,
		Pasw:            password,
	}
	var resp setChatResponse
	if err := c.postJSON(ctx, "/set_chat", req, &resp); err != nil {
		return err
	}
	if resp.Code != 1 {
		return apperrors.ErrUpstream
	}
	return nil
}
