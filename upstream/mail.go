package upstream

import (
	"context"
	"time"

	apperrors "chat-relay/errors"
)

// MailClient talks to the notification collaborator. The wire shape is a
// positional pair: [code, recipient].
type MailClient struct {
	client
}

func NewMailClient(baseURL string, timeout time.Duration) *MailClient {
	return &MailClient{client: newClient(baseURL, timeout)}
}

type mailRequest struct {
	Data [2]string `json:"data"`
}

type mailResponse struct {
	Status int `json:"status"`
}

func (c *MailClient) SendVerificationCode(ctx context.Context, recipient, code string) error {
	var resp mailResponse
	if err := c.postJSON(ctx, "/send_gmail", mailRequest{Data: [2]string{code, recipient}}, &resp); err != nil {
		return err
	}
	if resp.Status != 1 {
		return apperrors.ErrUpstream
	}
	return nil
}
