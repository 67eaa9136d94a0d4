package upstream

import (
	"context"
	"time"

	apperrors "chat-relay/errors"
)

// UploadClient talks to the blob store. Callers pass raw base64 content;
// the store decodes, persists and answers with a public URL.
type UploadClient struct {
	client
}

func NewUploadClient(baseURL string, timeout time.Duration) *UploadClient {
	return &UploadClient{client: newClient(baseURL, timeout)}
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

type fileRequest struct {
	File string `json:"file"`
	Name string `json:"name"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (c *UploadClient) UploadAvatar(ctx context.Context, base64Data string) (string, error) {
	var resp uploadResponse
	if err := c.postJSON(ctx, "/upload_avatar_base64", avatarRequest{Avatar: base64Data}, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", apperrors.ErrUpstream
	}
	return resp.URL, nil
}

func (c *UploadClient) UploadFile(ctx context.Context, base64Data, name string) (string, error) {
	var resp uploadResponse
	if err := c.postJSON(ctx, "/upload_file_base64", fileRequest{File: base64Data, Name: name}, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", apperrors.ErrUpstream
	}
	return resp.URL, nil
}
