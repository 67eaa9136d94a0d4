// Package upstream holds the HTTP clients for the relay's collaborator
// services: crypto, blob upload, mail and the public site. Each client
// wraps one base URL and exposes the narrow contract interface the
// business layer consumes.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "chat-relay/errors"
)

// client is the shared plumbing: one base URL, one http.Client with the
// configured timeout. All collaborator endpoints are JSON POSTs.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, timeout time.Duration) client {
	return client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// postJSON sends the payload and decodes the response into out. Any
// transport failure or non-2xx status collapses to ErrUpstream; response
// bodies of failed calls never propagate past this point.
func (c client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", apperrors.ErrUpstream, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build %s: %v", apperrors.ErrUpstream, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrUpstream, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s: status %d", apperrors.ErrUpstream, path, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", apperrors.ErrUpstream, path, err)
	}
	return nil
}
