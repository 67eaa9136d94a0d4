package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "chat-relay/errors"

	"github.com/stretchr/testify/require"
)

func jsonHandler(t *testing.T, wantPath string, wantBody map[string]any, reply string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, wantPath, r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		for key, want := range wantBody {
			require.Equal(t, want, body[key])
		}
		_, _ = w.Write([]byte(reply))
	}
}

func TestCryptoClient_Encrypt(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(jsonHandler(t, "/encryption",
		map[string]any{"key": "pub", "data": "plaintext"},
		`{"code":1,"message":{"v":"sealed"}}`))
	defer srv.Close()

	envelope, err := NewCryptoClient(srv.URL, time.Second).Encrypt(context.Background(), "pub", "plaintext")
	req.NoError(err)
	req.JSONEq(`{"v":"sealed"}`, envelope)
}

func TestCryptoClient_Decrypt(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(jsonHandler(t, "/decrypt",
		nil,
		`{"code":1,"message":"{\"token\":\"abc\"}"}`))
	defer srv.Close()

	client := NewCryptoClient(srv.URL, time.Second)
	plaintext, err := client.Decrypt(context.Background(), `{"v":"sealed"}`)
	req.NoError(err)
	req.Equal(`{"token":"abc"}`, plaintext)

	// A non-JSON envelope never reaches the collaborator.
	_, err = client.Decrypt(context.Background(), "not json")
	req.ErrorIs(err, apperrors.ErrDecryption)
}

func TestCryptoClient_Decrypt_UpstreamRefusal(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0}`))
	}))
	defer srv.Close()

	_, err := NewCryptoClient(srv.URL, time.Second).Decrypt(context.Background(), `{"v":"bad"}`)
	req.ErrorIs(err, apperrors.ErrDecryption)
}

func TestCryptoClient_GenerateKeypair(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(jsonHandler(t, "/generate", nil,
		`{"code":1,"result":{"publicKey":"pub","privateKey":"priv"}}`))
	defer srv.Close()

	pair, err := NewCryptoClient(srv.URL, time.Second).GenerateKeypair(context.Background())
	req.NoError(err)
	req.Equal("pub", pair.Public)
	req.Equal("priv", pair.Private)
}

func TestUploadClient(t *testing.T) {
	req := require.New(t)
	mux := http.NewServeMux()
	mux.Handle("/upload_avatar_base64", jsonHandler(t, "/upload_avatar_base64",
		map[string]any{"avatar": "imgdata"}, `{"url":"http://cdn/a.png"}`))
	mux.Handle("/upload_file_base64", jsonHandler(t, "/upload_file_base64",
		map[string]any{"file": "filedata", "name": "notes.txt"}, `{"url":"http://cdn/notes.txt"}`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewUploadClient(srv.URL, time.Second)

	url, err := client.UploadAvatar(context.Background(), "imgdata")
	req.NoError(err)
	req.Equal("http://cdn/a.png", url)

	url, err = client.UploadFile(context.Background(), "filedata", "notes.txt")
	req.NoError(err)
	req.Equal("http://cdn/notes.txt", url)
}

func TestUploadClient_EmptyURLIsFailure(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewUploadClient(srv.URL, time.Second).UploadAvatar(context.Background(), "imgdata")
	req.ErrorIs(err, apperrors.ErrUpstream)
}

func TestMailClient(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Data [2]string `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, [2]string{"hunter2", "alice@example.com"}, body.Data)
		_, _ = w.Write([]byte(`{"status":1}`))
	}))
	defer srv.Close()

	err := NewMailClient(srv.URL, time.Second).SendVerificationCode(context.Background(), "alice@example.com", "hunter2")
	req.NoError(err)
}

func TestSiteClient(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(jsonHandler(t, "/set_chat",
		map[string]any{"chat": "room-1", "expirationHours": 2.0, "pasw": "hunter2"},
		`{"code":1}`))
	defer srv.Close()

	err := NewSiteClient(srv.URL, time.Second).
		RegisterTemporaryRoom(context.Background(), "room-1", "2025-06-01T12:00:00Z", 2, "hunter2")
	req.NoError(err)
}

func TestClient_Non2xxIsUpstreamError(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewSiteClient(srv.URL, time.Second).
		RegisterTemporaryRoom(context.Background(), "room-1", "2025-06-01T12:00:00Z", 2, "")
	req.ErrorIs(err, apperrors.ErrUpstream)
}

func TestClient_ConnectionRefused(t *testing.T) {
	req := require.New(t)

	_, err := NewUploadClient("http://127.0.0.1:1", 200*time.Millisecond).
		UploadAvatar(context.Background(), "imgdata")
	req.ErrorIs(err, apperrors.ErrUpstream)
}
