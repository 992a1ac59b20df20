package github

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"prsentinel/internal/config"
	"prsentinel/internal/observability"
)

type queueStub struct {
	jobs []string
}

func (q *queueStub) Enqueue(_ context.Context, repo string, pr int) error {
	q.jobs = append(q.jobs, repo)
	return nil
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newHandler(q JobQueue) *WebhookHandler {
	cfg := &config.Config{GithubSecret: "s3cret", LogLevel: "error", Env: "test"}
	return NewWebhookHandler(cfg, observability.NewLogger(cfg), q)
}

func TestHandle_RejectsBadSignature(t *testing.T) {
	q := &queueStub{}
	h := newHandler(q)

	req := httptest.NewRequest("POST", "/webhook/github", bytes.NewBufferString("{}"))
	req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")
	req.Header.Set("X-GitHub-Event", "pull_request")

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, q.jobs)
}

func TestHandle_EnqueuesOpenedPR(t *testing.T) {
	q := &queueStub{}
	h := newHandler(q)

	body := []byte(`{"action":"opened","pull_request":{"number":42},"repository":{"full_name":"acme/repo"}}`)

	req := httptest.NewRequest("POST", "/webhook/github", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign("s3cret", body))
	req.Header.Set("X-GitHub-Event", "pull_request")

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"acme/repo"}, q.jobs)
}

func TestHandle_SkipsDraftsAndOtherActions(t *testing.T) {
	q := &queueStub{}
	h := newHandler(q)

	for _, body := range [][]byte{
		[]byte(`{"action":"opened","pull_request":{"number":1,"draft":true},"repository":{"full_name":"acme/repo"}}`),
		[]byte(`{"action":"closed","pull_request":{"number":2},"repository":{"full_name":"acme/repo"}}`),
	} {
		req := httptest.NewRequest("POST", "/webhook/github", bytes.NewReader(body))
		req.Header.Set("X-Hub-Signature-256", sign("s3cret", body))
		req.Header.Set("X-GitHub-Event", "pull_request")

		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	}

	require.Empty(t, q.jobs)
}
