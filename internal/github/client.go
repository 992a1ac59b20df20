package github

import (
	"bytes"
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"prsentinel/internal/config"
	"prsentinel/internal/observability"
)

const apiBase = "https://api.github.com"

type client struct {
	cfg    *config.Config
	logger *observability.Logger
	http   *http.Client
	cache  *tokenCache
}

// NewClient returns a client that authenticates as a GitHub App when App
// credentials are configured, or with the static GITHUB_TOKEN otherwise.
func NewClient(cfg *config.Config, logger *observability.Logger) *client {
	return &client{
		cfg:    cfg,
		logger: logger,
		http:   &http.Client{Timeout: 15 * time.Second},
		cache:  &tokenCache{},
	}
}

// GetPRDiff fetches the PR's raw unified diff, the segmenter's input.
func (c *client) GetPRDiff(ctx context.Context, repo string, pr int) (string, error) {
	token, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/repos/%s/pulls/%d", apiBase, repo, pr)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("build diff request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github.diff")

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("github diff status %d: %s", res.StatusCode, string(msg))
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read diff response: %w", err)
	}

	return string(b), nil
}

// CreateComment posts a PR-level (issue) comment.
func (c *client) CreateComment(ctx context.Context, repo string, pr int, body string) error {
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", apiBase, repo, pr)
	return c.post(ctx, url, map[string]string{"body": body})
}

// CreateLineComment posts a review comment anchored to a diff line.
func (c *client) CreateLineComment(ctx context.Context, repo string, pr int, comment LineComment) error {
	url := fmt.Sprintf("%s/repos/%s/pulls/%d/comments", apiBase, repo, pr)
	return c.post(ctx, url, comment)
}

func (c *client) post(ctx context.Context, url string, payload any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal comment payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build comment request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("github comment status %d: %s", res.StatusCode, string(msg))
	}

	return nil
}

// token resolves an installation token for App auth, or the static token.
func (c *client) token(ctx context.Context) (string, error) {
	if c.cfg.GithubAppID == "" || c.cfg.GithubPrivateKeyPath == "" {
		if c.cfg.GitHubToken == "" {
			return "", fmt.Errorf("no github credentials configured")
		}
		return c.cfg.GitHubToken, nil
	}

	if t, ok := c.cache.Get(); ok {
		return t, nil
	}

	appJWT, err := c.createJWT()
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(
		"%s/app/installations/%s/access_tokens",
		apiBase, c.cfg.GithubInstallationID,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+appJWT)
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("github token status %d: %s", res.StatusCode, string(msg))
	}

	var r struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	}

	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if r.Token == "" {
		return "", fmt.Errorf("empty installation token")
	}

	// Installation tokens live an hour; refresh a bit early.
	c.cache.Set(r.Token, 50*time.Minute)

	return r.Token, nil
}

func (c *client) createJWT() (string, error) {
	key, err := loadPrivateKey(c.cfg.GithubPrivateKeyPath)
	if err != nil {
		return "", err
	}

	now := time.Now()

	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(9 * time.Minute)),
		Issuer:    c.cfg.GithubAppID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	return token.SignedString(key)
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}

	block, _ := pem.Decode(b)
	if block == nil {
		return nil, fmt.Errorf("invalid pem")
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err == nil {
		return key, nil
	}

	pkcs8, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	privateKey, ok := pkcs8.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("pkcs8 key is not RSA")
	}

	return privateKey, nil
}
