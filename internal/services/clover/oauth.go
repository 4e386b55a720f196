package clover

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloversync/internal/config"
	"cloversync/internal/logger"
)

const (
	productionOAuthBase = "https://www.clover.com/oauth"
	sandboxOAuthBase    = "https://sandbox.dev.clover.com/oauth"
)

type OAuthService struct {
	config     *config.Config
	logger     *logger.Logger
	httpClient *http.Client
	base       string
}

func NewOAuthService(cfg *config.Config, logger *logger.Logger) *OAuthService {
	base := productionOAuthBase
	if cfg.CloverSandbox {
		base = sandboxOAuthBase
	}

	return &OAuthService{
		config: cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		base: base,
	}
}

// GenerateAuthURL creates the Clover OAuth authorization URL along with the
// state parameter to verify on callback.
func (s *OAuthService) GenerateAuthURL(redirectURI string) (string, string, error) {
	state, err := s.generateState()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state: %w", err)
	}

	authURL := fmt.Sprintf(
		"%s/authorize?client_id=%s&response_type=code&redirect_uri=%s&state=%s",
		s.base,
		url.QueryEscape(s.config.CloverClientID),
		url.QueryEscape(redirectURI),
		state,
	)

	return authURL, state, nil
}

// ExchangeCodeForToken exchanges the authorization code for an access token
// and the merchant it belongs to.
func (s *OAuthService) ExchangeCodeForToken(ctx context.Context, code, redirectURI string) (*TokenResponse, error) {
	tokenURL := s.base + "/token"
	op := "POST " + tokenURL

	data := url.Values{}
	data.Set("client_id", s.config.CloverClientID)
	data.Set("client_secret", s.config.CloverClientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, &SchemaError{Op: "token exchange", Field: "access_token"}
	}

	return &tokenResp, nil
}

// generateState generates a cryptographically secure random state
func (s *OAuthService) generateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
