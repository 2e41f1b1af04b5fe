package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/onthi-app/onthi-backend/internal/config"
)

// ErrGoogleTokenInvalid is returned when Google rejects an ID token or the
// token was issued for a different app.
var ErrGoogleTokenInvalid = errors.New("google id token invalid")

// GoogleTokenInfo is the subset of Google's tokeninfo response we consume.
type GoogleTokenInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

// GoogleVerifier verifies Google ID tokens sent by the mobile client.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleTokenInfo, error)
}

// googleTokenInfoVerifier verifies tokens against Google's tokeninfo
// endpoint. The endpoint URL is configurable so tests can point it at a
// local httptest server.
type googleTokenInfoVerifier struct {
	cfg    *config.Config
	client *http.Client
}

// NewGoogleVerifier creates a verifier backed by Google's tokeninfo endpoint.
func NewGoogleVerifier(cfg *config.Config) GoogleVerifier {
	return &googleTokenInfoVerifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *googleTokenInfoVerifier) Verify(ctx context.Context, idToken string) (*GoogleTokenInfo, error) {
	endpoint := v.cfg.GoogleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tokeninfo request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrGoogleTokenInvalid
	}

	var info GoogleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo: %w", err)
	}

	if info.EmailVerified != "true" {
		return nil, ErrGoogleTokenInvalid
	}
	if !v.audienceAllowed(info.Audience) {
		return nil, ErrGoogleTokenInvalid
	}

	return &info, nil
}

func (v *googleTokenInfoVerifier) audienceAllowed(aud string) bool {
	// No configured client IDs means audience checking is disabled
	// (local development).
	if len(v.cfg.GoogleClientIDs) == 0 {
		return true
	}
	for _, id := range v.cfg.GoogleClientIDs {
		if id == aud {
			return true
		}
	}
	return false
}
