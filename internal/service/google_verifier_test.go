package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onthi-app/onthi-backend/internal/config"
)

func tokenInfoServer(t *testing.T, status int, info GoogleTokenInfo) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("id_token"))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(info)
	}))
}

func TestGoogleVerifierAccepts(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusOK, GoogleTokenInfo{
		Subject:       "sub-1",
		Email:         "an@gmail.com",
		EmailVerified: "true",
		Name:          "An",
		Audience:      "client-a",
	})
	defer srv.Close()

	v := NewGoogleVerifier(&config.Config{
		GoogleTokenInfoURL: srv.URL,
		GoogleClientIDs:    []string{"client-a", "client-b"},
	})

	info, err := v.Verify(context.Background(), "a-token")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", info.Subject)
	assert.Equal(t, "an@gmail.com", info.Email)
}

func TestGoogleVerifierRejectsBadToken(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusBadRequest, GoogleTokenInfo{})
	defer srv.Close()

	v := NewGoogleVerifier(&config.Config{GoogleTokenInfoURL: srv.URL})

	_, err := v.Verify(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrGoogleTokenInvalid)
}

func TestGoogleVerifierRejectsUnverifiedEmail(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusOK, GoogleTokenInfo{
		Subject:       "sub-1",
		Email:         "an@gmail.com",
		EmailVerified: "false",
		Audience:      "client-a",
	})
	defer srv.Close()

	v := NewGoogleVerifier(&config.Config{GoogleTokenInfoURL: srv.URL})

	_, err := v.Verify(context.Background(), "a-token")
	assert.ErrorIs(t, err, ErrGoogleTokenInvalid)
}

func TestGoogleVerifierRejectsWrongAudience(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusOK, GoogleTokenInfo{
		Subject:       "sub-1",
		Email:         "an@gmail.com",
		EmailVerified: "true",
		Audience:      "someone-elses-app",
	})
	defer srv.Close()

	v := NewGoogleVerifier(&config.Config{
		GoogleTokenInfoURL: srv.URL,
		GoogleClientIDs:    []string{"client-a"},
	})

	_, err := v.Verify(context.Background(), "a-token")
	assert.ErrorIs(t, err, ErrGoogleTokenInvalid)
}

func TestGoogleVerifierAudienceCheckDisabledWithoutClientIDs(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusOK, GoogleTokenInfo{
		Subject:       "sub-1",
		Email:         "an@gmail.com",
		EmailVerified: "true",
		Audience:      "anything",
	})
	defer srv.Close()

	v := NewGoogleVerifier(&config.Config{GoogleTokenInfoURL: srv.URL})

	_, err := v.Verify(context.Background(), "a-token")
	assert.NoError(t, err)
}
