package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestGetUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"g-1","email":"asha@example.com","verified_email":true,"name":"Asha"}`))
	}))
	defer srv.Close()

	s := NewGoogleOAuthService(GoogleOAuthConfig{ClientID: "id", ClientSecret: "secret"})
	s.userInfoURL = srv.URL

	info, err := s.GetUserInfo(context.Background(), &oauth2.Token{AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "g-1", info.ID)
	assert.True(t, info.VerifiedEmail)
}

func TestGetUserInfoRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewGoogleOAuthService(GoogleOAuthConfig{ClientID: "id", ClientSecret: "secret"})
	s.userInfoURL = srv.URL

	_, err := s.GetUserInfo(context.Background(), &oauth2.Token{AccessToken: "tok"})
	assert.True(t, errors.Is(err, ErrFailedToGetUser))
}

func TestAuthenticateRequiresConfiguration(t *testing.T) {
	s := NewGoogleOAuthService(GoogleOAuthConfig{})
	assert.False(t, s.IsConfigured())

	_, err := s.Authenticate(context.Background(), "code")
	assert.ErrorIs(t, err, ErrOAuthNotConfigured)
}

func TestAuthURLCarriesState(t *testing.T) {
	s := NewGoogleOAuthService(GoogleOAuthConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"})
	state := NewState()

	assert.Contains(t, s.GetAuthURL(state), "state="+state)
	assert.NotEqual(t, state, NewState())
}
