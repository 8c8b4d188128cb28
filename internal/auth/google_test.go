package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"resume-builder/internal/users"
)

type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) LoginExternal(ctx context.Context, email, name string) (users.Session, error) {
	args := m.Called(email, name)
	return args.Get(0).(users.Session), args.Error(1)
}

func newProvider(t *testing.T, profile map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "google-at", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer google-at", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(srv *httptest.Server, accounts ExternalLogin) (*GoogleService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("client", "secret", "http://api.local/api/v1/auth/google/callback", "http://ui.local/login", accounts)
	if srv != nil {
		svc.oauthConfig.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
		svc.userInfoURL = srv.URL + "/userinfo"
	}
	r := gin.New()
	svc.RegisterRoutes(r.Group("/api/v1"))
	return svc, r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStartRedirectsWithState(t *testing.T) {
	svc, r := newTestService(nil, &mockAccounts{})

	rec := get(r, "/api/v1/auth/google/start")
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)
	assert.True(t, svc.stateStore.consume(state))
	assert.False(t, svc.stateStore.consume(state), "state must be single use")
}

func TestStartRequiresConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("", "", "", "", &mockAccounts{})
	r := gin.New()
	svc.RegisterRoutes(r.Group("/api/v1"))

	rec := get(r, "/api/v1/auth/google/start")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth_not_configured")
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	_, r := newTestService(nil, &mockAccounts{})

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/auth/google/callback").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/auth/google/callback?state=nope&code=abc").Code)
}

func TestCallbackLinksAccountAndRedirects(t *testing.T) {
	srv := newProvider(t, map[string]any{"id": "123", "email": "ada@example.com", "verified_email": true, "name": "Ada"})
	accounts := &mockAccounts{}
	accounts.On("LoginExternal", "ada@example.com", "Ada").
		Return(users.Session{User: users.User{ID: "u1"}, Access: "acc", Refresh: "ref"}, nil).Once()

	svc, r := newTestService(srv, accounts)
	svc.stateStore.put("s1", time.Now().Add(time.Minute))

	rec := get(r, "/api/v1/auth/google/callback?state=s1&code=abc")
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "ui.local", loc.Host)
	assert.Equal(t, "acc", loc.Query().Get("token"))
	assert.Equal(t, "ref", loc.Query().Get("refresh"))
	accounts.AssertExpectations(t)
}

func TestCallbackRejectsUnverifiedEmail(t *testing.T) {
	srv := newProvider(t, map[string]any{"id": "123", "email": "ada@example.com", "verified_email": false})
	accounts := &mockAccounts{}

	svc, r := newTestService(srv, accounts)
	svc.stateStore.put("s1", time.Now().Add(time.Minute))

	rec := get(r, "/api/v1/auth/google/callback?state=s1&code=abc")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	accounts.AssertNotCalled(t, "LoginExternal", mock.Anything, mock.Anything)
}

func TestStateStoreExpires(t *testing.T) {
	store := newStateStore()
	store.put("old", time.Now().Add(-time.Second))
	assert.False(t, store.consume("old"))
}

func TestAppendTokens(t *testing.T) {
	out, err := appendTokens("http://ui.local/cb?x=1", "a", "")
	require.NoError(t, err)
	assert.Equal(t, "http://ui.local/cb?token=a&x=1", out)

	_, err = appendTokens("", "a", "b")
	assert.Error(t, err)
}
