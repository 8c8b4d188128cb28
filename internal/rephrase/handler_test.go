package rephrase

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/server/middleware"
)

func newTestRouter(client llm.Client, limiter *middleware.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "u1")
		c.Next()
	})
	NewHandler(NewService(client, 50), limiter).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rephrase", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlerReturnsSuggestion(t *testing.T) {
	client := &mockClient{}
	client.On("Rephrase", mock.Anything, mock.Anything).Return("Led a team of five.", nil)

	rec := post(newTestRouter(client, nil), `{"text":"managed people"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Led a team of five.", body["suggestion"])
}

func TestHandlerValidationErrors(t *testing.T) {
	r := newTestRouter(&mockClient{}, nil)

	for _, body := range []string{`{}`, `not json`, `{"text":"` + strings.Repeat("x", 51) + `"}`} {
		rec := post(r, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), `"invalid_input"`)
	}
}

func TestHandlerProviderErrorIs502(t *testing.T) {
	client := &mockClient{}
	client.On("Rephrase", mock.Anything, mock.Anything).Return("", errors.Join(llm.ErrProvider, errors.New("down")))

	rec := post(newTestRouter(client, nil), `{"text":"managed people"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"provider_error"`)
}

func TestHandlerIsRateLimited(t *testing.T) {
	client := &mockClient{}
	client.On("Rephrase", mock.Anything, mock.Anything).Return("ok", nil)

	now := time.Unix(1_700_000_000, 0)
	limiter := middleware.NewRateLimiter(middleware.RateLimitRule{Rate: 1.0 / 60, Burst: 1}, func() time.Time { return now })
	r := newTestRouter(client, limiter)

	assert.Equal(t, http.StatusOK, post(r, `{"text":"one"}`).Code)
	rec := post(r, `{"text":"two"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	client.AssertNumberOfCalls(t, "Rephrase", 1)
}
