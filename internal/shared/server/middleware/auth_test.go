package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
)

func newTestManager(t *testing.T) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager("test-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(newTestManager(t)))
	router.OPTIONS("/api/v1/resumes", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodOptions, "/api/v1/resumes", nil))

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthPublicAndProtectedPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := newTestManager(t)
	router := gin.New()
	router.Use(Auth(mgr))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"user": UserIDFromContext(c)}) }
	router.POST("/api/v1/token", ok)
	router.GET("/api/v1/auth/google/start", ok)
	router.GET("/api/v1/resumes", ok)
	router.GET("/api/v1/tokens-list", ok)

	cases := []struct {
		method, path, header string
		want                 int
	}{
		{http.MethodPost, "/api/v1/token", "", http.StatusOK},
		{http.MethodGet, "/api/v1/auth/google/start", "", http.StatusOK},
		{http.MethodGet, "/api/v1/resumes", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/resumes", "Token abc", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/resumes", "Bearer not-a-jwt", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/tokens-list", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("%s %s (%q): expected %d, got %d", tc.method, tc.path, tc.header, tc.want, resp.Code)
		}
	}
}

func TestAuthRejectsRefreshTokenAsAccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := newTestManager(t)
	pair, err := mgr.IssuePair(auth.Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	router := gin.New()
	router.Use(Auth(mgr))
	router.GET("/api/v1/resumes", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Refresh)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequireStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := newTestManager(t)
	router := gin.New()
	router.Use(Auth(mgr))
	router.GET("/api/v1/admin/payments", RequireStaff(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": UserEmailFromContext(c)})
	})

	for _, staff := range []bool{false, true} {
		token, err := mgr.IssueAccess(auth.Identity{UserID: "u1", Email: "a@example.com", Staff: staff})
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/payments", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		want := http.StatusForbidden
		if staff {
			want = http.StatusOK
		}
		if resp.Code != want {
			t.Fatalf("staff=%v: expected %d, got %d", staff, want, resp.Code)
		}
	}
}
