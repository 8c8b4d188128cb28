package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/credits"
	"resume-builder/internal/payments"
	"resume-builder/internal/rephrase"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/users"
)

// RouterDeps carries the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config          config.Config
	Tokens          middleware.TokenVerifier
	UserHandler     *users.Handler
	ResumeHandler   *resumes.Handler
	CreditHandler   *credits.Handler
	PaymentHandler  *payments.Handler
	RephraseHandler *rephrase.Handler
	GoogleAuth      *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Tokens),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.CreditHandler != nil {
		deps.CreditHandler.RegisterRoutes(api)
	}
	if deps.PaymentHandler != nil {
		deps.PaymentHandler.RegisterRoutes(api)
		deps.PaymentHandler.RegisterAdminRoutes(api)
	}
	if deps.RephraseHandler != nil {
		deps.RephraseHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
