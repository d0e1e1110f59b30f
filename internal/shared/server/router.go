package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/evaluations"
	"resume-matcher/internal/rankings"
	"resume-matcher/internal/services/health"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/server/respond"
	"resume-matcher/internal/ui"
)

const feedbackRateGroup = "FEEDBACK"

// RouterDeps holds the handlers mounted by NewRouter.
type RouterDeps struct {
	Config            config.Config
	EvaluationHandler *evaluations.Handler
	RankingHandler    *rankings.Handler
	Health            *health.Service
	RateLimiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	ui.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	bodyLimit := middleware.BodyLimit(deps.Config.MaxUploadBytes)
	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.RegisterRoutes(api, bodyLimit, feedbackRateLimit(deps))
	}
	if deps.RankingHandler != nil {
		deps.RankingHandler.RegisterRoutes(api, bodyLimit)
	}

	return r
}

// feedbackRateLimit throttles only evaluations that ask for AI feedback.
func feedbackRateLimit(deps RouterDeps) gin.HandlerFunc {
	rules := map[string]middleware.RateLimitRule{}
	if deps.Config.FeedbackRatePerM > 0 {
		burst := deps.Config.FeedbackBurst
		if burst <= 0 {
			burst = 1
		}
		rules[feedbackRateGroup] = middleware.RateLimitRule{
			Rate:  deps.Config.FeedbackRatePerM / 60,
			Burst: burst,
		}
	}
	return middleware.RateLimit(middleware.RateLimitConfig{
		Rules:   rules,
		Limiter: deps.RateLimiter,
		GroupFor: func(c *gin.Context) string {
			if evaluations.FeedbackRequested(c) {
				return feedbackRateGroup
			}
			return ""
		},
	})
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
