package handler

import (
	"wom-connector/internal/adapter/http/middleware"
	"wom-connector/internal/adapter/metrics"
	redisStore "wom-connector/internal/adapter/storage/redis"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"
	"wom-connector/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	HandshakeSvc   ports.HandshakeService
	WalletSvc      ports.WalletService // nil = pocket disabled
	AimCatalog     ports.AimCatalog
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	RateLimitRule  middleware.RateLimitRule
	Metrics        *metrics.Metrics // nil = no /metrics endpoint
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules(deps.RateLimitRule)

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok || rule.Limit <= 0 || rule.Window <= 0 {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/login", rl("auth_login"), authHandler.Login)

	// --- JWT-authenticated routes (operators) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	secured := v1.Group("", jwtAuth)

	handshakes := NewHandshakeHandler(deps.HandshakeSvc)
	secured.POST("/instrument/vouchers", rl("issue"), handshakes.IssueVouchers)
	secured.POST("/pos/payments", rl("register"), handshakes.RegisterPayment)
	secured.GET("/pos/payments/:otc", rl("read"), handshakes.PaymentStatus)
	secured.GET("/aims", rl("read"), AimsHandler(deps.AimCatalog))

	pocket := secured.Group("/pocket")
	if deps.WalletSvc != nil {
		pocketHandler := NewPocketHandler(deps.WalletSvc)
		pocket.POST("/collect", rl("pocket"), pocketHandler.Collect)
		pocket.POST("/pay", rl("pocket"), pocketHandler.Pay)
		pocket.GET("/vouchers", rl("read"), pocketHandler.Vouchers)
	} else {
		disabled := func(c *gin.Context) { response.Error(c, apperror.ErrFeatureDisabled("pocket")) }
		pocket.POST("/collect", disabled)
		pocket.POST("/pay", disabled)
		pocket.GET("/vouchers", disabled)
	}

	return r
}
