package api

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/pkg/circuitbreaker"
	"Sceptre/backend/go/pkg/httpmiddleware"
	"Sceptre/backend/go/pkg/ratelimiter"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupRouter 配置和返回一个 Gin 引擎实例。
func SetupRouter(h *Handler, cfg *config.AppConfig) (*gin.Engine, error) {
	// 使用默认中间件 (logger, recovery) 创建一个 Gin 引擎。
	r := gin.Default()

	// 健康检查不经过认证和限流。
	r.GET("/healthz", h.Health)

	// 使用 v1 版本对 API 进行分组
	apiV1 := r.Group("/api/v1")

	// 根据配置挂载限流中间件。
	if cfg.Middleware.RateLimiter.Enabled {
		limiter, err := buildRateLimiter(cfg.Middleware.RateLimiter)
		if err != nil {
			return nil, err
		}
		apiV1.Use(httpmiddleware.RateLimit(limiter))
	}

	// 根据配置挂载熔断中间件。
	if cfg.Middleware.CircuitBreaker.Enabled {
		timeout, err := time.ParseDuration(cfg.Middleware.CircuitBreaker.Timeout)
		if err != nil {
			return nil, fmt.Errorf("无效的熔断器超时配置: %w", err)
		}
		breaker := circuitbreaker.New(
			cfg.Middleware.CircuitBreaker.FailureThreshold,
			cfg.Middleware.CircuitBreaker.SuccessThreshold,
			timeout,
		)
		apiV1.Use(httpmiddleware.CircuitBreak(breaker))
	}

	// 根据配置挂载认证中间件。
	if cfg.Auth.Enabled {
		apiV1.Use(AuthMiddleware(cfg.Auth.JwtSecret))
	}

	{
		apiV1.POST("/verify", h.Verify)
		apiV1.POST("/search", h.Search)
		apiV1.POST("/chat", h.Chat)

		// 知识库管理路由组
		knowledgeGroup := apiV1.Group("/knowledge")
		{
			knowledgeGroup.POST("/refresh", h.RefreshKnowledge)
		}
	}

	return r, nil
}

// buildRateLimiter 根据配置选择限流算法。
func buildRateLimiter(cfg config.RateLimiterConfig) (ratelimiter.RateLimiter, error) {
	switch cfg.Algorithm {
	case "tokenBucket":
		return ratelimiter.NewTokenBucket(cfg.TokenBucket.Rate, cfg.TokenBucket.Capacity), nil
	case "fixedWindow":
		window, err := time.ParseDuration(cfg.FixedWindow.Window)
		if err != nil {
			return nil, fmt.Errorf("无效的限流窗口配置: %w", err)
		}
		return ratelimiter.NewFixedWindowCounter(cfg.FixedWindow.Limit, window), nil
	default:
		return nil, fmt.Errorf("不支持的限流算法: %q", cfg.Algorithm)
	}
}
