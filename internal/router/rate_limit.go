package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cctvmart/internal/cache"
	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/logger"

	"github.com/gin-gonic/gin"
)

// LoginRateLimitMiddleware 登录接口限流（按客户端 IP 计数）
// Redis 不可用时直接放行
func LoginRateLimitMiddleware(cfg config.LoginRateLimitConfig) gin.HandlerFunc {
	window := time.Duration(cfg.WindowSeconds) * time.Second
	if window <= 0 {
		window = 5 * time.Minute
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	block := time.Duration(cfg.BlockSeconds) * time.Second
	if block <= 0 {
		block = window
	}

	return func(c *gin.Context) {
		client := cache.Client()
		if client == nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := fmt.Sprintf("cm:rl:login:%s", c.ClientIP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warnw("login_rate_limit_incr_failed", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, window)
		}
		if count > int64(maxAttempts) {
			client.Expire(ctx, key, block)
			response.Error(c, http.StatusTooManyRequests, "too many login attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
