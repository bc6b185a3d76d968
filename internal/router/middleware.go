package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/cctvmart/internal/authz"
	"github.com/cctvmart/internal/cache"
	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/constants"
	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/repository"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"
const adminIsSuperContextKey = "admin_is_super"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.CtxKeyRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", c.GetString(constants.CtxKeyRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// resolveAuthState 读取用户认证状态，优先走缓存
func resolveAuthState(userRepo repository.UserRepository, userID uint) (cache.UserAuthState, bool) {
	if state, ok := cache.GetUserAuthState(userID); ok {
		return state, true
	}
	user, err := userRepo.GetByID(userID)
	if err != nil {
		return cache.UserAuthState{}, false
	}
	state := cache.UserAuthState{
		IsBlocked:    user.IsBlocked,
		TokenVersion: user.TokenVersion,
		Role:         user.Role,
		IsSuper:      user.IsSuper,
	}
	cache.SetUserAuthState(userID, state)
	return state, true
}

func authenticateUser(c *gin.Context, secretKey string, userRepo repository.UserRepository) (*service.UserClaims, bool) {
	tokenString, ok := bearerToken(c)
	if !ok {
		return nil, false
	}
	claims, err := service.ParseUserJWT(secretKey, tokenString)
	if err != nil || claims.UserID == 0 {
		return nil, false
	}
	state, ok := resolveAuthState(userRepo, claims.UserID)
	if !ok || state.IsBlocked || claims.TokenVersion != state.TokenVersion {
		return nil, false
	}

	c.Set(constants.CtxKeyUserID, claims.UserID)
	c.Set(constants.CtxKeyUserEmail, claims.Email)
	c.Set(constants.CtxKeyUserRole, state.Role)
	c.Set(adminIsSuperContextKey, state.IsSuper)
	return claims, true
}

// UserAuthMiddleware 用户 JWT 鉴权中间件
func UserAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" || userRepo == nil {
			response.Unauthorized(c, "authentication unavailable")
			c.Abort()
			return
		}
		if _, ok := authenticateUser(c, secretKey, userRepo); !ok {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalUserAuthMiddleware 可选鉴权；携带有效令牌时注入身份，否则匿名放行
func OptionalUserAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey != "" && userRepo != nil {
			authenticateUser(c, secretKey, userRepo)
		}
		c.Next()
	}
}

// AdminRequiredMiddleware 要求管理员角色
func AdminRequiredMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.CtxKeyUserRole)
		if role != constants.RoleAdmin {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件（初始管理员直接放行）
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			response.Unauthorized(c, "authorization unavailable")
			c.Abort()
			return
		}

		if isSuper, ok := c.Get(adminIsSuperContextKey); ok {
			if superValue, typeOK := isSuper.(bool); typeOK && superValue {
				c.Next()
				return
			}
		}

		adminIDRaw, exists := c.Get(constants.CtxKeyUserID)
		adminID, _ := adminIDRaw.(uint)
		if !exists || adminID == 0 {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceAdmin(adminID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Unauthorized(c, "authorization failed")
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
			response.Forbidden(c, "permission denied")
			c.Abort()
			return
		}

		c.Next()
	}
}

// TechnicianAuthMiddleware 技师门户 JWT 鉴权中间件
func TechnicianAuthMiddleware(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			response.Unauthorized(c, "authentication unavailable")
			c.Abort()
			return
		}
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "technician login required")
			c.Abort()
			return
		}
		claims, err := service.ParseTechnicianJWT(secretKey, tokenString)
		if err != nil || claims.TechnicianID == 0 {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(constants.CtxKeyTechnicianID, claims.TechnicianID)
		c.Next()
	}
}
