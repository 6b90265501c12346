package middleware

import (
	"context"
	"dating_app_backend/internal/util"
	"dating_app_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier 校验令牌并返回用户 ID
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// tokenFromRequest 优先读取 x-auth-token，其次是 Authorization: Bearer
func tokenFromRequest(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(util.AuthHeader)); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			util.Error(c, 401, "No token, authorization denied")
			c.Abort()
			return
		}

		userID, err := verifier.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Log.Debug("Token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			util.Error(c, 401, "Token is not valid")
			c.Abort()
			return
		}

		c.Set("user", &util.Claims{UserID: userID})
		c.Next()
	}
}
