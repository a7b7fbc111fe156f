package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "veriface.io/application/appErrors"
	"veriface.io/infrastructure/auth"
)

// UserAuthenticationMiddleware guards routes behind the session token issued
// after a successful verification.
func UserAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.AuthenticationError(ctx, "missing authorization header")
			return
		}

		claims, err := auth.DecodeAuthToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			apperrors.AuthenticationError(ctx, "invalid or expired session token")
			return
		}

		ctx.Set("Username", claims.Username)
		ctx.Next()
	}
}
