package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mileusna/useragent"
	"veriface.io/infrastructure/logger"
)

// UserAgentMiddleware tags each request with an id and records the client
// platform for the audit trail.
func UserAgentMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := uuid.NewString()
		ctx.Set("RequestID", requestID)

		agent := useragent.Parse(ctx.Request.UserAgent())
		logger.Info("incoming request", logger.LoggerOptions{
			Key:  "requestID",
			Data: requestID,
		}, logger.LoggerOptions{
			Key:  "path",
			Data: ctx.Request.URL.Path,
		}, logger.LoggerOptions{
			Key:  "os",
			Data: agent.OS,
		}, logger.LoggerOptions{
			Key:  "browser",
			Data: agent.Name,
		}, logger.LoggerOptions{
			Key:  "mobile",
			Data: agent.Mobile,
		}, logger.LoggerOptions{
			Key:  "ip",
			Data: ctx.ClientIP(),
		})
		ctx.Next()
	}
}
