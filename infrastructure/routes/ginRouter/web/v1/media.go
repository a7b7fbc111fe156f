package routev1

import (
	"github.com/gin-gonic/gin"
	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	middlewares "veriface.io/infrastructure/middleware"
)

func MediaRouter(router *gin.RouterGroup) {
	mediaRouter := router.Group("/media")
	mediaRouter.Use(middlewares.UserAuthenticationMiddleware())
	{
		mediaRouter.POST("/analyze-image", func(ctx *gin.Context) {
			var body dto.AnalyzeImageDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.AnalyzeImage(&interfaces.ApplicationContext[dto.AnalyzeImageDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: ctx.Keys,
			})
		})

		mediaRouter.POST("/analyze-video", func(ctx *gin.Context) {
			var body dto.AnalyzeVideoDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.AnalyzeVideo(&interfaces.ApplicationContext[dto.AnalyzeVideoDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: ctx.Keys,
			})
		})

		mediaRouter.GET("/reports/:reportID", func(ctx *gin.Context) {
			controller.FetchReport(&interfaces.ApplicationContextWithoutBody{
				Ctx:  ctx,
				Keys: ctx.Keys,
			}, ctx.Param("reportID"))
		})

		mediaRouter.GET("/reports/:reportID/pdf", func(ctx *gin.Context) {
			controller.DownloadReport(&interfaces.ApplicationContextWithoutBody{
				Ctx:  ctx,
				Keys: ctx.Keys,
			}, ctx.Param("reportID"))
		})
	}
}
