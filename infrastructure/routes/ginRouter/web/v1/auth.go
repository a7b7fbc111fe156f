package routev1

import (
	"github.com/gin-gonic/gin"
	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
)

func AuthRouter(router *gin.RouterGroup) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/enroll", func(ctx *gin.Context) {
			var body dto.EnrollUserDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.EnrollUser(&interfaces.ApplicationContext[dto.EnrollUserDTO]{
				Ctx:       ctx,
				Body:      &body,
				Keys:      ctx.Keys,
				UserAgent: ctx.Request.UserAgent(),
			})
		})

		authRouter.POST("/verify", func(ctx *gin.Context) {
			var body dto.VerifyUserDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyUser(&interfaces.ApplicationContext[dto.VerifyUserDTO]{
				Ctx:       ctx,
				Body:      &body,
				Keys:      ctx.Keys,
				UserAgent: ctx.Request.UserAgent(),
			})
		})
	}
}
