package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	"veriface.io/application/repository"
	media_usecases "veriface.io/application/usecases/media"
	"veriface.io/application/utils"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/database/repository/cache"
	"veriface.io/infrastructure/report"
	server_response "veriface.io/infrastructure/serverResponse"
	"veriface.io/infrastructure/validator"
)

// AnalyzeImage screens a single image for manipulation artifacts
// synchronously.
func AnalyzeImage(ctx *interfaces.ApplicationContext[dto.AnalyzeImageDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	image, err := utils.DecodeBase64Media(ctx.Body.Image)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid image payload", nil)
		return
	}

	frame, err := biometric.Screen.AnalyzeImage(image)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrImageRead):
			apperrors.ClientError(ctx.Ctx, "could not decode the image", nil)
		case errors.Is(err, types.ErrNoFaceDetected):
			apperrors.ClientError(ctx.Ctx, "no face detected in the image", nil)
		default:
			apperrors.ExternalDependencyError(ctx.Ctx, "image-screen", err)
		}
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "image analysis complete", frame, nil)
}

// AnalyzeVideo accepts a video for asynchronous screening and returns the
// pending report reference.
func AnalyzeVideo(ctx *interfaces.ApplicationContext[dto.AnalyzeVideoDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	video, err := utils.DecodeBase64Media(ctx.Body.Video)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid video payload", nil)
		return
	}

	result, err := media_usecases.RequestVideoAnalysisUseCase(ctx.Ctx, video, ctx.Body.Extension,
		ctx.GetStringContextData("Username"))
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusAccepted, "video analysis queued",
		dto.AnalyzeVideoResponseDTO{
			ReportID: result.ReportID,
			Status:   string(result.Status),
		}, nil)
}

// FetchReport returns an authenticity report by id. Completed reports are
// cached; pending ones are always read from the database.
func FetchReport(ctx *interfaces.ApplicationContextWithoutBody, reportID string) {
	username, _ := ctx.Keys["Username"].(string)
	cached := cache.Cache.FindOne(reportCacheKey(reportID))
	if cached != nil {
		var cachedReport entities.AuthenticityReport
		if err := json.Unmarshal([]byte(*cached), &cachedReport); err == nil && cachedReport.RequestedBy == username {
			server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "report fetched", cachedReport, nil)
			return
		}
	}

	result := fetchOwnedReport(ctx, reportID)
	if result == nil {
		return
	}
	if result.Status != entities.ReportPending {
		if payload, err := json.Marshal(result); err == nil {
			cache.Cache.CreateEntry(reportCacheKey(reportID), payload, time.Hour)
		}
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "report fetched", result, nil)
}

// DownloadReport renders a completed report as a PDF document.
func DownloadReport(ctx *interfaces.ApplicationContextWithoutBody, reportID string) {
	result := fetchOwnedReport(ctx, reportID)
	if result == nil {
		return
	}
	if result.Status == entities.ReportPending {
		apperrors.ClientError(ctx.Ctx, "report is still being generated", nil)
		return
	}

	document, err := report.RenderAuthenticityReport(result)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	ginCtx := ctx.Ctx.(*gin.Context)
	ginCtx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="authenticity-report-%s.pdf"`, reportID))
	ginCtx.Data(http.StatusOK, "application/pdf", document)
}

func fetchOwnedReport(ctx *interfaces.ApplicationContextWithoutBody, reportID string) *entities.AuthenticityReport {
	result, err := repository.ReportRepo().FindOneByField(map[string]interface{}{
		"reportID": reportID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return nil
	}
	if result == nil {
		apperrors.NotFoundError(ctx.Ctx, "report not found")
		return nil
	}
	username, _ := ctx.Keys["Username"].(string)
	if result.RequestedBy != username {
		apperrors.NotFoundError(ctx.Ctx, "report not found")
		return nil
	}
	return result
}

func reportCacheKey(reportID string) string {
	return "report-" + reportID
}
