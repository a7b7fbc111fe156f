package controller

import (
	"context"
	"net/http"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	"veriface.io/application/utils"
	enrollment_usecases "veriface.io/application/usecases/enrollment"
	verification_usecases "veriface.io/application/usecases/verification"
	"veriface.io/infrastructure/biometric/types"
	server_response "veriface.io/infrastructure/serverResponse"
	"veriface.io/infrastructure/validator"
)

// EnrollUser registers a new identity with its biometric references.
func EnrollUser(ctx *interfaces.ApplicationContext[dto.EnrollUserDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	faceImage, err := utils.DecodeBase64Media(ctx.Body.FaceImage)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid face image payload", nil)
		return
	}
	voiceSample, err := utils.DecodeBase64Media(ctx.Body.VoiceSample)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid voice sample payload", nil)
		return
	}

	user, err := enrollment_usecases.CreateUserUseCase(ctx.Ctx, ctx.Body, faceImage, voiceSample, ctx.UserAgent)
	if err != nil {
		// the usecase has already responded
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "enrollment complete", user, nil)
}

// VerifyUser runs the full gate sequence for a login attempt.
func VerifyUser(ctx *interfaces.ApplicationContext[dto.VerifyUserDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	faceImage, err := utils.DecodeBase64Media(ctx.Body.FaceImage)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid face image payload", nil)
		return
	}
	voiceSample, err := utils.DecodeBase64Media(ctx.Body.VoiceSample)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid voice sample payload", nil)
		return
	}

	result, token := verification_usecases.VerifyUserUseCase(context.Background(), &types.VerificationRequest{
		Username:    ctx.Body.Username,
		FaceImage:   faceImage,
		VoiceSample: voiceSample,
	})

	response := dto.VerificationResponseDTO{
		RequestID:             result.RequestID,
		UsernameValid:         result.UsernameValid,
		DeepfakeDetected:      result.DeepfakeDetected,
		FaceMatched:           result.FaceMatched,
		VoiceWordMatched:      result.VoiceWordMatched,
		VoiceBiometricMatched: result.VoiceBiometricMatched,
		OverallSuccess:        result.OverallSuccess,
		ErrorMessage:          result.ErrorMessage,
		AccessToken:           token,
	}
	if !result.OverallSuccess {
		server_response.Responder.Respond(ctx.Ctx, apperrors.GateRejectionStatus(result.Error),
			"verification failed", response, nil)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "verification passed", response, nil)
}
