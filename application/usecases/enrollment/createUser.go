package enrollment_usecases

import (
	"context"
	"errors"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/repository"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/media_store"
)

// CreateUserUseCase enrolls a new identity. Enrollment media is held to the
// strict standard: the face image must pass the manipulation screen and
// yield an embedding, and the voice sample must transcribe and yield a full
// feature vector. Records that fail any of these are never persisted.
func CreateUserUseCase(ctx any, payload *dto.EnrollUserDTO, faceImage []byte, voiceSample []byte, userAgent string) (*entities.User, error) {
	userRepo := repository.UserRepo()
	exists, err := userRepo.CountDocs(map[string]interface{}{
		"username": payload.Username,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	if exists != 0 {
		apperrors.EntityAlreadyExistsError(ctx, "An account with this username already exists")
		return nil, types.ErrUserExists
	}

	frame, err := biometric.Screen.AnalyzeImage(faceImage)
	if err != nil {
		respondScreenError(ctx, err)
		return nil, err
	}
	for _, point := range frame.AnalysisPoints {
		switch point.Type {
		case biometric.PointColorPatterns, biometric.PointMultipleFaces, biometric.PointAspectRatio:
			apperrors.ClientError(ctx, "The enrollment photo did not pass our authenticity screen. Please use a natural front-facing photo with only your face.", nil)
			return nil, types.ErrMultipleFaces
		}
	}

	embedding, err := biometric.Embedder.EmbedFace(faceImage)
	if err != nil {
		if errors.Is(err, types.ErrNoFaceDetected) {
			apperrors.ClientError(ctx, "No face detected in the enrollment photo. Please ensure your face is clearly visible.", nil)
			return nil, err
		}
		apperrors.ExternalDependencyError(ctx, "face-embedding", err)
		return nil, err
	}

	transcript, err := biometric.Speech.TranscribeSpeech(voiceSample)
	if err != nil {
		if errors.Is(err, types.ErrSpeechUnintelligible) {
			apperrors.ClientError(ctx, "We could not understand the password word in your recording. Please speak clearly and record again.", nil)
			return nil, err
		}
		apperrors.ExternalDependencyError(ctx, "speech-to-text", err)
		return nil, err
	}
	passwordText := biometric.NormalizePhrase(transcript)

	samples, sampleRate, err := biometric.DecodeWAV(voiceSample)
	if err != nil {
		apperrors.ClientError(ctx, "The voice recording could not be read. Please submit a WAV recording.", nil)
		return nil, err
	}
	features, err := biometric.ExtractFeatures(samples, sampleRate)
	if err != nil {
		apperrors.ClientError(ctx, "The voice recording was too short or too quiet to enroll. Please record again.", nil)
		return nil, err
	}

	faceRef, err := media_store.Store.Save("faces", faceImage, "jpg")
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	voiceRef, err := media_store.Store.Save("voices", voiceSample, "wav")
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	user, err := userRepo.CreateOne(context.TODO(), entities.User{
		Username:          payload.Username,
		Email:             payload.Email,
		FaceEmbedding:     embedding,
		VoicePasswordText: passwordText,
		VoiceFeatures:     features,
		FaceAssetRef:      faceRef,
		VoiceAssetRef:     voiceRef,
		UserAgent:         userAgent,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	logger.Info("user enrolled", logger.LoggerOptions{
		Key:  "username",
		Data: user.Username,
	}, logger.LoggerOptions{
		Key:  "userID",
		Data: user.ID,
	})
	return user, nil
}

func respondScreenError(ctx any, err error) {
	switch {
	case errors.Is(err, types.ErrImageRead):
		apperrors.ClientError(ctx, "Could not process the enrollment photo. Please try again with a clear photo.", nil)
	case errors.Is(err, types.ErrNoFaceDetected):
		apperrors.ClientError(ctx, "No face detected in the enrollment photo. Please ensure your face is clearly visible.", nil)
	default:
		apperrors.ExternalDependencyError(ctx, "image-screen", err)
	}
}
