package biometric

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
)

// UserStore is the record lookup the verifier needs from persistence.
type UserStore interface {
	GetUser(ctx context.Context, username string) (*entities.User, error)
}

// AssetReader loads stored enrollment media by its opaque reference.
type AssetReader interface {
	Read(ref string) ([]byte, error)
}

// Verifier runs the five verification gates in fixed order, halting at the
// first definitive failure. It owns no retry logic; service-level failures
// are surfaced as transient so the caller can decide to re-prompt.
type Verifier struct {
	Users    UserStore
	Assets   AssetReader
	Deepfake types.DeepfakeScreen
	Face     types.FaceVerifier
	Password types.PasswordVerifier
	Voice    types.VoiceVerifier

	// FaceTier selects the comparison tier for the face gate. Login uses
	// the lenient tier; enrollment-grade checks use strict.
	FaceTier types.MatchTier
}

func (v *Verifier) VerifyUser(ctx context.Context, request *types.VerificationRequest) *types.VerificationResult {
	result := &types.VerificationResult{RequestID: uuid.NewString()}

	// gate 1: username lookup
	user, err := v.Users.GetUser(ctx, request.Username)
	if err != nil && !errors.Is(err, types.ErrUserNotFound) {
		return v.reject(result, types.NewGateError(types.StageUsername, types.KindService,
			"We could not look up your account. Please try again shortly.", err))
	}
	if user == nil || errors.Is(err, types.ErrUserNotFound) {
		return v.reject(result, types.NewGateError(types.StageUsername, types.KindInput,
			"Username not found. Please check your username and try again.", types.ErrUserNotFound))
	}
	result.UsernameValid = true

	// gate 2: deepfake screen over the submitted image
	frame, err := v.Deepfake.AnalyzeImage(request.FaceImage)
	if err != nil {
		return v.reject(result, v.classifyScreenError(err))
	}
	if gateErr := v.screenVerdict(result, frame); gateErr != nil {
		return v.reject(result, gateErr)
	}

	// gate 3: face match against the enrolled image
	storedFace, err := v.Assets.Read(user.FaceAssetRef)
	if err != nil {
		return v.reject(result, types.NewGateError(types.StageFaceMatch, types.KindIntegrity,
			"We could not verify your enrollment records. Please contact support.", err))
	}
	faceResult, err := v.Face.VerifyFace(request.FaceImage, storedFace, v.FaceTier)
	if err != nil {
		return v.reject(result, v.classifyFaceError(err))
	}
	if !faceResult.Matched {
		return v.reject(result, types.NewGateError(types.StageFaceMatch, types.KindMismatch,
			"Face verification failed. Your face does not match our records.", nil))
	}
	result.FaceMatched = true

	// gate 4: voice password
	if user.VoicePasswordText == "" {
		return v.reject(result, types.NewGateError(types.StageVoicePassword, types.KindIntegrity,
			"We could not verify your enrollment records. Please contact support.", types.ErrFeatureExtractionFailed))
	}
	passwordResult, err := v.Password.VerifyPassword(request.VoiceSample, user.VoicePasswordText)
	if err != nil {
		return v.reject(result, v.classifySpeechError(err))
	}
	if !passwordResult.Matched {
		return v.reject(result, types.NewGateError(types.StageVoicePassword, types.KindMismatch,
			"Voice password did not match. Please say the correct password word clearly.", nil))
	}
	result.VoiceWordMatched = true

	// gate 5: voice biometrics
	if len(user.VoiceFeatures) == 0 {
		return v.reject(result, types.NewGateError(types.StageVoiceBiometric, types.KindIntegrity,
			"We could not verify your enrollment records. Please contact support.", types.ErrFeatureExtractionFailed))
	}
	voiceResult, err := v.Voice.VerifyVoice(request.VoiceSample, user.VoiceFeatures)
	if err != nil {
		if errors.Is(err, types.ErrFeatureExtractionFailed) {
			return v.reject(result, types.NewGateError(types.StageVoiceBiometric, types.KindDetection,
				"We could not read your voice sample. Please record it again.", err))
		}
		return v.reject(result, types.NewGateError(types.StageVoiceBiometric, types.KindService,
			"Voice verification is temporarily unavailable. Please try again shortly.", err))
	}
	if !voiceResult.Matched {
		return v.reject(result, types.NewGateError(types.StageVoiceBiometric, types.KindMismatch,
			"Voice biometrics do not match our records.", nil))
	}
	result.VoiceBiometricMatched = true

	result.OverallSuccess = true
	logger.Info("verification passed all gates", logger.LoggerOptions{
		Key:  "requestID",
		Data: result.RequestID,
	}, logger.LoggerOptions{
		Key:  "username",
		Data: request.Username,
	})
	return result
}

// screenVerdict inspects the frame findings for the flags that are terminal
// at the login gate. The landmark and emotion signals feed the probability
// score used by content analysis but do not gate login, matching the
// documented heuristic screen.
func (v *Verifier) screenVerdict(result *types.VerificationResult, frame *types.FrameAnalysis) *types.GateError {
	for _, point := range frame.AnalysisPoints {
		switch point.Type {
		case PointColorPatterns:
			result.DeepfakeDetected = true
			return types.NewGateError(types.StageDeepfake, types.KindDetection,
				"Potential deepfake detected: unusual color patterns in the image. Please use a natural photo.", nil)
		case PointMultipleFaces:
			result.DeepfakeDetected = true
			return types.NewGateError(types.StageDeepfake, types.KindDetection,
				"Multiple faces detected. Please provide a photo with only your face.", nil)
		case PointAspectRatio:
			result.DeepfakeDetected = true
			return types.NewGateError(types.StageDeepfake, types.KindDetection,
				"Unusual face proportions detected. Please provide a natural front-facing photo.", nil)
		}
	}
	return nil
}

func (v *Verifier) classifyScreenError(err error) *types.GateError {
	switch {
	case errors.Is(err, types.ErrImageRead):
		return types.NewGateError(types.StageDeepfake, types.KindInput,
			"Could not process the image. Please try again with a clear photo.", err)
	case errors.Is(err, types.ErrNoFaceDetected):
		return types.NewGateError(types.StageDeepfake, types.KindDetection,
			"No face detected in the image. Please ensure your face is clearly visible.", err)
	default:
		return types.NewGateError(types.StageDeepfake, types.KindService,
			"Image screening is temporarily unavailable. Please try again shortly.", err)
	}
}

func (v *Verifier) classifyFaceError(err error) *types.GateError {
	switch {
	case errors.Is(err, types.ErrImageRead):
		return types.NewGateError(types.StageFaceMatch, types.KindInput,
			"Could not process the image. Please try again with a clear photo.", err)
	case errors.Is(err, types.ErrNoFaceDetected):
		return types.NewGateError(types.StageFaceMatch, types.KindDetection,
			"No face detected in the image. Please ensure your face is clearly visible.", err)
	case errors.Is(err, types.ErrStoredFaceMissing), errors.Is(err, types.ErrStoredAssetCorrupt):
		return types.NewGateError(types.StageFaceMatch, types.KindIntegrity,
			"We could not verify your enrollment records. Please contact support.", err)
	default:
		return types.NewGateError(types.StageFaceMatch, types.KindService,
			"Face verification is temporarily unavailable. Please try again shortly.", err)
	}
}

func (v *Verifier) classifySpeechError(err error) *types.GateError {
	if errors.Is(err, types.ErrSpeechUnintelligible) {
		return types.NewGateError(types.StageVoicePassword, types.KindDetection,
			"Could not understand the spoken word. Please speak clearly and try again.", err)
	}
	return types.NewGateError(types.StageVoicePassword, types.KindService,
		"Speech recognition is temporarily unavailable. Please try again shortly.", err)
}

func (v *Verifier) reject(result *types.VerificationResult, gateErr *types.GateError) *types.VerificationResult {
	result.Error = gateErr
	result.ErrorMessage = &gateErr.Message
	logger.Warning("verification gate rejected request", logger.LoggerOptions{
		Key:  "requestID",
		Data: result.RequestID,
	}, logger.LoggerOptions{
		Key:  "gate",
		Data: gateErr.Stage,
	}, logger.LoggerOptions{
		Key:  "kind",
		Data: gateErr.Kind,
	}, logger.LoggerOptions{
		Key:  "error",
		Data: gateErr.Err,
	})
	return result
}
