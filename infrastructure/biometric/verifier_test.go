package biometric

import (
	"context"
	"strings"
	"testing"

	"veriface.io/entities"
	"veriface.io/infrastructure/biometric/types"
)

type stubUsers struct {
	user *entities.User
	err  error
}

func (s *stubUsers) GetUser(ctx context.Context, username string) (*entities.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type stubAssets struct {
	data []byte
	err  error
}

func (s *stubAssets) Read(ref string) ([]byte, error) {
	return s.data, s.err
}

type stubScreen struct {
	frame *types.FrameAnalysis
	err   error
	calls int
}

func (s *stubScreen) AnalyzeImage(image []byte) (*types.FrameAnalysis, error) {
	s.calls++
	return s.frame, s.err
}

type stubFace struct {
	result *types.FaceMatchResult
	err    error
	calls  int
}

func (s *stubFace) VerifyFace(input, stored []byte, tier types.MatchTier) (*types.FaceMatchResult, error) {
	s.calls++
	return s.result, s.err
}

type stubPassword struct {
	result *types.PasswordMatchResult
	err    error
	calls  int
}

func (s *stubPassword) VerifyPassword(audio []byte, expected string) (*types.PasswordMatchResult, error) {
	s.calls++
	return s.result, s.err
}

type stubVoice struct {
	result *types.VoiceMatchResult
	err    error
	calls  int
}

func (s *stubVoice) VerifyVoice(audio []byte, stored []float64) (*types.VoiceMatchResult, error) {
	s.calls++
	return s.result, s.err
}

func enrolledUser() *entities.User {
	return &entities.User{
		ID:                "01HYT",
		Username:          "ada",
		FaceAssetRef:      "faces/ada.jpg",
		VoicePasswordText: "sunrise",
		VoiceFeatures:     make([]float64, VoiceFeatureLength),
	}
}

func cleanFrame() *types.FrameAnalysis {
	return &types.FrameAnalysis{FaceDetected: true, DeepfakeProbability: 0.1}
}

func passingVerifier(user *entities.User) (*Verifier, *stubScreen, *stubFace, *stubPassword, *stubVoice) {
	screen := &stubScreen{frame: cleanFrame()}
	face := &stubFace{result: &types.FaceMatchResult{Matched: true, Tier: types.TierLenient, Similarity: 0.8}}
	password := &stubPassword{result: &types.PasswordMatchResult{Matched: true, Transcript: "sunrise"}}
	voice := &stubVoice{result: &types.VoiceMatchResult{Matched: true, Distance: 0.4}}
	verifier := &Verifier{
		Users:    &stubUsers{user: user},
		Assets:   &stubAssets{data: []byte("jpeg")},
		Deepfake: screen,
		Face:     face,
		Password: password,
		Voice:    voice,
		FaceTier: types.TierLenient,
	}
	return verifier, screen, face, password, voice
}

func request() *types.VerificationRequest {
	return &types.VerificationRequest{
		Username:    "ada",
		FaceImage:   []byte("jpeg"),
		VoiceSample: []byte("wav"),
	}
}

func TestVerifyUserAllGatesPass(t *testing.T) {
	verifier, _, _, _, _ := passingVerifier(enrolledUser())

	result := verifier.VerifyUser(context.Background(), request())

	if !result.OverallSuccess {
		t.Fatalf("OverallSuccess = false, error = %v", result.Error)
	}
	if result.RequestID == "" {
		t.Error("RequestID not assigned")
	}
	if !result.UsernameValid || !result.FaceMatched || !result.VoiceWordMatched || !result.VoiceBiometricMatched {
		t.Errorf("gate flags incomplete: %+v", result)
	}
	if result.DeepfakeDetected {
		t.Error("DeepfakeDetected = true for a clean frame")
	}
	if result.Error != nil || result.ErrorMessage != nil {
		t.Errorf("error populated on success: %v", result.Error)
	}
}

func TestVerifyUserUnknownUsername(t *testing.T) {
	verifier, screen, face, password, voice := passingVerifier(nil)

	result := verifier.VerifyUser(context.Background(), request())

	if result.OverallSuccess || result.UsernameValid {
		t.Fatal("unknown username passed the first gate")
	}
	if result.Error == nil || result.Error.Stage != types.StageUsername || result.Error.Kind != types.KindInput {
		t.Errorf("unexpected error: %+v", result.Error)
	}
	if screen.calls+face.calls+password.calls+voice.calls != 0 {
		t.Error("later gates were evaluated after a terminal rejection")
	}
}

func TestVerifyUserDeepfakeFlags(t *testing.T) {
	tests := []struct {
		name        string
		point       string
		wantMessage string
	}{
		{name: "color patterns", point: PointColorPatterns, wantMessage: "unusual color patterns"},
		{name: "multiple faces", point: PointMultipleFaces, wantMessage: "Multiple faces detected"},
		{name: "aspect ratio", point: PointAspectRatio, wantMessage: "Unusual face proportions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, screen, face, _, _ := passingVerifier(enrolledUser())
			screen.frame = &types.FrameAnalysis{
				FaceDetected:   true,
				AnalysisPoints: []types.AnalysisPoint{{Type: tt.point, Confidence: 0.9}},
			}

			result := verifier.VerifyUser(context.Background(), request())

			if result.OverallSuccess || !result.DeepfakeDetected {
				t.Fatalf("flagged frame passed the screen: %+v", result)
			}
			if result.Error.Stage != types.StageDeepfake || result.Error.Kind != types.KindDetection {
				t.Errorf("unexpected error: %+v", result.Error)
			}
			if !strings.Contains(result.Error.Message, tt.wantMessage) {
				t.Errorf("message %q does not mention %q", result.Error.Message, tt.wantMessage)
			}
			if face.calls != 0 {
				t.Error("face gate ran after the screen rejected")
			}
		})
	}
}

func TestVerifyUserEyeSpacingDoesNotGateLogin(t *testing.T) {
	verifier, screen, _, _, _ := passingVerifier(enrolledUser())
	screen.frame = &types.FrameAnalysis{
		FaceDetected:        true,
		DeepfakeProbability: 0.48,
		AnalysisPoints:      []types.AnalysisPoint{{Type: PointEyeSpacing, Confidence: 0.8}},
	}

	result := verifier.VerifyUser(context.Background(), request())

	if !result.OverallSuccess {
		t.Fatalf("eye spacing finding blocked login: %+v", result.Error)
	}
}

func TestVerifyUserFaceMismatch(t *testing.T) {
	verifier, _, face, password, _ := passingVerifier(enrolledUser())
	face.result = &types.FaceMatchResult{Matched: false, Tier: types.TierLenient, Similarity: 0.2}

	result := verifier.VerifyUser(context.Background(), request())

	if result.OverallSuccess || result.FaceMatched {
		t.Fatal("mismatched face passed the gate")
	}
	if result.Error.Stage != types.StageFaceMatch || result.Error.Kind != types.KindMismatch {
		t.Errorf("unexpected error: %+v", result.Error)
	}
	if password.calls != 0 {
		t.Error("voice password gate ran after the face gate rejected")
	}
}

func TestVerifyUserWrongPassword(t *testing.T) {
	verifier, _, _, password, voice := passingVerifier(enrolledUser())
	password.result = &types.PasswordMatchResult{Matched: false, Transcript: "sunset"}

	result := verifier.VerifyUser(context.Background(), request())

	if result.OverallSuccess || result.VoiceWordMatched {
		t.Fatal("wrong password passed the gate")
	}
	if result.Error.Stage != types.StageVoicePassword || result.Error.Kind != types.KindMismatch {
		t.Errorf("unexpected error: %+v", result.Error)
	}
	if !result.UsernameValid || !result.FaceMatched {
		t.Error("earlier gate outcomes lost on rejection")
	}
	if voice.calls != 0 {
		t.Error("voice biometric gate ran after the password gate rejected")
	}
}

func TestVerifyUserSpeechServiceDown(t *testing.T) {
	verifier, _, _, password, _ := passingVerifier(enrolledUser())
	password.result = nil
	password.err = types.ErrSpeechServiceUnavailable

	result := verifier.VerifyUser(context.Background(), request())

	if result.OverallSuccess {
		t.Fatal("verification passed with the speech service down")
	}
	if result.Error.Kind != types.KindService || !result.Error.Transient() {
		t.Errorf("capability outage not surfaced as transient: %+v", result.Error)
	}
}

func TestVerifyUserVoiceBiometricMismatch(t *testing.T) {
	verifier, _, _, _, voice := passingVerifier(enrolledUser())
	voice.result = &types.VoiceMatchResult{Matched: false, Distance: 2.7}

	result := verifier.VerifyUser(context.Background(), request())

	if result.OverallSuccess || result.VoiceBiometricMatched {
		t.Fatal("distant voiceprint passed the gate")
	}
	if result.Error.Stage != types.StageVoiceBiometric || result.Error.Kind != types.KindMismatch {
		t.Errorf("unexpected error: %+v", result.Error)
	}
}

func TestVerifyUserCorruptEnrollment(t *testing.T) {
	user := enrolledUser()
	user.VoicePasswordText = ""
	verifier, _, _, password, _ := passingVerifier(user)

	result := verifier.VerifyUser(context.Background(), request())

	if result.OverallSuccess {
		t.Fatal("verification passed with a corrupt enrollment record")
	}
	if result.Error.Stage != types.StageVoicePassword || result.Error.Kind != types.KindIntegrity {
		t.Errorf("unexpected error: %+v", result.Error)
	}
	if password.calls != 0 {
		t.Error("password gate ran against an empty enrolled phrase")
	}
}
