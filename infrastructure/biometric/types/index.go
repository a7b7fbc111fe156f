package types

import (
	"errors"
	"fmt"
)

// Stage names one gate of the verification sequence.
type Stage string

const (
	StageUsername       Stage = "username_lookup"
	StageDeepfake       Stage = "deepfake_screen"
	StageFaceMatch      Stage = "face_match"
	StageVoicePassword  Stage = "voice_password"
	StageVoiceBiometric Stage = "voice_biometric"
)

// ErrorKind classifies a rejection so callers can tell retryable service
// faults apart from deterministic biometric rejections.
type ErrorKind string

const (
	KindInput     ErrorKind = "input"
	KindDetection ErrorKind = "detection"
	KindMismatch  ErrorKind = "mismatch"
	KindService   ErrorKind = "service"
	KindIntegrity ErrorKind = "integrity"
)

var (
	ErrImageRead               = errors.New("could not read image")
	ErrNoFaceDetected          = errors.New("no face detected")
	ErrMultipleFaces           = errors.New("multiple faces detected")
	ErrSpeechUnintelligible    = errors.New("could not understand speech")
	ErrSpeechServiceUnavailable = errors.New("speech service unavailable")
	ErrFeatureExtractionFailed = errors.New("voice feature extraction failed")
	ErrStoredFaceMissing       = errors.New("no face in stored enrollment image")
	ErrStoredAssetCorrupt      = errors.New("stored enrollment media unreadable")
	ErrNoValidFrames           = errors.New("no valid frames analyzed")
	ErrUserNotFound            = errors.New("user not found")
	ErrUserExists              = errors.New("user already exists")
)

// GateError is the typed rejection produced by a verification gate. Message
// is safe to surface to the end user; Err carries the operator detail.
type GateError struct {
	Stage   Stage
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Stage, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *GateError) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure came from a capability rather than
// the submitted biometrics, so the caller may prompt a retry.
func (e *GateError) Transient() bool {
	return e.Kind == KindService
}

func NewGateError(stage Stage, kind ErrorKind, message string, err error) *GateError {
	return &GateError{Stage: stage, Kind: kind, Message: message, Err: err}
}

// MatchTier selects the face comparison strategy. Strict is the embedding
// path used at enrollment; Lenient is the pixel-correlation fallback used at
// login so imperfect lighting or pose does not hard-fail a live session.
type MatchTier string

const (
	TierStrict  MatchTier = "strict"
	TierLenient MatchTier = "lenient"
)

type FaceMatchResult struct {
	Matched    bool      `json:"matched"`
	Tier       MatchTier `json:"tier"`
	Distance   float64   `json:"distance,omitempty"`
	Similarity float64   `json:"similarity,omitempty"`
}

type PasswordMatchResult struct {
	Matched    bool   `json:"matched"`
	Transcript string `json:"transcript"`
}

type VoiceMatchResult struct {
	Matched  bool    `json:"matched"`
	Distance float64 `json:"distance"`
}

// AnalysisPoint is a single heuristic finding raised while screening a frame.
type AnalysisPoint struct {
	Type       string  `bson:"type" json:"type"`
	Confidence float64 `bson:"confidence" json:"confidence"`
}

// FrameAnalysis is the deepfake screen outcome for one image or video frame.
type FrameAnalysis struct {
	FaceDetected        bool            `json:"faceDetected"`
	DeepfakeProbability float64         `json:"deepfakeProbability"`
	AnalysisPoints      []AnalysisPoint `json:"analysisPoints"`
}

// VideoAnalysis aggregates analyzable frame results of one video.
type VideoAnalysis struct {
	FramesAnalyzed      int             `json:"framesAnalyzed"`
	DeepfakeProbability float64         `json:"deepfakeProbability"`
	AnalysisPoints      []AnalysisPoint `json:"analysisPoints"`
}

// VerificationRequest is the per-call input to the orchestrator. Never
// persisted.
type VerificationRequest struct {
	Username    string
	FaceImage   []byte
	VoiceSample []byte
}

// VerificationResult carries the ordered gate outcomes. Exactly one error is
// populated, for the first gate that failed; later gates are not evaluated.
type VerificationResult struct {
	RequestID             string     `json:"requestID"`
	UsernameValid         bool       `json:"usernameValid"`
	DeepfakeDetected      bool       `json:"deepfakeDetected"`
	FaceMatched           bool       `json:"faceMatched"`
	VoiceWordMatched      bool       `json:"voiceWordMatched"`
	VoiceBiometricMatched bool       `json:"voiceBiometricMatched"`
	OverallSuccess        bool       `json:"overallSuccess"`
	Error                 *GateError `json:"-"`
	ErrorMessage          *string    `json:"error,omitempty"`
}

// Capability contracts. Heavy models live behind these; they are constructed
// once at start up and shared read-only across requests.

type FaceEmbedder interface {
	// EmbedFace returns the embedding vector for the single face in image.
	// Returns ErrNoFaceDetected when the capability reports zero faces.
	EmbedFace(image []byte) ([]float64, error)
}

type EmotionClassifier interface {
	// ClassifyEmotion maps emotion labels to probabilities in [0, 1].
	ClassifyEmotion(image []byte) (map[string]float64, error)
}

type SpeechTranscriber interface {
	// TranscribeSpeech returns the raw transcript. Returns
	// ErrSpeechUnintelligible when no speech could be recognised and
	// ErrSpeechServiceUnavailable on capability-level failure.
	TranscribeSpeech(audio []byte) (string, error)
}

// Engine contracts consumed by the orchestrator.

type FaceVerifier interface {
	VerifyFace(input []byte, stored []byte, tier MatchTier) (*FaceMatchResult, error)
}

type PasswordVerifier interface {
	VerifyPassword(audio []byte, expected string) (*PasswordMatchResult, error)
}

type VoiceVerifier interface {
	VerifyVoice(audio []byte, stored []float64) (*VoiceMatchResult, error)
}

type DeepfakeScreen interface {
	AnalyzeImage(image []byte) (*FrameAnalysis, error)
}
