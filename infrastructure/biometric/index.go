package biometric

import (
	"os"

	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/network"
)

// Capability singletons. The detector models and sidecar clients are
// expensive to initialise, so they are constructed once at start up and
// shared read-only across requests.
var (
	Embedder   types.FaceEmbedder
	Emotions   types.EmotionClassifier
	Speech     types.SpeechTranscriber
	Detector   FaceDetector
	Landmarker LandmarkDetector

	FaceEngine     *FaceMatchEngine
	PasswordEngine *VoicePasswordEngine
	VoiceEngine    *VoiceprintEngine
	Screen         *DeepfakeDetector
)

func InitialiseBiometricServices() {
	embedderClient := &EmbedderClient{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("FACE_SERVICE_BASE_URL"),
		},
	}
	Embedder = embedderClient
	Emotions = embedderClient

	Speech = &SpeechClient{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("SPEECH_SERVICE_BASE_URL"),
		},
	}

	detector, err := NewHaarDetector()
	if err != nil {
		logger.Error("failed to load face detector", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		panic(err)
	}
	Detector = detector

	landmarker, err := NewYuNetLandmarker()
	if err != nil {
		// the landmark symmetry check is skipped without the model; the
		// other three heuristic checks still run
		logger.Warning("landmark model unavailable", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	} else {
		Landmarker = landmarker
	}

	FaceEngine = NewFaceMatchEngine(Embedder, Detector)
	PasswordEngine = &VoicePasswordEngine{Transcriber: Speech}
	VoiceEngine = &VoiceprintEngine{}
	Screen = &DeepfakeDetector{
		Faces:     Detector,
		Landmarks: Landmarker,
		Emotions:  Emotions,
	}

	logger.Info("biometric services initialised")
}
