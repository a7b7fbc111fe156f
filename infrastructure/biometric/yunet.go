package biometric

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
	"veriface.io/infrastructure/logger"
)

// LandmarkPoint is a landmark position in pixel coordinates.
type LandmarkPoint struct {
	X float64
	Y float64
}

// FaceLandmarks carries the five YuNet landmarks for the best face found.
type FaceLandmarks struct {
	RightEye   LandmarkPoint
	LeftEye    LandmarkPoint
	Nose       LandmarkPoint
	RightMouth LandmarkPoint
	LeftMouth  LandmarkPoint
	Confidence float64
}

// LandmarkDetector locates facial landmarks in a face region.
type LandmarkDetector interface {
	DetectLandmarks(region gocv.Mat) (*FaceLandmarks, bool)
}

// YuNetLandmarker wraps the YuNet detector for its 5-point landmarks.
// Loaded once at start up; detection calls are serialised.
type YuNetLandmarker struct {
	detector gocv.FaceDetectorYN
	mutex    sync.Mutex
}

func NewYuNetLandmarker() (*YuNetLandmarker, error) {
	modelPath := os.Getenv("YUNET_MODEL_PATH")
	if modelPath == "" {
		modelPath = "models/face_detection_yunet_2023mar.onnx"
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("yunet model not found at %s: %w", modelPath, err)
	}

	detector := gocv.NewFaceDetectorYN(modelPath, "", image.Pt(320, 320))
	logger.Info("yunet landmark model loaded", logger.LoggerOptions{
		Key:  "path",
		Data: modelPath,
	})
	return &YuNetLandmarker{detector: detector}, nil
}

// DetectLandmarks runs YuNet over region and returns the landmarks of the
// highest-confidence detection. Each result row holds x, y, w, h, then five
// landmark coordinate pairs (right eye, left eye, nose, mouth corners) and a
// score.
func (y *YuNetLandmarker) DetectLandmarks(region gocv.Mat) (*FaceLandmarks, bool) {
	y.mutex.Lock()
	defer y.mutex.Unlock()

	y.detector.SetInputSize(image.Pt(region.Cols(), region.Rows()))
	faces := y.detector.Detect(region)
	defer faces.Close()

	if faces.Empty() || faces.Rows() == 0 {
		return nil, false
	}

	best := 0
	bestScore := float64(faces.GetFloatAt(0, 14))
	for row := 1; row < faces.Rows(); row++ {
		if score := float64(faces.GetFloatAt(row, 14)); score > bestScore {
			best = row
			bestScore = score
		}
	}

	at := func(col int) float64 { return float64(faces.GetFloatAt(best, col)) }
	return &FaceLandmarks{
		RightEye:   LandmarkPoint{X: at(4), Y: at(5)},
		LeftEye:    LandmarkPoint{X: at(6), Y: at(7)},
		Nose:       LandmarkPoint{X: at(8), Y: at(9)},
		RightMouth: LandmarkPoint{X: at(10), Y: at(11)},
		LeftMouth:  LandmarkPoint{X: at(12), Y: at(13)},
		Confidence: bestScore,
	}, true
}

func (y *YuNetLandmarker) Close() {
	y.detector.Close()
}
