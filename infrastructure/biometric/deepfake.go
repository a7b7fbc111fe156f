package biometric

import (
	"image"
	"math"

	"gocv.io/x/gocv"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
)

// Analysis point types raised by the heuristic screen.
const (
	PointColorPatterns = "unusual_color_patterns"
	PointMultipleFaces = "multiple_faces"
	PointAspectRatio   = "unnatural_face_proportions"
	PointEyeSpacing    = "unnatural_eye_spacing"
)

// Heuristic thresholds. These are a cheap screen for obvious manipulation
// artifacts, not a trained classifier; the constants were tuned coarsely.
const (
	saturationLimit      = 120.0 // of 255, HSV mean saturation
	brightnessLimit      = 200.0 // of 255, HSV mean value
	aspectRatioMin       = 0.5
	aspectRatioMax       = 1.5
	eyeSpacingLimit      = 0.4 // eye x-distance normalized to region width
	eyeSpacingConfidence = 0.8

	landmarkWeight        = 0.6
	emotionWeight         = 0.4
	emotionPenalty        = 0.3
	dominantEmotionLimit  = 0.9
)

// DeepfakeDetector screens face images and video frames for simple
// manipulation artifacts.
type DeepfakeDetector struct {
	Faces     FaceDetector
	Landmarks LandmarkDetector
	// Emotions may be nil; the emotion-consistency term is then skipped,
	// as it is when the sidecar errors mid-analysis.
	Emotions types.EmotionClassifier
}

// AnalyzeImage screens a single encoded image.
func (d *DeepfakeDetector) AnalyzeImage(image []byte) (*types.FrameAnalysis, error) {
	img, err := gocv.IMDecode(image, gocv.IMReadColor)
	if err != nil || img.Empty() {
		if err == nil {
			img.Close()
		}
		return nil, types.ErrImageRead
	}
	defer img.Close()
	return d.analyzeFrame(img)
}

func (d *DeepfakeDetector) analyzeFrame(img gocv.Mat) (*types.FrameAnalysis, error) {
	points := []types.AnalysisPoint{}

	// 1. Color statistics. GAN-generated or over-processed images tend to
	// oversaturate.
	hsv := gocv.NewMat()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)
	mean := hsv.Mean()
	hsv.Close()
	if mean.Val2 > saturationLimit || mean.Val3 > brightnessLimit {
		points = append(points, types.AnalysisPoint{
			Type:       PointColorPatterns,
			Confidence: 1.0,
		})
	}

	// 2. Face count. Zero faces is a data problem, not a deepfake signal.
	faces := d.Faces.DetectFaces(img)
	if len(faces) == 0 {
		return nil, types.ErrNoFaceDetected
	}
	if len(faces) > 1 {
		points = append(points, types.AnalysisPoint{
			Type:       PointMultipleFaces,
			Confidence: 1.0,
		})
	}

	// 3. Bounding box proportions.
	for _, face := range faces {
		aspectRatio := float64(face.Dx()) / float64(face.Dy())
		if aspectRatio < aspectRatioMin || aspectRatio > aspectRatioMax {
			points = append(points, types.AnalysisPoint{
				Type:       PointAspectRatio,
				Confidence: 1.0,
			})
			break
		}
	}

	// 4. Landmark symmetry over the dominant face region.
	landmarkPoints := []types.AnalysisPoint{}
	if d.Landmarks != nil {
		region := img.Region(largestFace(faces))
		landmarks, found := d.Landmarks.DetectLandmarks(region)
		if found && region.Cols() > 0 {
			eyeDistance := math.Abs(landmarks.LeftEye.X-landmarks.RightEye.X) / float64(region.Cols())
			if eyeDistance > eyeSpacingLimit {
				point := types.AnalysisPoint{
					Type:       PointEyeSpacing,
					Confidence: eyeSpacingConfidence,
				}
				points = append(points, point)
				landmarkPoints = append(landmarkPoints, point)
			}
		}
		region.Close()
	}

	return &types.FrameAnalysis{
		FaceDetected:        true,
		DeepfakeProbability: d.scoreFrame(img, faces, landmarkPoints),
		AnalysisPoints:      points,
	}, nil
}

// scoreFrame combines the triggered landmark findings with the
// emotion-consistency signal into an additive score clamped to [0, 1]. This
// is deliberately simple and not a calibrated probability.
func (d *DeepfakeDetector) scoreFrame(img gocv.Mat, faces []image.Rectangle, landmarkPoints []types.AnalysisPoint) float64 {
	score := 0.0

	if len(landmarkPoints) > 0 {
		total := 0.0
		for _, point := range landmarkPoints {
			total += point.Confidence
		}
		score += (total / float64(len(landmarkPoints))) * landmarkWeight
	}

	if d.Emotions != nil {
		region := img.Region(largestFace(faces))
		encoded, err := gocv.IMEncode(gocv.JPEGFileExt, region)
		region.Close()
		if err == nil {
			emotions, emotionErr := d.Emotions.ClassifyEmotion(encoded.GetBytes())
			encoded.Close()
			if emotionErr != nil {
				// the screen still produces a score without the
				// emotion term, matching the per-frame tolerance of
				// the video path
				logger.Warning("emotion analysis unavailable for frame", logger.LoggerOptions{
					Key:  "error",
					Data: emotionErr,
				})
			} else {
				for _, probability := range emotions {
					if probability > dominantEmotionLimit {
						score += emotionPenalty * emotionWeight
						break
					}
				}
			}
		}
	}

	return math.Min(math.Max(score, 0.0), 1.0)
}
