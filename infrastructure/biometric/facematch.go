package biometric

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/env"
)

const (
	canonicalFaceSize = 300

	// lenientSimilarityThreshold is the TM_CCOEFF_NORMED floor for the
	// lenient tier. 0.5 on a [-1, 1] scale is a known weak point kept on
	// purpose so imperfect lighting or pose does not hard-fail a live
	// login; do not tighten without product sign-off.
	lenientSimilarityThreshold = 0.5
)

// FaceMatchEngine decides whether two face images depict the same person.
type FaceMatchEngine struct {
	Embedder types.FaceEmbedder
	Detector FaceDetector

	// StrictThreshold is the embedding-distance ceiling of the strict
	// tier, calibrated to the embedding model's native cosine metric.
	StrictThreshold float64
}

func NewFaceMatchEngine(embedder types.FaceEmbedder, detector FaceDetector) *FaceMatchEngine {
	return &FaceMatchEngine{
		Embedder:        embedder,
		Detector:        detector,
		StrictThreshold: env.GetFloat("FACE_MATCH_THRESHOLD", 0.68),
	}
}

func (e *FaceMatchEngine) VerifyFace(input []byte, stored []byte, tier types.MatchTier) (*types.FaceMatchResult, error) {
	if tier == types.TierStrict {
		return e.verifyStrict(input, stored)
	}
	return e.verifyLenient(input, stored)
}

// verifyStrict embeds both images and compares cosine distance against the
// model-calibrated threshold.
func (e *FaceMatchEngine) verifyStrict(input []byte, stored []byte) (*types.FaceMatchResult, error) {
	inputEmbedding, err := e.Embedder.EmbedFace(input)
	if err != nil {
		return nil, err
	}
	storedEmbedding, err := e.Embedder.EmbedFace(stored)
	if err != nil {
		if err == types.ErrNoFaceDetected {
			// a stored enrollment image without a face should never
			// exist past enrollment
			return nil, types.ErrStoredFaceMissing
		}
		return nil, err
	}

	distance, err := CosineDistance(inputEmbedding, storedEmbedding)
	if err != nil {
		return nil, err
	}
	return &types.FaceMatchResult{
		Matched:  distance < e.StrictThreshold,
		Tier:     types.TierStrict,
		Distance: distance,
	}, nil
}

// verifyLenient detects at least one face on each side, then compares whole
// frames at a canonical size with normalized cross-correlation.
func (e *FaceMatchEngine) verifyLenient(input []byte, stored []byte) (*types.FaceMatchResult, error) {
	inputImg, err := gocv.IMDecode(input, gocv.IMReadColor)
	if err != nil || inputImg.Empty() {
		if err == nil {
			inputImg.Close()
		}
		return nil, types.ErrImageRead
	}
	defer inputImg.Close()

	storedImg, err := gocv.IMDecode(stored, gocv.IMReadColor)
	if err != nil || storedImg.Empty() {
		if err == nil {
			storedImg.Close()
		}
		return nil, types.ErrStoredAssetCorrupt
	}
	defer storedImg.Close()

	if len(e.Detector.DetectFaces(inputImg)) == 0 {
		return nil, types.ErrNoFaceDetected
	}
	if len(e.Detector.DetectFaces(storedImg)) == 0 {
		return nil, types.ErrStoredFaceMissing
	}

	similarity := correlationSimilarity(inputImg, storedImg)
	return &types.FaceMatchResult{
		Matched:    similarity > lenientSimilarityThreshold,
		Tier:       types.TierLenient,
		Similarity: similarity,
	}, nil
}

func correlationSimilarity(img1, img2 gocv.Mat) float64 {
	size := image.Pt(canonicalFaceSize, canonicalFaceSize)

	resized1 := gocv.NewMat()
	resized2 := gocv.NewMat()
	defer resized1.Close()
	defer resized2.Close()
	gocv.Resize(img1, &resized1, size, 0, 0, gocv.InterpolationLinear)
	gocv.Resize(img2, &resized2, size, 0, 0, gocv.InterpolationLinear)

	gray1 := gocv.NewMat()
	gray2 := gocv.NewMat()
	defer gray1.Close()
	defer gray2.Close()
	gocv.CvtColor(resized1, &gray1, gocv.ColorBGRToGray)
	gocv.CvtColor(resized2, &gray2, gocv.ColorBGRToGray)

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(gray1, gray2, &result, gocv.TmCcoeffNormed, mask)

	return float64(result.GetFloatAt(0, 0))
}

// CosineDistance returns 1 - cosine similarity of two equal-length vectors.
func CosineDistance(a []float64, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding length mismatch: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero magnitude embedding")
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)), nil
}
