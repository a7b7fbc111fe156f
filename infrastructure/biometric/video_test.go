package biometric

import (
	"errors"
	"math"
	"testing"

	"veriface.io/infrastructure/biometric/types"
)

func TestAggregateFrames(t *testing.T) {
	frames := []types.FrameAnalysis{
		{
			FaceDetected:        true,
			DeepfakeProbability: 0.2,
			AnalysisPoints:      []types.AnalysisPoint{{Type: PointEyeSpacing, Confidence: 0.8}},
		},
		{
			FaceDetected:        true,
			DeepfakeProbability: 0.4,
		},
		{
			FaceDetected:        true,
			DeepfakeProbability: 0.9,
			AnalysisPoints: []types.AnalysisPoint{
				{Type: PointMultipleFaces, Confidence: 0.9},
				{Type: PointAspectRatio, Confidence: 0.85},
			},
		},
	}

	analysis, err := AggregateFrames(frames)
	if err != nil {
		t.Fatalf("AggregateFrames() error = %v", err)
	}
	if analysis.FramesAnalyzed != 3 {
		t.Errorf("FramesAnalyzed = %d, want 3", analysis.FramesAnalyzed)
	}
	if math.Abs(analysis.DeepfakeProbability-0.5) > 1e-9 {
		t.Errorf("DeepfakeProbability = %v, want 0.5", analysis.DeepfakeProbability)
	}
	if len(analysis.AnalysisPoints) != 3 {
		t.Errorf("AnalysisPoints length = %d, want 3", len(analysis.AnalysisPoints))
	}
}

func TestAggregateFramesWithNoAnalyzableFrames(t *testing.T) {
	_, err := AggregateFrames(nil)
	if !errors.Is(err, types.ErrNoValidFrames) {
		t.Errorf("AggregateFrames(nil) error = %v, want ErrNoValidFrames", err)
	}
}
