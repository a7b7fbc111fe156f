package report

import (
	"bytes"
	"testing"
	"time"

	"veriface.io/application/utils"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric/types"
)

func TestRenderAuthenticityReport(t *testing.T) {
	completedAt := time.Now()
	document, err := RenderAuthenticityReport(&entities.AuthenticityReport{
		ReportID:            "01J5XCQ3V9",
		RequestedBy:         "ada",
		Status:              entities.ReportComplete,
		FramesAnalyzed:      42,
		DeepfakeProbability: 0.37,
		AnalysisPoints: []types.AnalysisPoint{
			{Type: "unusual_color_patterns", Confidence: 1.0},
			{Type: "unnatural_eye_spacing", Confidence: 0.8},
		},
		CreatedAt:   completedAt.Add(-time.Minute),
		CompletedAt: &completedAt,
	})
	if err != nil {
		t.Fatalf("RenderAuthenticityReport() error = %v", err)
	}
	if !bytes.HasPrefix(document, []byte("%PDF")) {
		t.Error("rendered document is not a PDF")
	}
}

func TestRenderFailedReport(t *testing.T) {
	document, err := RenderAuthenticityReport(&entities.AuthenticityReport{
		ReportID:      "01J5XCQ3VA",
		RequestedBy:   "ada",
		Status:        entities.ReportFailed,
		FailureReason: utils.GetStringPointer("no analyzable frames found in the video"),
		CreatedAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("RenderAuthenticityReport() error = %v", err)
	}
	if len(document) == 0 {
		t.Error("rendered document is empty")
	}
}
