package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric/types"
)

// RenderAuthenticityReport renders a completed content authenticity report
// as a PDF document.
func RenderAuthenticityReport(r *entities.AuthenticityReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Content Authenticity Report")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	writeRow(pdf, "Report ID", r.ReportID)
	writeRow(pdf, "Requested by", r.RequestedBy)
	writeRow(pdf, "Status", string(r.Status))
	writeRow(pdf, "Generated", time.Now().Format(time.RFC1123))
	if r.CompletedAt != nil {
		writeRow(pdf, "Completed", r.CompletedAt.Format(time.RFC1123))
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 10, "Analysis Summary")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	writeRow(pdf, "Frames analyzed", fmt.Sprintf("%d", r.FramesAnalyzed))
	writeRow(pdf, "Deepfake probability", fmt.Sprintf("%.1f%%", r.DeepfakeProbability*100))
	if r.FailureReason != nil {
		writeRow(pdf, "Failure reason", *r.FailureReason)
	}
	pdf.Ln(6)

	if len(r.AnalysisPoints) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 10, "Findings")
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "", 11)
		for _, point := range r.AnalysisPoints {
			pdf.Cell(0, 7, fmt.Sprintf("- %s (confidence %.2f)", describePoint(point), point.Confidence))
			pdf.Ln(7)
		}
	} else {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, "No manipulation artifacts were flagged by the heuristic screen.")
		pdf.Ln(8)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "This report was produced by a heuristic screen for obvious manipulation "+
		"artifacts. It is not a calibrated classifier and must not be treated as conclusive.", "", "L", false)

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeRow(pdf *gofpdf.Fpdf, label string, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(55, 7, label)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, value)
	pdf.Ln(7)
}

func describePoint(point types.AnalysisPoint) string {
	switch point.Type {
	case "unusual_color_patterns":
		return "Unusual color patterns"
	case "multiple_faces":
		return "Multiple faces in frame"
	case "unnatural_face_proportions":
		return "Unnatural face proportions"
	case "unnatural_eye_spacing":
		return "Unnatural eye spacing"
	default:
		return point.Type
	}
}
