package dto

// AnalyzeImageDTO carries a single base64 encoded image for a synchronous
// manipulation screen.
type AnalyzeImageDTO struct {
	Image string `json:"image" validate:"required"`
}

// AnalyzeVideoDTO carries a base64 encoded video for asynchronous screening.
// The extension hints the container format so the stored asset keeps a
// playable suffix.
type AnalyzeVideoDTO struct {
	Video     string `json:"video" validate:"required"`
	Extension string `json:"extension" validate:"omitempty,oneof=mp4 avi mov webm"`
}

type AnalyzeVideoResponseDTO struct {
	ReportID string `json:"reportID"`
	Status   string `json:"status"`
}
