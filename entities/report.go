package entities

import (
	"time"

	"veriface.io/application/utils"
	"veriface.io/infrastructure/biometric/types"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportComplete ReportStatus = "complete"
	ReportFailed   ReportStatus = "failed"
)

// AuthenticityReport is the persisted outcome of a content authenticity
// screen over an uploaded video.
type AuthenticityReport struct {
	ID                  string          `bson:"_id" json:"-"`
	ReportID            string          `bson:"reportID" json:"reportID"`
	RequestedBy         string          `bson:"requestedBy" json:"requestedBy"`
	VideoAssetRef       string          `bson:"videoAssetRef" json:"-"`
	Status              ReportStatus    `bson:"status" json:"status"`
	FramesAnalyzed      int             `bson:"framesAnalyzed" json:"framesAnalyzed"`
	DeepfakeProbability float64         `bson:"deepfakeProbability" json:"deepfakeProbability"`
	AnalysisPoints      []types.AnalysisPoint `bson:"analysisPoints" json:"analysisPoints"`
	FailureReason       *string         `bson:"failureReason" json:"failureReason,omitempty"`
	CreatedAt           time.Time       `bson:"createdAt" json:"createdAt"`
	CompletedAt         *time.Time      `bson:"completedAt" json:"completedAt"`
}

func (r AuthenticityReport) ParseModel() any {
	if r.ID == "" {
		r.ID = utils.GenerateULIDString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return &r
}
