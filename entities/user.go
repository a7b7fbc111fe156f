package entities

import (
	"time"

	"veriface.io/application/utils"
)

// User is an enrolled identity. The biometric fields are derived once at
// enrollment from media that passed detection and are read-only afterwards.
type User struct {
	ID                string     `bson:"_id" json:"id"`
	Username          string     `bson:"username" json:"username" validate:"required,username"`
	Email             *string    `bson:"email" json:"email,omitempty"`
	FaceEmbedding     []float64  `bson:"faceEmbedding" json:"-"`
	VoicePasswordText string     `bson:"voicePasswordText" json:"-"`
	VoiceFeatures     []float64  `bson:"voiceFeatures" json:"-"`
	FaceAssetRef      string     `bson:"faceAssetRef" json:"-"`
	VoiceAssetRef     string     `bson:"voiceAssetRef" json:"-"`
	UserAgent         string     `bson:"userAgent" json:"-"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	LastLogin         *time.Time `bson:"lastLogin" json:"lastLogin"`
}

func (u User) ParseModel() any {
	if u.ID == "" {
		u.ID = utils.GenerateULIDString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return &u
}
