package dto

// EnrollUserDTO carries the enrollment payload. Media is submitted base64
// encoded; the face image is any format OpenCV can decode and the voice
// sample must be a WAV recording of the user speaking their password word.
type EnrollUserDTO struct {
	Username    string  `json:"username" validate:"required,username"`
	Email       *string `json:"email" validate:"omitempty,email"`
	FaceImage   string  `json:"faceImage" validate:"required"`
	VoiceSample string  `json:"voiceSample" validate:"required"`
}

// VerifyUserDTO carries a login attempt. The same media rules as enrollment
// apply.
type VerifyUserDTO struct {
	Username    string `json:"username" validate:"required,username"`
	FaceImage   string `json:"faceImage" validate:"required"`
	VoiceSample string `json:"voiceSample" validate:"required"`
}

type VerificationResponseDTO struct {
	RequestID             string  `json:"requestID"`
	UsernameValid         bool    `json:"usernameValid"`
	DeepfakeDetected      bool    `json:"deepfakeDetected"`
	FaceMatched           bool    `json:"faceMatched"`
	VoiceWordMatched      bool    `json:"voiceWordMatched"`
	VoiceBiometricMatched bool    `json:"voiceBiometricMatched"`
	OverallSuccess        bool    `json:"overallSuccess"`
	ErrorMessage          *string `json:"errorMessage,omitempty"`
	AccessToken           *string `json:"accessToken,omitempty"`
}
