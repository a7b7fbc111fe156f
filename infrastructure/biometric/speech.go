package biometric

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/network"
)

// SpeechClient talks to the speech-to-text sidecar.
type SpeechClient struct {
	Network *network.NetworkController
}

type transcribeRequest struct {
	Audio string `json:"audio"`
}

type transcribeResponse struct {
	Transcript string  `json:"transcript"`
	Error      *string `json:"error"`
}

func (s *SpeechClient) TranscribeSpeech(audio []byte) (string, error) {
	requestBody := transcribeRequest{
		Audio: base64.StdEncoding.EncodeToString(audio),
	}

	response, statusCode, err := s.Network.Post("/transcribe", nil, requestBody)
	if err != nil {
		logger.Error("error requesting transcription", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return "", fmt.Errorf("%w: %s", types.ErrSpeechServiceUnavailable, err.Error())
	}
	if statusCode != nil && *statusCode == http.StatusUnprocessableEntity {
		return "", types.ErrSpeechUnintelligible
	}
	if statusCode == nil || *statusCode != http.StatusOK {
		logger.Error("transcription failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return "", fmt.Errorf("%w: status %v", types.ErrSpeechServiceUnavailable, statusCode)
	}

	var result transcribeResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling transcription response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return "", fmt.Errorf("%w: %s", types.ErrSpeechServiceUnavailable, err.Error())
	}
	if strings.TrimSpace(result.Transcript) == "" {
		return "", types.ErrSpeechUnintelligible
	}
	return result.Transcript, nil
}

// VoicePasswordEngine verifies the spoken phrase against the enrolled
// password phrase.
type VoicePasswordEngine struct {
	Transcriber types.SpeechTranscriber
}

// NormalizePhrase lower-cases and trims a phrase the way it is stored at
// enrollment. Comparison is exact equality after normalization; any
// transcription drift fails the check.
func NormalizePhrase(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

func (v *VoicePasswordEngine) VerifyPassword(audio []byte, expected string) (*types.PasswordMatchResult, error) {
	transcript, err := v.Transcriber.TranscribeSpeech(audio)
	if err != nil {
		return nil, err
	}
	normalized := NormalizePhrase(transcript)
	return &types.PasswordMatchResult{
		Matched:    normalized == NormalizePhrase(expected),
		Transcript: normalized,
	}, nil
}
