package biometric

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/network"
)

// EmbedderClient talks to the face analysis sidecar which hosts the heavy
// embedding and emotion models. The sidecar is loaded once and shared by all
// requests; this client holds no per-call state.
type EmbedderClient struct {
	Network *network.NetworkController
}

type representRequest struct {
	Image string `json:"image"`
}

type representResponse struct {
	Embedding    []float64 `json:"embedding"`
	FaceDetected bool      `json:"face_detected"`
	Error        *string   `json:"error"`
}

type analyzeRequest struct {
	Image   string   `json:"image"`
	Actions []string `json:"actions"`
}

type analyzeResponse struct {
	Emotion map[string]float64 `json:"emotion"`
	Error   *string            `json:"error"`
}

func (e *EmbedderClient) EmbedFace(image []byte) ([]float64, error) {
	requestBody := representRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	}

	response, statusCode, err := e.Network.Post("/represent", nil, requestBody)
	if err != nil {
		logger.Error("error requesting face embedding", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, fmt.Errorf("embedding service: %w", err)
	}
	if statusCode != nil && *statusCode == http.StatusUnprocessableEntity {
		return nil, types.ErrNoFaceDetected
	}
	if statusCode == nil || *statusCode != http.StatusOK {
		logger.Error("face embedding failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, fmt.Errorf("embedding service returned status %v", statusCode)
	}

	var result representResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling face embedding response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !result.FaceDetected || len(result.Embedding) == 0 {
		return nil, types.ErrNoFaceDetected
	}
	return result.Embedding, nil
}

func (e *EmbedderClient) ClassifyEmotion(image []byte) (map[string]float64, error) {
	requestBody := analyzeRequest{
		Image:   base64.StdEncoding.EncodeToString(image),
		Actions: []string{"emotion"},
	}

	response, statusCode, err := e.Network.Post("/analyze", nil, requestBody)
	if err != nil {
		logger.Error("error requesting emotion analysis", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, fmt.Errorf("emotion service: %w", err)
	}
	if statusCode == nil || *statusCode != http.StatusOK {
		return nil, fmt.Errorf("emotion service returned status %v", statusCode)
	}

	var result analyzeResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling emotion analysis response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return result.Emotion, nil
}
