package apperrors

import (
	"net/http"

	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	server_response "veriface.io/infrastructure/serverResponse"
)

func NotFoundError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed", nil, *errMessages)
}

func EntityAlreadyExistsError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusConflict, message, nil, nil)
}

func AuthenticationError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusUnauthorized, message, nil, nil)
}

func ErrorProcessingPayload(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed", nil, nil)
}

func ExternalDependencyError(ctx interface{}, serviceName string, err error) {
	logger.Error("external dependency failed", logger.LoggerOptions{
		Key:  "service",
		Data: serviceName,
	}, logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusServiceUnavailable,
		"Our service is temporarily unavailable. Please try again shortly.", nil, nil)
}

func FatalServerError(ctx interface{}, err error) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError,
		"Something went wrong on our end. Please try again later.", nil, nil)
}

func ClientError(ctx interface{}, msg string, errs []error) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, errs)
}

// GateRejectionStatus maps a typed gate rejection to the HTTP status the
// thin web layer should answer with. Transient capability faults are
// distinguishable from deterministic rejections so clients can re-prompt.
func GateRejectionStatus(gateErr *types.GateError) int {
	switch gateErr.Kind {
	case types.KindInput, types.KindDetection:
		return http.StatusBadRequest
	case types.KindMismatch:
		return http.StatusUnauthorized
	case types.KindService:
		return http.StatusServiceUnavailable
	case types.KindIntegrity:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
