package apperrors

import (
	"net/http"
	"testing"

	"veriface.io/infrastructure/biometric/types"
)

func TestGateRejectionStatus(t *testing.T) {
	tests := []struct {
		name string
		kind types.ErrorKind
		want int
	}{
		{name: "input problems are client errors", kind: types.KindInput, want: http.StatusBadRequest},
		{name: "detection failures are client errors", kind: types.KindDetection, want: http.StatusBadRequest},
		{name: "biometric mismatches are unauthorized", kind: types.KindMismatch, want: http.StatusUnauthorized},
		{name: "capability outages are service unavailable", kind: types.KindService, want: http.StatusServiceUnavailable},
		{name: "corrupt enrollment records are server errors", kind: types.KindIntegrity, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateErr := types.NewGateError(types.StageFaceMatch, tt.kind, "rejected", nil)
			if got := GateRejectionStatus(gateErr); got != tt.want {
				t.Errorf("GateRejectionStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
