package utils

import (
	"encoding/base64"
	"testing"
)

func TestDecodeBase64Media(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "plain base64", payload: encoded},
		{name: "data url prefix", payload: "data:image/jpeg;base64," + encoded},
		{name: "not base64", payload: "%%%%", wantErr: true},
		{name: "empty payload", payload: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeBase64Media(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeBase64Media() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(decoded) != len(raw) {
				t.Errorf("decoded length = %d, want %d", len(decoded), len(raw))
			}
		})
	}
}

func TestGenerateULIDString(t *testing.T) {
	first := GenerateULIDString()
	second := GenerateULIDString()
	if len(first) != 26 {
		t.Errorf("ULID length = %d, want 26", len(first))
	}
	if first == second {
		t.Error("consecutive ULIDs collided")
	}
}
