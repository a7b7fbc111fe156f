package dto

import (
	"testing"

	"veriface.io/infrastructure/validator"
)

func TestEnrollUserDTOValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload EnrollUserDTO
		wantErr bool
	}{
		{
			name: "valid payload",
			payload: EnrollUserDTO{
				Username:    "ada.lovelace",
				FaceImage:   "aGVsbG8=",
				VoiceSample: "aGVsbG8=",
			},
			wantErr: false,
		},
		{
			name: "username too short",
			payload: EnrollUserDTO{
				Username:    "ab",
				FaceImage:   "aGVsbG8=",
				VoiceSample: "aGVsbG8=",
			},
			wantErr: true,
		},
		{
			name: "username with forbidden characters",
			payload: EnrollUserDTO{
				Username:    "ada lovelace!",
				FaceImage:   "aGVsbG8=",
				VoiceSample: "aGVsbG8=",
			},
			wantErr: true,
		},
		{
			name: "username starting with punctuation",
			payload: EnrollUserDTO{
				Username:    ".ada",
				FaceImage:   "aGVsbG8=",
				VoiceSample: "aGVsbG8=",
			},
			wantErr: true,
		},
		{
			name: "missing face image",
			payload: EnrollUserDTO{
				Username:    "ada",
				VoiceSample: "aGVsbG8=",
			},
			wantErr: true,
		},
		{
			name: "missing voice sample",
			payload: EnrollUserDTO{
				Username:  "ada",
				FaceImage: "aGVsbG8=",
			},
			wantErr: true,
		},
		{
			name: "malformed email",
			payload: EnrollUserDTO{
				Username:    "ada",
				Email:       strPtr("not-an-email"),
				FaceImage:   "aGVsbG8=",
				VoiceSample: "aGVsbG8=",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidatorInstance.ValidateStruct(tt.payload)
			if (errs != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestVerifyUserDTOValidation(t *testing.T) {
	valid := VerifyUserDTO{
		Username:    "ada",
		FaceImage:   "aGVsbG8=",
		VoiceSample: "aGVsbG8=",
	}
	if errs := validator.ValidatorInstance.ValidateStruct(valid); errs != nil {
		t.Errorf("valid payload rejected: %v", errs)
	}

	missing := VerifyUserDTO{Username: "ada"}
	if errs := validator.ValidatorInstance.ValidateStruct(missing); errs == nil {
		t.Error("payload without media accepted")
	}
}

func strPtr(s string) *string {
	return &s
}
