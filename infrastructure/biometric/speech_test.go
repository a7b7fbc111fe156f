package biometric

import (
	"errors"
	"testing"

	"veriface.io/infrastructure/biometric/types"
)

type stubTranscriber struct {
	transcript string
	err        error
}

func (s *stubTranscriber) TranscribeSpeech(audio []byte) (string, error) {
	return s.transcript, s.err
}

func TestNormalizePhrase(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   string
	}{
		{name: "surrounding whitespace", phrase: "  Sunrise ", want: "sunrise"},
		{name: "upper case", phrase: "SUNRISE", want: "sunrise"},
		{name: "already normalized", phrase: "sunrise", want: "sunrise"},
		{name: "inner spacing preserved", phrase: "Open Sesame", want: "open sesame"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhrase(tt.phrase); got != tt.want {
				t.Errorf("NormalizePhrase(%q) = %q, want %q", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	tests := []struct {
		name        string
		transcript  string
		expected    string
		wantMatched bool
	}{
		{name: "exact match", transcript: "sunrise", expected: "sunrise", wantMatched: true},
		{name: "case and whitespace drift", transcript: " Sunrise ", expected: "sunrise", wantMatched: true},
		{name: "different word", transcript: "sunset", expected: "sunrise", wantMatched: false},
		{name: "near homophone is not a match", transcript: "sun rise", expected: "sunrise", wantMatched: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &VoicePasswordEngine{Transcriber: &stubTranscriber{transcript: tt.transcript}}
			result, err := engine.VerifyPassword(nil, tt.expected)
			if err != nil {
				t.Fatalf("VerifyPassword() error = %v", err)
			}
			if result.Matched != tt.wantMatched {
				t.Errorf("VerifyPassword() matched = %v, want %v", result.Matched, tt.wantMatched)
			}
		})
	}
}

func TestVerifyPasswordPropagatesTranscriberErrors(t *testing.T) {
	engine := &VoicePasswordEngine{Transcriber: &stubTranscriber{err: types.ErrSpeechUnintelligible}}
	_, err := engine.VerifyPassword(nil, "sunrise")
	if !errors.Is(err, types.ErrSpeechUnintelligible) {
		t.Errorf("VerifyPassword() error = %v, want ErrSpeechUnintelligible", err)
	}
}
