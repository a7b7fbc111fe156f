package biometric

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"veriface.io/infrastructure/biometric/types"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float64{1, 2, 3},
			b:    []float64{1, 2, 3},
			want: 0,
		},
		{
			name: "pythagorean triple",
			a:    []float64{0, 0},
			b:    []float64{3, 4},
			want: 5,
		},
		{
			name: "single dimension",
			a:    []float64{1.5},
			b:    []float64{4.0},
			want: 2.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EuclideanDistance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EuclideanDistance() = %v, want %v", got, tt.want)
			}
			reversed := EuclideanDistance(tt.b, tt.a)
			if got != reversed {
				t.Errorf("EuclideanDistance() not symmetric: %v vs %v", got, reversed)
			}
		})
	}
}

func TestExtractFeatures(t *testing.T) {
	sampleRate := 8000
	samples := sineWave(200, sampleRate, sampleRate)

	features, err := ExtractFeatures(samples, sampleRate)
	require.NoError(t, err)
	require.Len(t, features, VoiceFeatureLength)

	// a pure 200 Hz tone lands on an exact autocorrelation lag
	pitch := features[VoiceFeatureLength-1]
	require.InDelta(t, 200.0, pitch, 1.0)
}

func TestExtractFeaturesRejectsShortInput(t *testing.T) {
	_, err := ExtractFeatures(make([]float64, voiceFrameLen-1), 8000)
	require.ErrorIs(t, err, types.ErrFeatureExtractionFailed)
}

func TestVerifyVoice(t *testing.T) {
	engine := &VoiceprintEngine{}
	sampleRate := 8000
	audio := encodeWAV(t, sineWave(200, sampleRate, sampleRate), sampleRate)

	// enroll through the same decode path a live enrollment takes
	decoded, decodedRate, err := DecodeWAV(audio)
	require.NoError(t, err)
	enrolled, err := ExtractFeatures(decoded, decodedRate)
	require.NoError(t, err)

	t.Run("same speaker matches", func(t *testing.T) {
		result, err := engine.VerifyVoice(audio, enrolled)
		require.NoError(t, err)
		require.True(t, result.Matched)
		require.InDelta(t, 0.0, result.Distance, 1e-9)
	})

	t.Run("distance at or beyond the threshold is rejected", func(t *testing.T) {
		farOff := append([]float64{}, enrolled...)
		farOff[0] += 2.5
		result, err := engine.VerifyVoice(audio, farOff)
		require.NoError(t, err)
		require.False(t, result.Matched)
		require.Greater(t, result.Distance, 2.0)
	})

	t.Run("malformed stored vector is an integrity error", func(t *testing.T) {
		_, err := engine.VerifyVoice(audio, []float64{1, 2, 3})
		require.ErrorIs(t, err, types.ErrFeatureExtractionFailed)
	})
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	_, _, err := DecodeWAV([]byte("not a wav file"))
	require.ErrorIs(t, err, types.ErrFeatureExtractionFailed)
}

func sineWave(frequency float64, sampleRate int, length int) []float64 {
	samples := make([]float64, length)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
	}
	return samples
}

// encodeWAV writes mono 16-bit PCM so tests do not need media fixtures.
func encodeWAV(t *testing.T, samples []float64, sampleRate int) []byte {
	t.Helper()
	var buffer bytes.Buffer
	dataLen := uint32(len(samples) * 2)

	buffer.WriteString("RIFF")
	binary.Write(&buffer, binary.LittleEndian, uint32(36+dataLen))
	buffer.WriteString("WAVE")

	buffer.WriteString("fmt ")
	binary.Write(&buffer, binary.LittleEndian, uint32(16))
	binary.Write(&buffer, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buffer, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buffer, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buffer, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buffer, binary.LittleEndian, uint16(2))
	binary.Write(&buffer, binary.LittleEndian, uint16(16))

	buffer.WriteString("data")
	binary.Write(&buffer, binary.LittleEndian, dataLen)
	for _, sample := range samples {
		binary.Write(&buffer, binary.LittleEndian, int16(sample*32767))
	}
	return buffer.Bytes()
}
