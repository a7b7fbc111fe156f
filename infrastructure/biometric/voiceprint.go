package biometric

import (
	"bytes"
	"math"

	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"veriface.io/infrastructure/biometric/types"
)

const (
	// VoiceFeatureLength is 13 cepstral means + 13 cepstral standard
	// deviations + 1 mean pitch.
	VoiceFeatureLength = 27

	// voiceMatchThreshold was tuned coarsely against recorded samples. It
	// is a tunable constant, not a derived statistic.
	voiceMatchThreshold = 2.0

	numCepstra     = 13
	numMelFilters  = 26
	voiceFrameLen  = 2048
	voiceFrameHop  = 512
	minPitchHz     = 50.0
	maxPitchHz     = 500.0
)

// VoiceprintEngine verifies the acoustic characteristics of a voice sample
// against the enrolled speaker, independent of the words spoken.
type VoiceprintEngine struct{}

func (v *VoiceprintEngine) VerifyVoice(audio []byte, stored []float64) (*types.VoiceMatchResult, error) {
	if len(stored) != VoiceFeatureLength {
		// a missing or malformed stored vector is never treated as zero
		// distance
		return nil, types.ErrFeatureExtractionFailed
	}

	samples, sampleRate, err := DecodeWAV(audio)
	if err != nil {
		return nil, err
	}
	features, err := ExtractFeatures(samples, sampleRate)
	if err != nil {
		return nil, err
	}

	distance := EuclideanDistance(features, stored)
	return &types.VoiceMatchResult{
		Matched:  distance < voiceMatchThreshold,
		Distance: distance,
	}, nil
}

// DecodeWAV decodes a WAV payload to mono samples normalized to [-1, 1].
func DecodeWAV(payload []byte) ([]float64, int, error) {
	decoder := wav.NewDecoder(bytes.NewReader(payload))
	if !decoder.IsValidFile() {
		return nil, 0, types.ErrFeatureExtractionFailed
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil || buf == nil || len(buf.Data) == 0 {
		return nil, 0, types.ErrFeatureExtractionFailed
	}

	scale := float64(int(1) << (decoder.BitDepth - 1))
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	samples := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i+channels-1 < len(buf.Data); i += channels {
		frame := 0.0
		for c := 0; c < channels; c++ {
			frame += float64(buf.Data[i+c])
		}
		samples = append(samples, frame/float64(channels)/scale)
	}
	return samples, buf.Format.SampleRate, nil
}

// ExtractFeatures summarises an utterance as a 27-value vector: per
// coefficient mean and standard deviation of 13 cepstral coefficients over
// the whole utterance, then the mean pitch restricted to frames whose
// magnitude exceeds half the utterance's peak magnitude. The magnitude gate
// keeps silent and noise frames from skewing the pitch estimate.
func ExtractFeatures(samples []float64, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 || len(samples) < voiceFrameLen {
		return nil, types.ErrFeatureExtractionFailed
	}

	fft := fourier.NewFFT(voiceFrameLen)
	filterbank := melFilterbank(sampleRate)

	frameCount := 0
	sums := make([]float64, numCepstra)
	sumSquares := make([]float64, numCepstra)

	type framePitch struct {
		magnitude float64
		pitch     float64
	}
	pitches := []framePitch{}
	peakMagnitude := 0.0

	windowed := make([]float64, voiceFrameLen)
	for start := 0; start+voiceFrameLen <= len(samples); start += voiceFrameHop {
		frame := samples[start : start+voiceFrameLen]

		copy(windowed, frame)
		window.Hamming(windowed)
		coefficients := fft.Coefficients(nil, windowed)

		cepstra := cepstralCoefficients(coefficients, filterbank)
		for i, c := range cepstra {
			sums[i] += c
			sumSquares[i] += c * c
		}

		magnitude := rootMeanSquare(frame)
		if magnitude > peakMagnitude {
			peakMagnitude = magnitude
		}
		pitches = append(pitches, framePitch{
			magnitude: magnitude,
			pitch:     autocorrelationPitch(frame, sampleRate),
		})
		frameCount++
	}
	if frameCount == 0 {
		return nil, types.ErrFeatureExtractionFailed
	}

	features := make([]float64, 0, VoiceFeatureLength)
	n := float64(frameCount)
	for i := 0; i < numCepstra; i++ {
		features = append(features, sums[i]/n)
	}
	for i := 0; i < numCepstra; i++ {
		mean := sums[i] / n
		variance := sumSquares[i]/n - mean*mean
		if variance < 0 {
			variance = 0
		}
		features = append(features, math.Sqrt(variance))
	}

	pitchTotal, gated := 0.0, 0
	for _, p := range pitches {
		if p.magnitude > peakMagnitude/2 {
			pitchTotal += p.pitch
			gated++
		}
	}
	if gated == 0 {
		return nil, types.ErrFeatureExtractionFailed
	}
	features = append(features, pitchTotal/float64(gated))

	return features, nil
}

// EuclideanDistance is symmetric and zero for identical vectors.
func EuclideanDistance(a []float64, b []float64) float64 {
	total := 0.0
	for i := range a {
		diff := a[i] - b[i]
		total += diff * diff
	}
	return math.Sqrt(total)
}

// cepstralCoefficients converts one frame's spectrum to 13 MFCC-style
// coefficients: mel filterbank energies, log compression, then a DCT-II.
func cepstralCoefficients(spectrum []complex128, filterbank [][]float64) []float64 {
	power := make([]float64, len(spectrum))
	for i, c := range spectrum {
		power[i] = real(c)*real(c) + imag(c)*imag(c)
	}

	logEnergies := make([]float64, numMelFilters)
	for f, filter := range filterbank {
		energy := 0.0
		for bin, weight := range filter {
			energy += power[bin] * weight
		}
		logEnergies[f] = math.Log(energy + 1e-10)
	}

	cepstra := make([]float64, numCepstra)
	for k := 0; k < numCepstra; k++ {
		total := 0.0
		for m := 0; m < numMelFilters; m++ {
			total += logEnergies[m] * math.Cos(math.Pi*float64(k)*(float64(m)+0.5)/numMelFilters)
		}
		cepstra[k] = total
	}
	return cepstra
}

// melFilterbank builds triangular filters spanning 0 to the Nyquist
// frequency, spaced on the mel scale.
func melFilterbank(sampleRate int) [][]float64 {
	bins := voiceFrameLen/2 + 1
	melHigh := hzToMel(float64(sampleRate) / 2)

	centers := make([]int, numMelFilters+2)
	for i := range centers {
		hz := melToHz(melHigh * float64(i) / float64(numMelFilters+1))
		centers[i] = int(hz / float64(sampleRate) * float64(voiceFrameLen))
		if centers[i] >= bins {
			centers[i] = bins - 1
		}
	}

	filterbank := make([][]float64, numMelFilters)
	for f := 0; f < numMelFilters; f++ {
		filter := make([]float64, bins)
		lower, center, upper := centers[f], centers[f+1], centers[f+2]
		for bin := lower; bin <= upper && bin < bins; bin++ {
			switch {
			case bin < center && center > lower:
				filter[bin] = float64(bin-lower) / float64(center-lower)
			case bin == center:
				filter[bin] = 1
			case bin > center && upper > center:
				filter[bin] = float64(upper-bin) / float64(upper-center)
			}
		}
		filterbank[f] = filter
	}
	return filterbank
}

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

func rootMeanSquare(frame []float64) float64 {
	total := 0.0
	for _, s := range frame {
		total += s * s
	}
	return math.Sqrt(total / float64(len(frame)))
}

// autocorrelationPitch estimates the fundamental frequency of a frame by
// peak-picking the normalized autocorrelation inside the speech pitch band.
// Returns 0 when no periodicity is found.
func autocorrelationPitch(frame []float64, sampleRate int) float64 {
	minLag := int(float64(sampleRate) / maxPitchHz)
	maxLag := int(float64(sampleRate) / minPitchHz)
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag < 1 || minLag >= maxLag {
		return 0
	}

	energy := 0.0
	for _, s := range frame {
		energy += s * s
	}
	if energy == 0 {
		return 0
	}

	bestLag, bestValue := 0, 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i+lag < len(frame); i++ {
			sum += frame[i] * frame[i+lag]
		}
		value := sum / energy
		if value > bestValue {
			bestValue = value
			bestLag = lag
		}
	}

	// weak correlation means the frame is not voiced
	if bestLag == 0 || bestValue < 0.3 {
		return 0
	}
	return float64(sampleRate) / float64(bestLag)
}
