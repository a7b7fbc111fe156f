package biometric

import (
	"math"
	"testing"
)

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name    string
		a       []float64
		b       []float64
		want    float64
		wantErr bool
	}{
		{
			name: "identical vectors",
			a:    []float64{0.5, 0.2, 0.9},
			b:    []float64{0.5, 0.2, 0.9},
			want: 0,
		},
		{
			name: "orthogonal vectors",
			a:    []float64{1, 0},
			b:    []float64{0, 1},
			want: 1,
		},
		{
			name: "opposite vectors",
			a:    []float64{1, 1},
			b:    []float64{-1, -1},
			want: 2,
		},
		{
			name: "scaling does not change the distance",
			a:    []float64{1, 2, 3},
			b:    []float64{2, 4, 6},
			want: 0,
		},
		{
			name:    "length mismatch",
			a:       []float64{1, 2},
			b:       []float64{1, 2, 3},
			wantErr: true,
		},
		{
			name:    "zero magnitude",
			a:       []float64{0, 0},
			b:       []float64{1, 1},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineDistance(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CosineDistance() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}
