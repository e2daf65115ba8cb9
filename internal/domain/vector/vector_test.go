package vector

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{
			name: "identical vector scores 1",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1,
		},
		{
			name: "negated vector scores -1",
			a:    []float32{1, 2, 3},
			b:    []float32{-1, -2, -3},
			want: -1,
		},
		{
			name: "orthogonal vectors score 0",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0,
		},
		{
			name: "zero vector left scores 0",
			a:    []float32{0, 0, 0},
			b:    []float32{1, 2, 3},
			want: 0,
		},
		{
			name: "zero vector right scores 0",
			a:    []float32{1, 2, 3},
			b:    []float32{0, 0, 0},
			want: 0,
		},
		{
			name: "mismatched lengths truncate to common prefix",
			a:    []float32{1, 0, 0},
			b:    []float32{1, 0},
			want: 1,
		},
		{
			name: "nil left scores 0",
			a:    nil,
			b:    []float32{1, 2},
			want: 0,
		},
		{
			name: "nil right scores 0",
			a:    []float32{1, 2},
			b:    nil,
			want: 0,
		},
		{
			name: "both empty score 0",
			a:    []float32{},
			b:    []float32{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.IsNaN(got) {
				t.Fatal("Cosine returned NaN")
			}
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Cosine(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCosine_KnownAngle(t *testing.T) {
	// 45 degrees between (1,0) and (1,1).
	got := Cosine([]float32{1, 0}, []float32{1, 1})
	want := 1 / math.Sqrt2
	if math.Abs(got-want) > epsilon {
		t.Errorf("Cosine = %v, expected %v", got, want)
	}
}

func TestCosine_TruncatedNormsUseCommonPrefixOnly(t *testing.T) {
	// The trailing component of the longer vector must not leak into
	// either norm: (3,4,100) vs (3,4) still scores exactly 1.
	got := Cosine([]float32{3, 4, 100}, []float32{3, 4})
	if math.Abs(got-1) > epsilon {
		t.Errorf("Cosine = %v, expected 1", got)
	}
}

func TestCosine_RangeBounds(t *testing.T) {
	a := []float32{0.3, -0.7, 0.21, 0.9}
	b := []float32{-0.5, 0.1, 0.8, -0.4}
	got := Cosine(a, b)
	if got < -1 || got > 1 {
		t.Errorf("Cosine = %v, outside [-1, 1]", got)
	}
}
