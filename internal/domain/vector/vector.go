// Package vector holds the similarity math used to rank documents.
package vector

import "math"

// Cosine returns the cosine similarity of a and b in [-1, 1].
//
// Mismatched lengths are truncated to the common prefix, never
// rejected, and the norms cover the same prefix as the dot product. A
// nil or empty side, or a side with zero norm, yields 0 — never NaN.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
