package webster_test

import (
	"testing"

	"github.com/hexbenjamin/webster"
	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("identical vectors score 1", func(t *testing.T) {
		t.Parallel()
		v := []float32{0.5, 0.2, 0.8}
		assert.InDelta(t, 1.0, webster.CosineSimilarity(v, v), 1e-6)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		t.Parallel()
		a := []float32{1, 0}
		b := []float32{0, 1}
		assert.InDelta(t, 0.0, webster.CosineSimilarity(a, b), 1e-6)
	})

	t.Run("opposite vectors score -1", func(t *testing.T) {
		t.Parallel()
		a := []float32{1, 2, 3}
		b := []float32{-1, -2, -3}
		assert.InDelta(t, -1.0, webster.CosineSimilarity(a, b), 1e-6)
	})

	t.Run("mismatched lengths score 0", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, float32(0), webster.CosineSimilarity([]float32{1, 2}, []float32{1}))
	})

	t.Run("zero vector scores 0", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, float32(0), webster.CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	})
}
