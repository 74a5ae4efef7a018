package accountnum

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meypanhawath/corebank/internal/apperrors"
)

func TestNext_Format(t *testing.T) {
	gen := NewSeededGenerator(1, 10)
	for i := 0; i < 1000; i++ {
		no := gen.Next()
		require.Len(t, no, 9)
		assert.NotEqual(t, byte('0'), no[0])
		for _, c := range no {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestUnique_SkipsTakenNumbers(t *testing.T) {
	gen := NewSeededGenerator(42, 10)
	taken := map[string]bool{gen.Next(): true, gen.Next(): true}

	// Re-seed so Unique walks the same candidate sequence.
	gen = NewSeededGenerator(42, 10)
	no, err := gen.Unique(context.Background(), func(_ context.Context, candidate string) (bool, error) {
		return taken[candidate], nil
	})
	require.NoError(t, err)
	assert.False(t, taken[no])
	assert.Len(t, no, 9)
}

func TestUnique_AttemptsExhausted(t *testing.T) {
	gen := NewSeededGenerator(7, 5)
	calls := 0
	_, err := gen.Unique(context.Background(), func(_ context.Context, _ string) (bool, error) {
		calls++
		return true, nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRetryExhausted))
	assert.Equal(t, 5, calls)
}

func TestUnique_PropagatesLookupError(t *testing.T) {
	gen := NewSeededGenerator(7, 5)
	boom := errors.New("connection reset")
	_, err := gen.Unique(context.Background(), func(_ context.Context, _ string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
