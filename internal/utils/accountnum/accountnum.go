// Package accountnum generates candidate 9-digit account numbers.
package accountnum

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/meypanhawath/corebank/internal/apperrors"
)

// ExistsFunc reports whether an account number is already taken.
type ExistsFunc func(ctx context.Context, accountNo string) (bool, error)

// Generator produces unique 9-digit account numbers. The first digit is
// never zero so the number survives round trips through integer parsing.
type Generator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	maxAttempts int
}

// NewGenerator returns a Generator backed by its own rand source.
// maxAttempts bounds how many candidates Unique will try before giving up.
func NewGenerator(maxAttempts int) *Generator {
	return &Generator{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		maxAttempts: maxAttempts,
	}
}

// NewSeededGenerator returns a deterministic Generator, used in tests.
func NewSeededGenerator(seed int64, maxAttempts int) *Generator {
	return &Generator{
		rng:         rand.New(rand.NewSource(seed)),
		maxAttempts: maxAttempts,
	}
}

// Next returns a single candidate account number.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	// 100000000..999999999 inclusive
	n := 100000000 + g.rng.Intn(900000000)
	return strconv.Itoa(n)
}

// Unique returns a candidate that exists reports as free, retrying up to the
// configured attempt bound.
func (g *Generator) Unique(ctx context.Context, exists ExistsFunc) (string, error) {
	for i := 0; i < g.maxAttempts; i++ {
		candidate := g.Next()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", apperrors.NewAppError(500, "could not allocate a unique account number", apperrors.ErrRetryExhausted)
}
