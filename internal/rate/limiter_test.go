package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 10, 0, time.UTC)
	now := base
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	r, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.True(t, r.Allowed)
	require.Equal(t, int64(1), r.Remaining)
	require.Equal(t, 50*time.Second, r.WindowTTL)

	r, _ = l.Allow(ctx, "1.2.3.4")
	require.True(t, r.Allowed)
	require.Equal(t, int64(0), r.Remaining)

	r, _ = l.Allow(ctx, "1.2.3.4")
	require.False(t, r.Allowed)
	require.Equal(t, int64(3), r.CurrentHits)
	require.Equal(t, 50*time.Second, r.RetryAfter)

	// otra key, otro contador
	r, _ = l.Allow(ctx, "5.6.7.8")
	require.True(t, r.Allowed)

	// ventana nueva
	now = base.Add(time.Minute)
	r, _ = l.Allow(ctx, "1.2.3.4")
	require.True(t, r.Allowed)
	require.Equal(t, int64(1), r.CurrentHits)
}

func TestResult_RetryAfterFallsBackToWindow(t *testing.T) {
	r := result(1, 2, -1, 90*time.Second)
	require.False(t, r.Allowed)
	require.Equal(t, 90*time.Second, r.RetryAfter)
	require.Equal(t, int64(0), r.Remaining)
}
