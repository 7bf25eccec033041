package infra

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChanPool_BlocksUntilRelease(t *testing.T) {
	p := NewChanPool(1)

	release, ok := p.Acquire(context.Background())
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, ok = p.Acquire(ctx)
	require.False(t, ok, "expected second acquire to time out while the slot is held")

	release()
	release2, ok := p.Acquire(context.Background())
	require.True(t, ok)
	release2()
}

func TestChanPool_ZeroCapacityBecomesOne(t *testing.T) {
	p := NewChanPool(0)
	release, ok := p.Acquire(context.Background())
	require.True(t, ok)
	release()
}
