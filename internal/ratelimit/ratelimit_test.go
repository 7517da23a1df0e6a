package ratelimit_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/mkarvon/sleuthline/internal/ratelimit"
	"github.com/mkarvon/sleuthline/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestLimiter_disabledWithoutRedis(t *testing.T) {
	limiter := ratelimit.New(nil, 1, time.Minute, testhelpers.NewLogger(io.Discard))
	for i := 0; i < 10; i++ {
		require.NoError(t, limiter.Allow(context.Background(), "owner-1"))
	}
}
