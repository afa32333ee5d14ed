package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/webclip/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("allows requests to different domains immediately", func(t *testing.T) {
		t.Parallel()

		l := pipeline.NewDomainLimiter(0.001)
		ctx := context.Background()

		require.NoError(t, l.Wait(ctx, "a.example.com"))
		require.NoError(t, l.Wait(ctx, "b.example.com"))
	})

	t.Run("returns error when context expires while throttled", func(t *testing.T) {
		t.Parallel()

		l := pipeline.NewDomainLimiter(0.001)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		require.NoError(t, l.Wait(ctx, "example.com"))
		err := l.Wait(ctx, "example.com")
		assert.Error(t, err)
	})
}
