package dispatch_test

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tcfview/internal/engine/dispatch"
)

func TestLoop_DrainRunsInOrder(t *testing.T) {
	loop := dispatch.New()

	var got []int
	for i := range 3 {
		loop.Post(func() { got = append(got, i) })
	}
	loop.Post(func() {
		// Work posted from the loop runs in the same drain.
		loop.Post(func() { got = append(got, 3) })
	})

	assert.Equal(t, 4, loop.Len())
	assert.Equal(t, 5, loop.Drain())
	assert.Equal(t, []int{0, 1, 2, 3}, got)
	assert.Equal(t, 0, loop.Len())
}

func TestLoop_RunProcessesConcurrentPosts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		loop := dispatch.New()

		errCh := make(chan error, 1)
		go func() { errCh <- loop.Run(ctx) }()

		counter := 0
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				require.NoError(t, loop.Do(ctx, func() { counter++ }))
			}()
		}
		wg.Wait()

		cancel()
		require.ErrorIs(t, <-errCh, context.Canceled)
		assert.Equal(t, 10, counter)

		// Posting after the loop stopped is a no-op.
		loop.Post(func() { counter++ })
		assert.Equal(t, 0, loop.Len())
	})
}

func TestLoop_DoHonorsContext(t *testing.T) {
	loop := dispatch.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Do(ctx, func() {})
	require.ErrorIs(t, err, context.Canceled)
}
