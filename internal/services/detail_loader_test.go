package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesSeedThenFresh(t *testing.T) {
	var loader RevalidatingLoader[string]
	var applied []string

	seed := "stale"
	err := loader.Load(context.Background(), &seed,
		func(ctx context.Context) (string, error) { return "fresh", nil },
		func(v string) { applied = append(applied, v) })

	require.NoError(t, err)
	assert.Equal(t, []string{"stale", "fresh"}, applied)
}

func TestLoadWithoutSeed(t *testing.T) {
	var loader RevalidatingLoader[int]
	var applied []int

	err := loader.Load(context.Background(), nil,
		func(ctx context.Context) (int, error) { return 42, nil },
		func(v int) { applied = append(applied, v) })

	require.NoError(t, err)
	assert.Equal(t, []int{42}, applied)
}

func TestLoadReturnsFetchError(t *testing.T) {
	var loader RevalidatingLoader[string]
	var applied []string

	seed := "stale"
	boom := errors.New("backend down")
	err := loader.Load(context.Background(), &seed,
		func(ctx context.Context) (string, error) { return "", boom },
		func(v string) { applied = append(applied, v) })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"stale"}, applied, "seed stays on screen when the fetch fails")
}

func TestStaleFetchCannotOverwriteNewerLoad(t *testing.T) {
	var loader RevalidatingLoader[string]

	var mu sync.Mutex
	var current string
	apply := func(v string) {
		mu.Lock()
		current = v
		mu.Unlock()
	}

	// The first load's fetch blocks until the second load has completed.
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = loader.Load(context.Background(), nil,
			func(ctx context.Context) (string, error) {
				close(started)
				<-release
				return "old", nil
			}, apply)
	}()

	<-started
	err := loader.Load(context.Background(), nil,
		func(ctx context.Context) (string, error) { return "new", nil }, apply)
	require.NoError(t, err)

	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "new", current, "the slower, older fetch must not win")
}
