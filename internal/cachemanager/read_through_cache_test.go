package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/charcode/internal/mocks"
)

type lookup struct {
	Units string
}

func countingLoader(calls *int) func(context.Context, lookup) (string, error) {
	return func(_ context.Context, in lookup) (string, error) {
		*calls++
		return "status " + in.Units, nil
	}
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, string](t)
	calls := 0

	rtc := NewReadThroughCache[string, string, lookup](managerMock, countingLoader(&calls), true)

	value, hit, err := rtc.Get(context.Background(), "key", lookup{Units: "0041"}, time.Minute)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, "status 0041", value)
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_Get_Hit(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, string](t)
	managerMock.EXPECT().Get(mock.Anything, "key").Return("cached", true)
	calls := 0

	rtc := NewReadThroughCache[string, string, lookup](managerMock, countingLoader(&calls), false)

	value, hit, err := rtc.Get(context.Background(), "key", lookup{Units: "0041"}, time.Minute)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "cached", value)
	require.Zero(t, calls)
}

func TestReadThroughCache_Get_MissStores(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, string](t)
	managerMock.EXPECT().Get(mock.Anything, "key").Return("", false)
	managerMock.EXPECT().Set(mock.Anything, "key", "status 0041", time.Minute).Return()
	calls := 0

	rtc := NewReadThroughCache[string, string, lookup](managerMock, countingLoader(&calls), false)

	value, hit, err := rtc.Get(context.Background(), "key", lookup{Units: "0041"}, time.Minute)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, "status 0041", value)
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_Get_ErrorNotStored(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, string](t)
	managerMock.EXPECT().Get(mock.Anything, "key").Return("", false)
	boom := errors.New("boom")

	rtc := NewReadThroughCache[string, string, lookup](managerMock, func(context.Context, lookup) (string, error) {
		return "", boom
	}, false)

	_, _, err := rtc.Get(context.Background(), "key", lookup{}, time.Minute)
	require.ErrorIs(t, err, boom)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_GetWithRefresh(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, string](t)
	managerMock.EXPECT().GetWithRefresh(mock.Anything, "hit", time.Minute).Return("cached", true)
	managerMock.EXPECT().GetWithRefresh(mock.Anything, "miss", time.Minute).Return("", false)
	managerMock.EXPECT().Set(mock.Anything, "miss", "status 00E9", time.Minute).Return()
	calls := 0

	rtc := NewReadThroughCache[string, string, lookup](managerMock, countingLoader(&calls), false)

	value, hit, err := rtc.GetWithRefresh(context.Background(), "hit", lookup{}, time.Minute)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "cached", value)

	value, hit, err = rtc.GetWithRefresh(context.Background(), "miss", lookup{Units: "00E9"}, time.Minute)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, "status 00E9", value)
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_WithInMemoryManager(t *testing.T) {
	calls := 0
	rtc := NewReadThroughCache[string, string, lookup](
		NewInMemoryCacheManager[string, string]("status", DefaultExpiration, DefaultCleanupInterval),
		countingLoader(&calls),
		false,
	)
	ctx := context.Background()

	for range 3 {
		value, _, err := rtc.Get(ctx, "UNICODE:0041", lookup{Units: "0041"}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, "status 0041", value)
	}
	require.Equal(t, 1, calls)

	require.NoError(t, rtc.Flush(ctx))
	_, hit, err := rtc.Get(ctx, "UNICODE:0041", lookup{Units: "0041"}, time.Minute)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 2, calls)
}

func TestReadThroughCache_Stats(t *testing.T) {
	boom := errors.New("boom")
	fail := false
	rtc := NewReadThroughCache[string, string, lookup](
		NewInMemoryCacheManager[string, string]("status", DefaultExpiration, DefaultCleanupInterval),
		func(_ context.Context, in lookup) (string, error) {
			if fail {
				return "", boom
			}
			return "status " + in.Units, nil
		},
		false,
	)
	ctx := context.Background()

	_, _, _ = rtc.Get(ctx, "a", lookup{Units: "0061"}, time.Minute)
	_, _, _ = rtc.GetWithRefresh(ctx, "a", lookup{Units: "0061"}, time.Minute)
	fail = true
	_, _, err := rtc.Get(ctx, "b", lookup{Units: "0062"}, time.Minute)
	require.ErrorIs(t, err, boom)

	require.Equal(t, Stats{Hits: 1, Misses: 2, Failures: 1}, rtc.Stats())

	require.NoError(t, rtc.Flush(ctx))
	require.Equal(t, uint64(1), rtc.Stats().Hits, "flush keeps counters")
}

func TestReadThroughCache_NilManagerBypasses(t *testing.T) {
	calls := 0
	rtc := NewReadThroughCache[string, string, lookup](nil, countingLoader(&calls), false)

	for range 2 {
		_, hit, err := rtc.Get(context.Background(), "k", lookup{}, time.Minute)
		require.NoError(t, err)
		require.False(t, hit)
	}
	require.Equal(t, 2, calls)
	require.NoError(t, rtc.Flush(context.Background()))
}
