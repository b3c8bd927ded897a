package status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/charcode/internal/cachemanager"
	"github.com/zjrosen/charcode/internal/charcode"
	"github.com/zjrosen/charcode/internal/mocks"
	"github.com/zjrosen/charcode/internal/tracing"
)

type countingResolver struct {
	inner *charcode.Resolver
	calls int
	err   error
}

func (c *countingResolver) Resolve(text charcode.CaretText, target charcode.Encoding) (charcode.Resolution, error) {
	c.calls++
	if c.err != nil {
		return charcode.Resolution{}, c.err
	}
	return c.inner.Resolve(text, target)
}

func newCountingResolver() *countingResolver {
	return &countingResolver{inner: charcode.NewResolver(charcode.NewTextConverter())}
}

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func TestCacheKey(t *testing.T) {
	require.Equal(t, Key("UTF8:D867DE3D"), CacheKey(charcode.CaretTextFromUnits(0xD867, 0xDE3D), charcode.UTF8))
	require.Equal(t, Key("SJIS:0041"), CacheKey(charcode.CaretTextFromString("A"), charcode.SJIS))
	require.Equal(t, Key("UNICODE:"), CacheKey(charcode.CaretText{}, charcode.Unicode))
}

func TestRefresh_ResolvesWithoutCache(t *testing.T) {
	resolver := newCountingResolver()
	svc := NewService(resolver)
	ctx := context.Background()

	for range 2 {
		res, err := svc.Refresh(ctx, charcode.CaretTextFromUnits(0x30DB, 0x309A), charcode.Unicode)
		require.NoError(t, err)
		require.Equal(t, "UNICODE: U+30DB U+309A (combined)", res.Status)
		require.Equal(t, charcode.StrategyCombined, res.Strategy)
	}
	require.Equal(t, 2, resolver.calls)
	require.NoError(t, svc.Flush(ctx))
}

func TestRefresh_CachesResolutions(t *testing.T) {
	resolver := newCountingResolver()
	manager := cachemanager.NewInMemoryCacheManager[Key, charcode.Resolution]("status", time.Minute, time.Minute)
	svc := NewService(resolver, WithCache(manager, time.Minute))
	ctx := context.Background()
	text := charcode.CaretTextFromString("\u9B31")

	for range 3 {
		res, err := svc.Refresh(ctx, text, charcode.EUCJP)
		require.NoError(t, err)
		require.Equal(t, "EUCJP: DDB5", res.Status)
	}
	require.Equal(t, 1, resolver.calls)

	res, err := svc.Refresh(ctx, text, charcode.SJIS)
	require.NoError(t, err)
	require.Equal(t, "SJIS: 9F54", res.Status)
	require.Equal(t, 2, resolver.calls)
	require.Equal(t, cachemanager.Stats{Hits: 2, Misses: 2}, svc.Stats())

	require.NoError(t, svc.Flush(ctx))
	_, err = svc.Refresh(ctx, text, charcode.EUCJP)
	require.NoError(t, err)
	require.Equal(t, 3, resolver.calls)
}

func TestRefresh_UsesCacheManager(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[Key, charcode.Resolution](t)
	cached := charcode.Resolution{Status: "UTF8: U+41", Strategy: charcode.StrategySingle}
	managerMock.EXPECT().GetWithRefresh(mock.Anything, Key("UTF8:0041"), time.Hour).Return(cached, true)

	resolver := newCountingResolver()
	svc := NewService(resolver, WithCache(managerMock, time.Hour))

	res, err := svc.Refresh(context.Background(), charcode.CaretTextFromString("A"), charcode.UTF8)
	require.NoError(t, err)
	require.Equal(t, cached, res)
	require.Zero(t, resolver.calls)
}

func TestRefresh_EmptyText(t *testing.T) {
	recorder, tp := newRecorder()
	resolver := newCountingResolver()
	svc := NewService(resolver, WithTracer(tp.Tracer("test")))

	res, err := svc.Refresh(context.Background(), charcode.CaretText{}, charcode.UTF8)
	require.NoError(t, err)
	require.True(t, res.Empty())
	require.Zero(t, resolver.calls)
	require.Empty(t, recorder.Ended())
}

func TestRefresh_RecordsSpan(t *testing.T) {
	recorder, tp := newRecorder()
	manager := cachemanager.NewInMemoryCacheManager[Key, charcode.Resolution]("status", time.Minute, time.Minute)
	svc := NewService(newCountingResolver(), WithCache(manager, time.Minute), WithTracer(tp.Tracer("test")))
	text := charcode.CaretTextFromUnits(0xD867, 0xDE3D)

	for range 2 {
		_, err := svc.Refresh(context.Background(), text, charcode.UTF8)
		require.NoError(t, err)
	}

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	for i, span := range ended {
		require.Equal(t, tracing.SpanStatusRefresh, span.Name())
		attrs := span.Attributes()
		require.Contains(t, attrs, attribute.String(tracing.AttrEncoding, "UTF8"))
		require.Contains(t, attrs, attribute.String(tracing.AttrCaretUnits, "UTF8:D867DE3D"))
		require.Contains(t, attrs, attribute.Int(tracing.AttrCaretLen, 2))
		require.Contains(t, attrs, attribute.String(tracing.AttrStrategy, charcode.StrategySurrogate))
		require.Contains(t, attrs, attribute.Bool(tracing.AttrCacheHit, i == 1))
	}
}

func TestRefresh_Error(t *testing.T) {
	recorder, tp := newRecorder()
	resolver := newCountingResolver()
	resolver.err = charcode.ErrUnsupportedEncoding
	svc := NewService(resolver, WithTracer(tp.Tracer("test")))

	res, err := svc.Refresh(context.Background(), charcode.CaretTextFromString("A"), charcode.UTF8)
	require.ErrorIs(t, err, charcode.ErrUnsupportedEncoding)
	require.True(t, res.Empty())

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestNewDefaultService(t *testing.T) {
	svc := NewDefaultService(time.Minute, nil)
	res, err := svc.Refresh(context.Background(), charcode.CaretTextFromString("\u30DD"), charcode.SJIS)
	require.NoError(t, err)
	require.Equal(t, "SJIS: 837C", res.Status)

	uncached := NewDefaultService(0, nil)
	require.Nil(t, uncached.manager)
	require.NoError(t, uncached.Flush(context.Background()))
}
