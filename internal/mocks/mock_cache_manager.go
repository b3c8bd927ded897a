// Package mocks holds testify mocks for internal interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock of cachemanager.CacheManager.
type MockCacheManager[K comparable, V any] struct {
	mock.Mock
}

// NewMockCacheManager creates a mock and asserts its expectations on cleanup.
func NewMockCacheManager[K comparable, V any](t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCacheManager[K, V] {
	m := &MockCacheManager[K, V]{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockCacheManagerExpecter records typed expectations.
type MockCacheManagerExpecter[K comparable, V any] struct {
	mock *mock.Mock
}

func (_m *MockCacheManager[K, V]) EXPECT() *MockCacheManagerExpecter[K, V] {
	return &MockCacheManagerExpecter[K, V]{mock: &_m.Mock}
}

func (_m *MockCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	ret := _m.MethodCalled("Get", ctx, key)
	r0, _ := ret.Get(0).(V)
	return r0, ret.Bool(1)
}

func (_m *MockCacheManager[K, V]) GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	ret := _m.MethodCalled("GetWithRefresh", ctx, key, ttl)
	r0, _ := ret.Get(0).(V)
	return r0, ret.Bool(1)
}

func (_m *MockCacheManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	_m.MethodCalled("Set", ctx, key, value, ttl)
}

func (_m *MockCacheManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	args := []any{ctx}
	for _, k := range keys {
		args = append(args, k)
	}
	return _m.MethodCalled("Delete", args...).Error(0)
}

func (_m *MockCacheManager[K, V]) Flush(ctx context.Context) error {
	return _m.MethodCalled("Flush", ctx).Error(0)
}

// MockCacheManagerGetCall wraps a Get expectation.
type MockCacheManagerGetCall[V any] struct {
	*mock.Call
}

func (_c *MockCacheManagerGetCall[V]) Return(value V, ok bool) *MockCacheManagerGetCall[V] {
	_c.Call.Return(value, ok)
	return _c
}

func (_e *MockCacheManagerExpecter[K, V]) Get(ctx any, key any) *MockCacheManagerGetCall[V] {
	return &MockCacheManagerGetCall[V]{Call: _e.mock.On("Get", ctx, key)}
}

func (_e *MockCacheManagerExpecter[K, V]) GetWithRefresh(ctx any, key any, ttl any) *MockCacheManagerGetCall[V] {
	return &MockCacheManagerGetCall[V]{Call: _e.mock.On("GetWithRefresh", ctx, key, ttl)}
}

// MockCacheManagerSetCall wraps a Set expectation.
type MockCacheManagerSetCall struct {
	*mock.Call
}

func (_c *MockCacheManagerSetCall) Return() *MockCacheManagerSetCall {
	_c.Call.Return()
	return _c
}

func (_e *MockCacheManagerExpecter[K, V]) Set(ctx any, key any, value any, ttl any) *MockCacheManagerSetCall {
	return &MockCacheManagerSetCall{Call: _e.mock.On("Set", ctx, key, value, ttl)}
}

// MockCacheManagerErrorCall wraps expectations returning only an error.
type MockCacheManagerErrorCall struct {
	*mock.Call
}

func (_c *MockCacheManagerErrorCall) Return(err error) *MockCacheManagerErrorCall {
	_c.Call.Return(err)
	return _c
}

func (_e *MockCacheManagerExpecter[K, V]) Flush(ctx any) *MockCacheManagerErrorCall {
	return &MockCacheManagerErrorCall{Call: _e.mock.On("Flush", ctx)}
}
