package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ShareIt-BookingService/internal/integrations/itemservice"
	"github.com/m04kA/ShareIt-BookingService/internal/integrations/userservice"
)

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

type userClientStub struct {
	calls int
	user  *userservice.User
	err   error
}

func (s *userClientStub) GetUser(ctx context.Context, userID int64) (*userservice.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type itemClientStub struct {
	calls int
	item  *itemservice.Item
	err   error
}

func (s *itemClientStub) GetItem(ctx context.Context, itemID, requesterID int64) (*itemservice.Item, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.item, nil
}

func newTestCache(t *testing.T) (*LookupCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := NewClient(srv.Addr(), "", 0, 1)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, Ping(context.Background(), client))

	return NewLookupCache(client, time.Minute, &noopLogger{}), srv
}

func TestCachedUserClient_SecondReadHitsCache(t *testing.T) {
	cache, _ := newTestCache(t)
	inner := &userClientStub{user: &userservice.User{ID: 7, Name: "Ivan", Email: "ivan@example.com"}}
	client := NewCachedUserClient(inner, cache)

	first, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	second, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second read must be served from cache")
	assert.Equal(t, first, second)
}

func TestCachedUserClient_NotFoundIsNotCached(t *testing.T) {
	cache, _ := newTestCache(t)
	inner := &userClientStub{err: userservice.ErrUserNotFound}
	client := NewCachedUserClient(inner, cache)

	_, err := client.GetUser(context.Background(), 7)
	assert.ErrorIs(t, err, userservice.ErrUserNotFound)

	_, err = client.GetUser(context.Background(), 7)
	assert.ErrorIs(t, err, userservice.ErrUserNotFound)
	assert.Equal(t, 2, inner.calls, "negative results go to the client every time")
}

func TestCachedUserClient_ExpiredEntryRefetches(t *testing.T) {
	cache, srv := newTestCache(t)
	inner := &userClientStub{user: &userservice.User{ID: 7, Name: "Ivan"}}
	client := NewCachedUserClient(inner, cache)

	_, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)

	srv.FastForward(2 * time.Minute)

	_, err = client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedItemClient_SecondReadHitsCache(t *testing.T) {
	cache, _ := newTestCache(t)
	inner := &itemClientStub{item: &itemservice.Item{ID: 5, OwnerID: 2, Name: "дрель", Available: true}}
	client := NewCachedItemClient(inner, cache)

	first, err := client.GetItem(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	second, err := client.GetItem(context.Background(), 5, 99)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "cache key does not depend on requester")
	assert.Equal(t, first, second)
}

func TestCachedItemClient_ErrorsPassThrough(t *testing.T) {
	cache, _ := newTestCache(t)
	innerErr := errors.New("item service down")
	inner := &itemClientStub{err: innerErr}
	client := NewCachedItemClient(inner, cache)

	_, err := client.GetItem(context.Background(), 5, 1)
	assert.ErrorIs(t, err, innerErr)
}

func TestCacheDegradesWhenRedisIsDown(t *testing.T) {
	cache, srv := newTestCache(t)
	inner := &userClientStub{user: &userservice.User{ID: 7, Name: "Ivan"}}
	client := NewCachedUserClient(inner, cache)

	srv.Close()

	// ошибки Redis не фатальны, чтение идет напрямую в клиента
	user, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, 1, inner.calls)
}
