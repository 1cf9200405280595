package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWindow = 15 * time.Minute

func newLimiter(t *testing.T, max int) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, max, testWindow), mr
}

func TestFailureKey(t *testing.T) {
	k := failureKey("alice@x.com")
	assert.True(t, strings.HasPrefix(k, keyPrefix))
	assert.NotContains(t, k, "alice")
	assert.Equal(t, k, failureKey("alice@x.com"))
	assert.NotEqual(t, k, failureKey("bob@x.com"))
}

func TestLoginLimiter_BloqueaTrasMaxFallos(t *testing.T) {
	l, _ := newLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, ok, "fallo %d aún permitido", i)
		require.NoError(t, l.RecordFailure(ctx, "a@x.com"))
	}
	ok, err := l.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, ok, "cada identificador tiene su contador")
}

func TestLoginLimiter_ResetLimpiaElContador(t *testing.T) {
	l, mr := newLimiter(t, 2)
	ctx := context.Background()
	require.NoError(t, l.RecordFailure(ctx, "a@x.com"))
	require.NoError(t, l.RecordFailure(ctx, "a@x.com"))

	require.NoError(t, l.Reset(ctx, "a@x.com"))
	assert.False(t, mr.Exists(failureKey("a@x.com")))
	ok, err := l.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, l.Reset(ctx, "nunca-fallo@x.com"), "reset sin contador no falla")
}

func TestLoginLimiter_LaVentanaCaduca(t *testing.T) {
	l, mr := newLimiter(t, 1)
	ctx := context.Background()
	require.NoError(t, l.RecordFailure(ctx, "a@x.com"))

	key := failureKey("a@x.com")
	assert.Equal(t, testWindow, mr.TTL(key))

	mr.FastForward(testWindow / 2)
	require.NoError(t, l.RecordFailure(ctx, "a@x.com"))
	assert.Equal(t, testWindow/2, mr.TTL(key), "la ventana es fija: empieza con el primer fallo")

	ok, err := l.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(testWindow / 2)
	ok, err = l.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginLimiter_ContadorSinTTLRecibeVentana(t *testing.T) {
	l, mr := newLimiter(t, 5)
	ctx := context.Background()
	key := failureKey("a@x.com")
	require.NoError(t, mr.Set(key, "3"))
	assert.Zero(t, mr.TTL(key))

	require.NoError(t, l.RecordFailure(ctx, "a@x.com"))
	assert.Equal(t, testWindow, mr.TTL(key), "un contador huérfano nunca bloquea para siempre")
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "4", got)
}

func TestLoginLimiter_ErrorDeRedisSePropaga(t *testing.T) {
	l, mr := newLimiter(t, 5)
	mr.Close()
	ctx := context.Background()

	_, err := l.Allow(ctx, "a@x.com")
	assert.Error(t, err)
	assert.Error(t, l.RecordFailure(ctx, "a@x.com"))
	assert.Error(t, l.Reset(ctx, "a@x.com"))
}
