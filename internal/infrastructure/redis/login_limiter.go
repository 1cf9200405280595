// Package redis guarda en Redis los contadores de intentos fallidos de login.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/b2b-portal-api/internal/application/auth"
	"github.com/jhoicas/b2b-portal-api/pkg/config"
)

var _ auth.AttemptLimiter = (*LoginLimiter)(nil)

const keyPrefix = "b2b:login:failures:"

// NewClient crea el cliente y comprueba conectividad.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// LoginLimiter ventana fija por identificador: max fallos dentro de window.
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewLoginLimiter construye el limitador.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, max: int64(max), window: window}
}

// Allow indica si el identificador aún puede intentar login.
func (l *LoginLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	n, err := l.client.Get(ctx, failureKey(identifier)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	return n < l.max, nil
}

// recordFailure INCR y caducidad en un solo paso atómico. Un contador sin TTL
// (PTTL < 0) recibe la ventana aunque no sea el primer fallo.
var recordFailure = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 or redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RecordFailure suma un fallo; la ventana empieza con el primero.
func (l *LoginLimiter) RecordFailure(ctx context.Context, identifier string) error {
	err := recordFailure.Run(ctx, l.client, []string{failureKey(identifier)}, l.window.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("redis record failure: %w", err)
	}
	return nil
}

// Reset borra el contador tras un login correcto.
func (l *LoginLimiter) Reset(ctx context.Context, identifier string) error {
	if err := l.client.Del(ctx, failureKey(identifier)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// failureKey no guarda el email ni el móvil en claro.
func failureKey(identifier string) string {
	sum := sha256.Sum256([]byte(identifier))
	return keyPrefix + hex.EncodeToString(sum[:])
}
