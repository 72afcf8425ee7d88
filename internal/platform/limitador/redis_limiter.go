// Pacote limitador controla tentativas repetidas por chave em janelas fixas (Redis ou modo noop).
package limitador

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcelojr/enquetes/internal/domain"
)

var ErrLimiteExcedido = errors.New("muitas tentativas, aguarde antes de tentar novamente")

// RedisRateLimiter conta tentativas por chave numa janela fixa usando INCR + EXPIRE.
type RedisRateLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisRateLimiter {
	if prefix == "" {
		prefix = "login"
	}
	return &RedisRateLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: prefix,
	}
}

func (r *RedisRateLimiter) Permitir(ctx context.Context, chave string) error {
	if r.client == nil || r.limit <= 0 || r.window <= 0 {
		// Configurações inválidas caem automaticamente no modo permissivo.
		return nil
	}

	key := r.buildKey(chave)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("limitador: falha ao incrementar chave: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return fmt.Errorf("limitador: falha ao definir expiracao: %w", err)
		}
	}

	if int(count) > r.limit {
		return ErrLimiteExcedido
	}

	return nil
}

// ChaveLogin combina email e IP de origem; o email entra normalizado para não contornar o limite pela caixa.
func ChaveLogin(email, ip string) string {
	return strings.ToLower(strings.TrimSpace(email)) + "|" + ip
}

func (r *RedisRateLimiter) buildKey(chave string) string {
	// Hash SHA-1 evita gravar email e IP em texto puro no Redis.
	hash := sha1.Sum([]byte(chave))
	return fmt.Sprintf("%s:%s", r.keyPrefix, hex.EncodeToString(hash[:]))
}

var _ domain.Limitador = (*RedisRateLimiter)(nil)
