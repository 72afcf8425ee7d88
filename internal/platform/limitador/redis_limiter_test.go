package limitador

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisRateLimiterRespectsLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisRateLimiter(client, 2, time.Minute, "rl")
	chave := ChaveLogin("ana@example.com", "200.1.1.1")

	ctx := context.Background()
	if err := limiter.Permitir(ctx, chave); err != nil {
		t.Fatalf("primeira tentativa deveria ser aceita, erro: %v", err)
	}
	if err := limiter.Permitir(ctx, chave); err != nil {
		t.Fatalf("segunda tentativa deveria ser aceita, erro: %v", err)
	}

	if err := limiter.Permitir(ctx, chave); !errors.Is(err, ErrLimiteExcedido) {
		t.Fatalf("terceira tentativa deveria ser bloqueada, recebeu: %v", err)
	}

	key := limiter.buildKey(chave)
	if ttl := mr.TTL(key); ttl <= 0 {
		t.Fatalf("esperava TTL positivo para %s, veio %v", key, ttl)
	}
}

func TestRedisRateLimiterResetsAfterWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	window := 30 * time.Second
	limiter := NewRedisRateLimiter(client, 1, window, "rl")
	chave := ChaveLogin("bia@example.com", "200.2.2.2")

	ctx := context.Background()
	if err := limiter.Permitir(ctx, chave); err != nil {
		t.Fatalf("tentativa inicial deveria ser aceita: %v", err)
	}
	if err := limiter.Permitir(ctx, chave); !errors.Is(err, ErrLimiteExcedido) {
		t.Fatalf("segunda tentativa antes da janela deveria falhar: %v", err)
	}

	mr.FastForward(window + time.Second)

	if err := limiter.Permitir(ctx, chave); err != nil {
		t.Fatalf("apos expirar janela, tentativa deveria ser aceita: %v", err)
	}
}

func TestRedisRateLimiterChavesIndependentes(t *testing.T) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisRateLimiter(client, 1, time.Minute, "")

	ctx := context.Background()
	if err := limiter.Permitir(ctx, ChaveLogin("Ana@Example.com", "10.0.0.1")); err != nil {
		t.Fatalf("primeira chave deveria ser aceita: %v", err)
	}
	if err := limiter.Permitir(ctx, ChaveLogin("ana@example.com", "10.0.0.2")); err != nil {
		t.Fatalf("mesmo email com outro IP deveria ser aceito: %v", err)
	}
	if err := limiter.Permitir(ctx, ChaveLogin("ANA@example.com ", "10.0.0.1")); !errors.Is(err, ErrLimiteExcedido) {
		t.Fatalf("email com outra caixa deveria contar na mesma chave, veio %v", err)
	}
}

func TestRedisRateLimiterSemClienteEhPermissivo(t *testing.T) {
	limiter := NewRedisRateLimiter(nil, 1, time.Minute, "rl")

	for range 5 {
		if err := limiter.Permitir(context.Background(), "qualquer"); err != nil {
			t.Fatalf("limitador sem cliente deveria aceitar tudo: %v", err)
		}
	}
	if err := NewNoop().Permitir(context.Background(), "qualquer"); err != nil {
		t.Fatalf("noop deveria aceitar: %v", err)
	}
}
