// Pacote health expõe as sondas de liveness e readiness usadas pelo orquestrador.
package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statusOK           = "ok"
	statusIndisponivel = "unavailable"
)

type Checker struct {
	db    *sql.DB
	redis *redis.Client
}

// NewChecker aceita dependências nulas; o que não foi configurado simplesmente não é checado.
func NewChecker(db *sql.DB, redis *redis.Client) *Checker {
	return &Checker{db: db, redis: redis}
}

type resposta struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveHandler responde 200 enquanto o processo estiver servindo requisições.
func (c *Checker) LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		escrever(w, http.StatusOK, resposta{Status: statusOK})
	}
}

// ReadyHandler pinga banco e Redis e informa o estado de cada um; qualquer falha devolve 503.
func (c *Checker) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		res := c.verificar(ctx)
		code := http.StatusOK
		if res.Status != statusOK {
			code = http.StatusServiceUnavailable
		}
		escrever(w, code, res)
	}
}

func (c *Checker) verificar(ctx context.Context) resposta {
	res := resposta{Status: statusOK, Checks: map[string]string{}}

	if c.db != nil {
		res.Checks["database"] = statusOK
		if err := c.db.PingContext(ctx); err != nil {
			res.Checks["database"] = statusIndisponivel
			res.Status = statusIndisponivel
		}
	}

	if c.redis != nil {
		res.Checks["redis"] = statusOK
		if err := c.redis.Ping(ctx).Err(); err != nil {
			res.Checks["redis"] = statusIndisponivel
			res.Status = statusIndisponivel
		}
	}

	return res
}

func escrever(w http.ResponseWriter, code int, res resposta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(res)
}
