package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/marcelojr/enquetes/internal/app/auth"
	"github.com/marcelojr/enquetes/internal/domain"
	"github.com/marcelojr/enquetes/internal/platform/metrics"
)

type usuarioCtxKey struct{}

func cors(origem string, next http.Handler) http.Handler {
	if origem == "" {
		origem = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origem)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if origem != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// registrarRequisicao loga e mede cada requisição. A rota vem do padrão casado pelo ServeMux, o que
// mantém a cardinalidade das métricas baixa.
func (a *API) registrarRequisicao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duracao := time.Since(inicio)
		rota := r.Pattern
		if rota == "" {
			rota = "nao_encontrada"
		}
		metrics.ObserveHTTPRequest(rota, r.Method, rec.status, duracao.Seconds())
		a.logger.Info("requisicao http",
			"metodo", r.Method,
			"caminho", r.URL.Path,
			"status", rec.status,
			"duracao_ms", duracao.Milliseconds(),
		)
	})
}

// comAtor resolve o token Bearer. Sem cabeçalho a requisição segue anônima; token presente e inválido
// encerra com 401.
func (a *API) comAtor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cabecalho := r.Header.Get("Authorization")
		if cabecalho == "" {
			next(w, r)
			return
		}

		esquema, token, ok := strings.Cut(cabecalho, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(esquema, "Bearer") || token == "" {
			responderErro(w, auth.ErrTokenInvalido)
			return
		}

		usuario, err := a.auth.Autenticar(r.Context(), token)
		if err != nil {
			if statusHTTP(err) == http.StatusInternalServerError {
				a.logger.Error("erro ao autenticar token", "err", err)
			}
			responderErro(w, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), usuarioCtxKey{}, usuario)))
	}
}

func usuarioDe(ctx context.Context) (domain.Usuario, bool) {
	u, ok := ctx.Value(usuarioCtxKey{}).(domain.Usuario)
	return u, ok
}

// atorDe devolve nil para requisições anônimas.
func atorDe(ctx context.Context) *domain.UsuarioID {
	u, ok := usuarioDe(ctx)
	if !ok {
		return nil
	}
	id := u.ID
	return &id
}

// clientIP considera X-Forwarded-For e X-Real-IP antes do endereço da conexão.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		primeiro, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(primeiro); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
