// Pacote httpapi expõe os handlers REST e traduz requisições HTTP para os serviços de enquetes e autenticação.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/marcelojr/enquetes/internal/domain"
)

// API empacota handlers HTTP ligados aos serviços e ao logger.
type API struct {
	polls  domain.VotingService
	auth   domain.AuthService
	logger *slog.Logger
}

func New(polls domain.VotingService, auth domain.AuthService, logger *slog.Logger) *API {
	return &API{polls: polls, auth: auth, logger: logger}
}

func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", a.registrar)
	mux.HandleFunc("POST /auth/login", a.entrar)
	mux.HandleFunc("GET /auth/me", a.comAtor(a.usuarioAtual))

	mux.HandleFunc("GET /polls", a.listarEnquetes)
	mux.HandleFunc("POST /polls", a.comAtor(a.criarEnquete))
	mux.HandleFunc("GET /polls/{id}", a.obterEnquete)
	mux.HandleFunc("PUT /polls/{id}", a.comAtor(a.editarEnquete))
	mux.HandleFunc("DELETE /polls/{id}", a.comAtor(a.excluirEnquete))
	mux.HandleFunc("POST /polls/{id}/vote", a.comAtor(a.votar))
}

// Handler aplica CORS e log/métricas de requisição em volta do mux já configurado.
func (a *API) Handler(mux *http.ServeMux, corsOrigem string) http.Handler {
	return cors(corsOrigem, a.registrarRequisicao(mux))
}
