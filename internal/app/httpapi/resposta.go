package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marcelojr/enquetes/internal/app/auth"
	"github.com/marcelojr/enquetes/internal/app/voting"
	"github.com/marcelojr/enquetes/internal/domain"
	"github.com/marcelojr/enquetes/internal/platform/limitador"
)

var errPayloadInvalido = errors.New("payload invalido")

const mensagemErroInterno = "erro interno, tente novamente mais tarde"

type envelope struct {
	Success bool                   `json:"success"`
	Data    any                    `json:"data,omitempty"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Errors  []domain.CampoInvalido `json:"errors,omitempty"`
	Meta    *paginacaoMeta         `json:"meta,omitempty"`
}

type paginacaoMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func responderJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func responderSucesso(w http.ResponseWriter, status int, data any, mensagem string) {
	responderJSON(w, status, envelope{Success: true, Data: data, Message: mensagem})
}

// responderErro é o único ponto que traduz erros de domínio em status HTTP. Erros não mapeados viram 500
// com mensagem genérica; o detalhe fica só no log.
func responderErro(w http.ResponseWriter, err error) {
	status := statusHTTP(err)
	body := envelope{Success: false, Error: err.Error()}

	var erroValidacao *domain.ErroValidacao
	if errors.As(err, &erroValidacao) {
		body.Error = domain.ErrValidacao.Error()
		body.Errors = erroValidacao.Campos
	}
	if status == http.StatusInternalServerError {
		body.Error = mensagemErroInterno
	}

	responderJSON(w, status, body)
}

func statusHTTP(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidacao),
		errors.Is(err, errPayloadInvalido),
		errors.Is(err, voting.ErrEnqueteExpirada),
		errors.Is(err, voting.ErrEnqueteInativa),
		errors.Is(err, voting.ErrVotoDuplicado),
		errors.Is(err, voting.ErrOpcaoInvalida):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNaoAutenticado),
		errors.Is(err, auth.ErrTokenInvalido),
		errors.Is(err, auth.ErrCredenciaisInvalidas):
		return http.StatusUnauthorized
	case errors.Is(err, voting.ErrSemPermissao):
		return http.StatusForbidden
	case errors.Is(err, voting.ErrEnqueteNaoEncontrada),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrEmailEmUso):
		return http.StatusConflict
	case errors.Is(err, limitador.ErrLimiteExcedido):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// statusFromError rotula o resultado para as métricas.
func statusFromError(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, limitador.ErrLimiteExcedido):
		return "rate_limited"
	case errors.Is(err, voting.ErrEnqueteExpirada):
		return "expired"
	case errors.Is(err, voting.ErrEnqueteInativa):
		return "inactive"
	case errors.Is(err, voting.ErrVotoDuplicado):
		return "duplicate"
	case errors.Is(err, voting.ErrOpcaoInvalida):
		return "invalid_option"
	case errors.Is(err, voting.ErrEnqueteNaoEncontrada):
		return "not_found"
	case errors.Is(err, voting.ErrSemPermissao):
		return "forbidden"
	case errors.Is(err, domain.ErrNaoAutenticado),
		errors.Is(err, auth.ErrTokenInvalido),
		errors.Is(err, auth.ErrCredenciaisInvalidas):
		return "unauthenticated"
	case errors.Is(err, auth.ErrEmailEmUso):
		return "conflict"
	case errors.Is(err, domain.ErrValidacao), errors.Is(err, errPayloadInvalido):
		return "invalid"
	default:
		return "error"
	}
}
