package httpapi

import (
	"net/http"

	"github.com/marcelojr/enquetes/internal/domain"
	"github.com/marcelojr/enquetes/internal/platform/metrics"
)

func (a *API) registrar(w http.ResponseWriter, r *http.Request) {
	var req registroRequest
	if err := decodificar(w, r, &req); err != nil {
		responderErro(w, err)
		return
	}

	sessao, err := a.auth.Registrar(r.Context(), domain.Cadastro{
		Email:            req.Email,
		Username:         req.Username,
		Senha:            req.Password,
		ConfirmacaoSenha: req.ConfirmPassword,
	})
	if err != nil {
		a.registrarFalha("falha ao cadastrar usuario", err)
		responderErro(w, err)
		return
	}

	a.logger.Info("usuario cadastrado", "usuario", sessao.Usuario.ID)
	responderSucesso(w, http.StatusCreated, paraUsuarioResponse(sessao.Usuario, sessao.Token), "cadastro realizado")
}

func (a *API) entrar(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodificar(w, r, &req); err != nil {
		metrics.ObserveLoginAttempt(statusFromError(err))
		responderErro(w, err)
		return
	}

	sessao, err := a.auth.Entrar(r.Context(), domain.Credenciais{
		Email: req.Email,
		Senha: req.Password,
		IP:    clientIP(r),
	})
	metrics.ObserveLoginAttempt(statusFromError(err))
	if err != nil {
		a.registrarFalha("falha no login", err, "ip", clientIP(r))
		responderErro(w, err)
		return
	}

	responderSucesso(w, http.StatusOK, paraUsuarioResponse(sessao.Usuario, sessao.Token), "login realizado")
}

func (a *API) usuarioAtual(w http.ResponseWriter, r *http.Request) {
	usuario, ok := usuarioDe(r.Context())
	if !ok {
		responderErro(w, domain.ErrNaoAutenticado)
		return
	}
	responderSucesso(w, http.StatusOK, paraUsuarioResponse(usuario, ""), "")
}

// registrarFalha usa Error só para falhas inesperadas; erros de regra de negócio vão em Warn.
func (a *API) registrarFalha(msg string, err error, args ...any) {
	args = append(args, "err", err)
	if statusHTTP(err) == http.StatusInternalServerError {
		a.logger.Error(msg, args...)
		return
	}
	a.logger.Warn(msg, args...)
}
