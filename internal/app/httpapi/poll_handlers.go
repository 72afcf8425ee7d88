package httpapi

import (
	"net/http"
	"strconv"

	"github.com/marcelojr/enquetes/internal/app/voting"
	"github.com/marcelojr/enquetes/internal/domain"
	"github.com/marcelojr/enquetes/internal/platform/ids"
	"github.com/marcelojr/enquetes/internal/platform/metrics"
)

func (a *API) listarEnquetes(w http.ResponseWriter, r *http.Request) {
	filtro, err := filtroDaQuery(r)
	if err != nil {
		metrics.ObservePollOperation("list", statusFromError(err))
		responderErro(w, err)
		return
	}

	pagina, err := a.polls.ListarEnquetes(r.Context(), filtro)
	metrics.ObservePollOperation("list", statusFromError(err))
	if err != nil {
		a.registrarFalha("erro ao listar enquetes", err)
		responderErro(w, err)
		return
	}

	itens := make([]enqueteResponse, len(pagina.Itens))
	for i, e := range pagina.Itens {
		itens[i] = paraEnqueteResponse(e)
	}
	responderJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    itens,
		Meta: &paginacaoMeta{
			Page:       pagina.Pagina,
			Limit:      pagina.Limite,
			Total:      pagina.Total,
			TotalPages: pagina.TotalPaginas,
		},
	})
}

func (a *API) criarEnquete(w http.ResponseWriter, r *http.Request) {
	var req criarEnqueteRequest
	if err := decodificar(w, r, &req); err != nil {
		metrics.ObservePollOperation("create", statusFromError(err))
		responderErro(w, err)
		return
	}

	enquete, err := a.polls.CriarEnquete(r.Context(), domain.NovaEnquete{
		Titulo:           req.Title,
		Descricao:        req.Description,
		Opcoes:           req.Options,
		PermiteMultiplos: req.AllowMultipleVotes,
		ExpiraEm:         req.ExpiresAt,
	}, atorDe(r.Context()))
	metrics.ObservePollOperation("create", statusFromError(err))
	if err != nil {
		a.registrarFalha("falha ao criar enquete", err)
		responderErro(w, err)
		return
	}

	a.logger.Info("enquete criada", "enquete", enquete.ID, "opcoes", len(enquete.Opcoes))
	responderSucesso(w, http.StatusCreated, paraEnqueteResponse(enquete), "enquete criada")
}

func (a *API) obterEnquete(w http.ResponseWriter, r *http.Request) {
	id, ok := enqueteDaRota(r)
	if !ok {
		responderErro(w, voting.ErrEnqueteNaoEncontrada)
		return
	}

	enquete, err := a.polls.ObterEnquete(r.Context(), id)
	if err != nil {
		a.registrarFalha("erro ao obter enquete", err, "enquete", id)
		responderErro(w, err)
		return
	}

	responderSucesso(w, http.StatusOK, paraEnqueteResponse(enquete), "")
}

func (a *API) editarEnquete(w http.ResponseWriter, r *http.Request) {
	id, ok := enqueteDaRota(r)
	if !ok {
		responderErro(w, voting.ErrEnqueteNaoEncontrada)
		return
	}

	var req editarEnqueteRequest
	if err := decodificar(w, r, &req); err != nil {
		metrics.ObservePollOperation("update", statusFromError(err))
		responderErro(w, err)
		return
	}

	enquete, err := a.polls.EditarEnquete(r.Context(), id, domain.EdicaoEnquete{
		Titulo:   req.Title,
		ExpiraEm: req.ExpiresAt,
	}, atorDe(r.Context()))
	metrics.ObservePollOperation("update", statusFromError(err))
	if err != nil {
		a.registrarFalha("falha ao editar enquete", err, "enquete", id)
		responderErro(w, err)
		return
	}

	responderSucesso(w, http.StatusOK, paraEnqueteResponse(enquete), "enquete atualizada")
}

func (a *API) excluirEnquete(w http.ResponseWriter, r *http.Request) {
	id, ok := enqueteDaRota(r)
	if !ok {
		responderErro(w, voting.ErrEnqueteNaoEncontrada)
		return
	}

	err := a.polls.ExcluirEnquete(r.Context(), id, atorDe(r.Context()))
	metrics.ObservePollOperation("delete", statusFromError(err))
	if err != nil {
		a.registrarFalha("falha ao excluir enquete", err, "enquete", id)
		responderErro(w, err)
		return
	}

	a.logger.Info("enquete excluida", "enquete", id)
	responderSucesso(w, http.StatusOK, nil, "enquete excluida")
}

func (a *API) votar(w http.ResponseWriter, r *http.Request) {
	id, ok := enqueteDaRota(r)
	if !ok {
		metrics.ObserveVoteRequest("not_found")
		responderErro(w, voting.ErrEnqueteNaoEncontrada)
		return
	}

	var req votoRequest
	if err := decodificar(w, r, &req); err != nil {
		metrics.ObserveVoteRequest("invalid_payload")
		a.logger.Warn("payload invalido ao registrar voto", "err", err)
		responderErro(w, err)
		return
	}

	voto, err := a.polls.RegistrarVoto(r.Context(), domain.NovoVoto{
		EnqueteID: id,
		OpcaoID:   domain.OpcaoID(req.OptionID),
		EleitorID: atorDe(r.Context()),
	})
	if err != nil {
		status := statusFromError(err)
		metrics.ObserveVoteRequest(status)
		a.registrarFalha("falha ao registrar voto", err, "enquete", id, "opcao", req.OptionID, "status", status)
		responderErro(w, err)
		return
	}

	metrics.ObserveVoteRequest("accepted")
	a.logger.Info("voto registrado", "enquete", id, "opcao", req.OptionID)
	responderSucesso(w, http.StatusCreated, votoResponse{
		VoteID:   string(voto.ID),
		PollID:   string(voto.EnqueteID),
		OptionID: string(voto.OpcaoID),
	}, "voto registrado")
}

// enqueteDaRota rejeita IDs que não são ULID sem consultar o banco.
func enqueteDaRota(r *http.Request) (domain.EnqueteID, bool) {
	id := r.PathValue("id")
	if !ids.Valido(id) {
		return "", false
	}
	return domain.EnqueteID(id), true
}

func filtroDaQuery(r *http.Request) (domain.FiltroEnquetes, error) {
	q := r.URL.Query()
	erros := &domain.ErroValidacao{}

	filtro := domain.FiltroEnquetes{
		Busca:      q.Get("search"),
		CriadorID:  domain.UsuarioID(q.Get("creatorId")),
		OrdenarPor: domain.CampoOrdenacao(q.Get("sortBy")),
		Direcao:    domain.Direcao(q.Get("sortOrder")),
	}

	if v := q.Get("isActive"); v != "" {
		ativa, err := strconv.ParseBool(v)
		if err != nil {
			erros.Adicionar("isActive", "deve ser true ou false")
		} else {
			filtro.Ativa = &ativa
		}
	}

	filtro.Pagina = inteiroPositivo(q.Get("page"), "page", erros)
	filtro.Limite = inteiroPositivo(q.Get("limit"), "limit", erros)

	if err := erros.Err(); err != nil {
		return domain.FiltroEnquetes{}, err
	}
	return filtro, nil
}

// inteiroPositivo devolve 0 quando o parâmetro não veio, deixando o padrão para a camada de consulta.
func inteiroPositivo(valor, campo string, erros *domain.ErroValidacao) int {
	if valor == "" {
		return 0
	}
	n, err := strconv.Atoi(valor)
	if err != nil || n < 1 {
		erros.Adicionar(campo, "deve ser um inteiro maior ou igual a 1")
		return 0
	}
	return n
}
