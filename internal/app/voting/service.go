// Pacote voting implementa as regras de negócio das enquetes: criação, edição, consulta, votação e apuração.
package voting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marcelojr/enquetes/internal/domain"
	"github.com/marcelojr/enquetes/internal/platform/ids"
	"github.com/marcelojr/enquetes/internal/platform/metrics"
)

var (
	ErrEnqueteNaoEncontrada = errors.New("enquete nao encontrada")
	ErrEnqueteExpirada      = errors.New("enquete expirada")
	ErrEnqueteInativa       = errors.New("enquete inativa")
	ErrOpcaoInvalida        = errors.New("opcao invalida para esta enquete")
	ErrVotoDuplicado        = errors.New("voto ja registrado nesta enquete")
	ErrSemPermissao         = errors.New("apenas o criador pode alterar a enquete")
)

// Politica define o que usuários anônimos podem fazer.
type Politica struct {
	EnquetesAnonimas bool
	VotosAnonimos    bool
}

// Service concentra as regras das enquetes e delega acesso aos repositórios.
type Service struct {
	enquetes domain.EnqueteRepository
	opcoes   domain.OpcaoRepository
	votos    domain.VotoRepository
	clock    domain.Clock
	ids      *ids.Generator
	politica Politica
}

func NewService(
	enquetes domain.EnqueteRepository,
	opcoes domain.OpcaoRepository,
	votos domain.VotoRepository,
	clock domain.Clock,
	idsGen *ids.Generator,
	politica Politica,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		enquetes: enquetes,
		opcoes:   opcoes,
		votos:    votos,
		clock:    clock,
		ids:      idsGen,
		politica: politica,
	}
}

// CriarEnquete grava a enquete e depois as opções. Se as opções falharem, a enquete recém-criada é
// removida para não sobrar registro sem opções.
func (s *Service) CriarEnquete(ctx context.Context, dados domain.NovaEnquete, ator *domain.UsuarioID) (domain.EnqueteDetalhada, error) {
	if ator == nil && !s.politica.EnquetesAnonimas {
		return domain.EnqueteDetalhada{}, domain.ErrNaoAutenticado
	}

	agora := s.clock.Agora()
	dados, err := validarNovaEnquete(dados, agora)
	if err != nil {
		return domain.EnqueteDetalhada{}, err
	}

	e := domain.Enquete{
		ID:               domain.EnqueteID(s.ids.New()),
		Titulo:           dados.Titulo,
		Descricao:        dados.Descricao,
		CriadorID:        copiarUsuario(ator),
		Ativa:            true,
		ExpiraEm:         dados.ExpiraEm,
		PermiteMultiplos: dados.PermiteMultiplos,
		CriadoEm:         agora,
		AtualizadoEm:     agora,
	}

	opcoes := make([]domain.Opcao, len(dados.Opcoes))
	for i, texto := range dados.Opcoes {
		opcoes[i] = domain.Opcao{
			ID:        domain.OpcaoID(s.ids.New()),
			EnqueteID: e.ID,
			Texto:     texto,
			Posicao:   i,
			CriadoEm:  agora,
		}
	}

	if err := s.enquetes.Create(ctx, e); err != nil {
		return domain.EnqueteDetalhada{}, err
	}

	if err := s.opcoes.BulkCreate(ctx, e.ID, opcoes); err != nil {
		if delErr := s.enquetes.Delete(ctx, e.ID); delErr != nil {
			return domain.EnqueteDetalhada{}, errors.Join(err, fmt.Errorf("voting: compensar enquete %s: %w", e.ID, delErr))
		}
		return domain.EnqueteDetalhada{}, err
	}

	e.Opcoes = opcoes
	return detalhar(e, nil, agora), nil
}

func (s *Service) ObterEnquete(ctx context.Context, id domain.EnqueteID) (domain.EnqueteDetalhada, error) {
	e, err := s.buscar(ctx, id)
	if err != nil {
		return domain.EnqueteDetalhada{}, err
	}
	return s.apurar(ctx, e)
}

// ListarEnquetes apura o total de cada candidata antes de ordenar, já que a ordenação pode ser por votos.
func (s *Service) ListarEnquetes(ctx context.Context, filtro domain.FiltroEnquetes) (domain.PaginaEnquetes, error) {
	filtro, err := NormalizarFiltro(filtro)
	if err != nil {
		return domain.PaginaEnquetes{}, err
	}

	enquetes, err := s.enquetes.List(ctx, filtro.CriadorID)
	if err != nil {
		return domain.PaginaEnquetes{}, err
	}

	idsEnquetes := make([]domain.EnqueteID, len(enquetes))
	for i, e := range enquetes {
		idsEnquetes[i] = e.ID
	}
	totais, err := s.votos.TotaisPorEnquete(ctx, idsEnquetes)
	if err != nil {
		return domain.PaginaEnquetes{}, err
	}

	itens := make([]ItemConsulta, len(enquetes))
	for i, e := range enquetes {
		itens[i] = ItemConsulta{Enquete: e, TotalVotos: totais[e.ID]}
	}

	resultado, err := Consultar(itens, filtro, s.clock.Agora())
	if err != nil {
		return domain.PaginaEnquetes{}, err
	}

	pagina := domain.PaginaEnquetes{
		Itens:        make([]domain.EnqueteDetalhada, len(resultado.Itens)),
		Total:        resultado.Total,
		Pagina:       resultado.Pagina,
		Limite:       resultado.Limite,
		TotalPaginas: resultado.TotalPaginas,
	}
	for i, item := range resultado.Itens {
		detalhada, err := s.apurar(ctx, item.Enquete)
		if err != nil {
			return domain.PaginaEnquetes{}, err
		}
		pagina.Itens[i] = detalhada
	}

	return pagina, nil
}

// EditarEnquete só altera título e expiração; opções ficam imutáveis para não invalidar votos já dados.
func (s *Service) EditarEnquete(ctx context.Context, id domain.EnqueteID, dados domain.EdicaoEnquete, ator *domain.UsuarioID) (domain.EnqueteDetalhada, error) {
	e, err := s.buscarComoDono(ctx, id, ator)
	if err != nil {
		return domain.EnqueteDetalhada{}, err
	}

	dados, err = validarEdicao(dados)
	if err != nil {
		return domain.EnqueteDetalhada{}, err
	}

	e.Titulo = dados.Titulo
	e.ExpiraEm = dados.ExpiraEm
	e.AtualizadoEm = s.clock.Agora()

	if err := s.enquetes.Update(ctx, e); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.EnqueteDetalhada{}, ErrEnqueteNaoEncontrada
		}
		return domain.EnqueteDetalhada{}, err
	}

	return s.apurar(ctx, e)
}

func (s *Service) ExcluirEnquete(ctx context.Context, id domain.EnqueteID, ator *domain.UsuarioID) error {
	if _, err := s.buscarComoDono(ctx, id, ator); err != nil {
		return err
	}

	if err := s.enquetes.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrEnqueteNaoEncontrada
		}
		return err
	}
	return nil
}

// RegistrarVoto valida a tentativa e grava exatamente um voto. A checagem prévia de duplicidade é só um
// atalho: quem decide em caso de corrida é o índice único, e a violação vira ErrVotoDuplicado.
func (s *Service) RegistrarVoto(ctx context.Context, voto domain.NovoVoto) (domain.Voto, error) {
	inicio := time.Now()
	defer func() {
		metrics.ObserveAdmissionDuration(time.Since(inicio).Seconds())
	}()

	if voto.OpcaoID == "" {
		erros := &domain.ErroValidacao{}
		erros.Adicionar("optionId", "obrigatorio")
		return domain.Voto{}, erros
	}
	if voto.EleitorID == nil && !s.politica.VotosAnonimos {
		return domain.Voto{}, domain.ErrNaoAutenticado
	}

	e, err := s.buscar(ctx, voto.EnqueteID)
	if err != nil {
		return domain.Voto{}, err
	}

	agora := s.clock.Agora()
	if Expirada(e, agora) {
		return domain.Voto{}, ErrEnqueteExpirada
	}
	if !e.Ativa {
		return domain.Voto{}, ErrEnqueteInativa
	}

	opcoes, err := s.opcoes.ListByEnquete(ctx, e.ID)
	if err != nil {
		return domain.Voto{}, err
	}
	if !opcaoExiste(opcoes, voto.OpcaoID) {
		return domain.Voto{}, ErrOpcaoInvalida
	}

	registro := domain.Voto{
		ID:        domain.VotoID(s.ids.New()),
		EnqueteID: e.ID,
		OpcaoID:   voto.OpcaoID,
		UsuarioID: copiarUsuario(voto.EleitorID),
		CriadoEm:  agora,
	}

	if voto.EleitorID != nil && !e.PermiteMultiplos {
		existe, err := s.votos.ExisteVoto(ctx, e.ID, *voto.EleitorID)
		if err != nil {
			return domain.Voto{}, err
		}
		if existe {
			return domain.Voto{}, ErrVotoDuplicado
		}
		eleitor := string(*voto.EleitorID)
		registro.EleitorUnico = &eleitor
	}

	if err := s.votos.Registrar(ctx, registro); err != nil {
		if errors.Is(err, domain.ErrDuplicado) {
			return domain.Voto{}, ErrVotoDuplicado
		}
		return domain.Voto{}, err
	}

	return registro, nil
}

func (s *Service) buscar(ctx context.Context, id domain.EnqueteID) (domain.Enquete, error) {
	if id == "" {
		return domain.Enquete{}, ErrEnqueteNaoEncontrada
	}
	e, err := s.enquetes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Enquete{}, ErrEnqueteNaoEncontrada
		}
		return domain.Enquete{}, err
	}
	return e, nil
}

func (s *Service) buscarComoDono(ctx context.Context, id domain.EnqueteID, ator *domain.UsuarioID) (domain.Enquete, error) {
	if ator == nil {
		return domain.Enquete{}, domain.ErrNaoAutenticado
	}
	e, err := s.buscar(ctx, id)
	if err != nil {
		return domain.Enquete{}, err
	}
	if !e.PertenceA(*ator) {
		return domain.Enquete{}, ErrSemPermissao
	}
	return e, nil
}

// apurar recarrega opções e contagens a cada leitura; nada de apuração fica em cache.
func (s *Service) apurar(ctx context.Context, e domain.Enquete) (domain.EnqueteDetalhada, error) {
	opcoes, err := s.opcoes.ListByEnquete(ctx, e.ID)
	if err != nil {
		return domain.EnqueteDetalhada{}, err
	}
	contagens, err := s.votos.TotalPorOpcao(ctx, e.ID)
	if err != nil {
		return domain.EnqueteDetalhada{}, err
	}
	e.Opcoes = opcoes
	return detalhar(e, contagens, s.clock.Agora()), nil
}

func detalhar(e domain.Enquete, contagens map[domain.OpcaoID]int64, agora time.Time) domain.EnqueteDetalhada {
	return domain.EnqueteDetalhada{
		Enquete:  e,
		Estado:   Estado(e, agora),
		Apuracao: ApurarContagens(e.Opcoes, contagens),
	}
}

func opcaoExiste(opcoes []domain.Opcao, id domain.OpcaoID) bool {
	for _, opcao := range opcoes {
		if opcao.ID == id {
			return true
		}
	}
	return false
}

func copiarUsuario(id *domain.UsuarioID) *domain.UsuarioID {
	if id == nil {
		return nil
	}
	copia := *id
	return &copia
}

var _ domain.VotingService = (*Service)(nil)
