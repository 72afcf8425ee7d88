package voting

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/marcelojr/enquetes/internal/domain"
)

const (
	paginaPadrao = 1
	limitePadrao = 10
	limiteMaximo = 100
)

// ItemConsulta associa a enquete ao total de votos já apurado, necessário para ordenar por votos.
type ItemConsulta struct {
	Enquete    domain.Enquete
	TotalVotos int64
}

type ResultadoConsulta struct {
	Itens        []ItemConsulta
	Total        int
	Pagina       int
	Limite       int
	TotalPaginas int
}

// NormalizarFiltro aplica os valores padrão e rejeita parâmetros fora do domínio. Zero significa "não informado".
func NormalizarFiltro(f domain.FiltroEnquetes) (domain.FiltroEnquetes, error) {
	erros := &domain.ErroValidacao{}

	f.Busca = strings.TrimSpace(f.Busca)

	switch f.OrdenarPor {
	case "":
		f.OrdenarPor = domain.OrdenarPorCriacao
	case domain.OrdenarPorCriacao, domain.OrdenarPorAtualizacao, domain.OrdenarPorTotalVotos, domain.OrdenarPorTitulo:
	default:
		erros.Adicionar("sortBy", fmt.Sprintf("valor %q nao suportado", f.OrdenarPor))
	}

	switch f.Direcao {
	case "":
		f.Direcao = domain.DirecaoDesc
	case domain.DirecaoAsc, domain.DirecaoDesc:
	default:
		erros.Adicionar("sortOrder", fmt.Sprintf("valor %q nao suportado", f.Direcao))
	}

	switch {
	case f.Pagina == 0:
		f.Pagina = paginaPadrao
	case f.Pagina < 0:
		erros.Adicionar("page", "deve ser maior ou igual a 1")
	}

	switch {
	case f.Limite == 0:
		f.Limite = limitePadrao
	case f.Limite < 0 || f.Limite > limiteMaximo:
		erros.Adicionar("limit", fmt.Sprintf("deve estar entre 1 e %d", limiteMaximo))
	}

	if err := erros.Err(); err != nil {
		return domain.FiltroEnquetes{}, err
	}
	return f, nil
}

// Consultar filtra, ordena e pagina a coleção. A ordenação é total: empates caem no ID (ULID, crescente)
// para que páginas consecutivas não repitam nem pulem itens.
func Consultar(itens []ItemConsulta, filtro domain.FiltroEnquetes, agora time.Time) (ResultadoConsulta, error) {
	filtro, err := NormalizarFiltro(filtro)
	if err != nil {
		return ResultadoConsulta{}, err
	}

	busca := strings.ToLower(filtro.Busca)
	selecionados := make([]ItemConsulta, 0, len(itens))
	for _, item := range itens {
		if combina(item.Enquete, filtro, busca, agora) {
			selecionados = append(selecionados, item)
		}
	}

	slices.SortFunc(selecionados, func(a, b ItemConsulta) int {
		c := compararPor(filtro.OrdenarPor, a, b)
		if filtro.Direcao == domain.DirecaoDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Enquete.ID, b.Enquete.ID)
	})

	total := len(selecionados)
	resultado := ResultadoConsulta{
		Itens:        []ItemConsulta{},
		Total:        total,
		Pagina:       filtro.Pagina,
		Limite:       filtro.Limite,
		TotalPaginas: (total + filtro.Limite - 1) / filtro.Limite,
	}

	// Compara páginas antes de multiplicar: page muito grande estouraria o deslocamento.
	if filtro.Pagina > resultado.TotalPaginas {
		return resultado, nil
	}
	inicio := (filtro.Pagina - 1) * filtro.Limite
	fim := min(inicio+filtro.Limite, total)
	resultado.Itens = selecionados[inicio:fim]

	return resultado, nil
}

func combina(e domain.Enquete, filtro domain.FiltroEnquetes, busca string, agora time.Time) bool {
	if busca != "" &&
		!strings.Contains(strings.ToLower(e.Titulo), busca) &&
		!strings.Contains(strings.ToLower(e.Descricao), busca) {
		return false
	}
	if filtro.Ativa != nil && (Estado(e, agora) == domain.EstadoAtiva) != *filtro.Ativa {
		return false
	}
	if filtro.CriadorID != "" && (e.CriadorID == nil || *e.CriadorID != filtro.CriadorID) {
		return false
	}
	return true
}

func compararPor(campo domain.CampoOrdenacao, a, b ItemConsulta) int {
	switch campo {
	case domain.OrdenarPorAtualizacao:
		return a.Enquete.AtualizadoEm.Compare(b.Enquete.AtualizadoEm)
	case domain.OrdenarPorTotalVotos:
		return cmp.Compare(a.TotalVotos, b.TotalVotos)
	case domain.OrdenarPorTitulo:
		return strings.Compare(strings.ToLower(a.Enquete.Titulo), strings.ToLower(b.Enquete.Titulo))
	default:
		return a.Enquete.CriadoEm.Compare(b.Enquete.CriadoEm)
	}
}
