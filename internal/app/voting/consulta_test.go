package voting

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelojr/enquetes/internal/domain"
)

var agoraConsulta = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func item(id, titulo string, criadaHa time.Duration, votos int64) ItemConsulta {
	return ItemConsulta{
		Enquete: domain.Enquete{
			ID:           domain.EnqueteID(id),
			Titulo:       titulo,
			Ativa:        true,
			CriadoEm:     agoraConsulta.Add(-criadaHa),
			AtualizadoEm: agoraConsulta.Add(-criadaHa),
		},
		TotalVotos: votos,
	}
}

func idsDe(itens []ItemConsulta) []domain.EnqueteID {
	result := make([]domain.EnqueteID, len(itens))
	for i, it := range itens {
		result[i] = it.Enquete.ID
	}
	return result
}

func TestNormalizarFiltro_QuandoVazio_DeveAplicarPadroes(t *testing.T) {
	filtro, err := NormalizarFiltro(domain.FiltroEnquetes{})

	require.NoError(t, err)
	assert.Equal(t, domain.OrdenarPorCriacao, filtro.OrdenarPor)
	assert.Equal(t, domain.DirecaoDesc, filtro.Direcao)
	assert.Equal(t, 1, filtro.Pagina)
	assert.Equal(t, 10, filtro.Limite)
}

func TestNormalizarFiltro_QuandoParametrosInvalidos_DeveListarCampos(t *testing.T) {
	_, err := NormalizarFiltro(domain.FiltroEnquetes{
		OrdenarPor: "popularidade",
		Direcao:    "sideways",
		Pagina:     -1,
		Limite:     101,
	})

	var erroValidacao *domain.ErroValidacao
	require.True(t, errors.As(err, &erroValidacao))
	assert.ErrorIs(t, err, domain.ErrValidacao)

	var campos []string
	for _, c := range erroValidacao.Campos {
		campos = append(campos, c.Campo)
	}
	assert.Equal(t, []string{"sortBy", "sortOrder", "page", "limit"}, campos)
}

func TestConsultar_QuandoOrdenaPorVotosDesc_DeveInverterOrdem(t *testing.T) {
	itens := []ItemConsulta{
		item("01A", "Primeira", 3*time.Hour, 3),
		item("01B", "Segunda", 2*time.Hour, 1),
		item("01C", "Terceira", time.Hour, 2),
	}

	resultado, err := Consultar(itens, domain.FiltroEnquetes{OrdenarPor: domain.OrdenarPorTotalVotos, Direcao: domain.DirecaoDesc}, agoraConsulta)

	require.NoError(t, err)
	assert.Equal(t, []domain.EnqueteID{"01A", "01C", "01B"}, idsDe(resultado.Itens))
	assert.Equal(t, 3, resultado.Total)
	assert.Equal(t, 1, resultado.TotalPaginas)
}

func TestConsultar_QuandoPadrao_DeveTrazerMaisRecentesPrimeiro(t *testing.T) {
	itens := []ItemConsulta{
		item("01A", "Antiga", 3*time.Hour, 0),
		item("01B", "Recente", time.Minute, 0),
		item("01C", "Meio termo", time.Hour, 0),
	}

	resultado, err := Consultar(itens, domain.FiltroEnquetes{}, agoraConsulta)

	require.NoError(t, err)
	assert.Equal(t, []domain.EnqueteID{"01B", "01C", "01A"}, idsDe(resultado.Itens))
}

func TestConsultar_QuandoEmpate_DeveDesempatarPorIDCrescente(t *testing.T) {
	itens := []ItemConsulta{
		item("01C", "Gamma", time.Hour, 5),
		item("01A", "Alpha", time.Hour, 5),
		item("01B", "Beta", time.Hour, 5),
	}

	for _, direcao := range []domain.Direcao{domain.DirecaoAsc, domain.DirecaoDesc} {
		resultado, err := Consultar(itens, domain.FiltroEnquetes{OrdenarPor: domain.OrdenarPorTotalVotos, Direcao: direcao}, agoraConsulta)
		require.NoError(t, err)
		assert.Equal(t, []domain.EnqueteID{"01A", "01B", "01C"}, idsDe(resultado.Itens), "direcao %s", direcao)
	}
}

func TestConsultar_QuandoOrdenaPorTitulo_DeveIgnorarCaixa(t *testing.T) {
	itens := []ItemConsulta{
		item("01A", "banana", time.Hour, 0),
		item("01B", "Abacate", time.Hour, 0),
		item("01C", "caju", time.Hour, 0),
	}

	resultado, err := Consultar(itens, domain.FiltroEnquetes{OrdenarPor: domain.OrdenarPorTitulo, Direcao: domain.DirecaoAsc}, agoraConsulta)

	require.NoError(t, err)
	assert.Equal(t, []domain.EnqueteID{"01B", "01A", "01C"}, idsDe(resultado.Itens))
}

func TestConsultar_QuandoPagina_DeveCobrirTodosSemRepetir(t *testing.T) {
	var itens []ItemConsulta
	for i := range 25 {
		itens = append(itens, item(fmt.Sprintf("01%02d", i), fmt.Sprintf("Enquete %02d", i), time.Duration(i%3)*time.Hour, int64(i%4)))
	}

	vistos := map[domain.EnqueteID]bool{}
	for pagina := 1; pagina <= 3; pagina++ {
		resultado, err := Consultar(itens, domain.FiltroEnquetes{OrdenarPor: domain.OrdenarPorTotalVotos, Pagina: pagina, Limite: 10}, agoraConsulta)
		require.NoError(t, err)
		assert.Equal(t, 25, resultado.Total)
		assert.Equal(t, 3, resultado.TotalPaginas)
		for _, it := range resultado.Itens {
			assert.False(t, vistos[it.Enquete.ID], "item %s repetido", it.Enquete.ID)
			vistos[it.Enquete.ID] = true
		}
	}
	assert.Len(t, vistos, 25)
}

func TestConsultar_QuandoPaginaAlemDoFim_DeveRetornarVazio(t *testing.T) {
	itens := []ItemConsulta{item("01A", "Unica", time.Hour, 0)}

	resultado, err := Consultar(itens, domain.FiltroEnquetes{Pagina: 5}, agoraConsulta)

	require.NoError(t, err)
	assert.NotNil(t, resultado.Itens)
	assert.Empty(t, resultado.Itens)
	assert.Equal(t, 1, resultado.Total)
	assert.Equal(t, 1, resultado.TotalPaginas)
}

func TestConsultar_QuandoPaginaEnorme_DeveRetornarVazioSemEstourar(t *testing.T) {
	itens := []ItemConsulta{item("01A", "Unica", time.Hour, 0), item("01B", "Outra", time.Hour, 1)}

	for _, limite := range []int{0, 1, 100} {
		var resultado ResultadoConsulta
		var err error
		require.NotPanics(t, func() {
			resultado, err = Consultar(itens, domain.FiltroEnquetes{Pagina: math.MaxInt, Limite: limite}, agoraConsulta)
		})

		require.NoError(t, err)
		assert.Empty(t, resultado.Itens)
		assert.Equal(t, 2, resultado.Total)
		assert.Equal(t, math.MaxInt, resultado.Pagina)
	}

	vazio, err := Consultar(nil, domain.FiltroEnquetes{Pagina: math.MaxInt}, agoraConsulta)
	require.NoError(t, err)
	assert.Empty(t, vazio.Itens)
}

func TestConsultar_QuandoFiltra_DeveAplicarBuscaEstadoECriador(t *testing.T) {
	dono := domain.UsuarioID("01HZY3K3Q0V8W2J6X9N4T5B7CD")
	passado := agoraConsulta.Add(-time.Minute)

	linguagem := item("01A", "Melhor linguagem", time.Hour, 0)
	linguagem.Enquete.CriadorID = &dono
	comida := item("01B", "Almoco de sexta", time.Hour, 0)
	comida.Enquete.Descricao = "Qual LINGUAGEM de comida?"
	expirada := item("01C", "Linguagem antiga", time.Hour, 0)
	expirada.Enquete.ExpiraEm = &passado
	itens := []ItemConsulta{linguagem, comida, expirada}

	resultado, err := Consultar(itens, domain.FiltroEnquetes{Busca: "  linguagem "}, agoraConsulta)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.EnqueteID{"01A", "01B", "01C"}, idsDe(resultado.Itens))

	ativa := true
	resultado, err = Consultar(itens, domain.FiltroEnquetes{Busca: "linguagem", Ativa: &ativa}, agoraConsulta)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.EnqueteID{"01A", "01B"}, idsDe(resultado.Itens))

	inativa := false
	resultado, err = Consultar(itens, domain.FiltroEnquetes{Ativa: &inativa}, agoraConsulta)
	require.NoError(t, err)
	assert.Equal(t, []domain.EnqueteID{"01C"}, idsDe(resultado.Itens))

	resultado, err = Consultar(itens, domain.FiltroEnquetes{CriadorID: dono}, agoraConsulta)
	require.NoError(t, err)
	assert.Equal(t, []domain.EnqueteID{"01A"}, idsDe(resultado.Itens))
}
