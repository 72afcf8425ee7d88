package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelojr/enquetes/internal/domain"
	"github.com/marcelojr/enquetes/internal/platform/ids"
)

func novoVoto(gen *ids.Generator, enquete domain.EnqueteID, opcao domain.OpcaoID, eleitor *domain.UsuarioID, unico bool) domain.Voto {
	voto := domain.Voto{
		ID:        domain.VotoID(gen.New()),
		EnqueteID: enquete,
		OpcaoID:   opcao,
		UsuarioID: eleitor,
		CriadoEm:  time.Now().UTC(),
	}
	if eleitor != nil && unico {
		chave := string(*eleitor)
		voto.EleitorUnico = &chave
	}
	return voto
}

func TestVotoRepository_TotalPorOpcao_QuandoExistemVotos_DeveAgruparPorOpcao(t *testing.T) {
	db := setupPostgres(t)
	repo := NewVotoRepository(db)
	gen := ids.NewGenerator()
	ctx := context.Background()

	enquete, opcoes := criarEnqueteComOpcoes(t, db, gen, nil, "Red", "Blue", "Green")

	// Arrange: 3 votos na primeira, 1 na segunda, nenhum na terceira
	for range 3 {
		require.NoError(t, repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[0].ID, nil, false)))
	}
	require.NoError(t, repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[1].ID, nil, false)))

	// Act
	totais, err := repo.TotalPorOpcao(ctx, enquete.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3), totais[opcoes[0].ID])
	assert.Equal(t, int64(1), totais[opcoes[1].ID])
	_, existe := totais[opcoes[2].ID]
	assert.False(t, existe)
}

func TestVotoRepository_Registrar_QuandoMesmoEleitorUnico_DeveRetornarErrDuplicado(t *testing.T) {
	db := setupPostgres(t)
	repo := NewVotoRepository(db)
	gen := ids.NewGenerator()
	ctx := context.Background()

	enquete, opcoes := criarEnqueteComOpcoes(t, db, gen, nil, "Sim", "Nao")
	eleitor := domain.UsuarioID(gen.New())

	require.NoError(t, repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[0].ID, &eleitor, true)))

	err := repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[1].ID, &eleitor, true))

	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func TestVotoRepository_Registrar_QuandoSemChaveUnica_DeveAceitarRepetidos(t *testing.T) {
	db := setupPostgres(t)
	repo := NewVotoRepository(db)
	gen := ids.NewGenerator()
	ctx := context.Background()

	enquete, opcoes := criarEnqueteComOpcoes(t, db, gen, nil, "Sim", "Nao")
	eleitor := domain.UsuarioID(gen.New())

	// Votos anônimos e votos em enquete de múltipla escolha deixam eleitor_unico nulo.
	require.NoError(t, repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[0].ID, nil, false)))
	require.NoError(t, repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[0].ID, nil, false)))
	require.NoError(t, repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[0].ID, &eleitor, false)))
	require.NoError(t, repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[1].ID, &eleitor, false)))

	totais, err := repo.TotaisPorEnquete(ctx, []domain.EnqueteID{enquete.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), totais[enquete.ID])
}

func TestVotoRepository_Registrar_QuandoMesmoEleitorEmOutraEnquete_DeveAceitar(t *testing.T) {
	db := setupPostgres(t)
	repo := NewVotoRepository(db)
	gen := ids.NewGenerator()
	ctx := context.Background()

	primeira, opcoesPrimeira := criarEnqueteComOpcoes(t, db, gen, nil, "Sim", "Nao")
	segunda, opcoesSegunda := criarEnqueteComOpcoes(t, db, gen, nil, "Sim", "Nao")
	eleitor := domain.UsuarioID(gen.New())

	require.NoError(t, repo.Registrar(ctx, novoVoto(gen, primeira.ID, opcoesPrimeira[0].ID, &eleitor, true)))
	require.NoError(t, repo.Registrar(ctx, novoVoto(gen, segunda.ID, opcoesSegunda[0].ID, &eleitor, true)))
}

func TestVotoRepository_Registrar_QuandoConcorrente_DeveGravarApenasUm(t *testing.T) {
	db := setupPostgres(t)
	repo := NewVotoRepository(db)
	gen := ids.NewGenerator()
	ctx := context.Background()

	enquete, opcoes := criarEnqueteComOpcoes(t, db, gen, nil, "Sim", "Nao")
	eleitor := domain.UsuarioID(gen.New())

	const tentativas = 8
	var wg sync.WaitGroup
	erros := make(chan error, tentativas)
	for i := range tentativas {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			erros <- repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[i%2].ID, &eleitor, true))
		}(i)
	}
	wg.Wait()
	close(erros)

	var aceitos int
	for err := range erros {
		if err == nil {
			aceitos++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrDuplicado), "erro inesperado: %v", err)
	}
	assert.Equal(t, 1, aceitos)

	totais, err := repo.TotaisPorEnquete(ctx, []domain.EnqueteID{enquete.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), totais[enquete.ID])
}

func TestVotoRepository_ExisteVoto(t *testing.T) {
	db := setupPostgres(t)
	repo := NewVotoRepository(db)
	gen := ids.NewGenerator()
	ctx := context.Background()

	enquete, opcoes := criarEnqueteComOpcoes(t, db, gen, nil, "Sim", "Nao")
	eleitor := domain.UsuarioID(gen.New())
	outro := domain.UsuarioID(gen.New())
	require.NoError(t, repo.Registrar(ctx, novoVoto(gen, enquete.ID, opcoes[0].ID, &eleitor, true)))

	existe, err := repo.ExisteVoto(ctx, enquete.ID, eleitor)
	require.NoError(t, err)
	assert.True(t, existe)

	existe, err = repo.ExisteVoto(ctx, enquete.ID, outro)
	require.NoError(t, err)
	assert.False(t, existe)
}

func TestVotoRepository_TotaisPorEnquete_QuandoListaVazia_DeveRetornarMapaVazio(t *testing.T) {
	db := setupPostgres(t)
	repo := NewVotoRepository(db)

	totais, err := repo.TotaisPorEnquete(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, totais)
}
