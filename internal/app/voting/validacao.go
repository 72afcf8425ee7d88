package voting

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/marcelojr/enquetes/internal/domain"
)

const (
	tituloMinimo    = 5
	tituloMaximo    = 200
	descricaoMaxima = 1000
	opcaoMinima     = 2
	opcaoMaxima     = 200
	minimoOpcoes    = 2
)

// validarNovaEnquete devolve os dados normalizados (espaços removidos, opções em branco descartadas).
func validarNovaEnquete(dados domain.NovaEnquete, agora time.Time) (domain.NovaEnquete, error) {
	erros := &domain.ErroValidacao{}

	dados.Titulo = strings.TrimSpace(dados.Titulo)
	dados.Descricao = strings.TrimSpace(dados.Descricao)
	validarTitulo(erros, dados.Titulo)

	if utf8.RuneCountInString(dados.Descricao) > descricaoMaxima {
		erros.Adicionar("description", fmt.Sprintf("deve ter no maximo %d caracteres", descricaoMaxima))
	}

	opcoes := make([]string, 0, len(dados.Opcoes))
	for _, texto := range dados.Opcoes {
		texto = strings.TrimSpace(texto)
		if texto == "" {
			continue
		}
		opcoes = append(opcoes, texto)
	}

	if len(opcoes) < minimoOpcoes {
		erros.Adicionar("options", fmt.Sprintf("informe pelo menos %d opcoes", minimoOpcoes))
	}
	for i, texto := range opcoes {
		n := utf8.RuneCountInString(texto)
		if n < opcaoMinima || n > opcaoMaxima {
			erros.Adicionar(fmt.Sprintf("options[%d]", i), fmt.Sprintf("deve ter entre %d e %d caracteres", opcaoMinima, opcaoMaxima))
		}
	}
	dados.Opcoes = opcoes

	if dados.ExpiraEm != nil && !dados.ExpiraEm.After(agora) {
		erros.Adicionar("expiresAt", "deve estar no futuro")
	}

	if err := erros.Err(); err != nil {
		return domain.NovaEnquete{}, err
	}
	return dados, nil
}

func validarEdicao(dados domain.EdicaoEnquete) (domain.EdicaoEnquete, error) {
	erros := &domain.ErroValidacao{}

	dados.Titulo = strings.TrimSpace(dados.Titulo)
	validarTitulo(erros, dados.Titulo)

	if err := erros.Err(); err != nil {
		return domain.EdicaoEnquete{}, err
	}
	return dados, nil
}

func validarTitulo(erros *domain.ErroValidacao, titulo string) {
	n := utf8.RuneCountInString(titulo)
	switch {
	case n == 0:
		erros.Adicionar("title", "obrigatorio")
	case n < tituloMinimo:
		erros.Adicionar("title", fmt.Sprintf("deve ter pelo menos %d caracteres", tituloMinimo))
	case n > tituloMaximo:
		erros.Adicionar("title", fmt.Sprintf("deve ter no maximo %d caracteres", tituloMaximo))
	}
}
