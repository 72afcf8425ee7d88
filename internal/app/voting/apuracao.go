package voting

import (
	"math"

	"github.com/marcelojr/enquetes/internal/domain"
)

// Apurar conta os votos de cada opção a partir dos registros brutos.
func Apurar(opcoes []domain.Opcao, votos []domain.Voto) domain.Apuracao {
	contagens := make(map[domain.OpcaoID]int64, len(opcoes))
	for _, voto := range votos {
		contagens[voto.OpcaoID]++
	}
	return ApurarContagens(opcoes, contagens)
}

// ApurarContagens deriva total, percentuais e vencedora a partir das contagens agrupadas por opção.
// Votos de opções fora da lista são ignorados. Em caso de empate vence a opção que aparece primeiro.
func ApurarContagens(opcoes []domain.Opcao, contagens map[domain.OpcaoID]int64) domain.Apuracao {
	apuracao := domain.Apuracao{Opcoes: make([]domain.ResultadoOpcao, len(opcoes))}

	for i, opcao := range opcoes {
		total := contagens[opcao.ID]
		apuracao.Opcoes[i] = domain.ResultadoOpcao{
			OpcaoID: opcao.ID,
			Texto:   opcao.Texto,
			Votos:   total,
		}
		apuracao.TotalVotos += total
	}

	if apuracao.TotalVotos == 0 {
		return apuracao
	}

	var maior int64 = -1
	for i := range apuracao.Opcoes {
		resultado := &apuracao.Opcoes[i]
		resultado.Percentual = percentual(resultado.Votos, apuracao.TotalVotos)
		if resultado.Votos > maior {
			maior = resultado.Votos
			vencedora := resultado.OpcaoID
			apuracao.VencedoraID = &vencedora
		}
	}

	return apuracao
}

func percentual(votos, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(votos) / float64(total) * 100))
}
