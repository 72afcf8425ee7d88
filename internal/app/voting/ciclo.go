package voting

import (
	"time"

	"github.com/marcelojr/enquetes/internal/domain"
)

// Estado deriva a situação da enquete no instante informado. Expiração tem precedência sobre a flag.
func Estado(e domain.Enquete, agora time.Time) domain.EstadoEnquete {
	switch {
	case Expirada(e, agora):
		return domain.EstadoExpirada
	case !e.Ativa:
		return domain.EstadoInativa
	default:
		return domain.EstadoAtiva
	}
}

// Expirada considera o limite inclusivo: expira_em == agora já está encerrada.
func Expirada(e domain.Enquete, agora time.Time) bool {
	return e.ExpiraEm != nil && !e.ExpiraEm.After(agora)
}

func PodeVotar(e domain.Enquete, agora time.Time) bool {
	return Estado(e, agora) == domain.EstadoAtiva
}
