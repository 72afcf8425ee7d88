package voting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marcelojr/enquetes/internal/domain"
)

func TestEstado(t *testing.T) {
	agora := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	passado := agora.Add(-time.Second)
	futuro := agora.Add(time.Second)

	casos := []struct {
		nome     string
		enquete  domain.Enquete
		esperado domain.EstadoEnquete
	}{
		{"sem expiracao", domain.Enquete{Ativa: true}, domain.EstadoAtiva},
		{"expira no futuro", domain.Enquete{Ativa: true, ExpiraEm: &futuro}, domain.EstadoAtiva},
		{"expira exatamente agora", domain.Enquete{Ativa: true, ExpiraEm: &agora}, domain.EstadoExpirada},
		{"expirou", domain.Enquete{Ativa: true, ExpiraEm: &passado}, domain.EstadoExpirada},
		{"desativada", domain.Enquete{Ativa: false}, domain.EstadoInativa},
		{"desativada e expirada", domain.Enquete{Ativa: false, ExpiraEm: &passado}, domain.EstadoExpirada},
	}

	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			assert.Equal(t, tc.esperado, Estado(tc.enquete, agora))
			assert.Equal(t, tc.esperado == domain.EstadoAtiva, PodeVotar(tc.enquete, agora))
		})
	}
}
