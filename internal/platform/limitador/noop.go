package limitador

import (
	"context"

	"github.com/marcelojr/enquetes/internal/domain"
)

// Noop é usado quando o limite de login está desligado ou o Redis não foi configurado.
type Noop struct{}

func NewNoop() Noop {
	return Noop{}
}

func (Noop) Permitir(context.Context, string) error {
	return nil
}

var _ domain.Limitador = Noop{}
