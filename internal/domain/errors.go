package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound é devolvido pelos repositórios quando o registro não existe.
	ErrNotFound = errors.New("registro nao encontrado")
	// ErrDuplicado sinaliza violação de chave única no banco.
	ErrDuplicado = errors.New("registro duplicado")

	ErrValidacao      = errors.New("dados invalidos")
	ErrNaoAutenticado = errors.New("autenticacao obrigatoria")
)

type CampoInvalido struct {
	Campo    string `json:"field"`
	Mensagem string `json:"message"`
}

// ErroValidacao acumula todos os campos rejeitados de uma mesma requisição.
type ErroValidacao struct {
	Campos []CampoInvalido
}

func (e *ErroValidacao) Adicionar(campo, mensagem string) {
	e.Campos = append(e.Campos, CampoInvalido{Campo: campo, Mensagem: mensagem})
}

// Err devolve nil quando nenhum campo foi rejeitado.
func (e *ErroValidacao) Err() error {
	if e == nil || len(e.Campos) == 0 {
		return nil
	}
	return e
}

func (e *ErroValidacao) Error() string {
	msgs := make([]string, len(e.Campos))
	for i, c := range e.Campos {
		msgs[i] = c.Campo + ": " + c.Mensagem
	}
	return ErrValidacao.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ErroValidacao) Unwrap() error {
	return ErrValidacao
}
