package domain

import (
	"context"
	"time"
)

type EnqueteRepository interface {
	Create(ctx context.Context, e Enquete) error
	Update(ctx context.Context, e Enquete) error
	// Delete remove a enquete junto com opções e votos numa única transação.
	Delete(ctx context.Context, id EnqueteID) error
	FindByID(ctx context.Context, id EnqueteID) (Enquete, error)
	List(ctx context.Context, criadorID UsuarioID) ([]Enquete, error)
}

type OpcaoRepository interface {
	BulkCreate(ctx context.Context, enqueteID EnqueteID, opcoes []Opcao) error
	ListByEnquete(ctx context.Context, enqueteID EnqueteID) ([]Opcao, error)
}

type VotoRepository interface {
	Registrar(ctx context.Context, voto Voto) error
	ExisteVoto(ctx context.Context, enqueteID EnqueteID, usuarioID UsuarioID) (bool, error)
	TotalPorOpcao(ctx context.Context, enqueteID EnqueteID) (map[OpcaoID]int64, error)
	TotaisPorEnquete(ctx context.Context, ids []EnqueteID) (map[EnqueteID]int64, error)
}

type UsuarioRepository interface {
	Create(ctx context.Context, u Usuario) error
	FindByID(ctx context.Context, id UsuarioID) (Usuario, error)
	FindByEmail(ctx context.Context, email string) (Usuario, error)
}

type Limitador interface {
	Permitir(ctx context.Context, chave string) error
}

type Clock interface {
	Agora() time.Time
}

type VotingService interface {
	CriarEnquete(ctx context.Context, dados NovaEnquete, ator *UsuarioID) (EnqueteDetalhada, error)
	ListarEnquetes(ctx context.Context, filtro FiltroEnquetes) (PaginaEnquetes, error)
	ObterEnquete(ctx context.Context, id EnqueteID) (EnqueteDetalhada, error)
	EditarEnquete(ctx context.Context, id EnqueteID, dados EdicaoEnquete, ator *UsuarioID) (EnqueteDetalhada, error)
	ExcluirEnquete(ctx context.Context, id EnqueteID, ator *UsuarioID) error
	RegistrarVoto(ctx context.Context, voto NovoVoto) (Voto, error)
}

type AuthService interface {
	Registrar(ctx context.Context, dados Cadastro) (Sessao, error)
	Entrar(ctx context.Context, cred Credenciais) (Sessao, error)
	Autenticar(ctx context.Context, token string) (Usuario, error)
}
