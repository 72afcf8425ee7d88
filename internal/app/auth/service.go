// Pacote auth cuida de cadastro, login e validação de tokens de acesso.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/marcelojr/enquetes/internal/domain"
	"github.com/marcelojr/enquetes/internal/platform/ids"
	"github.com/marcelojr/enquetes/internal/platform/limitador"
)

var (
	ErrCredenciaisInvalidas = errors.New("email ou senha invalidos")
	ErrEmailEmUso           = errors.New("email ja cadastrado")
	ErrTokenInvalido        = errors.New("token invalido ou expirado")
)

type Service struct {
	usuarios  domain.UsuarioRepository
	limitador domain.Limitador
	emissor   *Emissor
	clock     domain.Clock
	ids       *ids.Generator
	custo     int
}

type Option func(*Service)

// WithBcryptCost permite custo menor em testes; valores fora da faixa do bcrypt caem no padrão.
func WithBcryptCost(custo int) Option {
	return func(s *Service) {
		if custo >= bcrypt.MinCost && custo <= bcrypt.MaxCost {
			s.custo = custo
		}
	}
}

func NewService(
	usuarios domain.UsuarioRepository,
	lim domain.Limitador,
	emissor *Emissor,
	clock domain.Clock,
	idsGen *ids.Generator,
	opts ...Option,
) *Service {
	if lim == nil {
		lim = limitador.NewNoop()
	}
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	s := &Service{
		usuarios:  usuarios,
		limitador: lim,
		emissor:   emissor,
		clock:     clock,
		ids:       idsGen,
		custo:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Registrar(ctx context.Context, dados domain.Cadastro) (domain.Sessao, error) {
	dados, err := validarCadastro(dados)
	if err != nil {
		return domain.Sessao{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dados.Senha), s.custo)
	if err != nil {
		return domain.Sessao{}, fmt.Errorf("auth: gerar hash: %w", err)
	}

	agora := s.clock.Agora()
	usuario := domain.Usuario{
		ID:           domain.UsuarioID(s.ids.New()),
		Email:        dados.Email,
		Username:     dados.Username,
		SenhaHash:    string(hash),
		CriadoEm:     agora,
		AtualizadoEm: agora,
	}

	if err := s.usuarios.Create(ctx, usuario); err != nil {
		if errors.Is(err, domain.ErrDuplicado) {
			return domain.Sessao{}, ErrEmailEmUso
		}
		return domain.Sessao{}, err
	}

	return s.sessao(usuario, agora)
}

// Entrar passa pelo limitador antes de consultar o banco, para que tentativas bloqueadas não
// custem um bcrypt. Email desconhecido e senha errada devolvem o mesmo erro.
func (s *Service) Entrar(ctx context.Context, cred domain.Credenciais) (domain.Sessao, error) {
	cred, err := validarCredenciais(cred)
	if err != nil {
		return domain.Sessao{}, err
	}

	if err := s.limitador.Permitir(ctx, limitador.ChaveLogin(cred.Email, cred.IP)); err != nil {
		return domain.Sessao{}, err
	}

	usuario, err := s.usuarios.FindByEmail(ctx, cred.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Sessao{}, ErrCredenciaisInvalidas
		}
		return domain.Sessao{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(cred.Senha)); err != nil {
		return domain.Sessao{}, ErrCredenciaisInvalidas
	}

	return s.sessao(usuario, s.clock.Agora())
}

// Autenticar valida o token e confirma que o usuário ainda existe.
func (s *Service) Autenticar(ctx context.Context, token string) (domain.Usuario, error) {
	id, err := s.emissor.Validar(token, s.clock.Agora())
	if err != nil {
		return domain.Usuario{}, err
	}

	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Usuario{}, ErrTokenInvalido
		}
		return domain.Usuario{}, err
	}
	return usuario, nil
}

func (s *Service) sessao(usuario domain.Usuario, agora time.Time) (domain.Sessao, error) {
	token, err := s.emissor.Emitir(usuario.ID, agora)
	if err != nil {
		return domain.Sessao{}, err
	}
	return domain.Sessao{Usuario: usuario, Token: token}, nil
}

var _ domain.AuthService = (*Service)(nil)
