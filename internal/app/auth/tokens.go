package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marcelojr/enquetes/internal/domain"
)

// Emissor assina e valida tokens HS256 com o id do usuário no claim "sub".
type Emissor struct {
	segredo []byte
	ttl     time.Duration
}

func NewEmissor(segredo string, ttl time.Duration) *Emissor {
	return &Emissor{segredo: []byte(segredo), ttl: ttl}
}

func (e *Emissor) Emitir(usuario domain.UsuarioID, agora time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   string(usuario),
		IssuedAt:  jwt.NewNumericDate(agora),
		ExpiresAt: jwt.NewNumericDate(agora.Add(e.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(e.segredo)
	if err != nil {
		return "", fmt.Errorf("auth: assinar token: %w", err)
	}
	return token, nil
}

// Validar devolve o id do usuário do token. Assinatura, algoritmo e expiração são conferidos
// contra o relógio informado.
func (e *Emissor) Validar(token string, agora time.Time) (domain.UsuarioID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return e.segredo, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return agora }),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalido, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: sub ausente", ErrTokenInvalido)
	}
	return domain.UsuarioID(claims.Subject), nil
}
