package auth

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/marcelojr/enquetes/internal/domain"
)

const (
	senhaMinima    = 6
	senhaMaxima    = 72
	usernameMinimo = 3
	usernameMaximo = 50
)

func validarCadastro(dados domain.Cadastro) (domain.Cadastro, error) {
	erros := &domain.ErroValidacao{}

	dados.Email = strings.ToLower(strings.TrimSpace(dados.Email))
	dados.Username = strings.TrimSpace(dados.Username)

	if dados.Email == "" {
		erros.Adicionar("email", "obrigatorio")
	} else if !emailValido(dados.Email) {
		erros.Adicionar("email", "formato invalido")
	}

	switch n := utf8.RuneCountInString(dados.Username); {
	case n == 0:
		erros.Adicionar("username", "obrigatorio")
	case n < usernameMinimo || n > usernameMaximo:
		erros.Adicionar("username", fmt.Sprintf("deve ter entre %d e %d caracteres", usernameMinimo, usernameMaximo))
	}

	switch {
	case dados.Senha == "":
		erros.Adicionar("password", "obrigatorio")
	case utf8.RuneCountInString(dados.Senha) < senhaMinima:
		erros.Adicionar("password", fmt.Sprintf("deve ter pelo menos %d caracteres", senhaMinima))
	case len(dados.Senha) > senhaMaxima:
		erros.Adicionar("password", fmt.Sprintf("deve ter no maximo %d bytes", senhaMaxima))
	}

	switch {
	case dados.ConfirmacaoSenha == "":
		erros.Adicionar("confirmPassword", "obrigatorio")
	case dados.ConfirmacaoSenha != dados.Senha:
		erros.Adicionar("confirmPassword", "as senhas nao conferem")
	}

	if err := erros.Err(); err != nil {
		return domain.Cadastro{}, err
	}
	return dados, nil
}

func validarCredenciais(cred domain.Credenciais) (domain.Credenciais, error) {
	erros := &domain.ErroValidacao{}

	cred.Email = strings.ToLower(strings.TrimSpace(cred.Email))
	if cred.Email == "" {
		erros.Adicionar("email", "obrigatorio")
	}
	if cred.Senha == "" {
		erros.Adicionar("password", "obrigatorio")
	}

	if err := erros.Err(); err != nil {
		return domain.Credenciais{}, err
	}
	return cred, nil
}

// emailValido exige um endereço puro, sem nome de exibição ("Ana <ana@x.com>" é rejeitado).
func emailValido(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
