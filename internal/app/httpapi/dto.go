package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/marcelojr/enquetes/internal/domain"
)

const tamanhoMaximoCorpo = 1 << 20

type registroRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type usuarioResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type criarEnqueteRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Options            []string   `json:"options"`
	AllowMultipleVotes bool       `json:"allowMultipleVotes"`
	ExpiresAt          *time.Time `json:"expiresAt"`
}

type editarEnqueteRequest struct {
	Title     string     `json:"title"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type votoRequest struct {
	OptionID string `json:"optionId"`
}

type votoResponse struct {
	VoteID   string `json:"voteId"`
	PollID   string `json:"pollId"`
	OptionID string `json:"optionId"`
}

type opcaoResponse struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Votes      int64  `json:"votes"`
	Percentage int    `json:"percentage"`
}

type enqueteResponse struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description,omitempty"`
	CreatorID          *string         `json:"creatorId"`
	IsActive           bool            `json:"isActive"`
	Status             string          `json:"status"`
	AllowMultipleVotes bool            `json:"allowMultipleVotes"`
	ExpiresAt          *time.Time      `json:"expiresAt,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	Options            []opcaoResponse `json:"options"`
	TotalVotes         int64           `json:"totalVotes"`
	WinnerOptionID     *string         `json:"winnerOptionId"`
}

// decodificar limita o corpo e devolve errPayloadInvalido para JSON malformado.
func decodificar(w http.ResponseWriter, r *http.Request, destino any) error {
	r.Body = http.MaxBytesReader(w, r.Body, tamanhoMaximoCorpo)
	if err := json.NewDecoder(r.Body).Decode(destino); err != nil {
		return fmt.Errorf("%w: %v", errPayloadInvalido, err)
	}
	return nil
}

func paraUsuarioResponse(u domain.Usuario, token string) usuarioResponse {
	return usuarioResponse{
		ID:        string(u.ID),
		Email:     u.Email,
		Username:  u.Username,
		Token:     token,
		CreatedAt: u.CriadoEm,
		UpdatedAt: u.AtualizadoEm,
	}
}

func paraEnqueteResponse(e domain.EnqueteDetalhada) enqueteResponse {
	res := enqueteResponse{
		ID:                 string(e.ID),
		Title:              e.Titulo,
		Description:        e.Descricao,
		IsActive:           e.Estado == domain.EstadoAtiva,
		Status:             string(e.Estado),
		AllowMultipleVotes: e.PermiteMultiplos,
		ExpiresAt:          e.ExpiraEm,
		CreatedAt:          e.CriadoEm,
		UpdatedAt:          e.AtualizadoEm,
		Options:            make([]opcaoResponse, len(e.Apuracao.Opcoes)),
		TotalVotes:         e.Apuracao.TotalVotos,
	}
	if e.CriadorID != nil {
		criador := string(*e.CriadorID)
		res.CreatorID = &criador
	}
	if e.Apuracao.VencedoraID != nil {
		vencedora := string(*e.Apuracao.VencedoraID)
		res.WinnerOptionID = &vencedora
	}
	for i, opcao := range e.Apuracao.Opcoes {
		res.Options[i] = opcaoResponse{
			ID:         string(opcao.OpcaoID),
			Text:       opcao.Texto,
			Votes:      opcao.Votos,
			Percentage: opcao.Percentual,
		}
	}
	return res
}
