package domain

import (
	"time"
)

type (
	EnqueteID string
	OpcaoID   string
	VotoID    string
	UsuarioID string
)

type Enquete struct {
	ID               EnqueteID  `gorm:"column:id;type:char(26);primaryKey"`
	Titulo           string     `gorm:"column:titulo;type:text;not null"`
	Descricao        string     `gorm:"column:descricao;type:text"`
	CriadorID        *UsuarioID `gorm:"column:criador_id;type:char(26);index:idx_enquetes_criador"`
	Ativa            bool       `gorm:"column:ativa;not null;default:true"`
	ExpiraEm         *time.Time `gorm:"column:expira_em"`
	PermiteMultiplos bool       `gorm:"column:permite_multiplos;not null;default:false"`
	Opcoes           []Opcao    `gorm:"foreignKey:EnqueteID;constraint:OnDelete:CASCADE"`
	CriadoEm         time.Time  `gorm:"column:criado_em;autoCreateTime"`
	AtualizadoEm     time.Time  `gorm:"column:atualizado_em;autoUpdateTime"`
}

// PertenceA indica se o usuário é o criador da enquete. Enquetes anônimas não têm dono.
func (e Enquete) PertenceA(usuario UsuarioID) bool {
	return e.CriadorID != nil && usuario != "" && *e.CriadorID == usuario
}

type Opcao struct {
	ID        OpcaoID   `gorm:"column:id;type:char(26);primaryKey"`
	EnqueteID EnqueteID `gorm:"column:enquete_id;type:char(26);not null;index:idx_opcoes_enquete"`
	Texto     string    `gorm:"column:texto;type:text;not null"`
	Posicao   int       `gorm:"column:posicao;not null"`
	CriadoEm  time.Time `gorm:"column:criado_em;autoCreateTime"`
}

// Voto é imutável. EleitorUnico só é preenchido quando a enquete aceita um voto por usuário,
// e o índice único (enquete_id, eleitor_unico) garante a regra no banco.
type Voto struct {
	ID           VotoID     `gorm:"column:id;type:char(26);primaryKey"`
	EnqueteID    EnqueteID  `gorm:"column:enquete_id;type:char(26);not null;index:idx_votos_enquete;uniqueIndex:idx_votos_eleitor_unico,priority:1"`
	OpcaoID      OpcaoID    `gorm:"column:opcao_id;type:char(26);not null;index:idx_votos_opcao"`
	UsuarioID    *UsuarioID `gorm:"column:usuario_id;type:char(26);index:idx_votos_usuario"`
	EleitorUnico *string    `gorm:"column:eleitor_unico;type:char(26);uniqueIndex:idx_votos_eleitor_unico,priority:2"`
	CriadoEm     time.Time  `gorm:"column:criado_em;autoCreateTime"`
}

type Usuario struct {
	ID           UsuarioID `gorm:"column:id;type:char(26);primaryKey"`
	Email        string    `gorm:"column:email;type:text;not null;uniqueIndex:idx_usuarios_email"`
	Username     string    `gorm:"column:username;type:text;not null"`
	SenhaHash    string    `gorm:"column:senha_hash;type:text;not null"`
	CriadoEm     time.Time `gorm:"column:criado_em;autoCreateTime"`
	AtualizadoEm time.Time `gorm:"column:atualizado_em;autoUpdateTime"`
}

func (Enquete) TableName() string { return "enquetes" }

func (Opcao) TableName() string { return "opcoes" }

func (Voto) TableName() string { return "votos" }

func (Usuario) TableName() string { return "usuarios" }

type EstadoEnquete string

const (
	EstadoAtiva    EstadoEnquete = "active"
	EstadoExpirada EstadoEnquete = "expired"
	EstadoInativa  EstadoEnquete = "inactive"
)

type ResultadoOpcao struct {
	OpcaoID    OpcaoID
	Texto      string
	Votos      int64
	Percentual int
}

// Apuracao é sempre derivada dos votos gravados; nunca é persistida.
type Apuracao struct {
	Opcoes      []ResultadoOpcao
	TotalVotos  int64
	VencedoraID *OpcaoID
}

type EnqueteDetalhada struct {
	Enquete
	Estado   EstadoEnquete
	Apuracao Apuracao
}

type CampoOrdenacao string

const (
	OrdenarPorCriacao     CampoOrdenacao = "createdAt"
	OrdenarPorAtualizacao CampoOrdenacao = "updatedAt"
	OrdenarPorTotalVotos  CampoOrdenacao = "totalVotes"
	OrdenarPorTitulo      CampoOrdenacao = "title"
)

type Direcao string

const (
	DirecaoAsc  Direcao = "asc"
	DirecaoDesc Direcao = "desc"
)

type FiltroEnquetes struct {
	Busca      string
	Ativa      *bool
	CriadorID  UsuarioID
	OrdenarPor CampoOrdenacao
	Direcao    Direcao
	Pagina     int
	Limite     int
}

type PaginaEnquetes struct {
	Itens        []EnqueteDetalhada
	Total        int
	Pagina       int
	Limite       int
	TotalPaginas int
}

type NovaEnquete struct {
	Titulo           string
	Descricao        string
	Opcoes           []string
	PermiteMultiplos bool
	ExpiraEm         *time.Time
}

type EdicaoEnquete struct {
	Titulo   string
	ExpiraEm *time.Time
}

type NovoVoto struct {
	EnqueteID EnqueteID
	OpcaoID   OpcaoID
	EleitorID *UsuarioID
}

type Cadastro struct {
	Email            string
	Username         string
	Senha            string
	ConfirmacaoSenha string
}

type Credenciais struct {
	Email string
	Senha string
	IP    string
}

type Sessao struct {
	Usuario Usuario
	Token   string
}
