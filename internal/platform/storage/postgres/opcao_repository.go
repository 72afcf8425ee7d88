package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/enquetes/internal/domain"
)

// OpcaoRepository persiste as opções de uma enquete preservando a ordem de cadastro.
type OpcaoRepository struct {
	db *gorm.DB
}

func NewOpcaoRepository(db *gorm.DB) *OpcaoRepository {
	return &OpcaoRepository{db: db}
}

type opcaoModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	EnqueteID string    `gorm:"column:enquete_id"`
	Texto     string    `gorm:"column:texto"`
	Posicao   int       `gorm:"column:posicao"`
	CriadoEm  time.Time `gorm:"column:criado_em"`
}

func (opcaoModel) TableName() string {
	return "opcoes"
}

func (m opcaoModel) toDomain() domain.Opcao {
	return domain.Opcao{
		ID:        domain.OpcaoID(m.ID),
		EnqueteID: domain.EnqueteID(m.EnqueteID),
		Texto:     m.Texto,
		Posicao:   m.Posicao,
		CriadoEm:  m.CriadoEm,
	}
}

func fromDomainOpcao(o domain.Opcao) opcaoModel {
	return opcaoModel{
		ID:        string(o.ID),
		EnqueteID: string(o.EnqueteID),
		Texto:     o.Texto,
		Posicao:   o.Posicao,
		CriadoEm:  o.CriadoEm,
	}
}

// BulkCreate grava todas as opções num único INSERT; a enquete informada prevalece sobre a das opções.
func (r *OpcaoRepository) BulkCreate(ctx context.Context, enqueteID domain.EnqueteID, opcoes []domain.Opcao) error {
	if len(opcoes) == 0 {
		return nil
	}
	models := make([]opcaoModel, len(opcoes))
	for i, o := range opcoes {
		o.EnqueteID = enqueteID
		models[i] = fromDomainOpcao(o)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("gorm opcoes: inserir lote: %w", traduzirErro(err))
	}
	return nil
}

func (r *OpcaoRepository) ListByEnquete(ctx context.Context, enqueteID domain.EnqueteID) ([]domain.Opcao, error) {
	var models []opcaoModel
	if err := r.db.WithContext(ctx).
		Where("enquete_id = ?", enqueteID).
		Order("posicao ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm opcoes: listar: %w", err)
	}

	result := make([]domain.Opcao, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

var _ domain.OpcaoRepository = (*OpcaoRepository)(nil)
