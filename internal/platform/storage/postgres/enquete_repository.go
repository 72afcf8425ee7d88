package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/enquetes/internal/domain"
)

// EnqueteRepository mapeia o cabeçalho da enquete; opções e votos têm repositórios próprios.
type EnqueteRepository struct {
	db *gorm.DB
}

func NewEnqueteRepository(db *gorm.DB) *EnqueteRepository {
	return &EnqueteRepository{db: db}
}

type enqueteModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	Titulo           string     `gorm:"column:titulo"`
	Descricao        string     `gorm:"column:descricao"`
	CriadorID        *string    `gorm:"column:criador_id"`
	Ativa            bool       `gorm:"column:ativa"`
	ExpiraEm         *time.Time `gorm:"column:expira_em"`
	PermiteMultiplos bool       `gorm:"column:permite_multiplos"`
	CriadoEm         time.Time  `gorm:"column:criado_em"`
	AtualizadoEm     time.Time  `gorm:"column:atualizado_em"`
}

func (enqueteModel) TableName() string {
	return "enquetes"
}

func (m enqueteModel) toDomain() domain.Enquete {
	e := domain.Enquete{
		ID:               domain.EnqueteID(m.ID),
		Titulo:           m.Titulo,
		Descricao:        m.Descricao,
		Ativa:            m.Ativa,
		ExpiraEm:         m.ExpiraEm,
		PermiteMultiplos: m.PermiteMultiplos,
		CriadoEm:         m.CriadoEm,
		AtualizadoEm:     m.AtualizadoEm,
	}
	if m.CriadorID != nil {
		criador := domain.UsuarioID(*m.CriadorID)
		e.CriadorID = &criador
	}
	return e
}

func fromDomainEnquete(e domain.Enquete) enqueteModel {
	model := enqueteModel{
		ID:               string(e.ID),
		Titulo:           e.Titulo,
		Descricao:        e.Descricao,
		Ativa:            e.Ativa,
		ExpiraEm:         e.ExpiraEm,
		PermiteMultiplos: e.PermiteMultiplos,
		CriadoEm:         e.CriadoEm,
		AtualizadoEm:     e.AtualizadoEm,
	}
	if e.CriadorID != nil {
		criador := string(*e.CriadorID)
		model.CriadorID = &criador
	}
	return model
}

func (r *EnqueteRepository) Create(ctx context.Context, e domain.Enquete) error {
	model := fromDomainEnquete(e)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("gorm enquete: inserir: %w", traduzirErro(err))
	}
	return nil
}

func (r *EnqueteRepository) Update(ctx context.Context, e domain.Enquete) error {
	model := fromDomainEnquete(e)
	res := r.db.WithContext(ctx).Model(&enqueteModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"titulo":        model.Titulo,
			"descricao":     model.Descricao,
			"ativa":         model.Ativa,
			"expira_em":     model.ExpiraEm,
			"atualizado_em": model.AtualizadoEm,
		})
	if res.Error != nil {
		return fmt.Errorf("gorm enquete: atualizar: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete apaga votos, opções e a enquete na mesma transação.
func (r *EnqueteRepository) Delete(ctx context.Context, id domain.EnqueteID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enquete_id = ?", id).Delete(&votoModel{}).Error; err != nil {
			return fmt.Errorf("gorm enquete: remover votos: %w", err)
		}
		if err := tx.Where("enquete_id = ?", id).Delete(&opcaoModel{}).Error; err != nil {
			return fmt.Errorf("gorm enquete: remover opcoes: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&enqueteModel{})
		if res.Error != nil {
			return fmt.Errorf("gorm enquete: remover: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *EnqueteRepository) FindByID(ctx context.Context, id domain.EnqueteID) (domain.Enquete, error) {
	var model enqueteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err = traduzirErro(err); errors.Is(err, domain.ErrNotFound) {
			return domain.Enquete{}, err
		}
		return domain.Enquete{}, fmt.Errorf("gorm enquete: buscar id: %w", err)
	}
	return model.toDomain(), nil
}

// List devolve o cabeçalho de todas as enquetes, opcionalmente restrito a um criador.
// Filtro textual, ordenação e paginação ficam com a camada de consulta.
func (r *EnqueteRepository) List(ctx context.Context, criadorID domain.UsuarioID) ([]domain.Enquete, error) {
	var models []enqueteModel
	q := r.db.WithContext(ctx)
	if criadorID != "" {
		q = q.Where("criador_id = ?", criadorID)
	}
	if err := q.Order("criado_em DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm enquete: listar: %w", err)
	}

	result := make([]domain.Enquete, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

var _ domain.EnqueteRepository = (*EnqueteRepository)(nil)
