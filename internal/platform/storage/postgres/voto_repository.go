package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/enquetes/internal/domain"
)

// VotoRepository guarda votos e expõe as contagens agregadas usadas na apuração.
type VotoRepository struct {
	db *gorm.DB
}

func NewVotoRepository(db *gorm.DB) *VotoRepository {
	return &VotoRepository{db: db}
}

type votoModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	EnqueteID    string    `gorm:"column:enquete_id"`
	OpcaoID      string    `gorm:"column:opcao_id"`
	UsuarioID    *string   `gorm:"column:usuario_id"`
	EleitorUnico *string   `gorm:"column:eleitor_unico"`
	CriadoEm     time.Time `gorm:"column:criado_em"`
}

func (votoModel) TableName() string {
	return "votos"
}

func fromDomainVoto(v domain.Voto) votoModel {
	model := votoModel{
		ID:           string(v.ID),
		EnqueteID:    string(v.EnqueteID),
		OpcaoID:      string(v.OpcaoID),
		EleitorUnico: v.EleitorUnico,
		CriadoEm:     v.CriadoEm,
	}
	if v.UsuarioID != nil {
		usuario := string(*v.UsuarioID)
		model.UsuarioID = &usuario
	}
	return model
}

// Registrar devolve domain.ErrDuplicado quando o índice (enquete_id, eleitor_unico) rejeita o voto.
func (r *VotoRepository) Registrar(ctx context.Context, voto domain.Voto) error {
	model := fromDomainVoto(voto)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("gorm votos: inserir: %w", traduzirErro(err))
	}
	return nil
}

func (r *VotoRepository) ExisteVoto(ctx context.Context, enqueteID domain.EnqueteID, usuarioID domain.UsuarioID) (bool, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&votoModel{}).
		Where("enquete_id = ? AND usuario_id = ?", enqueteID, usuarioID).
		Count(&total).Error; err != nil {
		return false, fmt.Errorf("gorm votos: existe voto: %w", err)
	}
	return total > 0, nil
}

func (r *VotoRepository) TotalPorOpcao(ctx context.Context, enqueteID domain.EnqueteID) (map[domain.OpcaoID]int64, error) {
	type resultado struct {
		OpcaoID string
		Total   int64
	}
	var res []resultado
	if err := r.db.WithContext(ctx).
		Model(&votoModel{}).
		Select("opcao_id as opcao_id, COUNT(*) as total").
		Where("enquete_id = ?", enqueteID).
		Group("opcao_id").
		Scan(&res).Error; err != nil {
		return nil, fmt.Errorf("gorm votos: total opcao: %w", err)
	}

	totais := make(map[domain.OpcaoID]int64, len(res))
	for _, item := range res {
		totais[domain.OpcaoID(item.OpcaoID)] = item.Total
	}
	return totais, nil
}

// TotaisPorEnquete agrupa numa consulta só; enquetes sem votos ficam fora do mapa.
func (r *VotoRepository) TotaisPorEnquete(ctx context.Context, ids []domain.EnqueteID) (map[domain.EnqueteID]int64, error) {
	totais := make(map[domain.EnqueteID]int64, len(ids))
	if len(ids) == 0 {
		return totais, nil
	}

	type resultado struct {
		EnqueteID string
		Total     int64
	}
	var res []resultado
	if err := r.db.WithContext(ctx).
		Model(&votoModel{}).
		Select("enquete_id as enquete_id, COUNT(*) as total").
		Where("enquete_id IN ?", ids).
		Group("enquete_id").
		Scan(&res).Error; err != nil {
		return nil, fmt.Errorf("gorm votos: totais enquete: %w", err)
	}

	for _, item := range res {
		totais[domain.EnqueteID(item.EnqueteID)] = item.Total
	}
	return totais, nil
}

var _ domain.VotoRepository = (*VotoRepository)(nil)
