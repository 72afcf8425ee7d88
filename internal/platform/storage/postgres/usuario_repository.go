package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/enquetes/internal/domain"
)

type UsuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

type usuarioModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email"`
	Username     string    `gorm:"column:username"`
	SenhaHash    string    `gorm:"column:senha_hash"`
	CriadoEm     time.Time `gorm:"column:criado_em"`
	AtualizadoEm time.Time `gorm:"column:atualizado_em"`
}

func (usuarioModel) TableName() string {
	return "usuarios"
}

func (m usuarioModel) toDomain() domain.Usuario {
	return domain.Usuario{
		ID:           domain.UsuarioID(m.ID),
		Email:        m.Email,
		Username:     m.Username,
		SenhaHash:    m.SenhaHash,
		CriadoEm:     m.CriadoEm,
		AtualizadoEm: m.AtualizadoEm,
	}
}

// Email é gravado em minúsculas para que a unicidade não dependa da caixa digitada.
func (r *UsuarioRepository) Create(ctx context.Context, u domain.Usuario) error {
	model := usuarioModel{
		ID:           string(u.ID),
		Email:        normalizarEmail(u.Email),
		Username:     u.Username,
		SenhaHash:    u.SenhaHash,
		CriadoEm:     u.CriadoEm,
		AtualizadoEm: u.AtualizadoEm,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("gorm usuario: inserir: %w", traduzirErro(err))
	}
	return nil
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id domain.UsuarioID) (domain.Usuario, error) {
	return r.buscar(ctx, "id = ?", string(id))
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (domain.Usuario, error) {
	return r.buscar(ctx, "email = ?", normalizarEmail(email))
}

func (r *UsuarioRepository) buscar(ctx context.Context, cond string, valor string) (domain.Usuario, error) {
	var model usuarioModel
	if err := r.db.WithContext(ctx).First(&model, cond, valor).Error; err != nil {
		if err = traduzirErro(err); errors.Is(err, domain.ErrNotFound) {
			return domain.Usuario{}, err
		}
		return domain.Usuario{}, fmt.Errorf("gorm usuario: buscar: %w", err)
	}
	return model.toDomain(), nil
}

func normalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ domain.UsuarioRepository = (*UsuarioRepository)(nil)
