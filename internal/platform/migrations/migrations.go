// Pacote migrations centraliza as versões gormigrate do schema das enquetes.
package migrations

import (
	"fmt"

	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/marcelojr/enquetes/internal/domain"
)

func lista() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202501150001_init_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&domain.Usuario{}, &domain.Enquete{}, &domain.Opcao{}, &domain.Voto{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("votos", "opcoes", "enquetes", "usuarios")
			},
		},
		{
			// Listagem padrão ordena por criação; o índice evita sort completo no Postgres.
			ID: "202501150002_idx_enquetes_criado_em",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_enquetes_criado_em ON enquetes (criado_em)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_enquetes_criado_em").Error
			},
		},
	}
}

func novo(db *gorm.DB) (*gormigrate.Gormigrate, error) {
	if db == nil {
		return nil, fmt.Errorf("migrations: db nulo")
	}
	return gormigrate.New(db, gormigrate.DefaultOptions, lista()), nil
}

func Run(db *gorm.DB) error {
	m, err := novo(db)
	if err != nil {
		return err
	}
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrations: falha ao aplicar: %w", err)
	}
	return nil
}

// Rollback desfaz somente a última versão aplicada.
func Rollback(db *gorm.DB) error {
	m, err := novo(db)
	if err != nil {
		return err
	}
	if err := m.RollbackLast(); err != nil {
		return fmt.Errorf("migrations: falha ao reverter: %w", err)
	}
	return nil
}
