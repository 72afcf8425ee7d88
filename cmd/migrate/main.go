// Aplica ou desfaz migrations fora do ciclo da API, para ambientes com AUTO_MIGRATE desligado.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/marcelojr/enquetes/internal/platform/config"
	"github.com/marcelojr/enquetes/internal/platform/logger"
	"github.com/marcelojr/enquetes/internal/platform/migrations"
	postgresstorage "github.com/marcelojr/enquetes/internal/platform/storage/postgres"
)

func main() {
	rollback := flag.Bool("rollback", false, "desfaz a ultima migration aplicada")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuracao invalida", "err", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	db, err := postgresstorage.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.Fatal("falha ao conectar no banco", "driver", cfg.DBDriver, "err", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("falha ao resgatar sql.DB", "err", err)
	}
	defer sqlDB.Close()

	if *rollback {
		if err := migrations.Rollback(db); err != nil {
			logger.Fatal("falha no rollback", "err", err)
		}
		logger.Info("rollback concluido")
		return
	}

	if err := migrations.Run(db); err != nil {
		logger.Fatal("falha na migracao", "err", err)
	}
	logger.Info("migrations aplicadas", "driver", cfg.DBDriver)
}
