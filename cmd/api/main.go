// Executável principal da API: carrega a configuração, inicializa dependências e sobe o servidor HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcelojr/enquetes/internal/app/auth"
	"github.com/marcelojr/enquetes/internal/app/httpapi"
	"github.com/marcelojr/enquetes/internal/app/voting"
	"github.com/marcelojr/enquetes/internal/domain"
	"github.com/marcelojr/enquetes/internal/platform/clock"
	"github.com/marcelojr/enquetes/internal/platform/config"
	"github.com/marcelojr/enquetes/internal/platform/health"
	"github.com/marcelojr/enquetes/internal/platform/ids"
	"github.com/marcelojr/enquetes/internal/platform/limitador"
	"github.com/marcelojr/enquetes/internal/platform/logger"
	"github.com/marcelojr/enquetes/internal/platform/migrations"
	postgresstorage "github.com/marcelojr/enquetes/internal/platform/storage/postgres"
	redisstorage "github.com/marcelojr/enquetes/internal/platform/storage/redis"
)

func main() {
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

	if cfg.AutoMigrate {
		if err := migrations.Run(db); err != nil {
			logger.Fatal("falha na migracao automatica", "err", err)
		}
	}

	// Sem REDIS_ADDR o cliente fica nil e o login roda sem limite de tentativas.
	redisClient, err := redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("falha ao conectar no redis", "err", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var lim domain.Limitador = limitador.NewNoop()
	if cfg.LoginRateLimitEnabled && redisClient != nil {
		lim = limitador.NewRedisRateLimiter(redisClient, cfg.LoginRateLimitMaxAttempts, cfg.LoginRateLimitWindow(), cfg.LoginRateLimitKeyPrefix)
	} else if cfg.LoginRateLimitEnabled {
		logger.Warn("limite de login desligado: redis nao configurado")
	}

	clockSystem := clock.NewSystemClock()
	idGen := ids.NewGenerator()
	usuarios := postgresstorage.NewUsuarioRepository(db)

	enquetes := voting.NewService(
		postgresstorage.NewEnqueteRepository(db),
		postgresstorage.NewOpcaoRepository(db),
		postgresstorage.NewVotoRepository(db),
		clockSystem,
		idGen,
		voting.Politica{
			EnquetesAnonimas: cfg.AnonymousPollsEnabled,
			VotosAnonimos:    cfg.AnonymousVotesEnabled,
		},
	)
	autenticacao := auth.NewService(usuarios, lim, auth.NewEmissor(cfg.JWTSecret, cfg.JWTTTL), clockSystem, idGen)

	mux := http.NewServeMux()
	checker := health.NewChecker(sqlDB, redisClient)

	api := httpapi.New(enquetes, autenticacao, logger.L())
	api.Register(mux)
	mux.HandleFunc("GET /healthz", checker.LiveHandler())
	mux.HandleFunc("GET /readyz", checker.ReadyHandler())
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           api.Handler(mux, cfg.CORSAllowedOrigin),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api ouvindo", "addr", cfg.HTTPAddress, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("erro no servidor", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("encerrando api")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("falha no encerramento", "err", err)
	}
}
