// Pacote config centraliza o carregamento das variáveis de ambiente usadas pelos binários.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config agrega todos os parâmetros necessários para API e migrate.
type Config struct {
	HTTPAddress       string
	CORSAllowedOrigin string
	LogLevel          string

	DBDriver   string
	SQLitePath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LoginRateLimitEnabled       bool
	LoginRateLimitMaxAttempts   int
	LoginRateLimitWindowSeconds int
	LoginRateLimitKeyPrefix     string

	JWTSecret string
	JWTTTL    time.Duration

	AutoMigrate bool

	AnonymousPollsEnabled bool
	AnonymousVotesEnabled bool
}

// Load lê um .env opcional (arquivo ausente não é erro) e depois o ambiente. Variáveis já definidas
// no ambiente têm precedência sobre o arquivo.
func Load() (Config, error) {
	return LoadFrom(".env")
}

func LoadFrom(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: ler %s: %w", file, err)
		}
	}

	// Defaults priorizam execução local; variáveis permitem sobrescrever em Docker/K8s.
	cfg := Config{
		HTTPAddress:                 getEnv("HTTP_ADDRESS", ":8080"),
		CORSAllowedOrigin:           getEnv("CORS_ALLOWED_ORIGIN", "*"),
		LogLevel:                    getEnv("LOG_LEVEL", "info"),
		DBDriver:                    getEnv("DB_DRIVER", "postgres"),
		SQLitePath:                  getEnv("SQLITE_PATH", "enquetes.db"),
		PostgresHost:                getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:                getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:                getEnv("POSTGRES_USER", "enquetes"),
		PostgresPassword:            getEnv("POSTGRES_PASSWORD", "enquetes"),
		PostgresDB:                  getEnv("POSTGRES_DB", "enquetes"),
		PostgresSSLMode:             getEnv("POSTGRES_SSLMODE", "disable"),
		RedisAddr:                   os.Getenv("REDIS_ADDR"),
		RedisPassword:               os.Getenv("REDIS_PASSWORD"),
		LoginRateLimitEnabled:       getEnvAsBool("LOGIN_RATE_LIMIT_ENABLED", true),
		LoginRateLimitMaxAttempts:   getEnvAsInt("LOGIN_RATE_LIMIT_MAX", 5),
		LoginRateLimitWindowSeconds: getEnvAsInt("LOGIN_RATE_LIMIT_WINDOW", 60),
		LoginRateLimitKeyPrefix:     getEnv("LOGIN_RATE_LIMIT_PREFIX", "login"),
		JWTSecret:                   getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:                      time.Duration(getEnvAsInt("JWT_TTL_MINUTES", 60*24)) * time.Minute,
		AutoMigrate:                 getEnvAsBool("DB_AUTO_MIGRATE", true),
		AnonymousPollsEnabled:       getEnvAsBool("ANONYMOUS_POLLS_ENABLED", true),
		AnonymousVotesEnabled:       getEnvAsBool("ANONYMOUS_VOTES_ENABLED", true),
	}

	dbStr := getEnv("REDIS_DB", "0")
	dbInt, err := strconv.Atoi(dbStr)
	if err != nil {
		return Config{}, fmt.Errorf("config: REDIS_DB invalido: %w", err)
	}
	cfg.RedisDB = dbInt

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("config: DB_DRIVER %q nao suportado", cfg.DBDriver)
	}

	return cfg, nil
}

// DSN devolve a string de conexão do driver escolhido.
func (c Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return c.PostgresDSN()
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}

func (c Config) LoginRateLimitWindow() time.Duration {
	return time.Duration(c.LoginRateLimitWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	switch value {
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return true
	}
}
