package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/tienda/pkg/config"
	pkgdb "github.com/Skotchmaster/tienda/pkg/db"
)

type ServiceConfig struct {
	config.Config
}

// LoadDotEnv reads path into the environment. A missing file only produces a
// notice; the process environment is used as is.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		slog.Info("notice: .env file not loaded, using system environment variables", "path", path, "error", err)
	}
}

func Load() (ServiceConfig, error) {
	cfg := config.Load()

	err := errors.Join(
		config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL"),
		config.OneOf(cfg.DatabaseDriver, "DB_DRIVER", pkgdb.DriverMySQL, pkgdb.DriverPostgres, pkgdb.DriverSQLite),
	)
	if cfg.PortMaxAttempts < 1 {
		err = errors.Join(err, fmt.Errorf("env PORT_MAX_ATTEMPTS=%d must be >= 1", cfg.PortMaxAttempts))
	}
	if err != nil {
		return ServiceConfig{}, err
	}
	return ServiceConfig{Config: cfg}, nil
}

// DesiredPort picks the port the search starts from: the first CLI argument
// if given, otherwise cfg.Port (PORT or 3001).
func (cfg ServiceConfig) DesiredPort(args []string) (int, error) {
	if len(args) == 0 || args[0] == "" {
		return cfg.Port, nil
	}
	port, err := strconv.Atoi(args[0])
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid port %q", args[0])
	}
	return port, nil
}
