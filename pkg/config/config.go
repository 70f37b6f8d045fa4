package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is the envconfig prefix shared by every variable.
	EnvPrefix = "ARVOREDO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	// DefaultStorePath is the filename the store has lived in since the
	// first release.
	DefaultStorePath = "arvoredo.db"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ARVOREDO_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"ARVOREDO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ARVOREDO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path string `envconfig:"ARVOREDO_DB_PATH" default:"arvoredo.db"`

	// BusyTimeoutMS guards against transient SQLITE_BUSY while another
	// process (e.g. cmd/migrate) holds the file.
	BusyTimeoutMS int `envconfig:"ARVOREDO_DB_BUSY_TIMEOUT_MS" default:"5000"`
}

// DSN renders the SQLite connection string for the configured store file.
func (db DBConfig) DSN() string {
	path := db.Path
	if path == "" {
		path = DefaultStorePath
	}
	if db.BusyTimeoutMS > 0 {
		return fmt.Sprintf("%s?_busy_timeout=%d", path, db.BusyTimeoutMS)
	}
	return path
}

type FeatureFlagsConfig struct {
	// AutoMigrate runs the embedded goose migrations on startup. On by
	// default: the desktop binary owns its store file and must be able to
	// create it on first launch.
	AutoMigrate bool `envconfig:"ARVOREDO_AUTO_MIGRATE" default:"true"`
}
