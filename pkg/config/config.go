package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SHOPCARTS_DB_DSN"
	EnvDBHost = "SHOPCARTS_DB_HOST"
	EnvDBUser = "SHOPCARTS_DB_USER"
	EnvDBName = "SHOPCARTS_DB_NAME"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Auth         AuthConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPCARTS_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPCARTS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOPCARTS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPCARTS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPCARTS_DB_DSN"`
	Driver string `envconfig:"SHOPCARTS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPCARTS_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPCARTS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPCARTS_DB_USER"`
	LegacyPassword string `envconfig:"SHOPCARTS_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPCARTS_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPCARTS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPCARTS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPCARTS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPCARTS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPCARTS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

// AuthConfig carries the shared secret for the API-key gate. An empty key
// means every gated request is denied.
type AuthConfig struct {
	APIKey string `envconfig:"SHOPCARTS_API_KEY"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPCARTS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		return fmt.Errorf("%s is required when the sqlite driver is selected", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
