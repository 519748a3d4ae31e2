package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"
	ENV_PATH    = "./res/.env"

	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMongo    = "mongo"

	DefaultSQLiteBusyTimeout = 5 * time.Second
)

// Environment variables that override the YAML file.
const (
	EnvDatabaseType = "FILMDB_DATABASE_TYPE"
	EnvSQLitePath   = "FILMDB_SQLITE_PATH"
	EnvPostgresDSN  = "FILMDB_POSTGRES_DSN"
	EnvMongoDSN     = "FILMDB_MONGODB_DSN"
	EnvLogLevel     = "FILMDB_LOG_LEVEL"
	EnvPort         = "FILMDB_PORT"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName    string    `yaml:"service_name" validate:"required"`
	LogLevel       string    `yaml:"loglevel" validate:"required"`
	Host           string    `yaml:"host"`
	Port           string    `yaml:"port" validate:"required"`
	PrivateKeyPath string    `yaml:"private_key_path"`
	MaxFilmLimit   int       `yaml:"max_film_limit" validate:"gte=0"`
	RateLimit      RateLimit `yaml:"rate_limit"`
	Database       Database  `yaml:"database"`
}

// RateLimit configures the login limiter. A zero RequestsPerSecond disables it.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

type Database struct {
	Type        string   `yaml:"type" validate:"required,oneof=sqlite postgres mongo"`
	ValidTables []string `yaml:"valid_tables" validate:"required,min=1"`
	ValidFields []string `yaml:"valid_fields" validate:"required,min=1"`
	// For SQLite
	SQLite SQLiteConfig `yaml:"sqlite_config"`
	// For PostgreSQL
	Postgres PostgresConfig `yaml:"postgres_config"`
	// For MongoDB
	MongoDB MongoDBConfig `yaml:"mongodb_config"`
}

// SQLiteConfig points at the database file that lives next to the service.
type SQLiteConfig struct {
	Path        string        `yaml:"path"`
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

type PostgresConfig struct {
	DSN     string                `yaml:"dsn"`
	Options PostgresServerOptions `yaml:"postgres_server_options"`
}

type MongoDBConfig struct {
	DSN     string             `yaml:"dsn"`
	Timeout time.Duration      `yaml:"timeout"`
	Options MongoServerOptions `yaml:"mongo_server_options"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// LoadEnvFile loads key=value pairs from envPath into the process environment.
// A missing file is not an error; variables already set are not overwritten.
func LoadEnvFile(envPath string) error {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", envPath, err)
	}
	return nil
}

// ApplyEnvOverrides replaces configuration values with the FILMDB_* variables that are set.
func (c *ServiceConfig) ApplyEnvOverrides() {
	if v := os.Getenv(EnvDatabaseType); v != "" {
		c.Database.Type = v
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		c.Database.SQLite.Path = v
	}
	if v := os.Getenv(EnvPostgresDSN); v != "" {
		c.Database.Postgres.DSN = v
	}
	if v := os.Getenv(EnvMongoDSN); v != "" {
		c.Database.MongoDB.DSN = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		c.Port = v
	}
}

// Validate checks the struct tags and the settings of the selected database backend.
func (c *ServiceConfig) Validate(validator *structValidator.Validate) error {
	if err := validator.Struct(c); err != nil {
		var errs structValidator.ValidationErrors
		if errors.As(err, &errs) {
			return fmt.Errorf("validation error: %s", errs)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	switch c.Database.Type {
	case DatabaseSQLite:
		if c.Database.SQLite.Path == "" {
			return fmt.Errorf("validation error: sqlite_config.path is required for database type %s", c.Database.Type)
		}
	case DatabasePostgres:
		if c.Database.Postgres.DSN == "" {
			return fmt.Errorf("validation error: postgres_config.dsn is required for database type %s", c.Database.Type)
		}
	case DatabaseMongo:
		if c.Database.MongoDB.DSN == "" {
			return fmt.Errorf("validation error: mongodb_config.dsn is required for database type %s", c.Database.Type)
		}
	}
	return nil
}

// SQLiteDSN builds the modernc.org/sqlite data source name for the database file.
func (c SQLiteConfig) SQLiteDSN() string {
	timeout := c.BusyTimeout
	if timeout <= 0 {
		timeout = DefaultSQLiteBusyTimeout
	}
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", c.Path, timeout.Milliseconds())
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
