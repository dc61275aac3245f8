package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Store settings
	DBDriver     string `mapstructure:"db_driver" validate:"required,oneof=sqlite mysql postgres"`
	DBDSN        string `mapstructure:"db_dsn" validate:"required"`
	TableName    string `mapstructure:"table_name" validate:"required,identifier"`
	CreateSchema bool   `mapstructure:"create_schema"`

	// Optional API settings
	APIHost string `mapstructure:"api_host" validate:"required"`
	APIPort int    `mapstructure:"api_port" validate:"min=1,max=65535"`

	// Optional logging settings
	LogLevel  string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=console json"`

	ConfigPath string `mapstructure:"-"`
}

const (
	EnvPrefix = "CLIENTBOOK"

	DefaultConfigPath   = "/etc/clientbook/config.yml"
	DefaultEnvFile      = ".env"
	DefaultDBDriver     = "sqlite"
	DefaultDBDSN        = "clientbook.sqlite3"
	DefaultTableName    = "clients"
	DefaultCreateSchema = true
	DefaultAPIHost      = "0.0.0.0"
	DefaultAPIPort      = 8080
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load reads configuration from defaults, then the YAML file at configPath,
// then CLIENTBOOK_* environment variables. A .env file in the working
// directory is loaded into the environment first when it exists.
//
// An empty configPath falls back to DefaultConfigPath, which may be absent.
// An explicit configPath must exist.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(DefaultEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("db_driver", DefaultDBDriver)
	v.SetDefault("db_dsn", DefaultDBDSN)
	v.SetDefault("table_name", DefaultTableName)
	v.SetDefault("create_schema", DefaultCreateSchema)
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	} else {
		configPath = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	// Variables already present in the environment win over the file.
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	return validate
}

func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid config: %s", describe(verrs[0]))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	key := keyFor(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "identifier":
		return fmt.Sprintf("%s must be a plain SQL identifier, got %q", key, fe.Value())
	case "min", "max":
		return fmt.Sprintf("%s must be between 1 and 65535, got %v", key, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
	}
}

var configKeys = map[string]string{
	"DBDriver":  "db_driver",
	"DBDSN":     "db_dsn",
	"TableName": "table_name",
	"APIHost":   "api_host",
	"APIPort":   "api_port",
	"LogLevel":  "log_level",
	"LogFormat": "log_format",
}

func keyFor(field string) string {
	if key, ok := configKeys[field]; ok {
		return key
	}
	return field
}

func (c *Config) IsDevMode() bool {
	return os.Getenv(EnvPrefix+"_DEV_MODE") == "1"
}
