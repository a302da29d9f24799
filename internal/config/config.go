// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"chatapi/internal/constants"
	"chatapi/internal/utils"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL string `validate:"required"`
	// DBSchema - схема, в которой лежат таблицы messages, groups, group_members.
	// Берётся только из конфигурации, никогда из запроса.
	DBSchema           string `validate:"required,sqlident"`
	DeletedMessageText string `validate:"required"`
	AppEnv             string `validate:"oneof=dev prod test"`
	LogLevel           string `validate:"oneof=debug info warn error"`
	Port               string `validate:"required,numeric"`
	FunctionName       string

	DBMaxOpenConns    int           `validate:"min=1"`
	DBMaxIdleConns    int           `validate:"min=0"`
	DBConnMaxLifetime time.Duration `validate:"min=0"`
	ShutdownTimeout   time.Duration `validate:"min=1s"`

	// Заполняются из DATABASE_URL, используются только для логов.
	DBHost string
	DBPort string
	DBName string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_SCHEMA", constants.DEFAULT_DB_SCHEMA)
	v.SetDefault("DELETED_MESSAGE_TEXT", constants.DEFAULT_DELETED_MESSAGE_TEXT)
	v.SetDefault("ENV", constants.ENV_DEV)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("FUNCTION_NAME", "chat-api")
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_MAX_IDLE_CONNS", 20)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        strings.TrimSpace(v.GetString("DATABASE_URL")),
		DBSchema:           strings.TrimSpace(v.GetString("DB_SCHEMA")),
		DeletedMessageText: v.GetString("DELETED_MESSAGE_TEXT"),
		AppEnv:             strings.ToLower(v.GetString("ENV")),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		Port:               v.GetString("PORT"),
		FunctionName:       v.GetString("FUNCTION_NAME"),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:  v.GetDuration("DB_CONN_MAX_LIFETIME"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	validate, err := newValidator()
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	if parsedURL, err := url.Parse(cfg.DatabaseURL); err == nil && parsedURL.Host != "" {
		cfg.DBHost = parsedURL.Hostname()
		cfg.DBPort = parsedURL.Port()
		if cfg.DBPort == "" {
			cfg.DBPort = "5432"
		}
		cfg.DBName = strings.TrimPrefix(parsedURL.Path, "/")
	}

	slog.Info("Конфигурация загружена.",
		"env", cfg.AppEnv,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"db_schema", cfg.DBSchema)
	return cfg, nil
}

func newValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return utils.IsValidIdentifier(fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка регистрации правила sqlident: %w", err)
	}
	return validate, nil
}

// IsProduction сообщает, запущено ли приложение в production окружении.
func (c *Config) IsProduction() bool {
	return c.AppEnv == constants.ENV_PROD
}
