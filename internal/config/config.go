package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = []struct {
	key string
	env string
}{
	{key: "words.remote.url", env: "WORD_API_URL"},
	{key: "database.password", env: "DB_PASSWORD"},
}

type Config struct {
	Words    WordsConfig    `mapstructure:"words"`
	History  HistoryConfig  `mapstructure:"history"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
}

type WordsConfig struct {
	// FallbackFile replaces the bundled word list when it is set.
	FallbackFile string       `mapstructure:"fallback_file" validate:"omitempty,file"`
	Remote       RemoteConfig `mapstructure:"remote"`
}

type RemoteConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url" validate:"required_if=Enabled true,omitempty,url"`
	Length        int           `mapstructure:"length" validate:"min=1,max=64"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts uint          `mapstructure:"retry_attempts" validate:"max=10"`
}

type HistoryBackend string

const (
	HistoryBackendNone  HistoryBackend = "none"
	HistoryBackendYAML  HistoryBackend = "yaml"
	HistoryBackendMySQL HistoryBackend = "mysql"
)

var AllHistoryBackends = []HistoryBackend{HistoryBackendNone, HistoryBackendYAML, HistoryBackendMySQL}

type HistoryConfig struct {
	Backend HistoryBackend `mapstructure:"backend" validate:"oneof=none yaml mysql"`
	File    string         `mapstructure:"file" validate:"required_if=Backend yaml"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
	// envFile is read for the bound environment variables that are not set in the process.
	envFile string
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordpick")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
		envFile:    ".env",
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("words.fallback_file", "")
	v.SetDefault("words.remote.enabled", true)
	v.SetDefault("words.remote.url", "https://random-word-api.herokuapp.com/word")
	v.SetDefault("words.remote.length", 5)
	v.SetDefault("words.remote.timeout", time.Duration(0))
	v.SetDefault("words.remote.retry_attempts", 0)
	v.SetDefault("history.backend", string(HistoryBackendNone))
	v.SetDefault("history.file", filepath.Join("history", "draws.yml"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "wordpick")
	v.SetDefault("database.username", "user")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})

	if err := loader.bindEnv(); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

func (loader *ConfigLoader) bindEnv() error {
	dotenv, err := godotenv.Read(loader.envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", loader.envFile, err)
	}

	for _, binding := range envBindings {
		if err := loader.viper.BindEnv(binding.key, binding.env); err != nil {
			return fmt.Errorf("failed to bind %s environment variable: %w", binding.env, err)
		}
		if _, ok := os.LookupEnv(binding.env); ok {
			continue
		}
		if value, ok := dotenv[binding.env]; ok {
			loader.viper.Set(binding.key, value)
		}
	}
	return nil
}
