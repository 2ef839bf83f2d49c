package config

import (
	"log/slog"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	MethodJaccard = "jaccard"
	MethodRatio   = "ratio"
)

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	Environment     string `mapstructure:"environment"`
	ReadTimeout     string `mapstructure:"read_timeout"`
	WriteTimeout    string `mapstructure:"write_timeout"`
	IdleTimeout     string `mapstructure:"idle_timeout"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	AddSource bool   `mapstructure:"add_source"`
}

// RequestLogConfig controls the plain-text log the REST handlers append to.
// Distinct from the structured application log on stdout.
type RequestLogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
	Database  string `mapstructure:"database"`
}

type ChatConfig struct {
	Method    string  `mapstructure:"method"`
	Threshold float64 `mapstructure:"threshold"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	RequestLog RequestLogConfig `mapstructure:"request_log"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Chat       ChatConfig       `mapstructure:"chat"`
}

// EffectiveThreshold returns the configured match threshold, falling back to
// the per-method default (0.6 for jaccard, 0.7 for ratio) when unset.
func (c ChatConfig) EffectiveThreshold() float64 {
	if c.Threshold > 0 {
		return c.Threshold
	}
	if c.Method == MethodRatio {
		return 0.7
	}
	return 0.6
}

func Load() (*Config, error) {
	viper.SetDefault("server.environment", EnvDev)
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "5s")
	viper.SetDefault("logging.level", LogLevelInfo)
	viper.SetDefault("logging.add_source", true)
	viper.SetDefault("request_log.enabled", true)
	viper.SetDefault("request_log.path", "./logs/chatbot.log")
	viper.SetDefault("storage.upload_dir", "./uploads")
	viper.SetDefault("storage.database", "./faqs.db")
	viper.SetDefault("chat.method", MethodJaccard)
	viper.SetDefault("chat.threshold", 0.0)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
					validation.Field(&sc.ReadTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&sc.WriteTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&sc.IdleTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&sc.ShutdownTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.RequestLog,
			validation.By(func(value interface{}) error {
				rc, ok := value.(RequestLogConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a RequestLogConfig")
				}
				if rc.Enabled && rc.Path == "" {
					return validation.NewError("validation_missing_path", "request log path required when enabled")
				}
				return nil
			}),
		),
		validation.Field(&c.Storage,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(StorageConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a StorageConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.UploadDir, validation.Required),
					validation.Field(&sc.Database, validation.Required),
				)
			}),
		),
		validation.Field(&c.Chat,
			validation.Required,
			validation.By(func(value interface{}) error {
				cc, ok := value.(ChatConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ChatConfig")
				}
				return validation.ValidateStruct(&cc,
					validation.Field(&cc.Method,
						validation.Required,
						validation.In(MethodJaccard, MethodRatio),
					),
					validation.Field(&cc.Threshold,
						validation.Min(0.0),
						validation.Max(1.0),
					),
				)
			}),
		),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if _, err := time.ParseDuration(durationStr); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	return nil
}
