package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for newsdb
type Config struct {
	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Logging
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
}

// DatabaseConfig holds database connection settings.
// Host, User, Password and Name come from DB_HOST, DB_USER, DB_PASS and DB_NAME.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required"`

	// Driver (mysql)
	Driver string `mapstructure:"driver" validate:"required"`

	// Timeout bounds dialing and the initial ping
	Timeout         time.Duration `mapstructure:"timeout"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// envBindings maps config keys to the environment variables read at connection time
var envBindings = map[string]string{
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASS",
	"database.name":     "DB_NAME",
	"log_level":         "NEWSDB_LOG_LEVEL",
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:            DBHost,
			Port:            DBPort,
			Driver:          DBDriver,
			Timeout:         DBTimeout,
			ConnMaxLifetime: DBConnMaxLifetime,
		},
		LogLevel: LogLevel,
	}
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error; variables already set are not overridden.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// BindEnv registers the DB_* environment variables with v
func BindEnv(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// SetDefaults registers the DefaultConfig values with v, so that bound flags
// left unset do not shadow them with zero values
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.timeout", d.Database.Timeout)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)
	v.SetDefault("log_level", d.LogLevel)
}

// ReadFile merges a YAML config file into v
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from viper into a Config struct
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	cfg := DefaultConfig()

	// Unmarshal viper config into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, describeField(fe))
	}
	return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
}

// newValidator names fields by their mapstructure tag, so a failure's
// namespace is the viper key
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// describeField turns a validator failure into a message naming the config key
func describeField(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	if env, ok := envBindings[key]; ok {
		key = fmt.Sprintf("%s (%s)", key, env)
	}
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s", key, fe.Tag(), fe.Param())
	}
}

// Addr returns host:port
func (d DatabaseConfig) Addr() string {
	port := d.Port
	if port == 0 {
		port = DBPort
	}
	return net.JoinHostPort(d.Host, strconv.Itoa(port))
}

// DSN builds the driver connection string.
// Statement values are never interpolated client side.
func (d DatabaseConfig) DSN() string {
	mc := mysql.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = d.Addr()
	mc.DBName = d.Name
	mc.ParseTime = true
	mc.InterpolateParams = false
	if d.Timeout > 0 {
		mc.Timeout = d.Timeout
	}
	return mc.FormatDSN()
}

// MaskedDSN returns the DSN with the password hidden, for display
func (d DatabaseConfig) MaskedDSN() string {
	masked := d
	if masked.Password != "" {
		masked.Password = "***"
	}
	return masked.DSN()
}
