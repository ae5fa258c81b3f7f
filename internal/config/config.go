package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/storeplan/planning-backend-go/internal/domain/storehours"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"db"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Manager  ManagerConfig  `mapstructure:"manager"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Planning PlanningConfig `mapstructure:"planning"`
	Export   ExportConfig   `mapstructure:"export"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int      `mapstructure:"port"`
	Env         string   `mapstructure:"env"`
	LogLevel    string   `mapstructure:"log_level"`
	LogFile     string   `mapstructure:"log_file"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string        `mapstructure:"secret"`
	AccessExpiration time.Duration `mapstructure:"access_expiration"`
}

// ManagerConfig is the single account allowed to use the API.
type ManagerConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type SMTPConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromEmail   string `mapstructure:"from_email"`
	FromName    string `mapstructure:"from_name"`
	Concurrency int    `mapstructure:"concurrency"`
}

type StorageConfig struct {
	Driver       string        `mapstructure:"driver"`
	LocalPath    string        `mapstructure:"local_path"`
	BaseURL      string        `mapstructure:"base_url"`
	S3Bucket     string        `mapstructure:"s3_bucket"`
	S3Region     string        `mapstructure:"s3_region"`
	S3Endpoint   string        `mapstructure:"s3_endpoint"`
	S3AccessKey  string        `mapstructure:"s3_access_key"`
	S3SecretKey  string        `mapstructure:"s3_secret_key"`
	S3PathStyle  bool          `mapstructure:"s3_path_style"`
	S3PresignTTL time.Duration `mapstructure:"s3_presign_ttl"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type PlanningConfig struct {
	// DefaultHours overrides weekdays of the standard table, e.g. sunday: "10:00-13:00".
	DefaultHours map[string]string `mapstructure:"default_hours"`
	// MonthlyDefaultClosures makes monthly totals skip days closed by the default table too.
	MonthlyDefaultClosures bool `mapstructure:"monthly_default_closures"`
}

type ExportConfig struct {
	Retention     time.Duration `mapstructure:"retention"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

// Load reads .env (if present), the optional YAML file at configPath and the environment.
// Environment variables use the upper-cased key with "_" separators (DB_HOST, SMTP_PORT...).
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/planning")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_file", "")
	v.SetDefault("app.cors_origins", []string{"*"})

	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "planning")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_conns", 10)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_expiration", "12h")

	v.SetDefault("manager.username", "manager")
	v.SetDefault("manager.password_hash", "")

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from_email", "")
	v.SetDefault("smtp.from_name", "Planning")
	v.SetDefault("smtp.concurrency", 4)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_path", "./storage")
	v.SetDefault("storage.base_url", "/files")
	v.SetDefault("storage.s3_bucket", "")
	v.SetDefault("storage.s3_region", "")
	v.SetDefault("storage.s3_endpoint", "")
	v.SetDefault("storage.s3_access_key", "")
	v.SetDefault("storage.s3_secret_key", "")
	v.SetDefault("storage.s3_path_style", false)
	v.SetDefault("storage.s3_presign_ttl", "24h")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("planning.default_hours", map[string]string{})
	v.SetDefault("planning.monthly_default_closures", false)

	v.SetDefault("export.retention", "720h")
	v.SetDefault("export.purge_interval", "1h")
}

// bindLegacyEnv keeps the short variable names used by existing deployments.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("app.log_level", "LOG_LEVEL", "APP_LOG_LEVEL")
	_ = v.BindEnv("app.log_file", "LOG_FILE", "APP_LOG_FILE")
	_ = v.BindEnv("db.url", "DATABASE_URL", "DB_URL")
	_ = v.BindEnv("db.sslmode", "DB_SSL_MODE", "DB_SSLMODE")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET_KEY", "JWT_SECRET")
	_ = v.BindEnv("jwt.access_expiration", "JWT_ACCESS_EXPIRATION_TIME", "JWT_ACCESS_EXPIRATION")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DB_HOST is required")
	}

	switch c.Storage.Driver {
	case "local":
		if c.Storage.LocalPath == "" {
			return fmt.Errorf("STORAGE_LOCAL_PATH is required for the local storage driver")
		}
	case "s3":
		if c.Storage.S3Bucket == "" || c.Storage.S3Region == "" {
			return fmt.Errorf("STORAGE_S3_BUCKET and STORAGE_S3_REGION are required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.SMTP.Concurrency < 1 {
		return fmt.Errorf("SMTP_CONCURRENCY must be at least 1")
	}
	if c.Export.Retention <= 0 {
		return fmt.Errorf("EXPORT_RETENTION must be positive")
	}

	if _, err := c.DefaultStoreHours(); err != nil {
		return err
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// DefaultStoreHours returns the standard weekly table with the configured weekdays replaced.
func (c *Config) DefaultStoreHours() (storehours.DefaultHours, error) {
	return storehours.StandardDefaultHours().WithOverrides(c.Planning.DefaultHours)
}
