package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса, читается из config.toml
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Tracing       TracingConfig       `toml:"tracing"`
	Academy       AcademyConfig       `toml:"academy"`
	Auth          AuthConfig          `toml:"auth"`
	UserService   ServiceClientConfig `toml:"user_service"`
	WalletService ServiceClientConfig `toml:"wallet_service"`
	Notifications NotificationsConfig `toml:"notifications"`
	Cache         CacheConfig         `toml:"cache"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"` // пусто - только stdout
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	Endpoint    string  `toml:"endpoint"`
	SampleRatio float64 `toml:"sample_ratio"`
}

// AcademyConfig параметры академии
type AcademyConfig struct {
	ID                   int64  `toml:"id"`
	TimeZone             string `toml:"time_zone"`
	FreeCancellationHour int    `toml:"free_cancellation_hour"`
	MaxHeatmapDays       int    `toml:"max_heatmap_days"`
	OperationTimeout     int    `toml:"operation_timeout"` // секунды на бронирование или разбор заявки
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
	Retries int    `toml:"retries"`
}

type NotificationsConfig struct {
	Timeout int         `toml:"timeout"` // секунды на одну доставку
	Kafka   KafkaConfig `toml:"kafka"`
	Email   EmailConfig `toml:"email"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type EmailConfig struct {
	Enabled  bool     `toml:"enabled"`
	Host     string   `toml:"host"`
	Port     int      `toml:"port"`
	Username string   `toml:"username"`
	Password string   `toml:"password"`
	From     string   `toml:"from"`
	To       []string `toml:"to"`
}

type CacheConfig struct {
	TTLSeconds int         `toml:"ttl_seconds"`
	Redis      RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// TTL время жизни записи кеша тепловой карты
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

const defaultFreeCancellationHour = 12

// Load читает config.toml, подмешивает секреты из окружения (.env необязателен),
// проставляет значения по умолчанию и проверяет результат
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	// 0 - допустимый час, поэтому значение по умолчанию ставим только при отсутствии ключа
	if !md.IsDefined("academy", "free_cancellation_hour") {
		cfg.Academy.FreeCancellationHour = defaultFreeCancellationHour
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DB_PASSWORD":    &c.Database.Password,
		"JWT_SECRET":     &c.Auth.JWTSecret,
		"SMTP_PASSWORD":  &c.Notifications.Email.Password,
		"REDIS_PASSWORD": &c.Cache.Redis.Password,
	}
	for key, dst := range overrides {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*dst = value
		}
	}
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 10)
	setInt(&c.Server.WriteTimeout, 10)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 15)

	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "court_booking")

	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1
	}

	setString(&c.Academy.TimeZone, "Australia/Sydney")
	setInt(&c.Academy.MaxHeatmapDays, 92)
	setInt(&c.Academy.OperationTimeout, 30)

	setInt(&c.UserService.Timeout, 5)
	setInt(&c.WalletService.Timeout, 5)
	setInt(&c.WalletService.Retries, 3)

	setInt(&c.Notifications.Timeout, 10)
	setString(&c.Notifications.Kafka.Topic, "booking-cancellations")
	setInt(&c.Notifications.Email.Port, 587)

	setInt(&c.Cache.TTLSeconds, 1800)
	setString(&c.Cache.Redis.Prefix, "heatmap")
}

// Validate отклоняет значения, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port out of range")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Academy.ID <= 0 {
		problems = append(problems, "academy.id must be positive")
	}
	if _, err := time.LoadLocation(c.Academy.TimeZone); err != nil {
		problems = append(problems, fmt.Sprintf("academy.time_zone: %v", err))
	}
	if c.Academy.FreeCancellationHour < 0 || c.Academy.FreeCancellationHour > 23 {
		problems = append(problems, "academy.free_cancellation_hour must be within 0..23")
	}
	if c.Academy.MaxHeatmapDays <= 0 {
		problems = append(problems, "academy.max_heatmap_days must be positive")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required (or JWT_SECRET)")
	}
	if c.UserService.URL == "" || c.WalletService.URL == "" {
		problems = append(problems, "user_service.url and wallet_service.url are required")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		problems = append(problems, "tracing.endpoint is required when tracing is enabled")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		problems = append(problems, "tracing.sample_ratio must be within 0..1")
	}
	if c.Notifications.Kafka.Enabled && len(c.Notifications.Kafka.Brokers) == 0 {
		problems = append(problems, "notifications.kafka.brokers are required when kafka is enabled")
	}
	if c.Notifications.Email.Enabled && (c.Notifications.Email.Host == "" || len(c.Notifications.Email.To) == 0) {
		problems = append(problems, "notifications.email.host and notifications.email.to are required when email is enabled")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		problems = append(problems, "cache.redis.addr is required when redis is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
