package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TIMESHEET_DB_HOST.
const EnvPrefix = "TIMESHEET"

// Config is the application-wide configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Timesheet TimesheetConfig `mapstructure:"timesheet"`
	Client    ClientConfig    `mapstructure:"client"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port      int             `mapstructure:"port"`
	BaseURL   string          `mapstructure:"base_url"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	BodyLimit int64           `mapstructure:"body_limit"` // bytes
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig per-IP fixed window limit
type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// DatabaseConfig PostgreSQL settings
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig cache settings
type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	SummaryTTL time.Duration `mapstructure:"summary_ttl"`
}

// AuthConfig JWT settings
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	Issuer         string        `mapstructure:"issuer"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TimesheetConfig carries the hour-accounting rules shared by the server
// and the terminal client.
type TimesheetConfig struct {
	Timezone             string  `mapstructure:"timezone"`
	DailyCapHours        float64 `mapstructure:"daily_cap_hours"`
	WeeklyTargetHours    float64 `mapstructure:"weekly_target_hours"`
	EmployeeHorizonWeeks int     `mapstructure:"employee_horizon_weeks"`
	AdminHorizonWeeks    int     `mapstructure:"admin_horizon_weeks"`
	FetchMonthsBack      int     `mapstructure:"fetch_months_back"`
	FetchWeeksForward    int     `mapstructure:"fetch_weeks_forward"`
	TrailingWeeks        int     `mapstructure:"trailing_weeks"`
}

// Location resolves Timezone, falling back to the host zone.
func (c *TimesheetConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timesheet.timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ClientConfig REST client settings used by the terminal client
type ClientConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	Token      string        `mapstructure:"token"`
	UserID     string        `mapstructure:"user_id"`
}

// SetDefaults registers every default on v. Keys without a default are
// invisible to environment overrides, so secrets get an empty one.
func SetDefaults(v *viper.Viper) {
	// ── server ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate_limit.limit", 120)
	v.SetDefault("server.rate_limit.window", "1m")
	v.SetDefault("server.body_limit", 1<<20)

	// ── db ──
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "timesheet")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	// ── redis ──
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.summary_ttl", "5m")

	// ── auth ──
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "12h")
	v.SetDefault("auth.issuer", "timesheet")

	// ── log ──
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── timesheet ──
	v.SetDefault("timesheet.timezone", "Local")
	v.SetDefault("timesheet.daily_cap_hours", 8.0)
	v.SetDefault("timesheet.weekly_target_hours", 40.0)
	v.SetDefault("timesheet.employee_horizon_weeks", 3)
	v.SetDefault("timesheet.admin_horizon_weeks", 27)
	v.SetDefault("timesheet.fetch_months_back", 3)
	v.SetDefault("timesheet.fetch_weeks_forward", 1)
	v.SetDefault("timesheet.trailing_weeks", 4)

	// ── client ──
	v.SetDefault("client.base_url", "http://localhost:8080/api/v1")
	v.SetDefault("client.timeout", "10s")
	v.SetDefault("client.max_retries", 3)
	v.SetDefault("client.token", "")
	v.SetDefault("client.user_id", "")
}

// BindEnv wires the TIMESHEET_ environment overrides into v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from file and environment.
// Precedence: environment > config file > defaults. A .env file in the
// working directory is loaded into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	BindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// no file: defaults and environment only
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode unmarshals v into a Config without validating it.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("invalid config: auth.jwt_secret is required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("invalid config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be within 1-65535")
	}
	return c.Timesheet.Validate()
}

// Validate checks the accounting rules.
func (c *TimesheetConfig) Validate() error {
	if c.DailyCapHours <= 0 {
		return fmt.Errorf("invalid config: timesheet.daily_cap_hours must be positive")
	}
	if c.WeeklyTargetHours <= 0 {
		return fmt.Errorf("invalid config: timesheet.weekly_target_hours must be positive")
	}
	if c.EmployeeHorizonWeeks < 0 || c.AdminHorizonWeeks < 0 {
		return fmt.Errorf("invalid config: timesheet horizons must not be negative")
	}
	if c.FetchMonthsBack < 0 || c.FetchWeeksForward < 0 {
		return fmt.Errorf("invalid config: timesheet fetch range must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
