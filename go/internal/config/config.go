package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable holding the config file path
const PathEnv = "WEBLURK_CONFIG"

// DefaultPath is read when PathEnv is unset
const DefaultPath = "config.yaml"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Lurk     LurkConfig     `yaml:"lurk"`
	NATS     NATSConfig     `yaml:"nats"`
	Admin    AdminConfig    `yaml:"admin"`
	Agenda   AgendaConfig   `yaml:"agenda"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
}

// DatabaseConfig holds Postgres connection settings, read when the store
// driver is postgres
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the Postgres connection URL
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

func (d DatabaseConfig) validate() error {
	if d.Host == "" || d.Name == "" || d.User == "" {
		return errors.New("database host, name and user are required")
	}
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("invalid database port %d", d.Port)
	}
	switch d.SSLMode {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid database sslmode %q", d.SSLMode)
	}
	return nil
}

type LurkConfig struct {
	Interval      time.Duration `yaml:"interval"`
	CreditTimeout time.Duration `yaml:"credit_timeout"`
	// IdleTickLimit stops a timer after this many consecutive uncredited
	// ticks. Zero keeps timers running until the session ends.
	IdleTickLimit int `yaml:"idle_tick_limit"`
}

type NATSConfig struct {
	// URL is empty when events are not published
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type AdminConfig struct {
	BootstrapLogin    string `yaml:"bootstrap_login"`
	BootstrapPassword string `yaml:"bootstrap_password"`
}

type AgendaConfig struct {
	// Timezone decides which calendar day "today" is
	Timezone string `yaml:"timezone"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Store:  StoreConfig{Driver: StoreDriverPostgres},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Name:     "weblurk",
			SSLMode:  "disable",
		},
		Lurk: LurkConfig{
			Interval:      6 * time.Minute,
			CreditTimeout: 10 * time.Second,
		},
		NATS:   NATSConfig{SubjectPrefix: "weblurk.events"},
		Admin:  AdminConfig{BootstrapLogin: "ADM", BootstrapPassword: "123"},
		Agenda: AgendaConfig{Timezone: "UTC"},
		Log:    LogConfig{Level: "info", Console: true},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by WEBLURK_CONFIG, or config.yaml
func LoadFromEnv() (*Config, error) {
	return Load(getEnv(PathEnv, DefaultPath))
}

func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Store.Driver = getEnv("STORE_DRIVER", c.Store.Driver)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.NATS.URL = getEnv("NATS_URL", c.NATS.URL)
	c.NATS.SubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", c.NATS.SubjectPrefix)
	c.Admin.BootstrapLogin = getEnv("ADMIN_LOGIN", c.Admin.BootstrapLogin)
	c.Admin.BootstrapPassword = getEnv("ADMIN_PASSWORD", c.Admin.BootstrapPassword)
	c.Agenda.Timezone = getEnv("AGENDA_TIMEZONE", c.Agenda.Timezone)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)

	var err error
	if c.Database.Port, err = getEnvAsInt("DB_PORT", c.Database.Port); err != nil {
		return err
	}
	if c.Lurk.Interval, err = getEnvAsDuration("LURK_INTERVAL", c.Lurk.Interval); err != nil {
		return err
	}
	if c.Lurk.CreditTimeout, err = getEnvAsDuration("LURK_CREDIT_TIMEOUT", c.Lurk.CreditTimeout); err != nil {
		return err
	}
	if c.Lurk.IdleTickLimit, err = getEnvAsInt("LURK_IDLE_TICK_LIMIT", c.Lurk.IdleTickLimit); err != nil {
		return err
	}
	if c.Log.Console, err = getEnvAsBool("LOG_CONSOLE", c.Log.Console); err != nil {
		return err
	}
	return nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("invalid store driver %q", c.Store.Driver)
	}
	if c.Lurk.Interval <= 0 {
		return fmt.Errorf("lurk interval must be positive, got %s", c.Lurk.Interval)
	}
	if c.Lurk.CreditTimeout <= 0 {
		return fmt.Errorf("lurk credit timeout must be positive, got %s", c.Lurk.CreditTimeout)
	}
	if c.Lurk.IdleTickLimit < 0 {
		return fmt.Errorf("lurk idle tick limit must not be negative, got %d", c.Lurk.IdleTickLimit)
	}
	if strings.TrimSpace(c.Admin.BootstrapLogin) == "" || c.Admin.BootstrapPassword == "" {
		return errors.New("admin bootstrap login and password are required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Location resolves the agenda timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Agenda.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid agenda timezone %q: %w", c.Agenda.Timezone, err)
	}
	return loc, nil
}

// LogLevel parses log.level
func (c *Config) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
