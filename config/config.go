package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Feed      FeedConfig      `mapstructure:"feed"`
	OrderBook OrderBookConfig `mapstructure:"orderbook"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

// FeedConfig configures the Coinranking watchlist poll.
type FeedConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"` // RapidAPI key
	Host    string        `mapstructure:"host"`    // RapidAPI host header
	Limit   int           `mapstructure:"limit"`   // number of coins in the watchlist
	Timeout time.Duration `mapstructure:"timeout"`
	Poll    string        `mapstructure:"poll"` // cron spec, e.g. "@every 30s"
}

// OrderBookConfig configures the Binance depth poll for the selected symbol.
type OrderBookConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Depth   int           `mapstructure:"depth"`  // levels requested from the exchange
	Levels  int           `mapstructure:"levels"` // levels kept per side
	Timeout time.Duration `mapstructure:"timeout"`
	Poll    string        `mapstructure:"poll"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // "memory", "file", "sqlite", "postgres" or "s3"
	Key    string `mapstructure:"key"`    // storage key holding the alert collection
	Path   string `mapstructure:"path"`   // directory for "file", database file for "sqlite"
	Bucket string `mapstructure:"bucket"` // s3 only
	Prefix string `mapstructure:"prefix"` // s3 only
}

type NotifierConfig struct {
	SoundURL  string `mapstructure:"sound_url"`  // URL dashboards play on a trigger
	SoundFile string `mapstructure:"sound_file"` // file served at SoundURL (optional)
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DevMode      bool          `mapstructure:"dev_mode"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads .env, then config.yaml next to the binary, and overrides with environment variables.
// A missing config.yaml is not fatal; defaults apply.
func Load() *Config {
	// .env is optional; keys there become plain environment variables
	_ = godotenv.Load()

	var dir string
	if p := os.Getenv("ALERTMONITOR_CONFIG_DIR"); p != "" {
		dir = p
	} else {
		ex, _ := os.Executable()
		if strings.Contains(ex, "go-build") {
			pwd, _ := os.Getwd()
			dir = filepath.Join(pwd, "../../config")
		} else {
			dir = filepath.Join(filepath.Dir(ex), "../config")
		}
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// LoadFrom reads config.yaml from dir (if present) on top of the defaults.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	// Support environment variables with dot notation (e.g., FEED_API_KEY)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("feed.base_url", "https://coinranking1.p.rapidapi.com")
	v.SetDefault("feed.api_key", "")
	v.SetDefault("feed.host", "coinranking1.p.rapidapi.com")
	v.SetDefault("feed.limit", 10)
	v.SetDefault("feed.timeout", 5*time.Second)
	v.SetDefault("feed.poll", "@every 30s")

	v.SetDefault("orderbook.base_url", "https://api.binance.com/api/v3")
	v.SetDefault("orderbook.depth", 10)
	v.SetDefault("orderbook.levels", 5)
	v.SetDefault("orderbook.timeout", 5*time.Second)
	v.SetDefault("orderbook.poll", "@every 5s")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.key", "crypto_alerts")
	v.SetDefault("storage.path", "data")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.prefix", "pricealert/")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "pricealert")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.ssm_prefix", "/pricealert/db")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)

	v.SetDefault("notifier.sound_url", "/alert-beep.mp3")
	v.SetDefault("notifier.sound_file", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.dev_mode", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")
}
