package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

type Config struct {
	Debug   bool    `yaml:"debug" env:"DEBUG"`
	Limiter Limiter `yaml:"limiter"`
	Server  Server  `yaml:"server"`
	Catalog Catalog `yaml:"catalog"`
	Storage Storage `yaml:"storage"`
	Search  Search  `yaml:"search"`
	Tasks   Tasks   `yaml:"tasks"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Server struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"5s"`
}

type Catalog struct {
	BaseURL      string        `yaml:"base_url" env-default:"https://api.themoviedb.org/3"`
	ImageBaseURL string        `yaml:"image_base_url" env-default:"https://image.tmdb.org/t/p"`
	APIKey       string        `yaml:"api_key" env:"TMDB_API_KEY" env-required:"true"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
}

type Storage struct {
	Driver      string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"`
	Key         string        `yaml:"key" env-default:"favorites"`
	SaveTimeout time.Duration `yaml:"save_timeout" env-default:"2s"`
	File        FileStorage   `yaml:"file"`
	DB          DB            `yaml:"db"`
	Redis       Redis         `yaml:"redis"`
}

type FileStorage struct {
	Path string `yaml:"path" env-default:"data/moviehub.json"`
}

type DB struct {
	Dsn             string        `yaml:"dsn" env:"DB_DSN"`
	MaxConns        int           `yaml:"max_conns" env-default:"4"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
	Prefix   string `yaml:"prefix" env-default:"moviehub:"`
}

type Search struct {
	Debounce time.Duration `yaml:"debounce" env-default:"500ms"`
}

type Tasks struct {
	MaxWorkers   int `yaml:"max_workers" env-default:"2"`
	MaxQueueSize int `yaml:"max_queue_size" env-default:"16"`
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configPath, then the environment (optionally seeded from a
// .env file in the working directory) which takes precedence.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageFile, StorageRedis, StorageMemory:
	case StoragePostgres:
		if c.Storage.DB.Dsn == "" {
			return fmt.Errorf("storage.db.dsn is required for the %s driver", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
