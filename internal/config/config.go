// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
// административного бэкенда издания.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	BootstrapAdmin          `yaml:"bootstrap_admin"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	Log                     `yaml:"log"`
	Publishing              `yaml:"publishing"`
	LoginRate               `yaml:"login_rate"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1h"`
}

// BootstrapAdmin учётная запись администратора, создаваемая при пустой таблице admins.
type BootstrapAdmin struct {
	AdminUsername string `yaml:"username" env:"BOOTSTRAP_ADMIN_USERNAME"`
	AdminPassword string `yaml:"password" env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кэш.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"10m"`
}

// RabbitMQ настройки публикации событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQExchange   string        `yaml:"exchange" env-default:"publication.events"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Log настройки файла журнала. Пустое имя файла оставляет только stdout.
type Log struct {
	File       string `yaml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env-default:"50"`
	MaxBackups int    `yaml:"max_backups" env-default:"7"`
	MaxAgeDays int    `yaml:"max_age_days" env-default:"14"`
}

// Publishing настройки публикации выпусков и загрузок.
type Publishing struct {
	MinYear          int      `yaml:"min_year" env-default:"1998"`
	MaxYear          int      `yaml:"max_year" env-default:"2050"`
	IssueEpochYear   int      `yaml:"issue_epoch_year" env-default:"1998"`
	StorageRoot      string   `yaml:"storage_root" env:"PUBLIC_DIR" env-default:"./public"`
	MaxPDFBytes      int64    `yaml:"max_pdf_bytes" env-default:"10485760"`
	MaxWorkbookBytes int64    `yaml:"max_workbook_bytes" env-default:"20971520"`
	NewsSeries       []Series `yaml:"news_series"`
}

// Series описывает одну серию PDF-выпусков.
type Series struct {
	Name      string `yaml:"name"`
	Path      string `yaml:"path"`
	EpochYear int    `yaml:"epoch_year"`
	Dir       string `yaml:"dir"`
}

// LoginRate ограничение частоты запросов на вход.
type LoginRate struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"5"`
}

// DefaultSeries серии новостей, используемые когда в конфиге список пуст.
func DefaultSeries() []Series {
	return []Series{
		{Name: "news", Path: "news", EpochYear: 1991, Dir: "crpdfnet"},
		{Name: "russiannews", Path: "russiannews", EpochYear: 2011, Dir: "crpdfnet/cis"},
	}
}

// MustLoad функция для загрузки конфига. Перед чтением YAML подхватывает .env, если он есть.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("cannot read .env: %s", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Load читает конфиг из файла и проверяет его.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	if len(cfg.NewsSeries) == 0 {
		cfg.NewsSeries = DefaultSeries()
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("min_year %d is greater than max_year %d", c.MinYear, c.MaxYear)
	}
	seen := make(map[string]struct{}, len(c.NewsSeries))
	for _, s := range c.NewsSeries {
		if s.Name == "" || s.Path == "" || s.Dir == "" {
			return fmt.Errorf("news series must have name, path and dir")
		}
		if s.EpochYear <= 0 {
			return fmt.Errorf("news series %s: epoch_year must be positive", s.Name)
		}
		if _, ok := seen[s.Name]; ok {
			return fmt.Errorf("news series %s declared twice", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
