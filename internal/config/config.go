package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Order    OrderConfig    `mapstructure:"order"`
	Log      LogConfig      `mapstructure:"log"`
	Render   RenderConfig   `mapstructure:"render"`
}

// StorageConfig selects the slot backend and the slot names
type StorageConfig struct {
	Backend   string `mapstructure:"backend"` // memory, redis or postgres
	BasketKey string `mapstructure:"basket_key"`
	OrderKey  string `mapstructure:"order_key"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN renders the pgx connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
	)
}

// CatalogConfig points at an alternative catalog. URL wins over Path; with
// neither set the built-in catalog is used.
type CatalogConfig struct {
	Path    string `mapstructure:"path"`
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"` // Seconds
}

// OrderConfig controls how order dates and times are displayed
type OrderConfig struct {
	DateLayout string `mapstructure:"date_layout"`
	TimeLayout string `mapstructure:"time_layout"`
	Timezone   string `mapstructure:"timezone"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type RenderConfig struct {
	Output string `mapstructure:"output"` // File the basket markup is written to, empty to skip
}

// Load loads config.yaml from the current directory with environment variable overrides
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return load(v)
}

// LoadFile loads configuration from an explicit file path
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}
	if c.Storage.BasketKey == "" || c.Storage.OrderKey == "" {
		return errors.New("storage slot names must not be empty")
	}
	if c.Storage.BasketKey == c.Storage.OrderKey {
		return errors.New("basket and order slots must differ")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.basket_key", "basket")
	v.SetDefault("storage.order_key", "lastOrder")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "fruitshop:slot:")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "fruitshop")
	v.SetDefault("database.user", "fruitshop_user")
	v.SetDefault("database.password", "fruitshop_pass")

	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.timeout", 10)

	v.SetDefault("order.date_layout", "1/2/2006")
	v.SetDefault("order.time_layout", "3:04:05 PM")
	v.SetDefault("order.timezone", "Local")

	v.SetDefault("log.level", "info")

	v.SetDefault("render.output", "")
}
