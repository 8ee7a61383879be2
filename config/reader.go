package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type ConfigSchema struct {
	Backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
	Store struct {
		// postgres | sqlite | mongo
		Driver string `yaml:"driver"`
	} `yaml:"store"`
	Databases struct {
		Master     DBConfig   `yaml:"master"`
		Replicas   []DBConfig `yaml:"replicas"`
		SQLitePath string     `yaml:"sqlite_path"`
	} `yaml:"db"`
	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`
	Redis struct {
		Host     string        `yaml:"host"`
		Port     int           `yaml:"port"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		CardTTL  time.Duration `yaml:"card_ttl"`
	} `yaml:"redis"`
	RabbitMQ struct {
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"rabbitmq"`
	Auth struct {
		JWTSecret string        `yaml:"jwt_secret"`
		TokenTTL  time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`
	Cors struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Admin struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"admin"`
	Logs struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logs"`
}

var AppConfig *ConfigSchema

// LoadDotEnvs подгружает .env файлы: .env.<env>.local, .env.local, .env.<env>, .env.
// Уже выставленные переменные окружения не перезаписываются.
func LoadDotEnvs() {
	env := os.Getenv("BESTIES_ENV")
	if env == "" {
		env = "dev"
	}
	_ = godotenv.Load(".env." + env + ".local")
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load(".env")
}

// LoadConfig читает yaml, накладывает переменные окружения и значения по умолчанию
func LoadConfig(filePath string) error {
	LoadDotEnvs()

	conf := &ConfigSchema{}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, conf); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	conf.applyEnv()
	conf.applyDefaults()
	if err = conf.Validate(); err != nil {
		return err
	}
	AppConfig = conf
	return nil
}

// Default возвращает конфигурацию без файла, только env и значения по умолчанию
func Default() *ConfigSchema {
	conf := &ConfigSchema{}
	conf.applyEnv()
	conf.applyDefaults()
	return conf
}

func (c *ConfigSchema) applyEnv() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Databases.Master.Password = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		c.RabbitMQ.URL = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("BACKEND_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Backend.Port = port
		}
	}
}

func (c *ConfigSchema) applyDefaults() {
	if c.Backend.Port == 0 {
		c.Backend.Port = 8080
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "postgres"
	}
	if c.Databases.Master.Port == 0 {
		c.Databases.Master.Port = 5432
	}
	for i := range c.Databases.Replicas {
		if c.Databases.Replicas[i].Port == 0 {
			c.Databases.Replicas[i].Port = 5432
		}
	}
	if c.Databases.SQLitePath == "" {
		c.Databases.SQLitePath = "besties.db"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "besties"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.CardTTL == 0 {
		c.Redis.CardTTL = 10 * time.Minute
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "social_events"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if len(c.Cors.AllowedOrigins) == 0 {
		c.Cors.AllowedOrigins = []string{"http://localhost:4200"}
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}

// Validate проверяет то, без чего сервер не запустится
func (c *ConfigSchema) Validate() error {
	switch c.Store.Driver {
	case "postgres":
		if c.Databases.Master.Host == "" {
			return fmt.Errorf("master database configuration is missing")
		}
	case "mongo":
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo uri is missing")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("jwt secret must be at least 32 characters")
	}
	return nil
}
