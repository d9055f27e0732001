package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env-default:"9090"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env-default:"./tictactoe.db"`
	JWTSecretKey      string `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	Oracle            Oracle `yaml:"oracle"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Oracle struct {
	BaseURL        string   `yaml:"base-url" env-default:"https://openrouter.ai/api/v1"`
	Model          string   `yaml:"model" env-default:"openai/gpt-4o-mini"`
	APIKeys        []string `yaml:"api-keys" env:"ORACLE_API_KEYS"`
	MaxAttempts    int      `yaml:"max-attempts" env-default:"3"`
	TimeoutSeconds int      `yaml:"timeout-seconds" env-default:"10"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Oracle) Timeout() time.Duration {
	return time.Duration(that.TimeoutSeconds) * time.Second
}
