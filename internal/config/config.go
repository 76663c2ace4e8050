package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	LogLevel      string `yaml:"log-level" env:"BINGO_LOG_LEVEL" env-default:"info"`
	StorageKey    string `yaml:"storage-key" env:"BINGO_STORAGE_KEY" env-default:"apprentice-bingo-storage"`
	Storage       string `yaml:"storage" env:"BINGO_STORAGE" env-default:"memory"`
	Redis         Redis  `yaml:"redis"`
	PhrasesFile   string `yaml:"phrases-file" env:"BINGO_PHRASES_FILE"`
	DefaultMode   string `yaml:"default-mode" env:"BINGO_DEFAULT_MODE" env-default:"line"`
	DefaultTarget int    `yaml:"default-target" env:"BINGO_DEFAULT_TARGET" env-default:"5"`
	Seed          string `yaml:"seed" env:"BINGO_SEED"`
}

type Redis struct {
	Host string `yaml:"host" env:"BINGO_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"BINGO_REDIS_PORT" env-default:"6379"`
}

// Load reads path and applies environment overrides. A missing file falls
// back to defaults and the environment.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
