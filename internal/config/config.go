package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type TradeConfig struct {
	Env           string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer    `yaml:"http_server"`
	TradeDB       `yaml:"trade_db"`
	KafkaService  `yaml:"kafka_service"`
	ChainExecutor `yaml:"chain_executor"`
	Asset         `yaml:"asset"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type TradeDB struct {
	Dsn string `yaml:"dsn" env:"TRADE_DB_DSN"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"trade-events"`
}

type ChainExecutor struct {
	BaseURL string        `yaml:"base_url" env:"CHAIN_EXECUTOR_URL"`
	APIKey  string        `yaml:"api_key" env:"CHAIN_EXECUTOR_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env-default:"12s"`
}

type Asset struct {
	ContractAddress string `yaml:"contract_address"`
	Decimals        int    `yaml:"decimals" env-default:"6"`
	Chain           string `yaml:"chain" env-default:"polygon"`
}

func MustLoad() *TradeConfig {
	configPath := os.Getenv("TRADE_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("TRADE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg TradeConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
