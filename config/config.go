package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseDSN string
	TgToken     string
	ListenAddr  string
	PublicURL   string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton config loaded from .env once.
func GetConfig() *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil {
			log.Println("no .env file, using environment")
		}

		config = &Config{
			DatabaseDSN: os.Getenv("DB_DSN"),
			TgToken:     os.Getenv("TG_TOKEN"),
			ListenAddr:  os.Getenv("LISTEN_ADDR"),
			PublicURL:   os.Getenv("PUBLIC_URL"),
		}
		if config.ListenAddr == "" {
			config.ListenAddr = ":8005"
		}
		if config.PublicURL == "" {
			config.PublicURL = "https://statsdata.org"
		}
	})
	return config
}
