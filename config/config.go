package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	WhatsApp struct {
		ApiVersion            string `json:"api_version"`
		TimeoutSeconds        int    `json:"timeout_seconds"`
		ConnectTimeoutSeconds int    `json:"connect_timeout_seconds"`
	} `json:"whatsapp"`

	Agent struct {
		Model string `json:"model"`
	} `json:"agent"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.WhatsApp.ApiVersion == "" {
		c.WhatsApp.ApiVersion = "v22.0"
	}
	if c.WhatsApp.TimeoutSeconds <= 0 {
		c.WhatsApp.TimeoutSeconds = 30
	}
	if c.WhatsApp.ConnectTimeoutSeconds <= 0 {
		c.WhatsApp.ConnectTimeoutSeconds = 10
	}

	return c
}
