package models

import "os"

type EnvConfig struct {
	DatabaseURL string
	Port        string
	Debug       bool
}

func ReadEnvConfig() EnvConfig {
	port := os.Getenv("CLUBHOUSE_PORT")
	if port == "" {
		port = "8080"
	}
	return EnvConfig{
		DatabaseURL: os.Getenv("CLUBHOUSE_DATABASE_URL"),
		Port:        port,
		Debug:       os.Getenv("CLUBHOUSE_DEBUG") == "true",
	}
}
