package config

import "os"

type Config struct {
	Addr         string
	DatabaseURL  string
	JWTSecret    string
	APIBaseURL   string
	AllowOrigins string
}

func Load() Config {
	return Config{
		Addr:         ":" + getenv("PORT", "5000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    getenv("JWT_SECRET", "change-me"),
		APIBaseURL:   getenv("API_BASE_URL", "http://localhost:5000"),
		AllowOrigins: getenv("ALLOW_ORIGINS", "*"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
