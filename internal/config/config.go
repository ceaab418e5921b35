package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port              string
	MongoURI          string
	MongoDB           string
	AccessTokenSecret string
	CORSOrigin        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	return &Config{
		Port:              getenv("PORT", "8000"),
		MongoURI:          getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getenv("MONGO_DB", "notes_app"),
		AccessTokenSecret: getenv("ACCESS_TOKEN_SECRET", ""),
		CORSOrigin:        getenv("CORS_ORIGIN", "*"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
