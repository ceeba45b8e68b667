package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDriver string
	DBDSN    string

	UploadDir    string
	AllowOrigins string
	LogFile      string

	AuthSecret   string
	AuthIssuer   string
	AuthAudience string

	// Reject feria sales that would drive remaining stock below zero.
	ClampFeriaStock bool

	TLSCertFile      string
	TLSKeyFile       string
	HTTPRedirectPort string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment")
	}

	cfg := Config{
		Port:             getenv("PORT", "3001"),
		DBDriver:         getenv("DB_DRIVER", "sqlite"),
		DBDSN:            getenv("DB_DSN", "tienda3d.db"),
		UploadDir:        getenv("UPLOAD_DIR", "./uploads"),
		AllowOrigins:     getenv("ALLOW_ORIGINS", "*"),
		LogFile:          os.Getenv("LOG_FILE"),
		AuthSecret:       os.Getenv("AUTH_SECRET"),
		AuthIssuer:       os.Getenv("AUTH_ISSUER"),
		AuthAudience:     os.Getenv("AUTH_AUDIENCE"),
		ClampFeriaStock:  os.Getenv("FERIA_CLAMP_STOCK") == "true",
		TLSCertFile:      os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:       os.Getenv("TLS_KEY_FILE"),
		HTTPRedirectPort: getenv("HTTP_REDIRECT_PORT", "80"),
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s UPLOAD_DIR=%s", cfg.Port, cfg.DBDriver, cfg.UploadDir)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
