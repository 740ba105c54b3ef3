package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	DatabaseDSN    string
	JWTSecret      string
	CORSOrigins    string
	FrontendURL    string // QR kodlarına gömülen müşteri uygulaması adresi
	CloudMode      bool          // Bulut ortamında mı çalışıyoruz? (yerel ağdaki yazıcılara erişilemez)
	PrinterTimeout time.Duration // Yazıcı soket bağlantısı için üst sınır
}

func Load() *Config {
	// .env varsa yükle, yoksa sessizce devam et (production env'den okur)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=masapp port=5432 sslmode=disable"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		CloudMode:      getEnv("RENDER", "") == "true" || getEnv("APP_ENV", "") == "production",
		PrinterTimeout: getDurationEnv("PRINTER_TIMEOUT_MS", 5000),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.CloudMode {
		log.Println("[INFO] Bulut modu aktif: yerel ağ adresli yazıcılar 'local bridge' gerektirir.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDurationEnv(key string, defMillis int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(defMillis) * time.Millisecond
}
