package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	BaseURL   string
	JWTKey    string
	SaltRound int

	CertificateSecret string // HMAC key for certificate digital signatures

	EmailSender string
	Password    string // SMTP Password

	GatewayApiURL string // Payment gateway verification endpoint
	GatewayApiKey string

	CartExpiryDays int // Cart entries older than this are cancelled by the scheduler
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		CertificateSecret: getEnv("CERTIFICATE_SECRET_KEY", "defaultCertSecret"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		GatewayApiURL: getEnv("GATEWAY_API_URL", ""),
		GatewayApiKey: getEnv("GATEWAY_API_KEY", ""),

		CartExpiryDays: getEnvInt("CART_EXPIRY_DAYS", 30),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.CertificateSecret == "defaultCertSecret" {
		log.Println("Warning: Using default CERTIFICATE_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
