// Package config handles loading and managing application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/itmedia/expresspay-payments/internal/expresspay"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Express Pay gateway configuration
	ExpressPay ExpressPayConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string
	GinMode string // "debug", "release", or "test"
}

// ExpressPayConfig holds the gateway credentials and signing options.
type ExpressPayConfig struct {
	Token                 string
	APISignature          bool
	APISecret             string
	NotificationSignature bool
	NotificationSecret    string
	BaseURL               string
	Version               string
	ReturnURL             string
	FailURL               string
}

// Load reads configuration from environment variables.
// Returns a Config struct with all settings populated.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		ExpressPay: ExpressPayConfig{
			Token:                 getEnv("EXPRESSPAY_TOKEN", ""),
			APISignature:          getEnvBool("EXPRESSPAY_API_SIGNATURE", false),
			APISecret:             getEnv("EXPRESSPAY_API_SECRET", ""),
			NotificationSignature: getEnvBool("EXPRESSPAY_NOTIFICATION_SIGNATURE", false),
			NotificationSecret:    getEnv("EXPRESSPAY_NOTIFICATION_SECRET", ""),
			BaseURL:               getEnv("EXPRESSPAY_BASE_URL", expresspay.DefaultBaseURL),
			Version:               getEnv("EXPRESSPAY_VERSION", "1"),
			ReturnURL:             getEnv("EXPRESSPAY_RETURN_URL", ""),
			FailURL:               getEnv("EXPRESSPAY_FAIL_URL", ""),
		},
	}
}

// Validate checks that required configuration values are set. Secret
// requirements for the signing channels are enforced again by
// expresspay.NewSignatureProvider; checking here fails earlier with a
// config-level message.
func (c *Config) Validate() error {
	if c.ExpressPay.Token == "" {
		return fmt.Errorf("EXPRESSPAY_TOKEN is required")
	}
	if c.ExpressPay.APISignature && c.ExpressPay.APISecret == "" {
		return fmt.Errorf("EXPRESSPAY_API_SECRET is required when EXPRESSPAY_API_SIGNATURE is enabled")
	}
	if c.ExpressPay.NotificationSignature && c.ExpressPay.NotificationSecret == "" {
		return fmt.Errorf("EXPRESSPAY_NOTIFICATION_SECRET is required when EXPRESSPAY_NOTIFICATION_SIGNATURE is enabled")
	}
	return nil
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean with a fallback.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
