package cli

import (
	"os"
	"time"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Timeout   time.Duration
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("ARCADE_SERVER", "http://localhost:9080"),
		Output:    "text",
		Timeout:   10 * time.Second,
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
