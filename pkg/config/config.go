// Package config provides secure configuration management for the labels2veracode application.
//
// This package handles loading configuration from environment variables and .env files
// with built-in security measures to prevent path traversal attacks. It uses the
// github.com/caarlos0/env library for environment variable parsing and
// github.com/joho/godotenv for .env file loading.
//
// The configuration loading follows a priority order:
//  1. Environment variables (highest priority)
//  2. .env file in current working directory
//  3. Default values (if any)
//
// Security features:
//   - Path traversal protection for .env file loading
//   - Secure file path resolution using filepath.Abs and filepath.Rel
//   - Validation against directory traversal attempts
//
// Example usage:
//
//	import "github.com/toozej/labels2veracode/pkg/config"
//
//	func main() {
//		conf := config.GetEnvVars()
//		fmt.Printf("Region: %s\n", conf.Veracode.Region)
//	}
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Veracode platform regions supported by the labels API.
const (
	RegionUS      = "us"
	RegionEU      = "eu"
	RegionFedRAMP = "fedramp"
)

// regionBaseURLs maps each supported platform region to its API host.
var regionBaseURLs = map[string]string{
	RegionUS:      "https://api.veracode.com",
	RegionEU:      "https://api.veracode.eu",
	RegionFedRAMP: "https://api.veracode.us",
}

// Config represents the main application configuration with nested service configurations.
type Config struct {
	Veracode VeracodeConfig `envPrefix:"VERACODE_"`
}

// VeracodeConfig represents the configuration for the Veracode labels API integration.
//
// This struct contains all the necessary configuration parameters for
// authenticating and interacting with the labels endpoints of a Veracode
// security tenant.
type VeracodeConfig struct {
	// APIKey is the tenant API key sent on every request.
	APIKey string `env:"API_KEY"` // #nosec G117 -- tenant API key, expected in config

	// TenantID is the tenant identifier sent on every request.
	TenantID string `env:"TENANT_ID"`

	// Region selects the regional API endpoint: us, eu or fedramp.
	Region string `env:"REGION" envDefault:"us"`

	// BaseURL overrides the regional endpoint when set. Useful for testing
	// against a local stand-in of the platform.
	BaseURL string `env:"BASE_URL"`

	// HTTPTimeout is the timeout for HTTP requests in seconds.
	HTTPTimeout int `env:"HTTP_TIMEOUT" envDefault:"30"`
}

// GetEnvVars loads and returns the application configuration from environment
// variables and .env files with comprehensive security validation.
//
// This function performs the following operations:
//  1. Securely determines the current working directory
//  2. Constructs and validates the .env file path to prevent traversal attacks
//  3. Loads .env file if it exists in the current directory
//  4. Parses environment variables into the Config struct
//  5. Validates the configuration
//  6. Returns the populated configuration
//
// Security measures implemented:
//   - Path traversal detection and prevention using filepath.Rel
//   - Absolute path resolution for secure path operations
//   - Validation against ".." sequences in relative paths
//   - Safe file existence checking before loading
//
// The function will terminate the program with os.Exit(1) if any critical
// errors occur during configuration loading, such as:
//   - Current directory access failures
//   - Path traversal attempts detected
//   - .env file parsing errors
//   - Environment variable parsing failures
//   - Configuration validation errors
//
// Returns:
//   - Config: A populated configuration struct with values from environment
//     variables and/or .env file
//
// Example:
//
//	// Load configuration
//	conf := config.GetEnvVars()
//
//	// Use configuration
//	fmt.Printf("Tenant ID: %s\n", conf.Veracode.TenantID)
//	fmt.Printf("Region: %s\n", conf.Veracode.Region)
func GetEnvVars() Config {
	// Get current working directory for secure file operations
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Printf("Error getting current working directory: %s\n", err)
		os.Exit(1)
	}

	// Construct secure path for .env file within current directory
	envPath := filepath.Join(cwd, ".env")

	// Ensure the path is within our expected directory (prevent traversal)
	cleanEnvPath, err := filepath.Abs(envPath)
	if err != nil {
		fmt.Printf("Error resolving .env file path: %s\n", err)
		os.Exit(1)
	}
	cleanCwd, err := filepath.Abs(cwd)
	if err != nil {
		fmt.Printf("Error resolving current directory: %s\n", err)
		os.Exit(1)
	}
	relPath, err := filepath.Rel(cleanCwd, cleanEnvPath)
	if err != nil || strings.Contains(relPath, "..") {
		fmt.Printf("Error: .env file path traversal detected\n")
		os.Exit(1)
	}

	// Load .env file if it exists
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Error loading .env file: %s\n", err)
			os.Exit(1)
		}
	}

	// Parse environment variables into config struct
	var conf Config
	if err := env.Parse(&conf); err != nil {
		fmt.Printf("Error parsing configuration from environment: %s\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := validateConfig(&conf); err != nil {
		fmt.Printf("Configuration validation error: %s\n", err)
		fmt.Println("Please check your configuration and try again.")
		os.Exit(1)
	}

	return conf
}

// ResolveBaseURL returns the API base URL for the configured region. An
// explicit BaseURL override always wins over the region lookup.
func (v VeracodeConfig) ResolveBaseURL() (string, error) {
	if v.BaseURL != "" {
		return strings.TrimSuffix(v.BaseURL, "/"), nil
	}

	baseURL, ok := regionBaseURLs[strings.ToLower(v.Region)]
	if !ok {
		return "", fmt.Errorf("%w: %q (expected us, eu or fedramp)", ErrUnknownRegion, v.Region)
	}
	return baseURL, nil
}

// validateConfig validates the configuration
func validateConfig(conf *Config) error {
	var errors []string

	// Validate Veracode credentials. The tool cannot do anything without them,
	// so these fail hard rather than warn.
	if conf.Veracode.APIKey == "" {
		errors = append(errors, ErrMissingAPIKey.Error())
	}
	if conf.Veracode.TenantID == "" {
		errors = append(errors, ErrMissingTenantID.Error())
	}

	// Validate endpoint selection
	if _, err := conf.Veracode.ResolveBaseURL(); err != nil {
		errors = append(errors, err.Error())
	}

	if conf.Veracode.HTTPTimeout <= 0 {
		errors = append(errors, "veracode HTTP timeout must be greater than 0")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
