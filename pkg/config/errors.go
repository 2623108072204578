// Package config provides error definitions for configuration-related errors.
package config

import "errors"

// Configuration validation errors
var (
	// ErrMissingAPIKey is returned when the Veracode API key is not provided
	ErrMissingAPIKey = errors.New("veracode API key is required")

	// ErrMissingTenantID is returned when the Veracode tenant ID is not provided
	ErrMissingTenantID = errors.New("veracode tenant ID is required")

	// ErrUnknownRegion is returned when the configured region is not a known
	// Veracode platform region
	ErrUnknownRegion = errors.New("unknown veracode region")
)
