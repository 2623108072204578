// Package api provides the Veracode labels API client for the labels2veracode application.
//
// This package contains the VeracodeAPIClient which is responsible for checking
// label key availability and creating label definitions in a security tenant.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/toozej/labels2veracode/internal/types"
	"github.com/toozej/labels2veracode/pkg/config"
	"github.com/toozej/labels2veracode/pkg/useragent"
)

// defaultBaseURL is the commercial platform endpoint used when the configured
// region cannot be resolved.
const defaultBaseURL = "https://api.veracode.com"

// VeracodeAPIClient handles the label endpoints of the Veracode platform API.
type VeracodeAPIClient struct {
	baseURL    string
	tenantID   string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *log.Entry
}

// NewVeracodeAPIClient creates a new Veracode labels API client instance.
func NewVeracodeAPIClient(cfg config.VeracodeConfig) *VeracodeAPIClient {
	logger := log.WithField("component", "veracode_api_client")

	// Resolve the regional endpoint from config
	baseURL, err := cfg.ResolveBaseURL()
	if err != nil {
		logger.WithError(err).Warn("Failed to resolve regional endpoint, using commercial US endpoint")
		baseURL = defaultBaseURL
	}

	// Use HTTP timeout from config
	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	if cfg.HTTPTimeout <= 0 {
		timeout = 30 * time.Second
	}

	userAgentString := useragent.GetToolUserAgent()
	logger.WithFields(log.Fields{
		"user_agent": userAgentString,
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}).Debug("Identifying API requests with tool user agent")

	return &VeracodeAPIClient{
		baseURL:   baseURL,
		tenantID:  cfg.TenantID,
		apiKey:    cfg.APIKey,
		userAgent: userAgentString,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CheckKeyAvailable asks the name-valid endpoint whether a label key is still
// free in the tenant. The platform answers with a literal "true" (free) or
// "false" (already taken); any other body is reported as unknown together with
// the raw response text.
func (c *VeracodeAPIClient) CheckKeyAvailable(key string) (types.ExistenceResult, error) {
	checkURL := c.buildAvailabilityURL(key)
	c.logger.WithFields(log.Fields{
		"key": key,
		"url": checkURL,
	}).Debug("Checking label key availability")

	// Create HTTP request
	req, err := http.NewRequest("GET", checkURL, nil)
	if err != nil {
		c.logger.WithError(err).Error("Failed to create availability request")
		return types.ExistenceResult{}, fmt.Errorf("failed to create availability request: %w", err)
	}
	c.setRequestHeaders(req)

	// Make the HTTP request
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(log.Fields{
			"key":         key,
			"duration_ms": time.Since(start).Milliseconds(),
			"error":       err.Error(),
		}).Error("Availability request failed")
		return types.ExistenceResult{}, fmt.Errorf("availability request for key %q failed: %w", key, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Error("Failed to read availability response body")
		return types.ExistenceResult{}, fmt.Errorf("failed to read availability response: %w", err)
	}
	raw := string(body)

	// The platform answers with a bare boolean string. Trailing newlines are
	// tolerated the way a shell's command substitution would strip them.
	switch strings.TrimSpace(raw) {
	case "true":
		c.logger.WithField("key", key).Debug("Label key is available")
		return types.ExistenceResult{Availability: types.AvailabilityAvailable, Raw: raw}, nil
	case "false":
		c.logger.WithField("key", key).Debug("Label key is already taken")
		return types.ExistenceResult{Availability: types.AvailabilityTaken, Raw: raw}, nil
	default:
		c.logger.WithFields(log.Fields{
			"key":         key,
			"status_code": resp.StatusCode,
			"body":        raw,
		}).Warn("Unexpected availability response from API")
		return types.ExistenceResult{Availability: types.AvailabilityUnknown, Raw: raw}, nil
	}
}

// CreateLabel posts a label creation payload to the labels endpoint. A 200 or
// 201 response counts as success; every other status is returned as a failed
// outcome carrying the status code and response body, not as an error, so the
// caller can report it and move on.
func (c *VeracodeAPIClient) CreateLabel(payload types.CreateLabelRequest) (types.CreationOutcome, error) {
	// Encode the payload
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.WithError(err).Error("Failed to encode label creation payload")
		return types.CreationOutcome{}, fmt.Errorf("failed to encode label payload: %w", err)
	}

	createURL := fmt.Sprintf("%s/v1/labels", c.baseURL)
	c.logger.WithFields(log.Fields{
		"key":         payload.Key,
		"value_count": len(payload.AvailableValues),
		"url":         createURL,
	}).Debug("Creating label")

	// Create HTTP request
	req, err := http.NewRequest("POST", createURL, bytes.NewReader(body))
	if err != nil {
		c.logger.WithError(err).Error("Failed to create label creation request")
		return types.CreationOutcome{}, fmt.Errorf("failed to create label creation request: %w", err)
	}
	c.setRequestHeaders(req)

	// Make the HTTP request
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(log.Fields{
			"key":         payload.Key,
			"duration_ms": time.Since(start).Milliseconds(),
			"error":       err.Error(),
		}).Error("Label creation request failed")
		return types.CreationOutcome{}, fmt.Errorf("label creation request for key %q failed: %w", payload.Key, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Error("Failed to read label creation response body")
		return types.CreationOutcome{}, fmt.Errorf("failed to read label creation response: %w", err)
	}

	outcome := types.CreationOutcome{
		Success:    resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated,
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}

	if outcome.Success {
		c.logger.WithFields(log.Fields{
			"key":         payload.Key,
			"status_code": resp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Successfully created label")
	} else {
		c.logger.WithFields(log.Fields{
			"key":         payload.Key,
			"status_code": resp.StatusCode,
			"body":        outcome.Body,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Error("API rejected label creation")
	}

	return outcome, nil
}

// buildAvailabilityURL constructs the name-valid URL with the key parameter.
func (c *VeracodeAPIClient) buildAvailabilityURL(key string) string {
	return fmt.Sprintf("%s/v1/labels/name-valid?key=%s", c.baseURL, url.QueryEscape(key))
}

// setRequestHeaders applies the tenant auth and identification headers
// required on every request.
func (c *VeracodeAPIClient) setRequestHeaders(req *http.Request) {
	req.Header.Set("X-Alta-Tenant", c.tenantID)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
}
