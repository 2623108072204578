// Package useragent provides utilities for generating and managing user agent strings.
//
// This package constructs the User-Agent header value sent with every Veracode
// API request, identifying the tool, its build version, and the platform it
// runs on.
package useragent

import (
	"fmt"
	"runtime"

	"github.com/toozej/labels2veracode/pkg/version"
)

// toolName identifies this CLI in outbound requests.
const toolName = "labels2veracode"

// GetToolUserAgent returns the user agent string for the current build and platform.
//
// The version component comes from the build metadata in pkg/version, which
// defaults to "dev" for local builds.
//
// Returns:
//   - string: A properly formatted tool user agent string
//
// Example:
//
//	userAgent := useragent.GetToolUserAgent()
//	// Returns: "labels2veracode/dev (linux; amd64)"
func GetToolUserAgent() string {
	return GetToolUserAgentWithVersion(version.Version())
}

// GetToolUserAgentWithVersion constructs a tool user agent string with a specific version.
//
// This function allows you to create a user agent string with a custom version
// while maintaining the tool/version (os; arch) format. An empty version falls
// back to "dev".
//
// Parameters:
//   - v: The tool version string (e.g., "1.2.3")
//
// Returns:
//   - string: A properly formatted tool user agent string
//
// Example:
//
//	userAgent := useragent.GetToolUserAgentWithVersion("1.2.3")
//	// Returns: "labels2veracode/1.2.3 (linux; amd64)"
func GetToolUserAgentWithVersion(v string) string {
	if v == "" {
		v = "dev"
	}
	return fmt.Sprintf("%s/%s (%s; %s)", toolName, v, runtime.GOOS, runtime.GOARCH)
}
