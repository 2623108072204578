package useragent

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetToolUserAgentWithVersion(t *testing.T) {
	platform := fmt.Sprintf("(%s; %s)", runtime.GOOS, runtime.GOARCH)

	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{
			name:     "release version",
			version:  "1.2.3",
			expected: "labels2veracode/1.2.3 " + platform,
		},
		{
			name:     "prerelease version",
			version:  "2.0.0-rc1",
			expected: "labels2veracode/2.0.0-rc1 " + platform,
		},
		{
			name:     "dev version",
			version:  "dev",
			expected: "labels2veracode/dev " + platform,
		},
		{
			name:     "empty version falls back to dev",
			version:  "",
			expected: "labels2veracode/dev " + platform,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetToolUserAgentWithVersion(tt.version)
			assert.Equal(t, tt.expected, result)

			// Verify it contains the expected components
			assert.Contains(t, result, "labels2veracode/")
			assert.Contains(t, result, runtime.GOOS)
			assert.Contains(t, result, runtime.GOARCH)
		})
	}
}

func TestGetToolUserAgent(t *testing.T) {
	result := GetToolUserAgent()

	// Default build metadata carries the "dev" version
	assert.True(t, strings.HasPrefix(result, "labels2veracode/dev"),
		"Should identify the tool and build version, got %q", result)
	assert.Contains(t, result, runtime.GOOS)
	assert.Contains(t, result, runtime.GOARCH)
}

func TestUserAgentFormat_Validation(t *testing.T) {
	// Test that generated user agents follow the tool/version (os; arch) pattern
	tests := []struct {
		name    string
		version string
	}{
		{"release version", "1.2.3"},
		{"patch version", "1.2.4"},
		{"prerelease version", "2.0.0-beta.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userAgent := GetToolUserAgentWithVersion(tt.version)

			// Verify user agent structure
			assert.True(t, strings.HasPrefix(userAgent, "labels2veracode/"+tt.version),
				"Should start with tool name and version")
			assert.True(t, strings.HasSuffix(userAgent, ")"), "Should end with the platform suffix")
			assert.Contains(t, userAgent, "("+runtime.GOOS+";", "Should contain the OS identifier")

			// Verify no double spaces or formatting issues
			assert.NotContains(t, userAgent, "  ", "Should not contain double spaces")
			assert.NotContains(t, userAgent, "labels2veracode/ ", "Should not have an empty version")
		})
	}
}

// Benchmark tests
func BenchmarkGetToolUserAgentWithVersion(b *testing.B) {
	version := "1.2.3"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetToolUserAgentWithVersion(version)
	}
}

func BenchmarkGetToolUserAgent(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetToolUserAgent()
	}
}

// Example tests for documentation
func ExampleGetToolUserAgentWithVersion() {
	userAgent := GetToolUserAgentWithVersion("1.2.3")
	// The platform suffix varies with the build target
	fmt.Printf("User agent contains version: %t\n", strings.Contains(userAgent, "labels2veracode/1.2.3"))
	// Output: User agent contains version: true
}

func ExampleGetToolUserAgent() {
	userAgent := GetToolUserAgent()
	fmt.Printf("User agent identifies the tool: %t\n", strings.Contains(userAgent, "labels2veracode/"))
	// Output: User agent identifies the tool: true
}
