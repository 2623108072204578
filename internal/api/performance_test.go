package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toozej/labels2veracode/internal/types"
)

// TestLargePayloadCreationPerformance tests creation request performance with large value lists
func TestLargePayloadCreationPerformance(t *testing.T) {
	tests := []struct {
		name        string
		valueCount  int
		maxDuration time.Duration
	}{
		{
			name:        "small payload (10 values)",
			valueCount:  10,
			maxDuration: 250 * time.Millisecond,
		},
		{
			name:        "medium payload (100 values)",
			valueCount:  100,
			maxDuration: 500 * time.Millisecond,
		},
		{
			name:        "large payload (1000 values)",
			valueCount:  1000,
			maxDuration: 1 * time.Second,
		},
		{
			name:        "very large payload (5000 values)",
			valueCount:  5000,
			maxDuration: 2 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var receivedValues int

			// Create test server that decodes the posted payload
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var payload types.CreateLabelRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				receivedValues = len(payload.AvailableValues)

				w.WriteHeader(http.StatusCreated)
				if _, err := w.Write([]byte(`{"id":"label-1"}`)); err != nil {
					http.Error(w, "Failed to write response", http.StatusInternalServerError)
				}
			}))
			defer server.Close()

			// Create client
			client := createTestClient()
			client.baseURL = server.URL

			payload := buildTestPayload("severity", tt.valueCount)

			// Measure the full encode-and-post round trip
			start := time.Now()
			outcome, err := client.CreateLabel(payload)
			duration := time.Since(start)

			// Validate results
			require.NoError(t, err)
			assert.True(t, outcome.Success)
			assert.Equal(t, tt.valueCount, receivedValues, "every value must survive the round trip")
			assert.True(t, duration < tt.maxDuration,
				"Creation took %v, expected less than %v for %d values",
				duration, tt.maxDuration, tt.valueCount)

			t.Logf("Created label with %d values in %v", tt.valueCount, duration)
		})
	}
}

// TestMemoryUsageDuringPayloadEncoding validates memory usage when posting large value lists
func TestMemoryUsageDuringPayloadEncoding(t *testing.T) {
	// Force garbage collection before test
	runtime.GC()
	runtime.GC()

	var memBefore, memAfter runtime.MemStats
	runtime.ReadMemStats(&memBefore)

	// Create test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		if _, err := w.Write([]byte(`{"id":"label-1"}`)); err != nil {
			http.Error(w, "Failed to write response", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	// Create client and post a large payload
	client := createTestClient()
	client.baseURL = server.URL

	payload := buildTestPayload("severity", 1000)
	outcome, err := client.CreateLabel(payload)
	require.NoError(t, err)
	require.True(t, outcome.Success)

	// Measure memory after processing
	runtime.ReadMemStats(&memAfter)

	// Calculate memory usage; a GC between the measurements can make the
	// delta negative, which counts as passing
	var memUsedMB float64
	if memAfter.Alloc > memBefore.Alloc {
		memUsedMB = float64(memAfter.Alloc-memBefore.Alloc) / (1024 * 1024)
	}

	// Validate reasonable memory usage (should be well under 10MB for 1000 values)
	assert.True(t, memUsedMB < 10.0,
		"Memory usage too high: %.2f MB for 1000 values", memUsedMB)

	t.Logf("Memory used: %.2f MB for %d values", memUsedMB, len(payload.AvailableValues))
}

// TestSequentialCheckThroughput tests sustained availability checking over many keys
func TestSequentialCheckThroughput(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping throughput test in short mode")
	}

	requestCount := 0

	// Create test server that tracks requests
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		fmt.Fprint(w, "true")
	}))
	defer server.Close()

	// Create client
	client := createTestClient()
	client.baseURL = server.URL

	keyCount := 200
	maxDuration := 10 * time.Second

	start := time.Now()
	for i := 0; i < keyCount; i++ {
		result, err := client.CheckKeyAvailable(fmt.Sprintf("key-%d", i))
		require.NoError(t, err)
		require.Equal(t, types.AvailabilityAvailable, result.Availability)
	}
	duration := time.Since(start)

	// Validate throughput behavior
	assert.Equal(t, keyCount, requestCount, "Expected one request per key")
	assert.True(t, duration < maxDuration,
		"Checked %d keys in %v, expected less than %v", keyCount, duration, maxDuration)

	t.Logf("Checked %d keys in %v (%.1f checks/sec)",
		keyCount, duration, float64(keyCount)/duration.Seconds())
}

// TestCreateThenCheckReportsTaken verifies the tenant-side duplicate protection flow
func TestCreateThenCheckReportsTaken(t *testing.T) {
	existing := map[string]bool{}

	// Create test server that remembers created keys
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/labels/name-valid":
			if existing[r.URL.Query().Get("key")] {
				fmt.Fprint(w, "false")
			} else {
				fmt.Fprint(w, "true")
			}
		case r.Method == http.MethodPost && r.URL.Path == "/v1/labels":
			var payload types.CreateLabelRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			existing[payload.Key] = true
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":"label-1"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	// Create client
	client := createTestClient()
	client.baseURL = server.URL

	// The key starts out free
	before, err := client.CheckKeyAvailable("severity")
	require.NoError(t, err)
	assert.Equal(t, types.AvailabilityAvailable, before.Availability)

	// Create it
	outcome, err := client.CreateLabel(buildTestPayload("severity", 3))
	require.NoError(t, err)
	require.True(t, outcome.Success)

	// A second check must now report the key as taken
	after, err := client.CheckKeyAvailable("severity")
	require.NoError(t, err)
	assert.Equal(t, types.AvailabilityTaken, after.Availability,
		"a created key must report taken on the next check")
}

// TestAvailabilityAfterServerErrors tests client behavior across intermittent API failures
func TestAvailabilityAfterServerErrors(t *testing.T) {
	requestCount := 0

	// Create test server that simulates intermittent failures
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++

		// Fail first 3 requests, then succeed
		if requestCount <= 3 {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "true")
	}))
	defer server.Close()

	// Create client
	client := createTestClient()
	client.baseURL = server.URL

	// Server errors map to unknown availability, never to a client error
	for i := 0; i < 3; i++ {
		result, err := client.CheckKeyAvailable("severity")
		require.NoError(t, err)
		assert.Equal(t, types.AvailabilityUnknown, result.Availability)
	}

	// The client is not wedged: the next check comes back clean
	result, err := client.CheckKeyAvailable("severity")
	require.NoError(t, err)
	assert.Equal(t, types.AvailabilityAvailable, result.Availability)
	assert.Equal(t, 4, requestCount)
}

// TestConcurrentAvailabilityChecks tests behavior under concurrent load
func TestConcurrentAvailabilityChecks(t *testing.T) {
	var requestCount int64

	// Create test server that tracks concurrent requests
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requestCount, 1)

		// Simulate some processing time
		time.Sleep(10 * time.Millisecond)
		fmt.Fprint(w, "true")
	}))
	defer server.Close()

	// The import loop is sequential, but nothing in the client may depend on that
	clients := make([]*VeracodeAPIClient, 5)
	for i := range clients {
		clients[i] = createTestClient()
		clients[i].baseURL = server.URL
	}

	// Make concurrent requests
	results := make(chan error, len(clients))

	for i, client := range clients {
		go func(c *VeracodeAPIClient, key string) {
			result, err := c.CheckKeyAvailable(key)
			if err != nil {
				results <- err
				return
			}
			if result.Availability != types.AvailabilityAvailable {
				results <- fmt.Errorf("expected available, got %s", result.Availability)
				return
			}
			results <- nil
		}(client, fmt.Sprintf("key-%d", i))
	}

	// Wait for all requests to complete
	for i := 0; i < len(clients); i++ {
		err := <-results
		assert.NoError(t, err, "Concurrent request %d failed", i)
	}

	finalRequestCount := atomic.LoadInt64(&requestCount)
	assert.Equal(t, int64(len(clients)), finalRequestCount, "Expected all requests to complete")
}

// buildTestPayload creates a label creation payload with count generated values
func buildTestPayload(key string, count int) types.CreateLabelRequest {
	values := make([]types.LabelValue, count)
	for i := range values {
		values[i] = types.LabelValue{Value: fmt.Sprintf("value-%d", i+1)}
	}

	return types.CreateLabelRequest{
		Key:             key,
		Type:            types.LabelType,
		Description:     "",
		AvailableValues: values,
		Settings:        types.LabelSettings{},
	}
}

// BenchmarkLargePayloadMarshal benchmarks payload encoding across value list sizes
func BenchmarkLargePayloadMarshal(b *testing.B) {
	sizes := []int{10, 100, 1000, 5000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("values_%d", size), func(b *testing.B) {
			payload := buildTestPayload("severity", size)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := json.Marshal(payload)
				require.NoError(b, err)
			}
		})
	}
}

// BenchmarkPayloadRoundTrip benchmarks encode/decode allocation patterns
func BenchmarkPayloadRoundTrip(b *testing.B) {
	payload := buildTestPayload("severity", 100)
	data, err := json.Marshal(payload)
	require.NoError(b, err)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		var decoded types.CreateLabelRequest
		_ = json.Unmarshal(data, &decoded)
	}
}
