package openf1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "default", baseURL: "", want: DefaultBaseURL},
		{name: "trailing slash trimmed", baseURL: "http://localhost:9000/v1/", want: "http://localhost:9000/v1"},
		{name: "bad scheme", baseURL: "ftp://example.com", wantErr: true},
		{name: "unparseable", baseURL: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, logger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.BaseURL())
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("", logger, WithHTTPClient(custom))
		require.NoError(t, err)
		assert.Equal(t, custom, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("", logger, WithUserAgent("pitwall/test"))
		require.NoError(t, err)
		assert.Equal(t, "pitwall/test", client.userAgent)
	})
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/laps", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "pitwall/test", r.Header.Get("User-Agent"))
		assert.Equal(t, []string{"100"}, r.URL.Query()["session_key"])
		assert.Equal(t, []string{"1", "44"}, r.URL.Query()["driver_number"])

		json.NewEncoder(w).Encode([]map[string]any{
			{"driver_number": 44, "lap_number": 1, "lap_duration": 85.312},
			{"driver_number": 44, "lap_number": 2, "lap_duration": "84.998"},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/v1", zerolog.Nop(), WithUserAgent("pitwall/test"))
	require.NoError(t, err)

	records, err := client.Fetch(context.Background(), ResourceLaps, Filters{
		"session_key":   "100",
		"driver_number": []int{1, 44},
		"ignored":       nil,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 85.312, records[0]["lap_duration"])
	assert.Equal(t, "84.998", records[1]["lap_duration"])
}

func TestFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"maintenance"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), ResourceRaces, nil)
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
	assert.Equal(t, `{"detail":"maintenance"}`, upstreamErr.Body)
	assert.Equal(t, ResourceRaces, upstreamErr.Resource)
	assert.False(t, upstreamErr.IsNotFound())
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(baseURL, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), ResourceSessions, Filters{"race_key": 9})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, ResourceSessions, transportErr.Resource)
	assert.Contains(t, transportErr.URL, "race_key=9")
}

func TestFetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Fetch(ctx, ResourceLaps, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetchInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), ResourceDrivers, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse drivers response")
}

func TestFiltersValues(t *testing.T) {
	year := 2024
	values := Filters{
		"session_key": int64(9158),
		"year":        &year,
		"driver":      []any{1, "44", nil},
		"lap_time":    84.5,
		"pit":         true,
		"missing":     nil,
	}.Values()

	assert.Equal(t, "9158", values.Get("session_key"))
	assert.Equal(t, "2024", values.Get("year"))
	assert.Equal(t, []string{"1", "44"}, values["driver"])
	assert.Equal(t, "84.5", values.Get("lap_time"))
	assert.Equal(t, "true", values.Get("pit"))
	_, ok := values["missing"]
	assert.False(t, ok)
}

func TestKeyValue(t *testing.T) {
	assert.Equal(t, int64(9), KeyValue("09"))
	assert.Equal(t, 1.5, KeyValue("1.5"))
	assert.Equal(t, "latest", KeyValue("latest"))
	assert.Equal(t, "inf", KeyValue("inf"))
	assert.Equal(t, "NaN", KeyValue("NaN"))
	assert.Equal(t, "-Infinity", KeyValue("-Infinity"))
}

func TestBuildURL(t *testing.T) {
	client, err := NewClient("http://localhost:9000/v1", zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/v1/laps", client.buildURL("/laps", nil))
	assert.Equal(t, "http://localhost:9000/v1/stints?session_key=9", client.buildURL(ResourceStints, Filters{"session_key": 9}))
}
