// Package openf1 provides a client for the OpenF1 timing API.
//
// OpenF1 serves race-weekend telemetry as JSON arrays of flat records whose
// field names drift between resources and API versions. This package does
// not interpret the records; it only fetches them. Interpretation lives in the
// telemetry package.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := openf1.NewClient("", logger, openf1.WithTimeout(10*time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	laps, err := client.Fetch(ctx, openf1.ResourceLaps, openf1.Filters{
//		"session_key":   9158,
//		"driver_number": []int{1, 44},
//	})
//
// An empty base URL selects DefaultBaseURL. Slice filter values expand into
// repeated query parameters.
//
// # Error Handling
//
// A non-2xx response yields an *UpstreamError carrying the status code and the
// response body. A failure to reach the API at all yields a *TransportError
// that unwraps to the underlying cause, so context cancellation can still be
// detected with errors.Is. The client never retries.
package openf1
