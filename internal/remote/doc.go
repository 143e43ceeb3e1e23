// Package remote provides an HTTP client for the show service API.
//
// # Overview
//
// The service is a small REST API over shows, bands, venues and reviews.
// This package handles transport, JSON encoding, and error classification;
// it does not retry or fall back. Substituting offline data when a call
// fails is the job of package fallback.
//
// # Client Usage
//
//	client, err := remote.NewClient("https://music-band-1.onrender.com", 8*time.Second)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	shows, err := client.ListShows(ctx)
//	if err != nil {
//		log.Printf("shows fetch failed: %v", err)
//	}
//
// # API Endpoints
//
//   - GET /api/shows/, GET /api/shows/{id}
//   - GET /api/bands/, GET /api/bands/{id}, POST /api/bands/
//   - GET /api/venues/, GET /api/venues/{id}
//   - GET /api/reviews/ (filtered to one show client-side)
//   - POST /api/reviews/, PATCH /api/reviews/{id}, DELETE /api/reviews/{id}
//
// Ping issues GET /api/shows/ and inspects only the status code.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: setlist/0.1
//   - Carry a fresh X-Request-Id so service logs can be correlated
//   - Are bounded by the http.Client timeout passed to NewClient
//
// # Error Handling
//
// Three failure classes reach the caller, all wrapped with context:
//
//   - Network errors: "execute request: dial tcp: connection refused"
//   - Non-2xx statuses: *StatusError, "api GET /api/bands/ returned status 500"
//   - Malformed bodies: "decode response: unexpected EOF"
//
// Use errors.As with *StatusError to inspect the status code.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package remote
