// Package crm is the client for the HubSpot CRM v3 objects API.
//
// It covers the five call shapes the sync needs, all JSON over HTTPS with a bearer
// token attached to every request:
//
//   - BatchCreate:  POST /crm/v3/objects/{type}/batch/create
//   - BatchUpdate:  POST /crm/v3/objects/{type}/batch/update
//   - BatchArchive: POST /crm/v3/objects/{type}/batch/archive
//   - Search:       POST /crm/v3/objects/{type}/search
//   - BatchRead:    POST /crm/v3/objects/{type}/batch/read?archived=false
//
// # Resilience
//
// Calls are paced by a token bucket (golang.org/x/time/rate) configured below the
// portal's burst limit, and pass through a circuit breaker (sony/gobreaker) that opens
// after consecutive transport failures, 429s or 5xx responses. Client errors (4xx) do
// not trip the breaker. Non-2xx responses are returned as *APIError.
//
// # Client Interface
//
// The Client interface lets the resolver and the reconcile engine run against the
// testify mock in core/crm/mocks.
package crm
