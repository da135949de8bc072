package crm

// Config holds configuration for the CRM API client.
type Config struct {
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.hubapi.com"`
	// Token is the private app access token sent as a bearer credential.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds a single HTTP round trip.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RequestsPerSecond paces outgoing calls.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"9"`
	// Burst is the token bucket size.
	Burst int `mapstructure:"burst" default:"10"`
	// ReadLimit caps the inputs of one batch read.
	ReadLimit int `mapstructure:"read_limit" default:"100"`
	// SearchValueLimit caps the values of one IN filter.
	SearchValueLimit int `mapstructure:"search_value_limit" default:"100"`
	// SearchPageSize is the page size requested from search.
	SearchPageSize int `mapstructure:"search_page_size" default:"100"`
	// BreakerFailures is the number of consecutive failures that opens the breaker.
	BreakerFailures int `mapstructure:"breaker_failures" default:"5"`
	// BreakerTimeoutSeconds is how long the breaker stays open.
	BreakerTimeoutSeconds int `mapstructure:"breaker_timeout_seconds" default:"30"`
}
