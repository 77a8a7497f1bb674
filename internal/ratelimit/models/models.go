// Package models defines the rate limiting vocabulary: endpoint classes,
// window check results, and the 429 response body.
package models

import "time"

// EndpointClass buckets API endpoints by cost so each class carries its own
// window budget.
type EndpointClass string

const (
	// ClassRead covers listings and detail views.
	ClassRead EndpointClass = "read"
	// ClassWrite covers property and compliance mutations.
	ClassWrite EndpointClass = "write"
	// ClassImport covers council imports, which reach municipal
	// integrations and are the expensive path.
	ClassImport EndpointClass = "import"
)

// RateLimitResult is the outcome of one window check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is whole seconds until the window frees a slot. Set only
	// when the request was denied.
	RetryAfter int
}

// RateLimitExceededResponse is the 429 body.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}
