package ratelimiter

// RateLimiter is the interface for rate limiting inbound verification
// requests. Allow returns true if a request may proceed, false otherwise.
type RateLimiter interface {
	// Allow returns true if the request is allowed, otherwise returns false.
	Allow() bool
}
