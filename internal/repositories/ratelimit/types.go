package ratelimit

import "time"

type AllowInput struct {
	Key    string
	Limit  int
	Window time.Duration
}

type AllowOutput struct {
	Allowed   bool
	Remaining int

	// RetryAfter is how long until the window resets
	RetryAfter time.Duration
}
