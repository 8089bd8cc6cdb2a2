package ratelimiter

import "time"

type Limiter interface {
	// Allow reports whether key may make another request now, and when it
	// may not, how long until it can.
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
