package model

import "time"

// Shared defaults used by the daemon entrypoint and the scheduler.
const (
	DefaultUpdateInterval   = 1 * time.Second
	DefaultFullRefreshEvery = 60 // update cycles between forced full refreshes
	DefaultMaxRetryAttempts = 3
	DefaultRetryDelay       = 1 * time.Second
)

// Panel dimensions of the Waveshare 2.13" V4 in landscape orientation.
const (
	DisplayWidth  = 250
	DisplayHeight = 122
)
