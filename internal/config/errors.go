package config

import "errors"

// ErrInvalidShutdownTimeout indicates that SHUTDOWN_TIMEOUT is set but is
// not a positive integer number of seconds.
var ErrInvalidShutdownTimeout = errors.New("invalid SHUTDOWN_TIMEOUT value")
