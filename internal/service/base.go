// Package service hosts the pool engine: it owns the registry, serializes
// concurrent operations per pool and adapts core results for the HTTP layer.
package service

import "log/slog"

// BaseService provides common dependencies for service types.
type BaseService struct {
	logger *slog.Logger
}
