// Package handler exposes the pool engine over HTTP: pool creation,
// liquidity, swaps and quotes, with core errors mapped to status codes.
package handler

import "log/slog"

// BaseHandler provides common dependencies for HTTP handlers.
type BaseHandler struct {
	logger *slog.Logger
}
