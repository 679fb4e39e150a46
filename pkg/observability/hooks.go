// Package observability provides hooks for metrics and tracing.
//
// Instrumentation is optional and backend neutral. Library code emits events
// through the registered hooks; the binary decides at startup whether anything
// listens (the serve command registers Prometheus collectors from
// internal/metrics).
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - hook interfaces per event category
//   - no-op default implementations
//   - registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPosterHooks(myPosterHooks{})
//	    observability.SetHTTPHooks(myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Poster().OnComposeStart(ctx, paletteName, styleName)
//	// ... compose ...
//	observability.Poster().OnComposeComplete(ctx, paletteName, styleName, layers, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Poster Hooks
// =============================================================================

// PosterHooks receives events from the poster pipeline.
type PosterHooks interface {
	// Compose events
	OnComposeStart(ctx context.Context, palette, style string)
	OnComposeComplete(ctx context.Context, palette, style string, layers int, duration time.Duration, err error)

	// Render events, one pair per output format
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the browser UI server.
type HTTPHooks interface {
	// OnRequest records an incoming request before routing, so path is the
	// raw request path.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a finished response. route is the matched pattern,
	// not the raw path.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnError records a handler error reported to the client.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPosterHooks is a no-op implementation of PosterHooks.
type NoopPosterHooks struct{}

func (NoopPosterHooks) OnComposeStart(context.Context, string, string) {}
func (NoopPosterHooks) OnComposeComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPosterHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPosterHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	posterHooks PosterHooks = NoopPosterHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetPosterHooks registers custom poster hooks.
// This should be called once at application startup.
func SetPosterHooks(h PosterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		posterHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Poster returns the registered poster hooks.
func Poster() PosterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return posterHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	posterHooks = NoopPosterHooks{}
	httpHooks = NoopHTTPHooks{}
}
