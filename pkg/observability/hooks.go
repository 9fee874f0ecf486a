// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about codec traversals and token transport.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the codec free of logging dependencies
//   - Allows different backends (structured logs, metrics, test recorders)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCodecHooks(&myCodecHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Codec().OnEncodeStart(ctx, treeName, nodeCount)
//	// ... encode ...
//	observability.Codec().OnEncodeComplete(ctx, treeName, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Codec Hooks
// =============================================================================

// CodecHooks receives events from graph encode/decode traversals.
//
// Per-item events (skipped nodes, dropped links, attribute fallbacks) fire
// for failures that are isolated by design: the traversal continues after
// reporting them.
type CodecHooks interface {
	// Encode events
	OnEncodeStart(ctx context.Context, tree string, nodeCount int)
	OnEncodeComplete(ctx context.Context, tree string, nodeCount int, duration time.Duration, err error)

	// Decode events
	OnDecodeStart(ctx context.Context, tree string, nodeCount int)
	OnDecodeComplete(ctx context.Context, tree string, created int, duration time.Duration, err error)

	// OnNodeSkipped records a node snapshot that produced no live node
	// (for example an unknown or undefined kind).
	OnNodeSkipped(ctx context.Context, node, kind, reason string)

	// OnLinkDropped records a link snapshot whose endpoints could not be resolved.
	OnLinkDropped(ctx context.Context, fromNode, toNode, reason string)

	// OnAttributeFallback records an attribute value the codec could not represent.
	OnAttributeFallback(ctx context.Context, node, attr, valueType string)
}

// =============================================================================
// Transport Hooks
// =============================================================================

// TransportHooks receives events from token envelope operations.
type TransportHooks interface {
	// OnTokenEncoded records a successfully produced token and its payload size.
	OnTokenEncoded(ctx context.Context, rawBytes, tokenBytes int, duration time.Duration)

	// OnTokenDecoded records a successfully decoded token.
	OnTokenDecoded(ctx context.Context, tokenBytes, rawBytes int, duration time.Duration)

	// OnTokenError records an envelope failure (base64, inflate, decode).
	OnTokenError(ctx context.Context, stage string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCodecHooks is a no-op implementation of CodecHooks.
type NoopCodecHooks struct{}

func (NoopCodecHooks) OnEncodeStart(context.Context, string, int) {}
func (NoopCodecHooks) OnEncodeComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopCodecHooks) OnDecodeStart(context.Context, string, int) {}
func (NoopCodecHooks) OnDecodeComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopCodecHooks) OnNodeSkipped(context.Context, string, string, string)      {}
func (NoopCodecHooks) OnLinkDropped(context.Context, string, string, string)      {}
func (NoopCodecHooks) OnAttributeFallback(context.Context, string, string, string) {}

// NoopTransportHooks is a no-op implementation of TransportHooks.
type NoopTransportHooks struct{}

func (NoopTransportHooks) OnTokenEncoded(context.Context, int, int, time.Duration) {}
func (NoopTransportHooks) OnTokenDecoded(context.Context, int, int, time.Duration) {}
func (NoopTransportHooks) OnTokenError(context.Context, string, error)             {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	codecHooks     CodecHooks     = NoopCodecHooks{}
	transportHooks TransportHooks = NoopTransportHooks{}
	hooksMu        sync.RWMutex
)

// SetCodecHooks registers custom codec hooks.
// This should be called once at application startup before any codec operations.
func SetCodecHooks(h CodecHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		codecHooks = h
	}
}

// SetTransportHooks registers custom transport hooks.
// This should be called once at application startup before any token operations.
func SetTransportHooks(h TransportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		transportHooks = h
	}
}

// Codec returns the registered codec hooks.
func Codec() CodecHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return codecHooks
}

// Transport returns the registered transport hooks.
func Transport() TransportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return transportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	codecHooks = NoopCodecHooks{}
	transportHooks = NoopTransportHooks{}
}
