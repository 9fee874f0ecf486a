package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Logging Hooks
// =============================================================================
//
// The codec and transport layers report per-item events (skipped nodes,
// dropped links, attribute fallbacks, envelope failures) through the
// observability registry. The CLI turns those events into log lines so that
// --verbose shows exactly what a lossy encode or decode left behind.

// logCodecHooks forwards codec events to the CLI logger.
type logCodecHooks struct {
	logger *log.Logger
}

func (h logCodecHooks) OnEncodeStart(_ context.Context, tree string, nodeCount int) {
	h.logger.Debug("encoding tree", "tree", tree, "nodes", nodeCount)
}

func (h logCodecHooks) OnEncodeComplete(_ context.Context, tree string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("encode failed", "tree", tree, "err", err)
		return
	}
	h.logger.Debug("encoded tree", "tree", tree, "nodes", nodeCount, "took", d.Round(time.Millisecond))
}

func (h logCodecHooks) OnDecodeStart(_ context.Context, tree string, nodeCount int) {
	h.logger.Debug("decoding snapshot", "tree", tree, "nodes", nodeCount)
}

func (h logCodecHooks) OnDecodeComplete(_ context.Context, tree string, created int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("decode failed", "tree", tree, "err", err)
		return
	}
	h.logger.Debug("decoded snapshot", "tree", tree, "created", created, "took", d.Round(time.Millisecond))
}

func (h logCodecHooks) OnNodeSkipped(_ context.Context, node, kind, reason string) {
	h.logger.Warn("node skipped", "node", node, "kind", kind, "reason", reason)
}

func (h logCodecHooks) OnLinkDropped(_ context.Context, fromNode, toNode, reason string) {
	h.logger.Warn("link dropped", "from", fromNode, "to", toNode, "reason", reason)
}

func (h logCodecHooks) OnAttributeFallback(_ context.Context, node, attr, valueType string) {
	h.logger.Debug("attribute not representable", "node", node, "attr", attr, "type", valueType)
}

// logTransportHooks forwards token envelope events to the CLI logger.
type logTransportHooks struct {
	logger *log.Logger
}

func (h logTransportHooks) OnTokenEncoded(_ context.Context, rawBytes, tokenBytes int, d time.Duration) {
	h.logger.Debug("token encoded", "raw", rawBytes, "token", tokenBytes, "took", d.Round(time.Millisecond))
}

func (h logTransportHooks) OnTokenDecoded(_ context.Context, tokenBytes, rawBytes int, d time.Duration) {
	h.logger.Debug("token decoded", "token", tokenBytes, "raw", rawBytes, "took", d.Round(time.Millisecond))
}

func (h logTransportHooks) OnTokenError(_ context.Context, stage string, err error) {
	h.logger.Debug("token envelope error", "stage", stage, "err", err)
}
