// Package token implements the text-safe transport envelope for graph
// snapshots: JSON → zlib (best compression) → base64, with an optional
// human-readable label prefix separated by the "__NR" marker.
//
// Decoding is atomic: a corrupt envelope (bad base64, bad compressed stream,
// invalid snapshot JSON) fails with a transport error and produces nothing.
package token

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"time"

	"github.com/noderunner/noderunner/pkg/errors"
	"github.com/noderunner/noderunner/pkg/observability"
	"github.com/noderunner/noderunner/pkg/snapshot"
)

// Marker separates the optional label prefix from the payload.
// Everything before the first occurrence is discarded on decode.
const Marker = "__NR"

// Encode wraps a snapshot into a shareable token. When label is non-empty it
// is prepended as "<label>__NR<payload>".
func Encode(ctx context.Context, g *snapshot.Graph, label string) (string, error) {
	start := time.Now()

	raw, err := snapshot.Marshal(g)
	if err != nil {
		observability.Transport().OnTokenError(ctx, "marshal", err)
		return "", errors.Wrap(errors.ErrCodeInternal, err, "marshal snapshot")
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "init compressor")
	}
	if _, err := zw.Write(raw); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "compress snapshot")
	}
	if err := zw.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "flush compressor")
	}

	payload := base64.StdEncoding.EncodeToString(buf.Bytes())
	if label != "" {
		payload = label + Marker + payload
	}

	observability.Transport().OnTokenEncoded(ctx, len(raw), len(payload), time.Since(start))
	return payload, nil
}

// Decode unwraps a token back into a snapshot. Any envelope failure returns
// a TRANSPORT_ERROR; the zlib checksum catches single-byte corruption.
func Decode(ctx context.Context, tok string) (*snapshot.Graph, error) {
	start := time.Now()

	payload := strings.TrimSpace(tok)
	if idx := strings.Index(payload, Marker); idx >= 0 {
		payload = payload[idx+len(Marker):]
	}
	if payload == "" {
		return nil, errors.New(errors.ErrCodeInvalidToken, "empty token payload")
	}

	compressed, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		observability.Transport().OnTokenError(ctx, "base64", err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "decode base64 payload")
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		observability.Transport().OnTokenError(ctx, "inflate", err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "open compressed payload")
	}
	raw, err := io.ReadAll(zr)
	if cerr := zr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		observability.Transport().OnTokenError(ctx, "inflate", err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "inflate payload")
	}

	g, err := snapshot.Unmarshal(raw)
	if err != nil {
		observability.Transport().OnTokenError(ctx, "unmarshal", err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "decode snapshot")
	}

	observability.Transport().OnTokenDecoded(ctx, len(tok), len(raw), time.Since(start))
	return g, nil
}

// SplitLabel returns the human-readable prefix of a token, or "" when the
// token has no marker.
func SplitLabel(tok string) string {
	if idx := strings.Index(tok, Marker); idx >= 0 {
		return tok[:idx]
	}
	return ""
}
