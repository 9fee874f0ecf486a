package codec

import (
	"fmt"

	"github.com/noderunner/noderunner/pkg/errors"
)

// Diagnostic records one isolated per-item failure during a traversal.
type Diagnostic struct {
	Code   errors.Code
	Item   string // "node", "link", "attribute", or "asset"
	Node   string // owning node name, if any
	Detail string
}

// String formats the diagnostic for operator-visible logs.
func (d Diagnostic) String() string {
	if d.Node != "" {
		return fmt.Sprintf("[%s] %s %q: %s", d.Code, d.Item, d.Node, d.Detail)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.Item, d.Detail)
}

// Report accumulates the outcome of one encode or decode traversal.
// A report with diagnostics is not a failure: the traversal completed,
// skipping the items listed.
type Report struct {
	Diagnostics []Diagnostic

	NodesCreated   int
	NodesSkipped   int
	LinksCreated   int
	LinksDropped   int
	SocketsCreated int // group interface sockets created on demand
	NodesEncoded   int
	LinksEncoded   int
}

// HasDiagnostics reports whether any per-item failure was recorded.
func (r *Report) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

func (r *Report) addNodeDiag(code errors.Code, node, detail string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: code, Item: "node", Node: node, Detail: detail})
}

func (r *Report) addLinkDiag(code errors.Code, detail string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: code, Item: "link", Detail: detail})
}

func (r *Report) addAttrDiag(node, detail string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: errors.ErrCodeUnsupportedValue, Item: "attribute", Node: node, Detail: detail})
}

func (r *Report) addAssetDiag(node, detail string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: errors.ErrCodeUnknownAsset, Item: "asset", Node: node, Detail: detail})
}
