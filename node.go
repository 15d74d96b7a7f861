package ink

import "strconv"

// NodeKind tags the variant of a Node (spec.md §3).
type NodeKind uint8

const (
	NodeKindRoot NodeKind = iota
	NodeKindBox
	NodeKindText
	NodeKindVirtualText
	NodeKindTextLeaf
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindRoot:
		return "root"
	case NodeKindBox:
		return "box"
	case NodeKindText:
		return "text"
	case NodeKindVirtualText:
		return "virtual-text"
	case NodeKindTextLeaf:
		return "text-leaf"
	default:
		return "unknown"
	}
}

// Transform rewrites a single rendered line of text, given its
// zero-based index within the node's own text content. Nested
// transforms compose innermost-first (spec.md §4.F, §9 open question 1).
type Transform func(line string, lineIndex int) string

// Node is the single retained-mode tree type (spec.md §3): Root, Box,
// Text, VirtualText, and TextLeaf are distinguished by Kind rather than
// by separate Go types, mirroring the teacher's single FlexNode/Node
// shape (flexlayout.go, arena.go) carrying a kind enum plus a union of
// fields used only by some kinds.
type Node struct {
	Kind NodeKind

	parent   *Node
	children []*Node
	index    int // this node's index within parent.children, kept in sync

	Style      Style
	Attributes map[string]any

	// TextContent holds the literal string for TextLeaf nodes, and is
	// unused otherwise.
	TextContent string

	// Transform applies only to Text and VirtualText nodes.
	Transform Transform

	layout *layoutNode // nil for VirtualText and TextLeaf

	// StaticDirty, OnComputeLayout, OnRender, and OnImmediateRender are
	// meaningful only on a Root (spec.md §3, §4.E, §4.H): StaticDirty
	// is set whenever AppendChild or InsertBefore adds a child under a
	// subtree marked static,
	// and the commit hooks let a driver distinguish a static-region
	// append (on_immediate_render, bypassing the rate limiter) from an
	// ordinary dynamic re-render (on_render).
	StaticDirty       bool
	OnComputeLayout   func()
	OnRender          func()
	OnImmediateRender func()
}

// CreateNode allocates a new detached node of the given kind
// (spec.md §4.D). TextLeaf nodes carry the given literal text;
// other kinds ignore it.
func CreateNode(kind NodeKind, text string) *Node {
	n := &Node{Kind: kind, Attributes: make(map[string]any)}
	if kind == NodeKindTextLeaf {
		n.TextContent = text
	}
	if kind != NodeKindVirtualText && kind != NodeKindTextLeaf {
		n.layout = newLayoutNode(n)
	}
	return n
}

// Parent returns the node's current parent, or nil if detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in order. The returned slice
// must not be mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) path() string {
	if n.parent == nil {
		return n.Kind.String()
	}
	return n.parent.path() + "/" + n.Kind.String() + "[" + strconv.Itoa(n.index) + "]"
}

// canHaveChildren enforces spec.md §3's structural invariants: only
// Root, Box, Text, and VirtualText may have children; TextLeaf is
// always a leaf.
func (n *Node) canHaveChildren() bool {
	switch n.Kind {
	case NodeKindRoot, NodeKindBox, NodeKindText, NodeKindVirtualText:
		return true
	default:
		return false
	}
}

// childAllowed enforces spec.md §3 invariants 1 and 2: a Root/Box may
// only contain Box or Text children (never a bare TextLeaf or
// VirtualText), and a Text/VirtualText may only contain Text,
// VirtualText, or TextLeaf children (never a Box) — a TextLeaf exists
// only with a Text or VirtualText ancestor.
func childAllowed(parent, child NodeKind) bool {
	switch parent {
	case NodeKindRoot, NodeKindBox:
		return child == NodeKindBox || child == NodeKindText
	case NodeKindText, NodeKindVirtualText:
		return child == NodeKindText || child == NodeKindVirtualText || child == NodeKindTextLeaf
	default:
		return false
	}
}

// AppendChild appends child to the end of n's children, detaching it
// from any prior parent first (spec.md §4.D detach-before-reattach
// discipline, grounded on arena.go's relinkChild/unlinkChild).
func AppendChild(n, child *Node) error {
	if !n.canHaveChildren() {
		return newInvariantError("leaf-node-no-children", n)
	}
	if !childAllowed(n.Kind, child.Kind) {
		return newInvariantError("child-kind-not-allowed", n)
	}
	detach(child)
	child.parent = n
	child.index = len(n.children)
	n.children = append(n.children, child)
	markStaticDirtyIfUnderStatic(n)
	return nil
}

// InsertBefore inserts child into n's children immediately before
// reference. If reference is nil, child is appended.
func InsertBefore(n, child, reference *Node) error {
	if !n.canHaveChildren() {
		return newInvariantError("leaf-node-no-children", n)
	}
	if !childAllowed(n.Kind, child.Kind) {
		return newInvariantError("child-kind-not-allowed", n)
	}
	if reference == nil {
		return AppendChild(n, child)
	}
	if reference.parent != n {
		return newInvariantError("reference-not-a-child", n)
	}
	detach(child)
	at := reference.index
	n.children = append(n.children, nil)
	copy(n.children[at+1:], n.children[at:len(n.children)-1])
	n.children[at] = child
	child.parent = n
	reindex(n)
	markStaticDirtyIfUnderStatic(n)
	return nil
}

// RemoveChild detaches child from n. It is an error for child not to
// currently be a child of n.
func RemoveChild(n, child *Node) error {
	if child.parent != n {
		return newInvariantError("not-a-child-of-parent", n)
	}
	detach(child)
	return nil
}

func detach(n *Node) {
	p := n.parent
	if p == nil {
		return
	}
	at := n.index
	p.children = append(p.children[:at], p.children[at+1:]...)
	n.parent = nil
	n.index = -1
	reindex(p)
}

func reindex(n *Node) {
	for i, c := range n.children {
		c.index = i
	}
}

// SetAttribute sets a single opaque attribute key to value, or deletes
// it when value is nil (spec.md §3 attributes are author-opaque
// key/value pairs with no rendering order dependency).
func SetAttribute(n *Node, key string, value any) {
	if value == nil {
		delete(n.Attributes, key)
		return
	}
	n.Attributes[key] = value
}

// SetStyle shallow-merges patch into n's current style, field by
// field (spec.md §4.D).
func SetStyle(n *Node, patch Style) {
	n.Style = n.Style.Merge(patch)
	if n.layout != nil {
		n.layout.dirty = true
	}
}

// MarkStatic marks n's subtree as static content (spec.md §3, §5):
// compositing with skipStatic=true skips it entirely, so it is drawn
// exactly once, in append order, and never overwritten or re-painted
// by an ordinary dynamic re-render.
func MarkStatic(n *Node) {
	SetAttribute(n, "static", true)
}

func isStatic(n *Node) bool {
	b, _ := n.Attributes["static"].(bool)
	return b
}

// ancestorIsStatic reports whether n itself, or any ancestor of n,
// is marked static.
func ancestorIsStatic(n *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if isStatic(cur) {
			return true
		}
	}
	return false
}

func rootOf(n *Node) *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// markStaticDirtyIfUnderStatic flags the owning Root's StaticDirty
// bit when a child is added under parent and parent lies in a subtree
// marked static (spec.md §4.E's commit hook dispatches on this flag).
// Removals and text updates do not set it.
func markStaticDirtyIfUnderStatic(parent *Node) {
	if !ancestorIsStatic(parent) {
		return
	}
	rootOf(parent).StaticDirty = true
}
