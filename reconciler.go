package ink

// HostConfig is the callback surface an external generic element
// differ drives to turn a tree of author-level elements into Node
// mutations (spec.md §4.E, §6). The functions below are free
// functions rather than methods on a HostConfig struct because the
// model has exactly one kind of host instance (*Node) and no
// per-renderer configuration to close over — matching the teacher's
// preference for plain functions over interface ceremony where a
// single implementation is all there ever is (arena.go, buffer.go).

// CreateInstance creates a detached Box/Text instance for a
// non-text element type, with its initial style/attributes applied.
// Per spec.md §4.E, a Text element requested while already inside a
// text ancestor (ctx.insideText) is silently downgraded to
// VirtualText, so nested text runs carry no layout handle of their
// own.
func CreateInstance(kind NodeKind, style Style, attrs map[string]any, ctx hostContext) *Node {
	if ctx.insideText && kind == NodeKindText {
		kind = NodeKindVirtualText
	}
	n := CreateNode(kind, "")
	n.Style = style
	for k, v := range attrs {
		SetAttribute(n, k, v)
	}
	return n
}

// CreateTextInstance creates a detached TextLeaf carrying literal
// text. Per spec.md §3 invariant 2 and §4.E, this is a fatal error
// when ctx reports no text ancestor in scope.
func CreateTextInstance(text string, ctx hostContext) (*Node, error) {
	if !ctx.insideText {
		return nil, newInvariantError("text-leaf-outside-text-ancestor", nil)
	}
	return CreateNode(NodeKindTextLeaf, text), nil
}

// AppendInitialChild appends child to parent during initial mount,
// before parent has been attached anywhere itself.
func AppendInitialChild(parent, child *Node) error {
	return AppendChild(parent, child)
}

// AppendChildToContainer appends child to the root container. The
// node model draws no structural distinction between a container and
// any other parent, so this and AppendChild (node.go) are the same
// operation under two host-config-contract names.
func AppendChildToContainer(root, child *Node) error { return AppendChild(root, child) }

// InsertInContainerBefore inserts child into the root container
// immediately before reference.
func InsertInContainerBefore(root, child, reference *Node) error {
	return InsertBefore(root, child, reference)
}

// RemoveChildFromContainer detaches child from the root container.
func RemoveChildFromContainer(root, child *Node) error { return RemoveChild(root, child) }

// PrepareUpdate diffs oldStyle/oldAttrs against newStyle/newAttrs and
// returns the patch to apply, or nil if nothing changed. Returning
// nil lets a differ skip CommitUpdate entirely for an unchanged node
// (spec.md §4.E "diff props, compute a patch").
func PrepareUpdate(oldStyle, newStyle Style, oldAttrs, newAttrs map[string]any) *StylePatch {
	patch := diffStyle(oldStyle, newStyle)
	attrPatch := diffAttrs(oldAttrs, newAttrs)
	if patch == nil && attrPatch == nil {
		return nil
	}
	if patch == nil {
		patch = &StylePatch{}
	}
	patch.Attrs = attrPatch
	return patch
}

// StylePatch is the result of diffing two styles/attribute maps:
// exactly the fields that changed, plus any attribute additions,
// changes, or removals (nil value means "delete this key").
type StylePatch struct {
	Style Style
	Attrs map[string]any
}

// diffStyle compares two Style values field by field and returns a
// Style carrying only the fields that differ, or nil if identical.
// A plain field-by-field comparison, per spec.md §9's design note
// rejecting reflection-based diffing.
func diffStyle(a, b Style) *StylePatch {
	var out Style
	changed := false

	if !a.Width.Equal(b.Width, dimEqual) {
		out.Width = b.Width
		changed = true
	}
	if !a.Height.Equal(b.Height, dimEqual) {
		out.Height = b.Height
		changed = true
	}
	if !a.FlexDirection.Equal(b.FlexDirection, func(x, y FlexDirection) bool { return x == y }) {
		out.FlexDirection = b.FlexDirection
		changed = true
	}
	if !a.FlexGrow.Equal(b.FlexGrow, func(x, y float64) bool { return x == y }) {
		out.FlexGrow = b.FlexGrow
		changed = true
	}
	if !a.FlexShrink.Equal(b.FlexShrink, func(x, y float64) bool { return x == y }) {
		out.FlexShrink = b.FlexShrink
		changed = true
	}
	if !a.JustifyContent.Equal(b.JustifyContent, func(x, y Justify) bool { return x == y }) {
		out.JustifyContent = b.JustifyContent
		changed = true
	}
	if !a.AlignItems.Equal(b.AlignItems, func(x, y Align) bool { return x == y }) {
		out.AlignItems = b.AlignItems
		changed = true
	}
	if !a.Padding.Equal(b.Padding, func(x, y EdgeInts) bool { return x == y }) {
		out.Padding = b.Padding
		changed = true
	}
	if !a.Margin.Equal(b.Margin, func(x, y EdgeInts) bool { return x == y }) {
		out.Margin = b.Margin
		changed = true
	}
	if !a.FG.Equal(b.FG, func(x, y Color) bool { return x == y }) {
		out.FG = b.FG
		changed = true
	}
	if !a.BG.Equal(b.BG, func(x, y Color) bool { return x == y }) {
		out.BG = b.BG
		changed = true
	}
	if !a.Bold.Equal(b.Bold, func(x, y bool) bool { return x == y }) {
		out.Bold = b.Bold
		changed = true
	}
	if !a.Display.Equal(b.Display, func(x, y Display) bool { return x == y }) {
		out.Display = b.Display
		changed = true
	}
	if !changed {
		return nil
	}
	return &StylePatch{Style: out}
}

func dimEqual(a, b Dimension) bool { return a == b }

// diffAttrs returns a map containing only the attributes that were
// added, changed, or removed (removed keys map to nil), or nil if
// the two attribute sets are equal — spec.md §4.E's "keys present in
// old but missing in new are treated as explicitly unset."
func diffAttrs(old, new map[string]any) map[string]any {
	var patch map[string]any
	for k, v := range new {
		if ov, ok := old[k]; !ok || ov != v {
			if patch == nil {
				patch = map[string]any{}
			}
			patch[k] = v
		}
	}
	for k := range old {
		if _, ok := new[k]; !ok {
			if patch == nil {
				patch = map[string]any{}
			}
			patch[k] = nil
		}
	}
	return patch
}

// CommitUpdate applies a previously computed patch to n.
func CommitUpdate(n *Node, patch *StylePatch) {
	if patch == nil {
		return
	}
	SetStyle(n, patch.Style)
	for k, v := range patch.Attrs {
		SetAttribute(n, k, v)
	}
}

// ResetTextContent clears a TextLeaf's content ahead of a full
// CommitTextUpdate (kept distinct per the host-config contract even
// though CommitTextUpdate alone would suffice for this Node shape).
func ResetTextContent(n *Node) { n.TextContent = "" }

// CommitTextUpdate replaces a TextLeaf's literal content.
func CommitTextUpdate(n *Node, text string) { n.TextContent = text }

// hostContext is the context threaded down a subtree (spec.md §4.E):
// insideText records whether a Text or VirtualText ancestor is
// already in scope, which gates whether a TextLeaf may be created and
// whether a nested Text auto-downgrades to VirtualText.
type hostContext struct {
	insideText bool
}

// GetRootHostContext returns the root's host context: never inside
// text, since a Root cannot itself be a text ancestor.
func GetRootHostContext() hostContext { return hostContext{} }

// GetChildHostContext returns the context children of a node of kind
// kind should see, given the context kind itself was created under
// (spec.md §4.E: entering a Text or VirtualText node puts every
// descendant inside a text ancestor).
func GetChildHostContext(parent hostContext, kind NodeKind) hostContext {
	return hostContext{insideText: parent.insideText || kind == NodeKindText || kind == NodeKindVirtualText}
}

// PrepareForCommit is a no-op hook point preceding a commit; no
// terminal-level locking is needed since this model is single-
// threaded (spec.md §5).
func PrepareForCommit(root *Node) any { return nil }

// ResetAfterCommit recomputes layout for root, then dispatches the
// normative commit-hook sequence spec.md §4.E names: if root's
// StaticDirty flag is set, clear it and call OnImmediateRender — a
// single, rate-limiter-bypassing emission that paints static content
// in place (skipStatic=false) — and return early without touching
// the ordinary dynamic path; otherwise call OnRender, which paints
// with skipStatic=true so static regions are left untouched. When no
// hooks are installed (e.g. a caller driving layout/composite
// directly without FrameDriver.Attach), it falls back to compositing
// and returning the frame itself, preserving the pre-hook contract.
func ResetAfterCommit(root *Node, width, height int) (frame string, lines int) {
	ComputeLayout(root, width, height)
	if root.OnComputeLayout != nil {
		root.OnComputeLayout()
	}
	if root.StaticDirty {
		root.StaticDirty = false
		if root.OnImmediateRender != nil {
			root.OnImmediateRender()
			return "", 0
		}
		return Composite(root, false)
	}
	if root.OnRender != nil {
		root.OnRender()
		return "", 0
	}
	return Composite(root, true)
}

// Priority is the host config's scheduling priority for a commit;
// this model always commits synchronously and to completion, so only
// one value exists (spec.md §5 "commits run to completion atomically").
type Priority uint8

const SyncPriority Priority = 0

// currentPriority is the thread-local "current update priority"
// spec.md §6 names; single-threaded here, so a package variable
// stands in for the thread-local (spec.md §5).
var currentPriority = SyncPriority

// GetCurrentEventPriority reports the priority an external event
// (e.g. a resize or input callback) should be treated as running at.
// Always SyncPriority, since this model has exactly one priority.
func GetCurrentEventPriority() Priority { return SyncPriority }

// ResolveUpdatePriority returns the priority a state update not
// already tagged with one should be assigned: the current update
// priority if one is in effect, otherwise SyncPriority.
func ResolveUpdatePriority() Priority { return currentPriority }

// SetCurrentUpdatePriority sets the current update priority and
// returns the previous value, so a caller can restore it afterward.
func SetCurrentUpdatePriority(p Priority) Priority {
	prev := currentPriority
	currentPriority = p
	return prev
}
