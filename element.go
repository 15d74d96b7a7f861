package ink

// Element is the smallest generic, immutable element-tree shape that
// can drive the host config (spec.md §4.E supplement) — not the
// component-authoring API spec.md §1 excludes, just enough structure
// for tests and cmd/inkdemo to describe two trees and reconcile
// between them.
type Element struct {
	Kind     NodeKind
	Key      string // empty means "no explicit key", matched positionally
	Text     string // only meaningful when Kind == NodeKindTextLeaf
	Style    Style
	Attrs    map[string]any
	Transform Transform
	Children []Element
}

// elementMatch reports whether two elements should be treated as the
// same logical instance across a reconcile, by type+key — the same
// rule wavetermdev-waveterm's ComponentImpl.compMatch uses (tag+key).
func elementMatch(a, b Element) bool {
	if a.Kind != b.Kind {
		return false
	}
	return a.Key == b.Key
}

// Reconcile diffs old against next and applies the resulting
// create/update/move/delete operations to container via the host
// config, returning the Node that now occupies container's single
// managed child slot (the reused or freshly mounted node; nil when
// next is nil, in which case any previous child is removed).
// It fails with an *InvariantError when next would place a TextLeaf
// outside any Text/VirtualText ancestor (spec.md §3 invariant 2,
// §4.E's create_text_instance contract).
func Reconcile(container *Node, old, next *Element) (*Node, error) {
	var oldChild *Node
	if len(container.children) > 0 {
		oldChild = container.children[0]
	}
	newChild, err := reconcileNode(oldChild, old, next, GetRootHostContext())
	if err != nil {
		return nil, err
	}
	if newChild != oldChild {
		if oldChild != nil {
			RemoveChild(container, oldChild)
		}
		if newChild != nil {
			if err := AppendChild(container, newChild); err != nil {
				return nil, err
			}
		}
	}
	return newChild, nil
}

// reconcileNode is the recursive workhorse: given the previously
// rendered node (if any), the element it was rendered from, and the
// new element, it returns the node that should now represent next —
// reusing n in place when possible, or building a fresh subtree. ctx
// is the host context next itself was created under.
func reconcileNode(n *Node, old, next *Element, ctx hostContext) (*Node, error) {
	if next == nil {
		return nil, nil
	}
	if old == nil || n == nil || !elementMatch(*old, *next) {
		return mountElement(*next, ctx)
	}

	if next.Kind == NodeKindTextLeaf {
		if old.Text != next.Text {
			CommitTextUpdate(n, next.Text)
		}
		return n, nil
	}

	if patch := PrepareUpdate(n.Style, next.Style, n.Attributes, next.Attrs); patch != nil {
		CommitUpdate(n, patch)
	}
	n.Transform = next.Transform

	childCtx := GetChildHostContext(ctx, n.Kind)
	if err := reconcileChildren(n, old.Children, next.Children, childCtx); err != nil {
		return nil, err
	}
	return n, nil
}

// reconcileChildren matches old and next child lists by type+key
// (falling back to positional matching for unkeyed runs), reusing,
// creating, and dropping nodes as needed, then installs the new
// child slice directly (avoiding detach/AppendChild's own tree
// surgery, which assumes a stable parent.children backing slice this
// bulk rebuild does not have). ctx is the host context these children
// are created/reconciled under.
func reconcileChildren(parent *Node, oldEls, nextEls []Element, ctx hostContext) error {
	oldNodes := append([]*Node{}, parent.children...)
	used := make([]bool, len(oldNodes))

	matchFor := func(next Element) (*Node, *Element) {
		for i, on := range oldNodes {
			if used[i] || i >= len(oldEls) {
				continue
			}
			if elementMatch(oldEls[i], next) {
				used[i] = true
				return on, &oldEls[i]
			}
		}
		return nil, nil
	}

	result := make([]*Node, 0, len(nextEls))
	for _, next := range nextEls {
		oldNode, oldEl := matchFor(next)
		newNode, err := reconcileNode(oldNode, oldEl, &next, ctx)
		if err != nil {
			return err
		}
		if newNode != nil {
			result = append(result, newNode)
		}
	}

	for i, on := range oldNodes {
		if !used[i] {
			on.parent = nil
			on.index = -1
		}
	}

	parent.children = result
	for i, rn := range result {
		rn.parent = parent
		rn.index = i
	}
	return nil
}

// mountElement builds a fresh subtree for an element with no prior
// instance to reuse (spec.md §4.E initial-mount path), under the host
// context el itself was created under.
func mountElement(el Element, ctx hostContext) (*Node, error) {
	var n *Node
	if el.Kind == NodeKindTextLeaf {
		var err error
		n, err = CreateTextInstance(el.Text, ctx)
		if err != nil {
			return nil, err
		}
	} else {
		n = CreateInstance(el.Kind, el.Style, el.Attrs, ctx)
		n.Transform = el.Transform
	}
	childCtx := GetChildHostContext(ctx, n.Kind)
	for _, child := range el.Children {
		childNode, err := mountElement(child, childCtx)
		if err != nil {
			return nil, err
		}
		if err := AppendChild(n, childNode); err != nil {
			return nil, err
		}
	}
	return n, nil
}
