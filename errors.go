package ink

import "fmt"

// InvariantError reports a violated data-model invariant (spec.md §7
// kind 1): a caller tried to shape the node tree in a way the model
// forbids. It is always a programming error in the caller, never a
// recoverable runtime condition.
type InvariantError struct {
	Invariant string // the named invariant, e.g. "leaf-node-no-children"
	Kind      NodeKind
	Path      string // dotted tree path to the offending node, best-effort
	Err       error
}

func (e *InvariantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ink: invariant %q violated at %s (kind=%v): %v", e.Invariant, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("ink: invariant %q violated at %s (kind=%v)", e.Invariant, e.Path, e.Kind)
}

func (e *InvariantError) Unwrap() error { return e.Err }

func newInvariantError(invariant string, n *Node) *InvariantError {
	kind := NodeKindRoot
	path := "<nil>"
	if n != nil {
		kind = n.Kind
		path = n.path()
	}
	return &InvariantError{Invariant: invariant, Kind: kind, Path: path}
}
