package ink

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareUpdateNilWhenUnchanged(t *testing.T) {
	s := Style{Width: Some(Cells(5))}
	patch := PrepareUpdate(s, s, nil, nil)
	assert.Nil(t, patch)
}

func TestPrepareUpdateDetectsStyleChange(t *testing.T) {
	a := Style{Width: Some(Cells(5))}
	b := Style{Width: Some(Cells(6))}
	patch := PrepareUpdate(a, b, nil, nil)
	require.NotNil(t, patch)
	assert.Equal(t, Cells(6), patch.Style.Width.Get(AutoDim))
}

func TestPrepareUpdateDetectsAttributeRemoval(t *testing.T) {
	old := map[string]any{"id": "x"}
	patch := PrepareUpdate(Style{}, Style{}, old, nil)
	require.NotNil(t, patch)
	val, ok := patch.Attrs["id"]
	assert.True(t, ok)
	assert.Nil(t, val)
}

func TestCommitUpdateAppliesPatch(t *testing.T) {
	n := CreateNode(NodeKindBox, "")
	n.Attributes["id"] = "x"
	patch := &StylePatch{
		Style: Style{Width: Some(Cells(7))},
		Attrs: map[string]any{"id": nil, "label": "y"},
	}
	CommitUpdate(n, patch)
	assert.Equal(t, Cells(7), n.Style.Width.Get(AutoDim))
	_, hasID := n.Attributes["id"]
	assert.False(t, hasID)
	assert.Equal(t, "y", n.Attributes["label"])
}

func TestSetCurrentUpdatePriorityReturnsPrevious(t *testing.T) {
	defer SetCurrentUpdatePriority(SyncPriority)
	prev := SetCurrentUpdatePriority(SyncPriority)
	assert.Equal(t, SyncPriority, prev)
	assert.Equal(t, SyncPriority, ResolveUpdatePriority())
	assert.Equal(t, SyncPriority, GetCurrentEventPriority())
}

func TestResetAfterCommitRunsLayoutAndComposite(t *testing.T) {
	root := CreateNode(NodeKindBox, "")
	root.Style = Style{Width: Some(Cells(5)), Height: Some(Cells(1))}
	textNode := CreateNode(NodeKindText, "")
	leaf := CreateNode(NodeKindTextLeaf, "hi")
	require.NoError(t, AppendChild(textNode, leaf))
	require.NoError(t, AppendChild(root, textNode))

	frame, lines := ResetAfterCommit(root, 5, 1)
	assert.Equal(t, "hi", frame)
	assert.Equal(t, 1, lines)
}

// TestResetAfterCommitDispatchesStaticDirty exercises spec.md §8
// scenario 6: appending under a static subtree routes the commit
// through OnImmediateRender and clears StaticDirty, while a commit
// that only touched dynamic content routes through OnRender instead.
func TestResetAfterCommitDispatchesStaticDirty(t *testing.T) {
	root := CreateNode(NodeKindBox, "")
	root.Style = Style{Width: Some(Cells(10)), Height: Some(Cells(2))}
	static := CreateNode(NodeKindBox, "")
	MarkStatic(static)
	dyn := CreateNode(NodeKindBox, "")
	require.NoError(t, AppendChild(root, static))
	require.NoError(t, AppendChild(root, dyn))

	var immediate, ordinary int
	root.OnImmediateRender = func() { immediate++ }
	root.OnRender = func() { ordinary++ }

	// A commit under the static subtree.
	require.NoError(t, AppendChild(static, CreateNode(NodeKindBox, "")))
	ResetAfterCommit(root, 10, 2)
	assert.Equal(t, 1, immediate)
	assert.Equal(t, 0, ordinary)
	assert.False(t, root.StaticDirty)

	// A commit that only touches dynamic content.
	require.NoError(t, AppendChild(dyn, CreateNode(NodeKindBox, "")))
	ResetAfterCommit(root, 10, 2)
	assert.Equal(t, 1, immediate)
	assert.Equal(t, 1, ordinary)
}

// TestPatchedStyleMatchesDirectlyBuiltStyle guards the equivalence
// property spec.md §10 calls for: a node that arrives at a style by
// successive CommitUpdate patches must end up indistinguishable from
// one that was simply constructed with that style from the start.
func TestPatchedStyleMatchesDirectlyBuiltStyle(t *testing.T) {
	patched := CreateNode(NodeKindBox, "")
	for _, s := range []Style{
		{Width: Some(Cells(5))},
		{Width: Some(Cells(5)), Height: Some(Cells(3))},
		{Width: Some(Cells(5)), Height: Some(Cells(3)), FlexGrow: Some(1.0), FG: Some(Red)},
	} {
		if patch := PrepareUpdate(patched.Style, s, nil, nil); patch != nil {
			CommitUpdate(patched, &StylePatch{Style: s, Attrs: patch.Attrs})
		}
	}

	direct := CreateNode(NodeKindBox, "")
	direct.Style = Style{Width: Some(Cells(5)), Height: Some(Cells(3)), FlexGrow: Some(1.0), FG: Some(Red)}

	// Option[T]'s fields are unexported, so diff the resolved values
	// go-cmp can actually compare rather than the Option wrappers.
	resolved := func(s Style) any {
		return struct {
			Width, Height Dimension
			FlexGrow      float64
			FG            Color
		}{s.Width.Get(AutoDim), s.Height.Get(AutoDim), s.FlexGrow.Get(0), s.FG.Get(DefaultColor())}
	}
	if diff := cmp.Diff(resolved(direct.Style), resolved(patched.Style)); diff != "" {
		t.Errorf("patched style diverged from directly built style:\n%s", diff)
	}
}
