package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChildSetsParent(t *testing.T) {
	root := CreateNode(NodeKindRoot, "")
	box := CreateNode(NodeKindBox, "")
	require.NoError(t, AppendChild(root, box))
	assert.Equal(t, root, box.Parent())
	assert.Equal(t, []*Node{box}, root.Children())
}

func TestAppendChildDetachesFromPriorParent(t *testing.T) {
	a := CreateNode(NodeKindRoot, "")
	b := CreateNode(NodeKindRoot, "")
	box := CreateNode(NodeKindBox, "")
	require.NoError(t, AppendChild(a, box))
	require.NoError(t, AppendChild(b, box))
	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{box}, b.Children())
}

func TestLeafNodeRejectsChildren(t *testing.T) {
	leaf := CreateNode(NodeKindTextLeaf, "hi")
	child := CreateNode(NodeKindBox, "")
	err := AppendChild(leaf, child)
	require.Error(t, err)
	var invErr *InvariantError
	assert.ErrorAs(t, err, &invErr)
}

func TestAppendChildRejectsTextLeafUnderBox(t *testing.T) {
	box := CreateNode(NodeKindBox, "")
	leaf := CreateNode(NodeKindTextLeaf, "x")
	err := AppendChild(box, leaf)
	require.Error(t, err)
	var invErr *InvariantError
	assert.ErrorAs(t, err, &invErr)
}

func TestAppendChildRejectsBoxUnderText(t *testing.T) {
	text := CreateNode(NodeKindText, "")
	box := CreateNode(NodeKindBox, "")
	err := AppendChild(text, box)
	require.Error(t, err)
	var invErr *InvariantError
	assert.ErrorAs(t, err, &invErr)
}

func TestAppendChildAllowsTextLeafUnderVirtualText(t *testing.T) {
	vt := CreateNode(NodeKindVirtualText, "")
	leaf := CreateNode(NodeKindTextLeaf, "x")
	require.NoError(t, AppendChild(vt, leaf))
}

func TestAppendChildUnderStaticMarksRootDirty(t *testing.T) {
	root := CreateNode(NodeKindRoot, "")
	box := CreateNode(NodeKindBox, "")
	MarkStatic(box)
	require.NoError(t, AppendChild(root, box))
	root.StaticDirty = false

	child := CreateNode(NodeKindBox, "")
	require.NoError(t, AppendChild(box, child))
	assert.True(t, root.StaticDirty)
}

func TestInsertBeforeOrdersChildren(t *testing.T) {
	root := CreateNode(NodeKindRoot, "")
	a := CreateNode(NodeKindBox, "")
	b := CreateNode(NodeKindBox, "")
	c := CreateNode(NodeKindBox, "")
	require.NoError(t, AppendChild(root, a))
	require.NoError(t, AppendChild(root, c))
	require.NoError(t, InsertBefore(root, b, c))
	assert.Equal(t, []*Node{a, b, c}, root.Children())
}

func TestRemoveChild(t *testing.T) {
	root := CreateNode(NodeKindRoot, "")
	box := CreateNode(NodeKindBox, "")
	require.NoError(t, AppendChild(root, box))
	require.NoError(t, RemoveChild(root, box))
	assert.Empty(t, root.Children())
	assert.Nil(t, box.Parent())
}

func TestRemoveChildNotAChildErrors(t *testing.T) {
	root := CreateNode(NodeKindRoot, "")
	other := CreateNode(NodeKindRoot, "")
	box := CreateNode(NodeKindBox, "")
	require.NoError(t, AppendChild(other, box))
	err := RemoveChild(root, box)
	assert.Error(t, err)
}

func TestSetStyleMergesShallow(t *testing.T) {
	n := CreateNode(NodeKindBox, "")
	SetStyle(n, Style{Width: Some(Cells(10))})
	SetStyle(n, Style{Height: Some(Cells(5))})
	assert.Equal(t, Cells(10), n.Style.Width.Get(AutoDim))
	assert.Equal(t, Cells(5), n.Style.Height.Get(AutoDim))
}

func TestSetAttributeDeleteOnNil(t *testing.T) {
	n := CreateNode(NodeKindBox, "")
	SetAttribute(n, "id", "a")
	assert.Equal(t, "a", n.Attributes["id"])
	SetAttribute(n, "id", nil)
	_, ok := n.Attributes["id"]
	assert.False(t, ok)
}
