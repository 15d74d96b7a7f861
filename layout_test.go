package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLayoutFlexGrowFillsSlack(t *testing.T) {
	root := CreateNode(NodeKindBox, "")
	root.Style = Style{FlexDirection: Some(FlexRow), Width: Some(Cells(10)), Height: Some(Cells(1))}
	a := CreateNode(NodeKindBox, "")
	a.Style = Style{FlexGrow: Some(1.0)}
	b := CreateNode(NodeKindBox, "")
	b.Style = Style{Width: Some(Cells(3))}
	require.NoError(t, AppendChild(root, a))
	require.NoError(t, AppendChild(root, b))

	ComputeLayout(root, 10, 1)

	assert.Equal(t, 7, a.layout.W)
	assert.Equal(t, 3, b.layout.W)
	assert.Equal(t, 0, a.layout.X)
	assert.Equal(t, 7, b.layout.X)
}

func TestComputeLayoutJustifyCenter(t *testing.T) {
	root := CreateNode(NodeKindBox, "")
	root.Style = Style{
		FlexDirection:  Some(FlexRow),
		Width:          Some(Cells(10)),
		Height:         Some(Cells(1)),
		JustifyContent: Some(JustifyCenter),
	}
	a := CreateNode(NodeKindBox, "")
	a.Style = Style{Width: Some(Cells(4))}
	require.NoError(t, AppendChild(root, a))

	ComputeLayout(root, 10, 1)

	assert.Equal(t, 3, a.layout.X)
	assert.Equal(t, 4, a.layout.W)
}

func TestComputeLayoutDisplayNonePruned(t *testing.T) {
	root := CreateNode(NodeKindBox, "")
	root.Style = Style{FlexDirection: Some(FlexRow), Width: Some(Cells(10)), Height: Some(Cells(1))}
	a := CreateNode(NodeKindBox, "")
	a.Style = Style{Width: Some(Cells(4)), Display: Some(DisplayNone)}
	b := CreateNode(NodeKindBox, "")
	b.Style = Style{Width: Some(Cells(3))}
	require.NoError(t, AppendChild(root, a))
	require.NoError(t, AppendChild(root, b))

	ComputeLayout(root, 10, 1)

	assert.Equal(t, 0, b.layout.X)
}

func TestComputeLayoutBorderConsumesCell(t *testing.T) {
	root := CreateNode(NodeKindBox, "")
	root.Style = Style{
		Width:     Some(Cells(10)),
		Height:    Some(Cells(5)),
		BorderTop: Some(BorderEdge{Kind: BorderSingle}),
	}
	root.Style.BorderRight = Some(BorderEdge{Kind: BorderSingle})
	root.Style.BorderBottom = Some(BorderEdge{Kind: BorderSingle})
	root.Style.BorderLeft = Some(BorderEdge{Kind: BorderSingle})
	child := CreateNode(NodeKindBox, "")
	child.Style = Style{Width: Some(Cells(100)), Height: Some(Cells(100))}
	require.NoError(t, AppendChild(root, child))

	ComputeLayout(root, 10, 5)

	assert.Equal(t, 1, child.layout.X)
	assert.Equal(t, 1, child.layout.Y)
}

func TestComputeLayoutMarginOffsetsChildAndConsumesSpace(t *testing.T) {
	root := CreateNode(NodeKindBox, "")
	root.Style = Style{FlexDirection: Some(FlexRow), Width: Some(Cells(10)), Height: Some(Cells(1))}
	a := CreateNode(NodeKindBox, "")
	a.Style = Style{Width: Some(Cells(2)), Margin: Some(EdgeInts{Left: 1, Right: 1})}
	b := CreateNode(NodeKindBox, "")
	b.Style = Style{Width: Some(Cells(2))}
	require.NoError(t, AppendChild(root, a))
	require.NoError(t, AppendChild(root, b))

	ComputeLayout(root, 10, 1)

	assert.Equal(t, 1, a.layout.X)
	assert.Equal(t, 2, a.layout.W)
	// b starts after a's margin-left + width + margin-right.
	assert.Equal(t, 4, b.layout.X)
}

func TestComputeLayoutMarginTopOffsetsCrossAxis(t *testing.T) {
	root := CreateNode(NodeKindBox, "")
	root.Style = Style{FlexDirection: Some(FlexRow), Width: Some(Cells(10)), Height: Some(Cells(5))}
	a := CreateNode(NodeKindBox, "")
	a.Style = Style{Width: Some(Cells(2)), Height: Some(Cells(2)), Margin: Some(EdgeInts{Top: 2})}
	require.NoError(t, AppendChild(root, a))

	ComputeLayout(root, 10, 5)

	assert.Equal(t, 2, a.layout.Y)
}

func TestComputeLayoutGapBetweenChildren(t *testing.T) {
	root := CreateNode(NodeKindBox, "")
	root.Style = Style{
		FlexDirection: Some(FlexRow),
		Width:         Some(Cells(10)),
		Height:        Some(Cells(1)),
		GapColumn:     Some(2),
	}
	a := CreateNode(NodeKindBox, "")
	a.Style = Style{Width: Some(Cells(2))}
	b := CreateNode(NodeKindBox, "")
	b.Style = Style{Width: Some(Cells(2))}
	require.NoError(t, AppendChild(root, a))
	require.NoError(t, AppendChild(root, b))

	ComputeLayout(root, 10, 1)

	assert.Equal(t, 0, a.layout.X)
	assert.Equal(t, 4, b.layout.X)
}
