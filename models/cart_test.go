package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLineIncrementsMatchingTuple(t *testing.T) {
	items := []CartItem{}
	items = MergeLine(items, CartItem{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 2})
	items = MergeLine(items, CartItem{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 3})

	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestMergeLineAppendsDistinctTuples(t *testing.T) {
	items := []CartItem{{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 1}}

	tests := []struct {
		name string
		line CartItem
	}{
		{"different product", CartItem{ProductID: "p2", Size: "M", Color: "Noir", Quantity: 1}},
		{"different size", CartItem{ProductID: "p1", Size: "L", Color: "Noir", Quantity: 1}},
		{"different color", CartItem{ProductID: "p1", Size: "M", Color: "Beige", Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeLine(append([]CartItem{}, items...), tt.line)
			assert.Len(t, merged, 2)
		})
	}
}

func TestSetLineQuantityOverwrites(t *testing.T) {
	items := []CartItem{{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 2}}
	items = SetLineQuantity(items, CartItem{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 7})

	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestSetLineQuantityNoMatchIsNoOp(t *testing.T) {
	items := []CartItem{{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 2}}
	items = SetLineQuantity(items, CartItem{ProductID: "p9", Size: "M", Color: "Noir", Quantity: 7})

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveLine(t *testing.T) {
	items := []CartItem{
		{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 2},
		{ProductID: "p2", Size: "S", Color: "Doré", Quantity: 1},
	}

	items = RemoveLine(items, "p1", "M", "Noir")
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)

	// Removing a line that was never added leaves the cart unchanged.
	items = RemoveLine(items, "p1", "M", "Noir")
	assert.Len(t, items, 1)
}
