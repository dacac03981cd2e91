package spatial

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordsIndexRoundTrip(t *testing.T) {
	dims := []int{4, 5, 6}
	for idx := 0; idx < product(dims); idx++ {
		coords := indexToCoords(idx, dims)
		assert.Equal(t, idx, coordsToIndex(coords, dims))
	}
}

func TestMapColumnCenterStaysInBounds(t *testing.T) {
	topo := newTopology([]int{10}, []int{5}, true)
	for c := 0; c < topo.columnCount(); c++ {
		center := topo.mapColumnCenter(c)
		assert.Len(t, center, 1)
		assert.GreaterOrEqual(t, center[0], 0)
		assert.Less(t, center[0], 10)
	}
}

func TestNeighborsWrapIncludesEdgeWrap(t *testing.T) {
	topo := newTopology([]int{10}, []int{10}, true)
	wrapped := topo.neighbors([]int{0}, 1, true)
	sort.Ints(wrapped)
	// center 0, radius 1, wrap: indices 9, 0, 1
	assert.Equal(t, []int{0, 1, 9}, wrapped)
}

func TestNeighborsNoWrapClipsAtEdge(t *testing.T) {
	topo := newTopology([]int{10}, []int{10}, false)
	notWrapped := topo.neighbors([]int{0}, 1, false)
	sort.Ints(notWrapped)
	assert.Equal(t, []int{0, 1}, notWrapped)
}

func TestColumnNeighborsExcludesSelf(t *testing.T) {
	topo := newTopology([]int{5}, []int{5}, false)
	neighbors := topo.columnNeighbors(2, 1, false)
	for _, n := range neighbors {
		assert.NotEqual(t, 2, n)
	}
	sort.Ints(neighbors)
	assert.Equal(t, []int{1, 3}, neighbors)
}

func TestColumnNeighborsCoversWholeSpaceWhenRadiusLarge(t *testing.T) {
	topo := newTopology([]int{8}, []int{8}, false)
	neighbors := topo.columnNeighbors(3, 100, false)
	assert.Len(t, neighbors, topo.columnCount()-1)
}
