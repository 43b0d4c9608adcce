package pathfind

import "sort"

// frontier keeps search nodes sorted by ascending cost. Insertion finds its
// slot by binary search; extraction removes the minimum-cost node from the
// front. (An earlier rendition of this search inserted ascending but popped
// the other end of the slice, inverting the priority; this queue is a
// conventional min-priority queue.)
type frontier struct {
	nodes []node
}

type node struct {
	tree int // index into the provenance tree
	cost float64
	x, y int
}

// push inserts n keeping the slice sorted by cost.
func (f *frontier) push(n node) {
	i := sort.Search(len(f.nodes), func(i int) bool {
		return f.nodes[i].cost >= n.cost
	})
	f.nodes = append(f.nodes, node{})
	copy(f.nodes[i+1:], f.nodes[i:])
	f.nodes[i] = n
}

// pop removes and returns the minimum-cost node.
func (f *frontier) pop() (node, bool) {
	if len(f.nodes) == 0 {
		return node{}, false
	}
	n := f.nodes[0]
	f.nodes = f.nodes[1:]
	return n, true
}

// indexOf returns the position of the node for the same grid point, or -1.
func (f *frontier) indexOf(x, y int) int {
	for i, n := range f.nodes {
		if n.x == x && n.y == y {
			return i
		}
	}
	return -1
}

// insertOrReplace inserts n, or replaces the queued node for the same grid
// point when n is cheaper. A costlier duplicate is dropped.
func (f *frontier) insertOrReplace(n node) {
	i := f.indexOf(n.x, n.y)
	if i == -1 {
		f.push(n)
		return
	}
	if n.cost < f.nodes[i].cost {
		f.nodes = append(f.nodes[:i], f.nodes[i+1:]...)
		f.push(n)
	}
}

func (f *frontier) len() int {
	return len(f.nodes)
}
