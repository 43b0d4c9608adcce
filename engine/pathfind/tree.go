package pathfind

// Tree is an append-only arena of parent-pointer nodes. The search records
// the provenance of every expanded grid point in one, then walks parent
// links back to the root to recover the path.
type Tree[T any] struct {
	arena []treeNode[T]
}

type treeNode[T any] struct {
	parent int // -1 at the root
	value  T
}

// NewTree returns a tree holding only the root value at index 0.
func NewTree[T any](root T) *Tree[T] {
	return &Tree[T]{arena: []treeNode[T]{{parent: -1, value: root}}}
}

// Insert appends a child of the node at parent and returns its index.
func (t *Tree[T]) Insert(parent int, value T) int {
	t.arena = append(t.arena, treeNode[T]{parent: parent, value: value})
	return len(t.arena) - 1
}

// At returns the value stored at index.
func (t *Tree[T]) At(index int) T {
	return t.arena[index].value
}

// Len returns the number of nodes in the arena.
func (t *Tree[T]) Len() int {
	return len(t.arena)
}

// PathTo returns the values from the root to the node at index, in order.
func (t *Tree[T]) PathTo(index int) []T {
	indices := []int{index}
	for p := t.arena[index].parent; p != -1; p = t.arena[p].parent {
		indices = append(indices, p)
	}

	path := make([]T, len(indices))
	for i, idx := range indices {
		path[len(indices)-1-i] = t.arena[idx].value
	}
	return path
}
