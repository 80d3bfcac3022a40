// Package thread holds the comment tree model, the payload normalizer that
// builds it, and the per-comment presentation state that outlives it.
package thread

// Node is one comment and its replies. Trees are immutable snapshots: a
// new tree is built on every normalization and never mutated afterwards.
type Node struct {
	ID        string
	Author    string
	BodyRaw   string
	CreatedAt int64 // seconds since epoch, UTC
	Score     int
	Replies   []Node
}

// Meta describes the thread itself.
type Meta struct {
	Title     string
	Subreddit string
	Author    string
	CreatedAt int64
	// CommentCount is the total reported by the server and may exceed the
	// number of nodes actually returned.
	CommentCount int
	SelfText     string
	Permalink    string
}

// Snapshot is the result of normalizing one payload.
type Snapshot struct {
	Meta  *Meta
	Nodes []Node
}

// Empty reports whether the snapshot carries neither meta nor comments.
func (s Snapshot) Empty() bool {
	return s.Meta == nil && len(s.Nodes) == 0
}

// Count returns the number of nodes at every depth.
func (s Snapshot) Count() int {
	return CountAll(s.Nodes)
}

// IDs returns the set of node ids at every depth.
func (s Snapshot) IDs() map[string]bool {
	ids := make(map[string]bool)
	Walk(s.Nodes, func(n Node, _ int) {
		ids[n.ID] = true
	})
	return ids
}

// Find returns the node with the given id.
func (s Snapshot) Find(id string) (Node, bool) {
	var found Node
	var ok bool
	Walk(s.Nodes, func(n Node, _ int) {
		if !ok && n.ID == id {
			found, ok = n, true
		}
	})
	return found, ok
}

// CountAll counts nodes and all their descendants.
func CountAll(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + CountAll(n.Replies)
	}
	return total
}

// Walk visits nodes depth-first in display order.
func Walk(nodes []Node, fn func(n Node, depth int)) {
	var walk func(nodes []Node, depth int)
	walk = func(nodes []Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Replies, depth+1)
		}
	}
	walk(nodes, 0)
}
