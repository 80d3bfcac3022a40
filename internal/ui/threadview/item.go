package threadview

import "github.com/fragmede/threadwatch/internal/thread"

// FlatComment is a comment flattened from the tree for display.
type FlatComment struct {
	Node  thread.Node
	Depth int
	State thread.NodeState
	// ReplyCount is the number of direct replies; Descendants counts every
	// depth.
	ReplyCount  int
	Descendants int
	IsOP        bool
}

// RepliesHidden reports whether the comment has replies that are not shown.
func (fc FlatComment) RepliesHidden() bool {
	return fc.ReplyCount > 0 && (!fc.State.Expanded || !fc.State.ShowReplies)
}
