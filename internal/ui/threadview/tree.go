package threadview

import "github.com/fragmede/threadwatch/internal/thread"

// FlattenTree converts a comment tree into a flat list for display,
// honoring each node's presentation state.
func FlattenTree(nodes []thread.Node, pres thread.Presentation, opUser string) []FlatComment {
	var result []FlatComment

	var walk func(nodes []thread.Node, depth int)
	walk = func(nodes []thread.Node, depth int) {
		for _, n := range nodes {
			st := pres.Get(n.ID)
			result = append(result, FlatComment{
				Node:        n,
				Depth:       depth,
				State:       st,
				ReplyCount:  len(n.Replies),
				Descendants: thread.CountAll(n.Replies),
				IsOP:        n.Author == opUser && opUser != "",
			})
			if st.Expanded && st.ShowReplies {
				walk(n.Replies, depth+1)
			}
		}
	}
	walk(nodes, 0)
	return result
}

// FindParentIndex returns the index of the parent comment in the flat list.
func FindParentIndex(comments []FlatComment, currentIdx int) int {
	if currentIdx < 0 || currentIdx >= len(comments) {
		return -1
	}
	depth := comments[currentIdx].Depth
	for i := currentIdx - 1; i >= 0; i-- {
		if comments[i].Depth < depth {
			return i
		}
	}
	return -1
}

// FindNextSiblingIndex returns the index of the next comment at the same depth.
func FindNextSiblingIndex(comments []FlatComment, currentIdx int) int {
	if currentIdx < 0 || currentIdx >= len(comments) {
		return -1
	}
	depth := comments[currentIdx].Depth
	for i := currentIdx + 1; i < len(comments); i++ {
		if comments[i].Depth < depth {
			return -1 // Went up in tree, no more siblings.
		}
		if comments[i].Depth == depth {
			return i
		}
	}
	return -1
}

// IndexOf returns the position of the comment with id, or -1.
func IndexOf(comments []FlatComment, id string) int {
	for i, fc := range comments {
		if fc.Node.ID == id {
			return i
		}
	}
	return -1
}
