package threadview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fragmede/threadwatch/internal/thread"
)

// sampleTree:
//
//	a (op)
//	  a1
//	    a1x
//	  a2
//	b
func sampleTree() []thread.Node {
	return []thread.Node{
		{ID: "a", Author: "op", Replies: []thread.Node{
			{ID: "a1", Author: "u1", Replies: []thread.Node{{ID: "a1x", Author: "op"}}},
			{ID: "a2", Author: "u2"},
		}},
		{ID: "b", Author: "u3"},
	}
}

func flatIDs(comments []FlatComment) []string {
	ids := make([]string, len(comments))
	for i, fc := range comments {
		ids[i] = fc.Node.ID
	}
	return ids
}

func TestFlattenTree_DefaultShowsEverything(t *testing.T) {
	flat := FlattenTree(sampleTree(), thread.NewPresentation(), "op")

	assert.Equal(t, []string{"a", "a1", "a1x", "a2", "b"}, flatIDs(flat))
	assert.Equal(t, []int{0, 1, 2, 1, 0}, []int{flat[0].Depth, flat[1].Depth, flat[2].Depth, flat[3].Depth, flat[4].Depth})
	assert.Equal(t, 2, flat[0].ReplyCount)
	assert.Equal(t, 3, flat[0].Descendants)
	assert.True(t, flat[0].IsOP)
	assert.True(t, flat[2].IsOP)
	assert.False(t, flat[1].IsOP)
}

func TestFlattenTree_CollapsedHidesReplies(t *testing.T) {
	pres := thread.NewPresentation()
	pres.SetExpanded("a1", false)

	flat := FlattenTree(sampleTree(), pres, "")
	assert.Equal(t, []string{"a", "a1", "a2", "b"}, flatIDs(flat))
	assert.False(t, flat[1].State.Expanded)
	assert.True(t, flat[1].RepliesHidden())
}

func TestFlattenTree_HiddenRepliesKeepBody(t *testing.T) {
	pres := thread.NewPresentation()
	pres.SetShowReplies("a", false)

	flat := FlattenTree(sampleTree(), pres, "")
	assert.Equal(t, []string{"a", "b"}, flatIDs(flat))
	assert.True(t, flat[0].State.Expanded)
	assert.True(t, flat[0].RepliesHidden())
	assert.False(t, flat[1].RepliesHidden(), "leaf has nothing to hide")
}

func TestFlattenTree_NoOPWithoutMeta(t *testing.T) {
	flat := FlattenTree([]thread.Node{{ID: "x", Author: ""}}, thread.NewPresentation(), "")
	assert.False(t, flat[0].IsOP)
}

func TestFindParentIndex(t *testing.T) {
	flat := FlattenTree(sampleTree(), thread.NewPresentation(), "")

	assert.Equal(t, 1, FindParentIndex(flat, 2))
	assert.Equal(t, 0, FindParentIndex(flat, 3))
	assert.Equal(t, -1, FindParentIndex(flat, 0))
	assert.Equal(t, -1, FindParentIndex(flat, 99))
}

func TestFindNextSiblingIndex(t *testing.T) {
	flat := FlattenTree(sampleTree(), thread.NewPresentation(), "")

	assert.Equal(t, 4, FindNextSiblingIndex(flat, 0))
	assert.Equal(t, 3, FindNextSiblingIndex(flat, 1))
	assert.Equal(t, -1, FindNextSiblingIndex(flat, 2))
	assert.Equal(t, -1, FindNextSiblingIndex(flat, 4))
}

func TestIndexOf(t *testing.T) {
	flat := FlattenTree(sampleTree(), thread.NewPresentation(), "")
	assert.Equal(t, 3, IndexOf(flat, "a2"))
	assert.Equal(t, -1, IndexOf(flat, "zz"))
}
