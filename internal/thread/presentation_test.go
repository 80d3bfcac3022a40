package thread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentation_DefaultsForUnseenIDs(t *testing.T) {
	p := NewPresentation()
	assert.Equal(t, NodeState{Expanded: true, ShowReplies: true}, p.Get("never-seen"))
}

func TestPresentation_SettersAreIndependent(t *testing.T) {
	p := NewPresentation()

	p.SetExpanded("42", false)
	assert.Equal(t, NodeState{Expanded: false, ShowReplies: true}, p.Get("42"))

	p.SetShowReplies("42", false)
	assert.Equal(t, NodeState{Expanded: false, ShowReplies: false}, p.Get("42"))

	p.SetShowReplies("7", false)
	assert.Equal(t, NodeState{Expanded: true, ShowReplies: false}, p.Get("7"))
}

func TestPresentation_SurvivesRenormalization(t *testing.T) {
	p := NewPresentation()

	first, err := Normalize([]byte(scenarioPayload))
	require.NoError(t, err)
	p.SetExpanded("1", false)

	// A later poll returns the same ids plus a new reply.
	updated := `[{}, {"data":{"children":[
		{"kind":"t1","data":{"id":"1","body":"edited","score":9,"replies":{"data":{"children":[
			{"kind":"t1","data":{"id":"2"}},
			{"kind":"t1","data":{"id":"3"}}
		]}}}}
	]}}]`
	second, err := Normalize([]byte(updated))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.False(t, p.Get("1").Expanded, "user collapse must survive a refresh")
	assert.Equal(t, DefaultNodeState, p.Get("3"), "new id starts expanded")
}

func TestPresentation_Toggles(t *testing.T) {
	p := NewPresentation()
	assert.False(t, p.ToggleExpanded("a"))
	assert.True(t, p.ToggleExpanded("a"))
	assert.False(t, p.ToggleShowReplies("a"))
	assert.False(t, p.Get("a").ShowReplies)
}

func TestPresentation_SetAllOnlyTouchesParents(t *testing.T) {
	snap, err := Normalize([]byte(scenarioPayload))
	require.NoError(t, err)

	p := NewPresentation()
	p.SetAll(snap.Nodes, false)
	assert.False(t, p.Get("1").Expanded)
	_, touched := p["2"]
	assert.False(t, touched, "leaf has no replies to fold")

	p.SetAll(snap.Nodes, true)
	assert.True(t, p.Get("1").Expanded)
}

func TestPresentation_PruneKeepsCurrentIDs(t *testing.T) {
	p := NewPresentation()
	p.SetExpanded("gone", false)
	p.SetExpanded("kept", false)

	p.Prune(map[string]bool{"kept": true})

	assert.Equal(t, DefaultNodeState, p.Get("gone"))
	assert.False(t, p.Get("kept").Expanded)
}
