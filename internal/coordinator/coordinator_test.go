package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/threadwatch/internal/poller"
)

const payload = `[{"data":{"children":[{"data":{"title":"T"}}]}},
	{"data":{"children":[{"kind":"t1","data":{"id":"c1","replies":{"data":{"children":[
		{"kind":"t1","data":{"id":"c2"}}]}}}}]}}]`

// complete answers every fetch in cmds with payload.
func complete(t *testing.T, c *Coordinator, cmds []Command) {
	t.Helper()
	for _, cmd := range cmds {
		if cmd.Effects.Fetch == nil {
			continue
		}
		c.Deliver(cmd.Side, poller.FetchCompleted{
			Generation: cmd.Effects.Fetch.Generation,
			Body:       []byte(payload),
		})
	}
}

func fetchSides(cmds []Command) []Side {
	var sides []Side
	for _, cmd := range cmds {
		if cmd.Effects.Fetch != nil {
			sides = append(sides, cmd.Side)
		}
	}
	return sides
}

func TestNew(t *testing.T) {
	c := New(500, true)
	assert.Equal(t, poller.MaxCadence, c.Cadence())
	assert.True(t, c.AutoRefresh())
	for _, side := range Sides {
		assert.Equal(t, poller.Idle, c.Panel(side).Poller.Status)
		assert.Equal(t, poller.MaxCadence, c.Panel(side).Poller.Cadence)
	}
}

func TestLoad_PanelsAreIndependent(t *testing.T) {
	c := New(30, false)
	cmds := c.Load(Left, "abc")

	require.Len(t, cmds, 1)
	assert.Equal(t, Left, cmds[0].Side)
	assert.Equal(t, "abc", cmds[0].Effects.Fetch.Identifier)
	assert.Equal(t, poller.Loading, c.Panel(Left).Poller.Status)
	assert.Equal(t, poller.Idle, c.Panel(Right).Poller.Status)
}

func TestLoad_NewIdentifierResetsPresentation(t *testing.T) {
	c := New(30, false)
	complete(t, c, c.Load(Left, "abc"))
	c.Presentation(Left).SetExpanded("c1", false)

	c.Load(Left, "abc")
	assert.False(t, c.Presentation(Left).Get("c1").Expanded, "same thread keeps state")

	c.Load(Left, "def")
	assert.True(t, c.Presentation(Left).Get("c1").Expanded, "new thread starts fresh")
}

func TestPresentationSurvivesRefresh(t *testing.T) {
	c := New(30, true)
	complete(t, c, c.Load(Right, "abc"))
	c.Presentation(Right).SetExpanded("c1", false)
	c.Presentation(Right).SetShowReplies("c1", false)

	complete(t, c, c.RefreshAll())

	st := c.Presentation(Right).Get("c1")
	assert.False(t, st.Expanded)
	assert.False(t, st.ShowReplies)
	assert.Equal(t, poller.Ready, c.Panel(Right).Poller.Status)
}

func TestRefreshAll_OnlyLoadedPanels(t *testing.T) {
	c := New(30, false)
	complete(t, c, c.Load(Left, "abc"))

	cmds := c.RefreshAll()
	assert.Equal(t, []Side{Left}, fetchSides(cmds))
	assert.True(t, cmds[0].Effects.Fetch.Refresh)

	complete(t, c, c.Load(Right, "def"))
	complete(t, c, cmds)
	assert.Equal(t, []Side{Left, Right}, fetchSides(c.RefreshAll()))
}

func TestSetAutoRefresh_AppliesToBoth(t *testing.T) {
	c := New(30, true)
	c.Load(Left, "abc")
	c.Load(Right, "def")

	cmds := c.SetAutoRefresh(false)
	require.Len(t, cmds, 2)
	for _, cmd := range cmds {
		assert.True(t, cmd.Effects.StopTimer)
	}
	assert.False(t, c.AutoRefresh())

	cmds = c.SetAutoRefresh(true)
	require.Len(t, cmds, 2)
	for _, cmd := range cmds {
		require.NotNil(t, cmd.Effects.Arm)
		assert.Equal(t, 30*time.Second, cmd.Effects.Arm.After)
	}
}

func TestSetCadence_RearmsLoadedPanels(t *testing.T) {
	c := New(30, true)
	c.Load(Left, "abc")

	cmds := c.SetCadence(2)
	assert.Equal(t, poller.MinCadence, c.Cadence())
	require.Len(t, cmds, 1)
	assert.Equal(t, Left, cmds[0].Side)
	assert.Equal(t, 5*time.Second, cmds[0].Effects.Arm.After)
	assert.Equal(t, poller.MinCadence, c.Panel(Right).Poller.Cadence)
}

func TestDeliver_TimerFiresPerSide(t *testing.T) {
	c := New(30, true)
	complete(t, c, c.Load(Left, "abc"))
	complete(t, c, c.Load(Right, "def"))

	leftTimer := c.Panel(Left).Poller.TimerID
	cmds := c.Deliver(Left, poller.TimerFired{TimerID: leftTimer})
	assert.Equal(t, []Side{Left}, fetchSides(cmds))
	assert.False(t, c.Panel(Right).Poller.InFlight)
}

func TestDismissError(t *testing.T) {
	c := New(30, false)
	cmds := c.Load(Left, "abc")
	c.Deliver(Left, poller.FetchCompleted{Generation: cmds[0].Effects.Fetch.Generation, Err: assert.AnError})
	require.NotEmpty(t, c.Panel(Left).Poller.Err)

	assert.Empty(t, c.DismissError(Left))
	assert.Empty(t, c.Panel(Left).Poller.Err)
}

func TestShutdown(t *testing.T) {
	c := New(30, true)
	c.Load(Left, "abc")

	cmds := c.Shutdown()
	require.Len(t, cmds, 2)
	for _, cmd := range cmds {
		assert.True(t, cmd.Effects.StopTimer)
	}
}

func TestSide(t *testing.T) {
	assert.Equal(t, Right, Left.Other())
	assert.Equal(t, Left, Right.Other())
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
}
