package thread

// NodeState is the user-driven display state of one comment.
type NodeState struct {
	Expanded    bool
	ShowReplies bool
}

// DefaultNodeState applies to every id the user has not touched.
var DefaultNodeState = NodeState{Expanded: true, ShowReplies: true}

// Presentation maps comment ids to their display state. It is keyed by id
// only, so it survives any number of refreshed snapshots; entries for ids
// no longer present are harmless.
type Presentation map[string]NodeState

// NewPresentation returns an empty presentation namespace.
func NewPresentation() Presentation {
	return make(Presentation)
}

// Get returns the state for id, or DefaultNodeState if unseen.
func (p Presentation) Get(id string) NodeState {
	if st, ok := p[id]; ok {
		return st
	}
	return DefaultNodeState
}

// SetExpanded sets whether id renders in full or as a one-line summary.
func (p Presentation) SetExpanded(id string, expanded bool) {
	st := p.Get(id)
	st.Expanded = expanded
	p[id] = st
}

// SetShowReplies sets whether id's replies are rendered.
func (p Presentation) SetShowReplies(id string, show bool) {
	st := p.Get(id)
	st.ShowReplies = show
	p[id] = st
}

// ToggleExpanded flips Expanded and returns the new value.
func (p Presentation) ToggleExpanded(id string) bool {
	expanded := !p.Get(id).Expanded
	p.SetExpanded(id, expanded)
	return expanded
}

// ToggleShowReplies flips ShowReplies and returns the new value.
func (p Presentation) ToggleShowReplies(id string) bool {
	show := !p.Get(id).ShowReplies
	p.SetShowReplies(id, show)
	return show
}

// SetAll expands or collapses every node in nodes that has replies.
func (p Presentation) SetAll(nodes []Node, expanded bool) {
	Walk(nodes, func(n Node, _ int) {
		if len(n.Replies) > 0 {
			p.SetExpanded(n.ID, expanded)
		}
	})
}

// Prune drops state for ids not in keep.
func (p Presentation) Prune(keep map[string]bool) {
	for id := range p {
		if !keep[id] {
			delete(p, id)
		}
	}
}
