package thread

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fragmede/threadwatch/internal/api"
)

// ErrMalformedPayload is returned when a body is not JSON at all.
var ErrMalformedPayload = errors.New("malformed payload")

// Normalize converts a raw thread payload, shaped [postListing,
// commentListing], into a Snapshot. Only bodies that fail to parse as JSON
// are errors; any other shape mismatch yields a partial snapshot.
func Normalize(body []byte) (Snapshot, error) {
	if !json.Valid(body) {
		return Snapshot{}, fmt.Errorf("%w: response is not JSON", ErrMalformedPayload)
	}

	// A non-array body leaves listings empty.
	var listings []json.RawMessage
	_ = json.Unmarshal(body, &listings)

	var snap Snapshot
	if len(listings) > 0 {
		snap.Meta = normalizeMeta(listings[0])
	}
	if len(listings) > 1 {
		if l, ok := api.DecodeListing(listings[1]); ok {
			snap.Nodes = normalizeChildren(l.Data.Children)
		}
	}
	return snap, nil
}

func normalizeMeta(raw json.RawMessage) *Meta {
	l, ok := api.DecodeListing(raw)
	if !ok || len(l.Data.Children) == 0 {
		return nil
	}
	link, ok := api.DecodeLink(l.Data.Children[0].Data)
	if !ok {
		return nil
	}
	return &Meta{
		Title:        link.Title,
		Subreddit:    link.Subreddit,
		Author:       link.Author,
		CreatedAt:    int64(link.CreatedUTC),
		CommentCount: link.NumComments,
		SelfText:     link.Selftext,
		Permalink:    link.Permalink,
	}
}

// normalizeChildren keeps comments, in order, and drops every other kind.
func normalizeChildren(children []api.Thing) []Node {
	nodes := make([]Node, 0, len(children))
	for _, child := range children {
		switch item := api.DecodeItem(child).(type) {
		case *api.Comment:
			nodes = append(nodes, Node{
				ID:        item.ID,
				Author:    item.Author,
				BodyRaw:   item.Body,
				CreatedAt: int64(item.CreatedUTC),
				Score:     item.Score,
				Replies:   normalizeChildren(item.Replies()),
			})
		case *api.Continuation, *api.Other:
			// "load more" stubs and foreign kinds are not comments.
		}
	}
	return nodes
}
