package api

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Listing child kinds as tagged by Reddit.
const (
	KindComment      = "t1"
	KindContinuation = "more"
)

// Thing is the {kind, data} envelope every listing child is wrapped in.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Listing is a page of things.
type Listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []Thing `json:"children"`
	} `json:"data"`
}

// Item is one decoded listing child: *Comment, *Continuation or *Other.
type Item interface {
	Kind() string
}

// Comment is a t1 thing.
type Comment struct {
	ID         string          `json:"id"`
	Author     string          `json:"author"`
	Body       string          `json:"body"`
	CreatedUTC float64         `json:"created_utc"`
	Score      int             `json:"score"`
	RawReplies json.RawMessage `json:"replies"`
}

func (*Comment) Kind() string { return KindComment }

// Replies returns the children of the comment's reply listing. Reddit sends
// "" when there are none, so anything that is not listing-shaped is empty.
func (c *Comment) Replies() []Thing {
	l, ok := DecodeListing(c.RawReplies)
	if !ok {
		return nil
	}
	return l.Data.Children
}

// Continuation is a "more" stub standing in for replies that were not sent.
type Continuation struct {
	Count    int      `json:"count"`
	ParentID string   `json:"parent_id"`
	Children []string `json:"children"`
}

func (*Continuation) Kind() string { return KindContinuation }

// Other is any thing whose kind we do not render.
type Other struct {
	kind string
}

func (o *Other) Kind() string { return o.kind }

// Link is the t3 record describing the thread itself.
type Link struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
}

// DecodeItem resolves a thing into its tagged variant. A comment whose data
// is not an object is demoted to Other.
func DecodeItem(t Thing) Item {
	switch t.Kind {
	case KindComment:
		var c Comment
		if decodeObject(t.Data, &c) {
			return &c
		}
	case KindContinuation:
		var m Continuation
		if decodeObject(t.Data, &m) {
			return &m
		}
	}
	return &Other{kind: t.Kind}
}

// DecodeListing decodes raw as a listing. It reports false when raw is not
// a JSON object.
func DecodeListing(raw json.RawMessage) (*Listing, bool) {
	var l Listing
	if !decodeObject(raw, &l) {
		return nil, false
	}
	return &l, true
}

// DecodeLink decodes raw as a t3 record.
func DecodeLink(raw json.RawMessage) (*Link, bool) {
	var l Link
	if !decodeObject(raw, &l) {
		return nil, false
	}
	return &l, true
}

// decodeObject unmarshals raw into dst when raw is a JSON object. Fields
// with mismatched types are left zero rather than failing the whole value.
func decodeObject(raw json.RawMessage, dst any) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return false
	}
	err := json.Unmarshal(raw, dst)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}
