package api

import (
	"net/url"
	"regexp"
	"strings"
)

var bareIDRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ThreadIDFromURL extracts a thread identifier from a reddit permalink such
// as https://www.reddit.com/r/Padres/comments/1abcde/game_thread/. A bare
// identifier is returned as is. Anything unrecognised yields "".
func ThreadIDFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if bareIDRe.MatchString(raw) {
		return raw
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case host == "redd.it":
		// Short links carry the id as the only path segment.
		if len(parts) == 1 && bareIDRe.MatchString(parts[0]) {
			return parts[0]
		}
		return ""
	case host == "reddit.com" || strings.HasSuffix(host, ".reddit.com"):
	default:
		return ""
	}

	for i, p := range parts {
		if p == "comments" && i+1 < len(parts) && bareIDRe.MatchString(parts[i+1]) {
			return parts[i+1]
		}
	}
	return ""
}
