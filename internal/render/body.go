package render

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	xhtml "golang.org/x/net/html"
)

// QuoteBar prefixes quoted lines in rendered bodies.
const QuoteBar = "│ "

var linkPattern = regexp.MustCompile(`\[([^\]\n]+)\]\(([^)\s]+)\)`)

// Body converts a raw comment body to wrapped plain text. Reddit sends the
// markdown source with &amp;, &lt; and &gt; escaped. Line breaks are kept,
// runs of blank lines collapse to one, quotes get a bar, indented code is
// left unwrapped and links become "text [url]".
func Body(raw string, width int) string {
	if raw == "" {
		return ""
	}

	raw = clean(raw)
	var lines []string
	blank := false
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			blank = len(lines) > 0
			continue
		}
		if blank {
			lines = append(lines, "")
			blank = false
		}
		lines = append(lines, renderLine(line, width)...)
	}
	return strings.Join(lines, "\n")
}

func renderLine(line string, width int) []string {
	switch {
	case strings.HasPrefix(line, "    "), strings.HasPrefix(line, "\t"):
		// Don't wrap code blocks.
		return []string{"    " + strings.TrimLeft(line, " \t")}

	case strings.HasPrefix(strings.TrimLeft(line, " "), ">"):
		text := strings.TrimLeft(line, " ")
		for strings.HasPrefix(text, ">") {
			text = strings.TrimLeft(text[1:], " ")
		}
		wrapped := wrap(links(text), width-len([]rune(QuoteBar)))
		for i, l := range wrapped {
			wrapped[i] = QuoteBar + l
		}
		return wrapped
	}
	return wrap(links(strings.TrimRight(line, " ")), width)
}

// links rewrites [text](url) as "text [url]", or just the url when the
// text already is the url.
func links(s string) string {
	return linkPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := linkPattern.FindStringSubmatch(m)
		text, url := parts[1], parts[2]
		if text == url {
			return url
		}
		return text + " [" + url + "]"
	})
}

func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	return strings.Split(wordwrap.String(s, width), "\n")
}

// clean unescapes HTML entities and drops any terminal escape sequences
// embedded in remote text.
func clean(s string) string {
	s = ansi.Strip(xhtml.UnescapeString(s))
	return strings.ReplaceAll(s, "\r\n", "\n")
}
