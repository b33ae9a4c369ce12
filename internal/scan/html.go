package scan

import (
	"bytes"
	"context"
	"strings"

	"golang.org/x/net/html"

	appLog "schedlink/internal/log"
	"schedlink/internal/model"
)

// HTMLSource extracts day blocks from a static HTML document.
type HTMLSource struct {
	body []byte
	sel  Selectors
}

// NewHTMLSource wraps an already-fetched document body.
func NewHTMLSource(body []byte, sel Selectors) *HTMLSource {
	return &HTMLSource{body: body, sel: sel}
}

// Blocks implements Source.
func (h *HTMLSource) Blocks(_ context.Context) ([]model.DayBlock, error) {
	return ParseDocument(h.body, h.sel)
}

// ParseDocument walks an HTML document and extracts one DayBlock per
// day-container element. Missing pieces inside a session (no time element,
// empty title) are left as empty strings for the pipeline to reject; the
// walk itself never fails on malformed sessions.
func ParseDocument(body []byte, sel Selectors) ([]model.DayBlock, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var blocks []model.DayBlock
	walk(doc, func(n *html.Node) bool {
		if !hasClass(n, sel.Day) {
			return true
		}
		blocks = append(blocks, extractDay(n, sel))
		// Day containers do not nest.
		return false
	})

	appLog.Debug("document scanned", "day_blocks", len(blocks))
	return blocks, nil
}

func extractDay(day *html.Node, sel Selectors) model.DayBlock {
	var block model.DayBlock

	walk(day, func(n *html.Node) bool {
		switch {
		case hasClass(n, sel.Date):
			if block.DateText == "" {
				block.DateText = textContent(n)
			}
			return false
		case hasClass(n, sel.Session):
			block.Sessions = append(block.Sessions, extractSession(n, sel))
			return false
		}
		return true
	})

	return block
}

func extractSession(node *html.Node, sel Selectors) model.Session {
	var s model.Session
	walk(node, func(n *html.Node) bool {
		switch {
		case hasClass(n, sel.Title):
			if s.Title == "" {
				s.Title = textContent(n)
			}
			return false
		case hasClass(n, sel.Time):
			if s.TimeText == "" {
				s.TimeText = textContent(n)
			}
			return false
		case hasClass(n, sel.Venue):
			if s.Venue == "" {
				s.Venue = textContent(n)
			}
			return false
		}
		return true
	})
	return s
}

// walk visits n's subtree in document order. fn returning false prunes the
// subtree below the current node (children of a matched node are handled by
// the match's own extractor).
func walk(n *html.Node, fn func(*html.Node) bool) {
	if n.Type == html.ElementNode {
		if !fn(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func hasClass(n *html.Node, class string) bool {
	if class == "" || n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// textContent flattens all text nodes under n into a single trimmed string.
func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
