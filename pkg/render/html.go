package render

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	initOnce sync.Once
)

func initHTML() {
	initOnce.Do(func() {
		markdown = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)

		// Email clients get a conservative tag set: formatting, lists,
		// links, tables. Scripts, event handlers, and javascript: URLs
		// are stripped.
		policy = bluemonday.NewPolicy()
		policy.AllowStandardURLs()
		policy.AllowElements(
			"p", "br", "h1", "h2", "h3", "h4", "h5", "h6",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote", "hr",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
	})
}

// ToHTML converts a rendered markdown body into sanitized HTML suitable
// for the message's HTML alternative part.
func ToHTML(body string) (string, error) {
	initHTML()

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render: converting markdown: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}
