package format

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/mwhitten/redline/internal/extract"
)

// MarkdownFormatter emits the section text with a footnote marker at the
// end of each highlighted span and the comment bodies as footnotes. The
// prompt, when present, leads as a block quote.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(res *extract.Result) (string, error) {
	var b strings.Builder

	if res.Prompt != "" {
		for _, line := range strings.Split(res.Prompt, "\n") {
			b.WriteString("> ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Footnote numbering follows record order; markers are spliced in
	// ascending end-offset order.
	order := make([]int, len(res.Comments))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return res.Comments[order[i]].End < res.Comments[order[j]].End
	})

	cur := 0
	for _, idx := range order {
		end := res.Comments[idx].End
		if end > len(res.Text) {
			end = len(res.Text)
		}
		if end < cur {
			end = cur
		}
		b.WriteString(res.Text[cur:end])
		fmt.Fprintf(&b, "[^%d]", idx+1)
		cur = end
	}
	b.WriteString(res.Text[cur:])

	if len(res.Comments) > 0 {
		b.WriteString("\n")
		for i, c := range res.Comments {
			fmt.Fprintf(&b, "\n[^%d]: %s", i+1, strings.ReplaceAll(c.Text, "\n", " "))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// RenderHTML converts formatter output (or any Markdown) to HTML. Used by
// the API's preview mode.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
