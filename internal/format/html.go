package format

import (
	"sort"
	"strings"

	"github.com/mwhitten/redline/internal/extract"
)

// HTMLFormatter renders the section text with each highlighted span wrapped
// in a styled element carrying its comment as a hover tooltip. Comments are
// walked in ascending start order. Text is emitted as-is except newlines,
// which become break tags.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(res *extract.Result) (string, error) {
	if res.Text == "" || len(res.Comments) == 0 {
		return "", nil
	}

	comments := make([]extract.Comment, len(res.Comments))
	copy(comments, res.Comments)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Start < comments[j].Start
	})

	var b strings.Builder
	b.WriteString(htmlTemplate)

	cur := 0
	for _, c := range comments {
		start, end := c.Start, c.End
		if start > len(res.Text) {
			start = len(res.Text)
		}
		if end > len(res.Text) {
			end = len(res.Text)
		}
		if start < cur {
			// Overlapping spans cannot nest in flat markup; the later one
			// starts where the earlier finished.
			start = cur
		}
		if end < start {
			end = start
		}

		b.WriteString(breakNewlines(res.Text[cur:start]))
		b.WriteString(`<span class="highlighted">`)
		b.WriteString(breakNewlines(res.Text[start:end]))
		b.WriteString(`<span class="tooltip">`)
		b.WriteString(breakNewlines(c.Text))
		b.WriteString(`</span></span>`)
		cur = end
	}
	b.WriteString(breakNewlines(res.Text[cur:]))

	b.WriteString("\n</body>\n</html>")
	return b.String(), nil
}

func breakNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "<br><br>")
}

const htmlTemplate = `<html>
<head>
<style>
    body {
        font-family: Arial, sans-serif;
        line-height: 1.6;
        max-width: 800px;
        margin: 200px auto;
        padding: 0 20px;
    }
    .highlighted {
        background-color: #fff3cd;
        position: relative;
        cursor: pointer;
        display: inline-block;
        white-space: pre-wrap;
    }
    .tooltip {
        visibility: hidden;
        background-color: #333;
        color: white;
        text-align: left;
        padding: 8px;
        border-radius: 4px;
        position: absolute;
        z-index: 1;
        width: 300px;
        font-size: 14px;
        bottom: 100%;
        left: 50%;
        transform: translateX(-50%);
        margin-bottom: 5px;
    }
    .highlighted:hover .tooltip {
        visibility: visible;
    }
    .tooltip::after {
        content: "";
        position: absolute;
        top: 100%;
        left: 50%;
        margin-left: -5px;
        border-width: 5px;
        border-style: solid;
        border-color: #333 transparent transparent transparent;
    }
</style>
</head>
<body>
`
