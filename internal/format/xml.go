package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwhitten/redline/internal/extract"
)

// XMLFormatter splices paired comment-start/comment-end markers into the
// section text at each comment's offsets. At equal positions close markers
// come before open markers, so zero-length gaps between adjacent comments
// never nest. Comment body text is escaped; the section text itself is
// emitted verbatim.
type XMLFormatter struct{}

type xmlMarker struct {
	pos   int
	close bool
	index int
	data  string
}

func (f *XMLFormatter) Format(res *extract.Result) (string, error) {
	if res.Text == "" || len(res.Comments) == 0 {
		return "", nil
	}

	markers := make([]xmlMarker, 0, 2*len(res.Comments))
	for i, c := range res.Comments {
		markers = append(markers, xmlMarker{pos: c.Start, index: i, data: c.Text})
		markers = append(markers, xmlMarker{pos: c.End, close: true, index: i})
	}
	sort.SliceStable(markers, func(i, j int) bool {
		if markers[i].pos != markers[j].pos {
			return markers[i].pos < markers[j].pos
		}
		return markers[i].close && !markers[j].close
	})

	var b strings.Builder
	cur := 0
	for _, m := range markers {
		// A range may run past the trimmed section end; clamp rather than
		// reject so the marker still lands at the text boundary.
		if m.pos > len(res.Text) {
			m.pos = len(res.Text)
		}
		b.WriteString(res.Text[cur:m.pos])
		if m.close {
			fmt.Fprintf(&b, `<comment-end id="%d"/>`, m.index)
		} else {
			fmt.Fprintf(&b, `<comment-start id="%d" data="%s"/>`, m.index, escapeXML(m.data))
		}
		cur = m.pos
	}
	b.WriteString(res.Text[cur:])

	return b.String(), nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
