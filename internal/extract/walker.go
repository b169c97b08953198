package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// flattenDocument walks the document tree once, in pre-order, and
// reconstructs the plain-text rendition of the body. As a side effect it
// tracks every comment range that is open at each point of the walk: all
// currently open ranges receive an identical copy of every text fragment,
// so nested and overlapping ranges accumulate independent, complete text.
//
// Paragraph boundaries become a single "\n" except before the first
// paragraph; explicit breaks become "\n" unconditionally. A nil tree
// yields empty text and no ranges, which is not an error (the document
// payload may be absent).
func flattenDocument(root *xmlquery.Node, schema Schema) (string, map[string]*Range) {
	ranges := make(map[string]*Range)
	if root == nil {
		return "", ranges
	}

	var text strings.Builder
	var open []string // comment ids with a currently open range, in open order
	firstParagraph := true

	appendAll := func(s string) {
		for _, id := range open {
			ranges[id].Append(s)
		}
		text.WriteString(s)
	}

	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for ; n != nil; n = n.NextSibling {
			if n.Type == xmlquery.ElementNode && n.NamespaceURI == schema.MainNS {
				switch n.Data {
				case schema.RangeStart:
					if id := attrValue(n, schema.MainNS, "id"); id != "" {
						ranges[id] = newRange(id, text.Len())
						open = append(open, id)
					}
				case schema.RangeEnd:
					if id := attrValue(n, schema.MainNS, "id"); id != "" {
						if _, ok := ranges[id]; ok {
							open = removeID(open, id)
						}
					}
				case schema.Text:
					if t := n.InnerText(); t != "" {
						appendAll(t)
					}
					continue // children already consumed by InnerText
				case schema.Paragraph:
					if firstParagraph {
						firstParagraph = false
					} else {
						appendAll("\n")
					}
				case schema.Break:
					appendAll("\n")
				}
			}
			if n.FirstChild != nil {
				walk(n.FirstChild)
			}
		}
	}
	walk(root)

	return text.String(), ranges
}

// removeID deletes the first occurrence of id, preserving the order of the
// remaining entries. Ranges may close in any order relative to siblings.
func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// attrValue returns the value of the namespaced attribute local on n, or
// "" if absent.
func attrValue(n *xmlquery.Node, ns, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local && (a.NamespaceURI == ns || a.Name.Space == ns) {
			return a.Value
		}
	}
	return ""
}
