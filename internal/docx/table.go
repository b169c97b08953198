package docx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	godocx "github.com/fumiama/go-docx"
)

// feedbackColumns maps the fixed header row of the general-feedback table
// to record keys. Unrecognized headers pass through unchanged.
var feedbackColumns = map[string]string{
	"Item":              "item",
	"Evaluation":        "evaluation",
	"Optional comments": "optional_comments",
}

// FirstTable reads the first table of the document and returns one map per
// data row, keyed by the mapped header row. Documents without a table
// return an error; callers treat that as a missing feature, not a failure.
func FirstTable(data []byte) ([]map[string]string, error) {
	doc, err := godocx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var table *godocx.Table
	for _, item := range doc.Document.Body.Items {
		if t, ok := item.(*godocx.Table); ok {
			table = t
			break
		}
	}
	if table == nil {
		return nil, errors.New("no table found in the document")
	}

	var keys []string
	var rows []map[string]string
	for i, row := range table.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			cells = append(cells, strings.TrimSpace(cellText(cell)))
		}

		if i == 0 {
			keys = make([]string, len(cells))
			for j, h := range cells {
				if mapped, ok := feedbackColumns[h]; ok {
					keys[j] = mapped
				} else {
					keys[j] = h
				}
			}
			continue
		}

		rowData := make(map[string]string, len(keys))
		for j, c := range cells {
			if j < len(keys) {
				rowData[keys[j]] = c
			}
		}
		rows = append(rows, rowData)
	}
	return rows, nil
}

func cellText(cell *godocx.WTableCell) string {
	var buf strings.Builder
	for i, p := range cell.Paragraphs {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(paragraphText(p))
	}
	return buf.String()
}

func paragraphText(para *godocx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*godocx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*godocx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return buf.String()
}
