package extract

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
)

func parseXML(t *testing.T, s string) *xmlquery.Node {
	t.Helper()
	root, err := xmlquery.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse test document: %v", err)
	}
	return root
}

func TestFlattenDocument_ParagraphsAndBreaks(t *testing.T) {
	root := parseXML(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>first</w:t></w:r></w:p>
    <w:p><w:r><w:t>second</w:t></w:r><w:r><w:br/></w:r><w:r><w:t>third</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	flat, ranges := flattenDocument(root, DefaultSchema())
	if flat != "first\nsecond\nthird" {
		t.Errorf("expected %q, got %q", "first\nsecond\nthird", flat)
	}
	if len(ranges) != 0 {
		t.Errorf("expected no ranges, got %d", len(ranges))
	}
}

func TestFlattenDocument_OverlappingRanges(t *testing.T) {
	// Both ranges must see every fragment emitted while they were open.
	root := parseXML(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:commentRangeStart w:id="0"/>
      <w:r><w:t>abc</w:t></w:r>
      <w:commentRangeStart w:id="1"/>
      <w:r><w:t>def</w:t></w:r>
      <w:commentRangeEnd w:id="0"/>
      <w:r><w:t>ghi</w:t></w:r>
      <w:commentRangeEnd w:id="1"/>
    </w:p>
  </w:body>
</w:document>`)

	flat, ranges := flattenDocument(root, DefaultSchema())
	if flat != "abcdefghi" {
		t.Fatalf("expected flat text %q, got %q", "abcdefghi", flat)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}

	r0 := ranges["0"]
	if r0.AbsoluteStart != 0 || r0.Text() != "abcdef" {
		t.Errorf("range 0: expected start 0 text %q, got start %d text %q", "abcdef", r0.AbsoluteStart, r0.Text())
	}
	r1 := ranges["1"]
	if r1.AbsoluteStart != 3 || r1.Text() != "defghi" {
		t.Errorf("range 1: expected start 3 text %q, got start %d text %q", "defghi", r1.AbsoluteStart, r1.Text())
	}
}

func TestFlattenDocument_RangeSpansParagraphs(t *testing.T) {
	root := parseXML(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:commentRangeStart w:id="5"/><w:r><w:t>tail</w:t></w:r></w:p>
    <w:p><w:r><w:t>head</w:t></w:r><w:commentRangeEnd w:id="5"/></w:p>
  </w:body>
</w:document>`)

	_, ranges := flattenDocument(root, DefaultSchema())
	r := ranges["5"]
	if r == nil {
		t.Fatal("range 5 not tracked")
	}
	if r.Text() != "tail\nhead" {
		t.Errorf("expected paragraph separator inside range, got %q", r.Text())
	}
}

func TestFlattenDocument_DanglingRangeEnd(t *testing.T) {
	root := parseXML(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:commentRangeEnd w:id="9"/><w:r><w:t>ok</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	flat, ranges := flattenDocument(root, DefaultSchema())
	if flat != "ok" {
		t.Errorf("expected %q, got %q", "ok", flat)
	}
	if len(ranges) != 0 {
		t.Errorf("expected no ranges from a dangling end, got %d", len(ranges))
	}
}

func TestFlattenDocument_NilRoot(t *testing.T) {
	flat, ranges := flattenDocument(nil, DefaultSchema())
	if flat != "" {
		t.Errorf("expected empty text, got %q", flat)
	}
	if ranges == nil || len(ranges) != 0 {
		t.Errorf("expected empty non-nil range map, got %v", ranges)
	}
}

func TestFlattenDocument_ForeignNamespaceIgnored(t *testing.T) {
	root := parseXML(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:x="urn:other">
  <w:body>
    <w:p><x:t>invisible</x:t><w:r><w:t>visible</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	flat, _ := flattenDocument(root, DefaultSchema())
	if flat != "visible" {
		t.Errorf("expected foreign-namespace text to be skipped, got %q", flat)
	}
}
