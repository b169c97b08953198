package extract

// WordprocessingML namespace URIs. Fixed by the OOXML spec; every document
// this service reads uses the same three.
const (
	nsMain     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWord2010 = "http://schemas.microsoft.com/office/word/2010/wordml"
	nsWord2012 = "http://schemas.microsoft.com/office/word/2012/wordml"
)

// Schema is the frozen tag vocabulary consumed from the document payloads.
// It is injected into the walker rather than referenced as package state so
// tests can exercise the walk against reduced vocabularies.
type Schema struct {
	// MainNS qualifies the body vocabulary (ranges, runs, paragraphs) and
	// the comment element attributes.
	MainNS string
	// ParaIDNS qualifies the paraId attribute on comment paragraphs (w14).
	ParaIDNS string
	// ExtendedNS qualifies commentsExtended elements and attributes (w15).
	ExtendedNS string

	RangeStart string // opens a comment range, carries an id attribute
	RangeEnd   string // closes a comment range, carries an id attribute
	Text       string // literal text run
	Paragraph  string // paragraph boundary
	Break      string // explicit line break
}

// DefaultSchema returns the WordprocessingML vocabulary.
func DefaultSchema() Schema {
	return Schema{
		MainNS:     nsMain,
		ParaIDNS:   nsWord2010,
		ExtendedNS: nsWord2012,
		RangeStart: "commentRangeStart",
		RangeEnd:   "commentRangeEnd",
		Text:       "t",
		Paragraph:  "p",
		Break:      "br",
	}
}
