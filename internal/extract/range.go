package extract

// unboundSection marks a Range whose section has not been bound yet.
const unboundSection = -1

// Range accumulates the text covered by one comment's range during the
// document walk. Ranges are owned by the walk that created them and are
// never shared across documents.
type Range struct {
	CommentID string
	// AbsoluteStart is the flattened-text offset at which the range opened.
	AbsoluteStart int

	sectionStart int
	fragments    []string
}

func newRange(commentID string, absoluteStart int) *Range {
	return &Range{
		CommentID:     commentID,
		AbsoluteStart: absoluteStart,
		sectionStart:  unboundSection,
	}
}

// Append records a text fragment seen while the range was open.
func (r *Range) Append(text string) {
	r.fragments = append(r.fragments, text)
}

// Text returns the full text covered by the range.
func (r *Range) Text() string {
	var n int
	for _, f := range r.fragments {
		n += len(f)
	}
	b := make([]byte, 0, n)
	for _, f := range r.fragments {
		b = append(b, f...)
	}
	return string(b)
}

// BindSection anchors the range to a located section.
func (r *Range) BindSection(sectionStart int) {
	r.sectionStart = sectionStart
}

// RelativeStart is the range's start offset relative to the bound section.
// It must not be called before BindSection; a negative result means the
// range opened before the section and the comment must be dropped.
func (r *Range) RelativeStart() int {
	return r.AbsoluteStart - r.sectionStart
}

// Bound reports whether BindSection has been called.
func (r *Range) Bound() bool {
	return r.sectionStart != unboundSection
}
