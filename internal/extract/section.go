package extract

import (
	"log/slog"
	"strings"
	"unicode"
)

// Section is a token-delimited slice of the flattened document text. Start
// and End are byte offsets into the flattened text pointing at the first
// and one past the last non-whitespace byte of the slice.
type Section struct {
	Start    int
	End      int
	Raw      string
	Stripped string
}

// locateSection finds the text between startToken and endToken. An empty
// token means "unbounded" on that side. A configured token that is not
// found falls back to the corresponding text boundary with a warning; a
// missing token never fails the extraction. The returned bool reports
// whether at least one configured token was actually located.
func locateSection(text, startToken, endToken string, log *slog.Logger) (Section, bool) {
	found := false

	start := 0
	if startToken != "" {
		if pos := strings.Index(text, startToken); pos < 0 {
			log.Warn("start token not found in text", "token", startToken)
		} else {
			start = pos + len(startToken)
			found = true
		}
	}

	end := len(text)
	if endToken != "" {
		// The end token is only meaningful at or after the resolved start.
		if pos := strings.Index(text[start:], endToken); pos < 0 {
			log.Warn("end token not found in text", "token", endToken)
		} else {
			end = start + pos
			found = true
		}
	}

	raw := text[start:end]
	lstripped := strings.TrimLeftFunc(raw, unicode.IsSpace)
	stripped := strings.TrimRightFunc(lstripped, unicode.IsSpace)
	leading := len(raw) - len(lstripped)
	trailing := len(lstripped) - len(stripped)

	return Section{
		Start:    start + leading,
		End:      end - trailing,
		Raw:      raw,
		Stripped: stripped,
	}, found
}
