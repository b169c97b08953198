package extract

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocateSection_NoTokens(t *testing.T) {
	sec, found := locateSection("  hello world  ", "", "", discardLogger())
	if found {
		t.Error("expected found=false when no tokens are configured")
	}
	if sec.Stripped != "hello world" {
		t.Errorf("expected stripped %q, got %q", "hello world", sec.Stripped)
	}
	if sec.Start != 2 {
		t.Errorf("expected start 2 after trim, got %d", sec.Start)
	}
	if sec.End != 13 {
		t.Errorf("expected end 13 after trim, got %d", sec.End)
	}
}

func TestLocateSection_StartTokenOnly(t *testing.T) {
	// The offsets must point past the token and the trimmed whitespace.
	text := "A <!-- essay text"
	sec, found := locateSection(text, "<!--", "", discardLogger())
	if !found {
		t.Fatal("expected found=true")
	}
	if sec.Stripped != "essay text" {
		t.Errorf("expected stripped %q, got %q", "essay text", sec.Stripped)
	}
	if sec.Start != 7 {
		t.Errorf("expected start 7, got %d", sec.Start)
	}
	if sec.End != len(text) {
		t.Errorf("expected end %d, got %d", len(text), sec.End)
	}
}

func TestLocateSection_BothTokens(t *testing.T) {
	text := "junk START  middle part  END junk"
	sec, found := locateSection(text, "START", "END", discardLogger())
	if !found {
		t.Fatal("expected found=true")
	}
	if sec.Stripped != "middle part" {
		t.Errorf("expected stripped %q, got %q", "middle part", sec.Stripped)
	}
	if got := text[sec.Start:sec.End]; got != "middle part" {
		t.Errorf("offsets do not point at the stripped text: %q", got)
	}
}

func TestLocateSection_EndTokenSearchedAfterStart(t *testing.T) {
	// END before START must not terminate the section.
	text := "END START body END"
	sec, _ := locateSection(text, "START", "END", discardLogger())
	if sec.Stripped != "body" {
		t.Errorf("expected stripped %q, got %q", "body", sec.Stripped)
	}
}

func TestLocateSection_FirstOccurrenceWins(t *testing.T) {
	text := "START one START two"
	sec, _ := locateSection(text, "START", "", discardLogger())
	if sec.Stripped != "one START two" {
		t.Errorf("expected first occurrence to anchor, got %q", sec.Stripped)
	}
}

func TestLocateSection_MissingTokensFallBack(t *testing.T) {
	text := "plain text without markers"
	sec, found := locateSection(text, "START", "END", discardLogger())
	if found {
		t.Error("expected found=false when no configured token is present")
	}
	if sec.Stripped != text {
		t.Errorf("expected whole-text fallback, got %q", sec.Stripped)
	}
	if sec.Start != 0 || sec.End != len(text) {
		t.Errorf("expected full-text offsets, got [%d,%d)", sec.Start, sec.End)
	}
}

func TestLocateSection_MissingEndTokenOnly(t *testing.T) {
	text := "START body here"
	sec, found := locateSection(text, "START", "END", discardLogger())
	if !found {
		t.Error("expected found=true when the start token is present")
	}
	if sec.Stripped != "body here" {
		t.Errorf("expected %q, got %q", "body here", sec.Stripped)
	}
}
