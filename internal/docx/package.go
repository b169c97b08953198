// Package docx reads the OOXML payloads this service consumes from a .docx
// container: the document body, the comments, and the extended comment
// metadata. The container is a zip archive with fixed inner paths.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log/slog"

	"github.com/antchfx/xmlquery"
)

const (
	documentPath         = "word/document.xml"
	commentsPath         = "word/comments.xml"
	commentsExtendedPath = "word/commentsExtended.xml"
)

// Package holds the parsed XML payloads of one container. Any payload may
// be nil: a document without comments simply has no comments part, and
// older documents lack commentsExtended entirely. Callers degrade per
// payload instead of failing.
type Package struct {
	Document         *xmlquery.Node
	Comments         *xmlquery.Node
	CommentsExtended *xmlquery.Node
}

// ReadPackage opens the container held in data and parses the three
// payloads. Only an unreadable container is an error; a missing or
// malformed inner payload is logged and left nil.
func ReadPackage(data []byte, log *slog.Logger) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx container: %w", err)
	}

	return &Package{
		Comments:         readXML(zr, commentsPath, log),
		CommentsExtended: readXML(zr, commentsExtendedPath, log),
		Document:         readXML(zr, documentPath, log),
	}, nil
}

func readXML(zr *zip.Reader, name string, log *slog.Logger) *xmlquery.Node {
	f, err := zr.Open(name)
	if err != nil {
		log.Warn("payload not found in document", "path", name)
		return nil
	}
	defer f.Close()

	root, err := xmlquery.Parse(f)
	if err != nil {
		log.Warn("failed to parse payload", "path", name, "error", err)
		return nil
	}
	return root
}
