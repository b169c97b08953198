// Package format holds the serializers that consume extraction results.
package format

import (
	"fmt"
	"strings"

	"github.com/mwhitten/redline/internal/extract"
)

// Formatter converts an extraction result into one output representation.
type Formatter interface {
	Format(res *extract.Result) (string, error)
}

// Config describes where one format's output lands.
type Config struct {
	Extension   string // file extension including the dot
	Subfolder   string // per-format subfolder under the output root
	ContentType string // HTTP content type for direct responses
}

// ForName returns the formatter registered under name.
func ForName(name string) (Formatter, Config, error) {
	switch name {
	case "json":
		return &JSONFormatter{}, Config{".json", "json", "application/json; charset=utf-8"}, nil
	case "xml":
		return &XMLFormatter{}, Config{".xml", "xml", "application/xml; charset=utf-8"}, nil
	case "html":
		return &HTMLFormatter{}, Config{".html", "html", "text/html; charset=utf-8"}, nil
	case "md":
		return &MarkdownFormatter{}, Config{".md", "md", "text/markdown; charset=utf-8"}, nil
	}
	return nil, Config{}, fmt.Errorf("unknown format %q (valid formats: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the valid format names.
func Names() []string {
	return []string{"html", "json", "md", "xml"}
}
