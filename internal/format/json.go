package format

import (
	"encoding/json"
	"fmt"

	"github.com/mwhitten/redline/internal/extract"
)

// JSONFormatter emits the result as an indented JSON document.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(res *extract.Result) (string, error) {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(out), nil
}
