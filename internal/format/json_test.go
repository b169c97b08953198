package format

import (
	"encoding/json"
	"testing"

	"github.com/mwhitten/redline/internal/extract"
)

func TestJSONFormatter_FieldNames(t *testing.T) {
	res := &extract.Result{
		Prompt: "the prompt",
		Text:   "the text",
		Comments: []extract.Comment{
			{ID: "1", Start: 0, End: 3, Highlighted: "the", Text: "note", Author: "Pat"},
		},
	}

	out, err := (&JSONFormatter{}).Format(res)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	var decoded struct {
		Prompt   string `json:"essay_prompt"`
		Text     string `json:"essay_text"`
		Comments []struct {
			ID          string `json:"id"`
			Start       int    `json:"start"`
			End         int    `json:"end"`
			Highlighted string `json:"highlighted_text"`
			Data        string `json:"data"`
			Author      string `json:"author"`
		} `json:"comments"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Prompt != "the prompt" || decoded.Text != "the text" {
		t.Errorf("unexpected prompt/text: %q / %q", decoded.Prompt, decoded.Text)
	}
	if len(decoded.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(decoded.Comments))
	}
	c := decoded.Comments[0]
	if c.ID != "1" || c.Start != 0 || c.End != 3 || c.Highlighted != "the" || c.Data != "note" || c.Author != "Pat" {
		t.Errorf("unexpected comment fields: %+v", c)
	}
}

func TestForName(t *testing.T) {
	for _, name := range Names() {
		f, cfg, err := ForName(name)
		if err != nil {
			t.Errorf("ForName(%q): %v", name, err)
		}
		if f == nil || cfg.Extension == "" || cfg.Subfolder == "" || cfg.ContentType == "" {
			t.Errorf("ForName(%q): incomplete registration: %+v", name, cfg)
		}
	}
	if _, _, err := ForName("yaml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
