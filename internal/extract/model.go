package extract

// Comment is one reviewer comment re-anchored against the feedback section.
// Start and End are byte offsets into Result.Text, and End-Start always
// equals len(Highlighted). Author and Date are populated only when the
// extractor's configuration asks for them.
type Comment struct {
	ID          string `json:"id"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Highlighted string `json:"highlighted_text"`
	Text        string `json:"data"`
	Author      string `json:"author,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Result is the output record for one document. It is immutable once
// returned by the extractor; serializers only read it.
type Result struct {
	Prompt   string              `json:"essay_prompt"`
	Text     string              `json:"essay_text"`
	Comments []Comment           `json:"comments"`
	Feedback []map[string]string `json:"general_feedback,omitempty"`
}
