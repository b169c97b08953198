package extract

import (
	"log/slog"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/mwhitten/redline/internal/docx"
)

// Config controls one extractor's behavior. Empty tokens leave the
// corresponding section boundary at the start/end of the whole text.
type Config struct {
	PromptStartToken   string
	PromptEndToken     string
	FeedbackStartToken string
	FeedbackEndToken   string

	IncludeAuthor bool
	IncludeDate   bool

	// RequireTokens decides what happens when none of the configured
	// feedback boundary tokens is found: false (default) treats the whole
	// document as the section, true skips the document with an empty
	// result.
	RequireTokens bool
}

// Extractor extracts reviewer comments from .docx documents and re-anchors
// them against the configured feedback section. Safe for concurrent use:
// all per-document state lives within a single Extract call.
type Extractor struct {
	cfg    Config
	schema Schema
	log    *slog.Logger

	// Stats aggregates per-document extraction latency and counters for
	// the stats endpoint.
	Stats *Stats
}

// New creates an Extractor with the default WordprocessingML schema.
func New(cfg Config, log *slog.Logger) *Extractor {
	return &Extractor{
		cfg:    cfg,
		schema: DefaultSchema(),
		log:    log,
		Stats:  NewStats(time.Hour),
	}
}

var (
	commentQuery     = xpath.MustCompile("//*[local-name()='comment']")
	commentParaQuery = xpath.MustCompile(".//*[local-name()='p']")
	commentTextQuery = xpath.MustCompile(".//*[local-name()='t']")
)

// Extract runs the full extraction for one document: read the container
// payloads, flatten the body while tracking comment ranges, locate the
// prompt and feedback sections, filter replies, and reconcile every
// top-level comment against the feedback section. Only a corrupt container
// is an error; every other defect degrades with a warning.
func (e *Extractor) Extract(data []byte) (*Result, error) {
	started := time.Now()

	pkg, err := docx.ReadPackage(data, e.log)
	if err != nil {
		return nil, err
	}

	flat, ranges := flattenDocument(pkg.Document, e.schema)

	feedback, tokensFound := locateSection(flat, e.cfg.FeedbackStartToken, e.cfg.FeedbackEndToken, e.log)
	prompt, _ := locateSection(flat, e.cfg.PromptStartToken, e.cfg.PromptEndToken, e.log)

	if e.cfg.RequireTokens && !tokensFound {
		e.log.Warn("skipping document: no boundary tokens found")
		return &Result{Comments: []Comment{}}, nil
	}

	replies := replySet(pkg.CommentsExtended, e.schema)

	comments := []Comment{}
	dropped := 0
	if pkg.Comments == nil {
		e.log.Warn("document has no comments payload")
	} else {
		comments, dropped = e.reconcile(pkg.Comments, ranges, feedback.Start, replies)
	}

	table, err := docx.FirstTable(data)
	if err != nil {
		e.log.Error("table extraction failed", "error", err)
	}

	e.Stats.Record(time.Since(started).Milliseconds(), len(comments), dropped)

	return &Result{
		Prompt:   prompt.Stripped,
		Text:     feedback.Stripped,
		Comments: comments,
		Feedback: table,
	}, nil
}

// reconcile binds each top-level comment's range to the feedback section
// and emits a record per comment that survives the checks. Output order
// follows the comments payload; sorting is a serializer concern. The
// second return value counts comments dropped as orphaned or
// out-of-section.
func (e *Extractor) reconcile(commentsRoot *xmlquery.Node, ranges map[string]*Range, sectionStart int, replies map[string]struct{}) ([]Comment, int) {
	comments := []Comment{}
	dropped := 0

	for _, node := range xmlquery.QuerySelectorAll(commentsRoot, commentQuery) {
		id := attrValue(node, e.schema.MainNS, "id")

		para := xmlquery.QuerySelector(node, commentParaQuery)
		if para == nil {
			continue
		}
		paraID := attrValue(para, e.schema.ParaIDNS, "paraId")
		if _, isReply := replies[paraID]; isReply {
			continue
		}

		r, ok := ranges[id]
		if !ok {
			e.log.Warn("skipping comment: no highlighted text found", "comment_id", id)
			dropped++
			continue
		}

		r.BindSection(sectionStart)
		pos := r.RelativeStart()
		if pos < 0 {
			e.log.Warn("skipping comment: begins before the section start", "comment_id", id)
			dropped++
			continue
		}

		highlighted := r.Text()
		c := Comment{
			ID:          id,
			Start:       pos,
			End:         pos + len(highlighted),
			Highlighted: highlighted,
			Text:        commentBody(node),
		}
		if e.cfg.IncludeAuthor {
			c.Author = attrValue(node, e.schema.MainNS, "author")
		}
		if e.cfg.IncludeDate {
			c.Date = attrValue(node, e.schema.MainNS, "date")
		}
		comments = append(comments, c)
	}

	return comments, dropped
}

// commentBody joins the text runs of a comment element.
func commentBody(node *xmlquery.Node) string {
	var parts []string
	for _, t := range xmlquery.QuerySelectorAll(node, commentTextQuery) {
		if s := t.InnerText(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
