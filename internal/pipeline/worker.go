package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mwhitten/redline/internal/extract"
	"github.com/mwhitten/redline/internal/format"
	"github.com/mwhitten/redline/internal/store"
)

// Worker processes a single document job: extract comments, render every
// requested format, store the outputs.
type Worker struct {
	extractor *extract.Extractor
	store     *store.Store
	log       *slog.Logger
}

func NewWorker(ex *extract.Extractor, st *store.Store, log *slog.Logger) *Worker {
	return &Worker{
		extractor: ex,
		store:     st,
		log:       log,
	}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	// Phase 1: Extract.
	job.SetStatus(StatusExtracting, "extracting comments")
	res, err := w.extractor.Extract(job.FileData())
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetResult(res)
	job.SetCommentsFound(len(res.Comments))
	log.Info("extracted document", "comments", len(res.Comments))

	formats := job.Formats()
	job.SetFormatsTotal(len(formats))
	docName := strings.TrimSuffix(job.Filename, filepath.Ext(job.Filename))

	// Phase 2+3: render and store each requested format. A failed format
	// degrades the job to partial rather than failing it outright.
	hadErrors := false
	written := 0
	for _, name := range formats {
		job.SetStatus(StatusFormatting, "formatting "+name)
		formatter, fcfg, err := format.ForName(name)
		if err != nil {
			log.Error("unknown format", "format", name, "error", err)
			job.AddError(err.Error())
			hadErrors = true
			continue
		}
		out, err := formatter.Format(res)
		if err != nil {
			log.Error("formatting failed", "format", name, "error", err)
			job.AddError(fmt.Sprintf("format %s: %s", name, err))
			hadErrors = true
			continue
		}

		job.SetStatus(StatusStoring, "storing "+name)
		if _, err := w.store.Save(docName, fcfg.Subfolder, fcfg.Extension, out); err != nil {
			log.Error("store failed", "format", name, "error", err)
			job.AddError(fmt.Sprintf("store %s: %s", name, err))
			hadErrors = true
			continue
		}
		job.IncrFormatsWritten()
		written++
	}

	switch {
	case hadErrors && written > 0:
		job.SetStatus(StatusPartial, "done")
	case hadErrors:
		job.SetStatus(StatusFailed, "storing")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("job finished", "status", job.Snapshot().Status, "formats_written", written)
}
