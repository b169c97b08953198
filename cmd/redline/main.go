// Command redline extracts reviewer comments from every .docx document in
// a folder and writes the requested output formats next to each other
// under the output folder.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mwhitten/redline/internal/extract"
	"github.com/mwhitten/redline/internal/format"
	"github.com/mwhitten/redline/internal/store"
)

var cli struct {
	Input  string   `short:"i" required:"" type:"existingdir" help:"Folder containing .docx documents."`
	Output string   `short:"o" default:"out" help:"Folder to write extraction results into."`
	Format []string `short:"f" default:"json" help:"Output formats (json, xml, html, md)."`

	PromptStart   string `help:"Start token of the prompt section."`
	PromptEnd     string `help:"End token of the prompt section."`
	FeedbackStart string `help:"Start token of the feedback section."`
	FeedbackEnd   string `help:"End token of the feedback section."`

	Author        bool `help:"Include comment authors in the output."`
	Date          bool `help:"Include comment dates in the output."`
	RequireTokens bool `help:"Skip documents in which no boundary token is found."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("redline"),
		kong.Description("Extract reviewer comments from .docx documents."),
		kong.UsageOnError(),
	)

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	for _, name := range cli.Format {
		_, _, err := format.ForName(name)
		kctx.FatalIfErrorf(err)
	}

	extractor := extract.New(extract.Config{
		PromptStartToken:   cli.PromptStart,
		PromptEndToken:     cli.PromptEnd,
		FeedbackStartToken: cli.FeedbackStart,
		FeedbackEndToken:   cli.FeedbackEnd,
		IncludeAuthor:      cli.Author,
		IncludeDate:        cli.Date,
		RequireTokens:      cli.RequireTokens,
	}, log)
	st := store.New(cli.Output, log)

	processed, failed := 0, 0
	entries, err := os.ReadDir(cli.Input)
	kctx.FatalIfErrorf(err, "read input folder")
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".docx") {
			continue
		}
		if err := processDocument(extractor, st, cli.Input, entry.Name(), log); err != nil {
			// One bad document never stops the batch.
			log.Error("document failed", "file", entry.Name(), "error", err)
			failed++
			continue
		}
		processed++
	}

	log.Info("batch finished", "processed", processed, "failed", failed)
	if processed == 0 && failed > 0 {
		os.Exit(1)
	}
}

func processDocument(extractor *extract.Extractor, st *store.Store, dir, name string, log *slog.Logger) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	res, err := extractor.Extract(data)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	log.Info("extracted document", "file", name, "comments", len(res.Comments))

	docName := strings.TrimSuffix(name, filepath.Ext(name))
	for _, fname := range cli.Format {
		formatter, fcfg, err := format.ForName(fname)
		if err != nil {
			return err
		}
		out, err := formatter.Format(res)
		if err != nil {
			return fmt.Errorf("format %s: %w", fname, err)
		}
		if _, err := st.Save(docName, fcfg.Subfolder, fcfg.Extension, out); err != nil {
			return fmt.Errorf("store %s: %w", fname, err)
		}
	}
	return nil
}
