// Package store persists formatted extraction results on the filesystem,
// one subfolder per output format.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store writes formatted results under a root directory.
type Store struct {
	root string
	log  *slog.Logger
}

func New(root string, log *slog.Logger) *Store {
	return &Store{root: root, log: log}
}

// Entry describes one stored output file.
type Entry struct {
	Name     string    `json:"name"`
	Format   string    `json:"format"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Save writes content as <root>/<subfolder>/<name><ext> and returns the
// path. The name is sanitized to its base component first.
func (s *Store) Save(name, subfolder, ext, content string) (string, error) {
	dir := filepath.Join(s.root, subfolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output folder: %w", err)
	}
	path := filepath.Join(dir, sanitizeName(name)+ext)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.log.Info("stored result", "path", path)
	return path, nil
}

// List returns every stored output, newest first within each format.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	formats, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read output root: %w", err)
	}
	for _, f := range formats {
		if !f.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(s.root, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read output folder %s: %w", f.Name(), err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			info, err := file.Info()
			if err != nil {
				continue
			}
			entries = append(entries, Entry{
				Name:     file.Name(),
				Format:   f.Name(),
				Size:     info.Size(),
				Modified: info.ModTime(),
			})
		}
	}
	return entries, nil
}

// Delete removes every stored output whose base name (without extension)
// matches name, across all format subfolders. Returns the number removed.
func (s *Store) Delete(name string) (int, error) {
	name = sanitizeName(name)
	formats, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read output root: %w", err)
	}
	removed := 0
	for _, f := range formats {
		if !f.IsDir() {
			continue
		}
		dir := filepath.Join(s.root, f.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, file := range files {
			base := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
			if base != name {
				continue
			}
			if err := os.Remove(filepath.Join(dir, file.Name())); err != nil {
				s.log.Warn("failed to remove stored result", "path", filepath.Join(dir, file.Name()), "error", err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}

// sanitizeName strips path components so stored names cannot escape the
// output root.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
