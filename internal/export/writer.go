// Package export serializes collected review aggregates to timestamped
// JSON files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reviewpulse/reviewpulse/internal/domain"
)

type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteSingle writes one single-country export:
// reviews_{appId}_{country}_{date}.json.
func (w *Writer) WriteSingle(res domain.CollectResult) (string, error) {
	res.ExportInfo.ExportDate = stamp()
	name := fmt.Sprintf("reviews_%s_%s_%s.json",
		res.ExportInfo.AppID, res.ExportInfo.Country, day(res.ExportInfo.ExportDate))
	return w.write(name, res)
}

// WriteMulti writes one multi-country export:
// {slug}_{target}_reviews_{date}.json, slug derived from the app title.
func (w *Writer) WriteMulti(res domain.CollectResult) (string, error) {
	res.ExportInfo.ExportDate = stamp()
	slug := slugify(res.App.Title)
	if slug == "" {
		slug = res.ExportInfo.AppID
	}
	name := fmt.Sprintf("%s_%d_reviews_%s.json",
		slug, res.ExportInfo.TargetReviews, day(res.ExportInfo.ExportDate))
	return w.write(name, res)
}

// WriteBatch writes one multi-app export:
// multiple_reviews_{country}_{date}.json.
func (w *Writer) WriteBatch(res domain.BatchResult) (string, error) {
	res.Summary.ExportDate = stamp()
	name := fmt.Sprintf("multiple_reviews_%s_%s.json",
		res.Summary.Country, day(res.Summary.ExportDate))
	return w.write(name, res)
}

// write creates the file and encodes v with two-space indentation.
// Filesystem errors propagate to the caller; the export CLIs treat them
// as fatal.
func (w *Writer) write(name string, v any) (string, error) {
	if err := ensureDir(w.dir); err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return "", fmt.Errorf("encode export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

func stamp() string { return time.Now().UTC().Format(time.RFC3339) }

// day extracts the calendar-date prefix of an RFC3339 stamp.
func day(iso string) string {
	if i := strings.IndexByte(iso, 'T'); i > 0 {
		return iso[:i]
	}
	return iso
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
