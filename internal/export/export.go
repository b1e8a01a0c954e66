// Package export turns a filtered result view into a CSV file on disk.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bssshyamsundhar/float-chat/internal/table"
)

// Write streams rows to w as CSV: one header line of column names, then
// one line per row in the given column order. Every field is quoted,
// always, with embedded quotes doubled, so commas and newlines inside
// values never break the shape.
func Write(w io.Writer, columns []string, rows []map[string]any) error {
	var b strings.Builder
	writeLine := func(fields []string) error {
		b.Reset()
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}

	if err := writeLine(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	fields := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			fields[i] = table.RawCell(row[col])
		}
		if err := writeLine(fields); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}

// WriteTSV streams rows to w as tab-separated text with a header line,
// the shape the one-shot CLI prints to stdout. Tabs and newlines inside
// values are escaped so each record stays on one line.
func WriteTSV(w io.Writer, columns []string, rows []map[string]any) error {
	escape := func(f string) string {
		f = strings.ReplaceAll(f, "\\", "\\\\")
		f = strings.ReplaceAll(f, "\t", "\\t")
		return strings.ReplaceAll(f, "\n", "\\n")
	}

	if _, err := fmt.Fprintln(w, strings.Join(columns, "\t")); err != nil {
		return fmt.Errorf("write tsv header: %w", err)
	}
	fields := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			fields[i] = escape(table.RawCell(row[col]))
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return fmt.Errorf("write tsv row: %w", err)
		}
	}
	return nil
}

// Filename names an export after the moment it was taken, in epoch
// milliseconds, so repeated exports never collide.
func Filename(now time.Time) string {
	return "oceanographic_data_" + strconv.FormatInt(now.UnixMilli(), 10) + ".csv"
}

// Save writes the view to a fresh file under dir and returns the full
// path. An empty dir means the current directory.
func Save(dir string, columns []string, rows []map[string]any) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, columns, rows); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
