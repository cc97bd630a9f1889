package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"city-stats/internal/domain"
)

// DefaultFilename returns <dir>/<title_snake>_<YYYYMMDD_HHMMSS>.<ext>.
func DefaultFilename(dir, title string, format Format, at time.Time) string {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", name, at.Format("20060102_150405"), format.Extension()))
}

// WriteFile creates path, writes it with write and closes it on every
// path. Any failure is wrapped in ErrExportIO; a partially written file is
// removed.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return fmt.Errorf("%w: %v", ErrExportIO, mkErr)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrExportIO, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if werr := write(f); werr != nil {
		return fmt.Errorf("%w: %v", ErrExportIO, werr)
	}
	return nil
}

// Report writes a domain report to path: JSON of its field mapping or a
// flat field/value CSV.
func Report(path string, format Format, r domain.Report) error {
	switch format {
	case FormatJSON:
		return WriteFile(path, func(w io.Writer) error { return WriteJSON(w, r.Fields()) })
	case FormatCSV:
		return WriteFile(path, func(w io.Writer) error { return WriteFlatCSV(w, r.Fields()) })
	default:
		return fmt.Errorf("%w: %q for %s report", ErrUnknownFormat, format, r.Kind())
	}
}

// Aggregate writes an aggregate report to path: JSON of its field mapping,
// tabular CSV, or Markdown.
func Aggregate(path string, format Format, r *domain.AggregateReport) error {
	switch format {
	case FormatJSON:
		return WriteFile(path, func(w io.Writer) error { return WriteJSON(w, r.Fields()) })
	case FormatCSV:
		return WriteFile(path, func(w io.Writer) error { return WriteTabularCSV(w, r) })
	case FormatMarkdown:
		return WriteFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, RenderAggregateMarkdown(r))
			return err
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Comprehensive writes a comprehensive report to path as JSON or Markdown.
func Comprehensive(path string, format Format, c *domain.ComprehensiveReport) error {
	switch format {
	case FormatJSON:
		return WriteFile(path, func(w io.Writer) error { return WriteJSON(w, c.Fields()) })
	case FormatMarkdown:
		return WriteFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, RenderMarkdown(c))
			return err
		})
	default:
		return fmt.Errorf("%w: %q for comprehensive report", ErrUnknownFormat, format)
	}
}
