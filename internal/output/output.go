package output

import (
	"fmt"
	"io"
	"os"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
)

// Writer writes a review record in a specific format.
type Writer interface {
	Write(w io.Writer, rec *artifacts.Record) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Formats lists the supported output format names.
func Formats() []string {
	return []string{"text", "json", "markdown", "sarif"}
}

// WriteReport writes the record to the specified output (file path or stdout).
func WriteReport(rec *artifacts.Record, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, rec)
}
