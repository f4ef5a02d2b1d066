package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
)

// JSONWriter outputs the full review record as indented JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, rec *artifacts.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
