// Package output serializes extraction results.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iipl/crmdash/pkg/inquiry/models"
)

// ToJSON serializes the result. HTML characters and non-ASCII text are
// written verbatim.
func ToJSON(result *models.ExtractionResult, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}

	doc := *result
	if doc.Inquiries == nil {
		doc.Inquiries = []models.Record{}
	}
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serializes result to path. The document is written to a
// temporary file in the same directory and renamed into place, so readers
// see either the previous or the new document.
func WriteFile(path string, result *models.ExtractionResult, pretty bool) error {
	data, err := ToJSON(result, pretty)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
