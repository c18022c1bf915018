// Package output serializes and verifies extracted catalog documents.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
)

// ErrRoundTrip indicates a written document does not re-encode to the same bytes.
var ErrRoundTrip = errors.New("document does not round-trip")

// ToJSON serializes a document. Non-ASCII text is written verbatim and
// pretty output uses a two-space indent.
func ToJSON(doc *models.Document, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile replaces the file at path with data. The data is written to a
// temporary file in the same directory and renamed into place, so readers
// never see a partial document.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Report summarizes a verified output file.
type Report struct {
	Size    int64
	Sheets  int
	Records int
	// BadCodes lists records ("sheet#n") whose CODE is missing or not a string.
	BadCodes []string
}

// Verify re-reads a written document, checks that it parses and re-encodes
// to identical bytes, and checks the CODE field of every record.
func Verify(path string, pretty bool) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	again, err := ToJSON(&doc, pretty)
	if err != nil {
		return nil, fmt.Errorf("re-encode %s: %w", path, err)
	}
	if !bytes.Equal(again, data) {
		return nil, fmt.Errorf("%w: %s", ErrRoundTrip, path)
	}

	report := &Report{
		Size:    int64(len(data)),
		Sheets:  len(doc.Sheets),
		Records: doc.RecordCount(),
	}
	for _, sheet := range doc.Sheets {
		for i, rec := range sheet.Records {
			v, ok := rec.Get(models.CodeField)
			if !ok || v.Kind != models.KindString || v.Str == "" {
				report.BadCodes = append(report.BadCodes, fmt.Sprintf("%s#%d", sheet.Name, i+1))
			}
		}
	}
	return report, nil
}
