// Package manifest persists generated verb records as the JSON document the
// downstream app consumes, and checks existing documents.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/speaknative/verbgen/internal/assemble"
	"github.com/speaknative/verbgen/internal/metrics"
	"github.com/speaknative/verbgen/internal/models"
)

// DefaultIndent matches the indentation of the manifest checked into the app.
const DefaultIndent = 4

//go:embed schema.json
var schemaJSON []byte

// ErrInvalidManifest is returned by Validate when a document does not match
// the manifest schema or contains an incomplete record.
var ErrInvalidManifest = errors.New("invalid manifest")

// Encode writes records to w as an indented JSON array. Non-ASCII characters
// are written verbatim.
func Encode(w io.Writer, records []models.VerbRecord, indent int) error {
	if indent < 0 {
		return fmt.Errorf("manifest: indent must be >= 0, got %d", indent)
	}
	if records == nil {
		records = []models.VerbRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("manifest: encoding: %w", err)
	}
	return nil
}

// WriteFile writes records to path, creating parent directories. The file
// is replaced atomically so readers never observe a partial manifest.
func WriteFile(path string, records []models.VerbRecord, indent int) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("manifest: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".verbs-manifest-*.json")
	if err != nil {
		return fmt.Errorf("manifest: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := Encode(tmp, records, indent); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("manifest: closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("manifest: setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("manifest: replacing %s: %w", path, err)
	}

	metrics.Inc(metrics.ManifestsWritten)
	return nil
}

// Decode reads a manifest document from r.
func Decode(r io.Reader) ([]models.VerbRecord, error) {
	var records []models.VerbRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("manifest: decoding: %w", err)
	}
	return records, nil
}

// ReadFile reads the manifest at path and runs Validate over it.
func ReadFile(path string) ([]models.VerbRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}
	records, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Validate checks data against the manifest schema, then runs the
// completeness check on every record and rejects duplicate ids. It returns
// the decoded records when the document is valid.
func Validate(data []byte) ([]models.VerbRecord, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("manifest: loading schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidManifest, strings.Join(msgs, "; "))
	}

	records, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidManifest, rec.ID)
		}
		seen[rec.ID] = true
		if err := assemble.CheckComplete(rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
	}
	return records, nil
}
