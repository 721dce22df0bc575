// package sheet reads and writes the per-playlist CSV sheets
package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cratesync/cratesync/internal/models"
	"github.com/cratesync/cratesync/internal/shared"
)

// PathFor returns the sheet path for a target id under the data directory.
func PathFor(dataDir, targetID string) string {
	return filepath.Join(dataDir, targetID+".csv")
}

// Render converts rows to CSV bytes, header first.
func Render(rows []models.Row) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(models.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(row.Strings()); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// Write renders rows and replaces the sheet at path. The data goes to a
// temp file in the sheet's directory first and is renamed into place, so a
// failed run leaves the previous sheet untouched and readers never see a
// half-written file.
func Write(path string, rows []models.Row) error {
	data, err := Render(rows)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
	}

	// CreateTemp files are 0600; published sheets should be readable.
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
	}

	return nil
}

// LoadOverrides reads the override columns from a previously written sheet,
// keyed by spotifyId. A sheet that does not exist yet yields an empty set.
// Rows without a spotifyId are skipped; absent override columns read as "".
func LoadOverrides(path string) (models.OverrideSet, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.OverrideSet{}, nil
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return models.OverrideSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	set := models.OverrideSet{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrSheetIO, err)
		}

		id := field(record, "spotifyId")
		if id == "" {
			continue
		}

		set[id] = models.Override{
			Year:  field(record, "year_override"),
			Title: field(record, "title_override"),
		}
	}

	return set, nil
}
