package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"nutrimacro/pkg/contracts/domain"
)

// JSONResultWriter writes the aggregate result as a JSON array
type JSONResultWriter struct {
	path string
}

// NewJSONResultWriter creates a writer for path
func NewJSONResultWriter(path string) *JSONResultWriter {
	return &JSONResultWriter{path: path}
}

// Path returns the output file path
func (w *JSONResultWriter) Path() string {
	return w.path
}

// Write replaces the output file with averages
func (w *JSONResultWriter) Write(averages []domain.MacroAverage) error {
	if averages == nil {
		averages = []domain.MacroAverage{}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(averages); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return file.Close()
}
