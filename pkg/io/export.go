package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// WriteResult encodes a solve result as indented JSON.
func WriteResult(res *pipeline.Result, w io.Writer) error {
	return WriteJSON(res, w)
}

// WriteCheckReport encodes a check report as indented JSON.
func WriteCheckReport(report *pipeline.CheckReport, w io.Writer) error {
	return WriteJSON(report, w)
}

// ExportResult writes a solve result to a JSON file at path.
// This is a convenience wrapper around [WriteResult] for file-based output.
func ExportResult(res *pipeline.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteResult(res, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
