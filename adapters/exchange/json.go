// Package exchange imports and exports rate tables as documents.
// Imports go through the shape normalizer; a malformed document is reported
// and nothing is returned, so the caller's table stays unchanged.
package exchange

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"utilfee/core/rates"
	"utilfee/core/types"
	"utilfee/internal/errors"
)

// DefaultExportName is the file name offered for exports
const DefaultExportName = "uti_periods_rubles.json"

// Format is a document format
type Format string

const (
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// FormatForPath picks the format from a file extension; JSON is the default
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL
	default:
		return FormatJSON
	}
}

// ImportJSON reads and normalizes a JSON array of periods
func ImportJSON(r io.Reader) ([]types.Period, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Parsing("failed to read JSON", err)
	}
	periods, err := rates.DecodeJSON(data)
	if err != nil {
		return nil, errors.Parsing("failed to import JSON", err)
	}
	return periods, nil
}

// ExportJSON writes periods as pretty-printed JSON
func ExportJSON(w io.Writer, periods []types.Period) error {
	data, err := rates.EncodeJSON(periods)
	if err != nil {
		return errors.Internal("failed to marshal periods", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Storage("failed to write export", err)
	}
	return nil
}

// ImportFile imports a .json or .hcl document
func ImportFile(path string) ([]types.Period, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Storage(fmt.Sprintf("failed to read %s", path), err)
	}

	switch FormatForPath(path) {
	case FormatHCL:
		raws, err := ParseHCL(data, path)
		if err != nil {
			return nil, err
		}
		return rates.NormalizeAll(raws), nil
	default:
		periods, err := rates.DecodeJSON(data)
		if err != nil {
			return nil, errors.Parsing("failed to import JSON", err).WithContext("file", path)
		}
		return periods, nil
	}
}

// ExportFile writes periods as pretty-printed JSON to path
func ExportFile(path string, periods []types.Period) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Storage(fmt.Sprintf("failed to create %s", path), err)
	}
	if err := ExportJSON(f, periods); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Storage(fmt.Sprintf("failed to close %s", path), err)
	}
	return nil
}
