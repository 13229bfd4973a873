// Package grantfile reads grant lists from YAML or JSON files, an
// alternative to workbook ranges and positional arguments.
package grantfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/rsudist/core/input"
)

// Entry is one grant as written in a grants file. VestFrom is parsed like
// any other date argument.
type Entry struct {
	Shares   int    `json:"shares" yaml:"shares"`
	VestFrom string `json:"vest_from" yaml:"vest_from"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// File is the document layout.
type File struct {
	Grants []Entry `json:"grants" yaml:"grants"`
}

// Load reads a grants file, picking the decoder from the file extension.
func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var f File
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &f)
	case ".json":
		err = json.Unmarshal(b, &f)
	default:
		return File{}, fmt.Errorf("unsupported grants file format: %s", ext)
	}
	if err != nil {
		return File{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}

// Decode reads a grants document in the given format from r.
func Decode(r io.Reader, format string) (File, error) {
	var f File
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&f); err != nil {
			return f, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return f, err
		}
	default:
		return f, fmt.Errorf("unsupported format: %s", format)
	}
	return f, nil
}

// Range converts the entries into a shares-first range.
func (f File) Range() input.Range {
	rows := make([][]input.Cell, len(f.Grants))
	for i, g := range f.Grants {
		rows[i] = []input.Cell{input.Int(g.Shares), input.Text(g.VestFrom)}
	}
	return input.Range{Rows: rows}
}
