// internal/preset/preset.go
package preset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/noricha-vr/ContextGenerator/internal/fsutil"
)

// FileName is the settings file kept in each project root.
const FileName = "summary.config.json"

// ErrInvalidPreset wraps any parse or validation failure of a preset file.
var ErrInvalidPreset = errors.New("invalid preset")

// Preset is the per-project settings record.
type Preset struct {
	ExcludeDirs       StringList `json:"exclude_dirs"`
	OutputDir         string     `json:"output_dir"`
	TargetFiles       StringList `json:"target_files"`
	IncludeExtensions []string   `json:"include_extensions"`
	OutputFormat      string     `json:"output_format"`
}

// StringList decodes from either a JSON array of strings or a single
// comma-joined string, and always encodes as an array.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*l = splitComma(joined)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*l = items
	return nil
}

func splitComma(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks field values that JSON decoding cannot.
func (p Preset) Validate() error {
	switch p.OutputFormat {
	case "", ".md", ".txt":
	default:
		return fmt.Errorf("%w: output_format %q (want .md or .txt)", ErrInvalidPreset, p.OutputFormat)
	}
	for _, ext := range p.IncludeExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: include_extensions entry %q must start with '.'", ErrInvalidPreset, ext)
		}
	}
	return nil
}

// Store loads and saves presets keyed by project root.
type Store struct {
	FileName string
}

// NewStore returns a store using the standard file name.
func NewStore() *Store {
	return &Store{FileName: FileName}
}

// Path returns the preset location for root.
func (s *Store) Path(root string) string {
	name := s.FileName
	if name == "" {
		name = FileName
	}
	return filepath.Join(root, name)
}

// Load reads the preset for root. A missing file returns (nil, nil);
// unparsable content returns an error wrapping ErrInvalidPreset.
func (s *Store) Load(root string) (*Preset, error) {
	path := s.Path(root)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Preset file not found.", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading preset %s: %w", path, err)
	}

	var p Preset
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrInvalidPreset, path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("Preset loaded.", "path", path)
	return &p, nil
}

// Save replaces the preset for root with p.
func (s *Store) Save(root string, p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding preset: %w", err)
	}
	data = append(data, '\n')

	path := s.Path(root)
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("saving preset: %w", err)
	}
	slog.Info("Preset saved.", "path", path)
	return nil
}
