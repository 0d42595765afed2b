package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// SaveJSON writes items to path as an indented JSON array, replacing the
// file. The data goes to a temporary file first and is renamed into place.
func SaveJSON[T any](items []T, path string) error {
	if items == nil {
		items = []T{}
	}
	data, err := jsonAPI.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads a JSON array of T from path. A missing file yields an empty
// slice; an unreadable or malformed one is logged and also yields an empty
// slice.
func LoadJSON[T any](path string) []T {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}
	}
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cannot read json file")
		return []T{}
	}

	var items []T
	if err := jsonAPI.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("malformed json file, ignoring contents")
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}
