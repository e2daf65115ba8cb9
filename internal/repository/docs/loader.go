// Package docs loads the local knowledge base directory.
package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/docask/docask/internal/domain"
)

// Loader reads every structured document from one fixed directory.
// The read is eager and non-recursive; each run loads the whole set once.
type Loader struct {
	dir    string
	logger *zap.Logger
}

// NewLoader creates a loader for the given directory.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	return &Loader{dir: dir, logger: logger}
}

// record is the on-disk document shape. Only the data field is used;
// anything else in the file is ignored.
type record struct {
	Data string `json:"data" yaml:"data"`
}

// Load reads all recognized documents from the directory. A file that
// fails to parse (or lacks the data field) becomes an empty-content
// document instead of aborting the load; only an unreadable directory
// is fatal.
func (l *Loader) Load() ([]domain.Document, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir %s: %w", l.dir, err)
	}

	var documents []domain.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		documents = append(documents, domain.Document{
			Filename: entry.Name(),
			Content:  l.readContent(filepath.Join(l.dir, entry.Name()), ext),
		})
	}

	l.logger.Info("Documents loaded",
		zap.String("dir", l.dir),
		zap.Int("count", len(documents)),
	)

	return documents, nil
}

// readContent extracts the data field from one file, degrading to an
// empty string on any read or parse failure.
func (l *Loader) readContent(path, ext string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("Failed to read document", zap.String("path", path), zap.Error(err))
		return ""
	}

	var rec record
	switch ext {
	case ".json":
		err = json.Unmarshal(raw, &rec)
	default:
		err = yaml.Unmarshal(raw, &rec)
	}
	if err != nil {
		l.logger.Warn("Failed to parse document", zap.String("path", path), zap.Error(err))
		return ""
	}

	return rec.Data
}
