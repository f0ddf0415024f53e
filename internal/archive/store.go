// Package archive saves fetched original images to disk for later
// inspection. Failures here are never fatal to the refresh loop.
package archive

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// Store writes timestamped copies of fetched images into Dir.
type Store struct {
	Dir string
}

// NewStore creates a store rooted at dir. The directory is created
// lazily on the first Save.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes the raw image bytes under a timestamped filename derived
// from the source name, creating the directory if needed. Returns the
// path of the written file.
func (s *Store) Save(data []byte, sourceName string, now time.Time) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	name := fmt.Sprintf("solar_%s_%s%s",
		now.Format("20060102_150405"),
		sanitize(sourceName),
		extension(data),
	)
	path := filepath.Join(s.Dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// sanitize reduces a source name to a filename-safe token.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '/' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

// extension picks the file extension from the image magic bytes.
func extension(data []byte) string {
	if bytes.HasPrefix(data, pngMagic) {
		return ".png"
	}
	return ".jpg"
}
