package cookies

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tubegrab/tubegrab/internal/domain"
)

// FileStore manages the credential artifacts handed to the extraction
// engine: one optional persisted cookie file, plus per-request temp files in
// the cache dir for cookie payloads sent inline by a browser extension.
type FileStore struct {
	path     string
	cacheDir string
}

func NewFileStore(path, cacheDir string) *FileStore {
	return &FileStore{
		path:     path,
		cacheDir: cacheDir,
	}
}

// Exists reports whether a persisted cookie file is present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *FileStore) Path() string {
	return s.path
}

// Save persists an uploaded cookie file after validating it has content.
// Nothing is written when validation fails.
func (s *FileStore) Save(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read cookie upload: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return domain.ErrEmptyCookieFile
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Delete removes the persisted cookie file.
func (s *FileStore) Delete() error {
	if !s.Exists() {
		return domain.ErrNoCookies
	}
	return os.Remove(s.path)
}

// WriteTemp writes an inline cookie payload to a uniquely named file for the
// duration of one engine call. The returned cleanup must run regardless of
// how that call ends.
func (s *FileStore) WriteTemp(content string) (string, func(), error) {
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return "", nil, err
	}

	path := filepath.Join(s.cacheDir, uuid.New().String()+".txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", nil, err
	}

	return path, func() { _ = os.Remove(path) }, nil
}

// Resolve picks the cookie file for one request: an inline payload takes
// precedence over the persisted file; neither yields an empty path, which
// the engine adapter treats as "no cookies". The cleanup func is always
// non-nil and safe to defer.
func (s *FileStore) Resolve(inline string) (string, func(), error) {
	if inline != "" {
		return s.WriteTemp(inline)
	}

	if s.Exists() {
		return s.path, func() {}, nil
	}

	return "", func() {}, nil
}
