// Package archive stores raw uploaded documents on the local filesystem.
// It is the system of record for original content; the knowledge toolkit
// only ever sees extracted text.
package archive

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	archiveopts "github.com/kart-io/graphlens/pkg/options/archive"
)

// Store archives raw document content under a root directory.
//
// Storage paths are logical keys of the form
// private/<userID>/<tenantID>/documents/<timestamp>_<fileName> and are
// resolved relative to the root on disk.
type Store struct {
	root string
	now  func() time.Time
}

// New creates a Store rooted at opts.Root.
func New(opts *archiveopts.Options) *Store {
	return &Store{
		root: opts.Root,
		now:  time.Now,
	}
}

// Save writes content and returns its storage path.
func (s *Store) Save(userID, tenantID, fileName string, content []byte) (string, error) {
	userID = sanitizeSegment(userID)
	tenantID = sanitizeSegment(tenantID)
	fileName = path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if userID == "" || tenantID == "" || fileName == "" || fileName == "." {
		return "", fmt.Errorf("invalid archive key: user=%q tenant=%q file=%q", userID, tenantID, fileName)
	}

	storagePath := path.Join("private", userID, tenantID, "documents",
		fmt.Sprintf("%d_%s", s.now().Unix(), fileName))

	full := filepath.Join(s.root, filepath.FromSlash(storagePath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}

	return storagePath, nil
}

// Read returns the archived content for a storage path.
func (s *Store) Read(storagePath string) ([]byte, error) {
	full, err := s.resolve(storagePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive file: %w", err)
	}
	return data, nil
}

// Delete removes the archived content for a storage path. Deleting a path
// that does not exist is not an error.
func (s *Store) Delete(storagePath string) error {
	full, err := s.resolve(storagePath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete archive file: %w", err)
	}
	return nil
}

// Exists reports whether a storage path has archived content.
func (s *Store) Exists(storagePath string) bool {
	full, err := s.resolve(storagePath)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// resolve maps a logical storage path to a filesystem path, rejecting
// anything that escapes the archive root.
func (s *Store) resolve(storagePath string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(storagePath, "\\", "/"))
	if !strings.HasPrefix(cleaned, "private/") || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid storage path: %q", storagePath)
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

func sanitizeSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	seg = strings.ReplaceAll(seg, "/", "_")
	seg = strings.ReplaceAll(seg, "\\", "_")
	if seg == "." || seg == ".." {
		return ""
	}
	return seg
}
