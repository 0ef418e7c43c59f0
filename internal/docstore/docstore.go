// Package docstore persists the single uploaded SVG document. The store holds
// exactly one slot: every upload replaces the previous document, and
// calculations always read the latest one.
package docstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"svgvolume/pkg/serrors"
)

// Store is a single-slot document store backed by a fixed file on disk.
// Writes replace the slot atomically via a temp file and rename. A RW mutex
// serializes uploads against concurrent reads.
type Store struct {
	mu   sync.RWMutex
	dir  string
	name string

	// filename of the most recent upload, empty until the first Save
	uploaded string
}

// New creates a store rooted at dir, keeping the document under name.
// The directory is created if it does not exist.
func New(dir, name string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("could not create document dir: %w", err)
	}

	s := &Store{dir: dir, name: name}
	if _, err := os.Stat(s.path()); err == nil {
		// a document survived a restart; its original name is unknown
		s.uploaded = name
	}

	return s, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, s.name)
}

// Save replaces the slot content with r. filename is the client-supplied name
// kept for history records only; the on-disk name is fixed.
func (s *Store) Save(filename string, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, s.name+".*")
	if err != nil {
		return fmt.Errorf("could not create temp document: %w", err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("could not write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("could not close temp document: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("could not replace document: %w", err)
	}

	s.uploaded = filename

	return nil
}

// Open returns a reader over the stored document together with the filename
// it was uploaded under. It returns serrors.ErrNoDocument when the slot is
// empty.
func (s *Store) Open() (io.ReadCloser, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.uploaded == "" {
		return nil, "", serrors.With(serrors.ErrNoDocument, "no SVG document has been uploaded")
	}

	f, err := os.Open(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", serrors.Wrap(serrors.ErrNoDocument, err, "document slot is empty")
		}

		return nil, "", fmt.Errorf("could not open document: %w", err)
	}

	return f, s.uploaded, nil
}

// Filename returns the name the current document was uploaded under, or an
// empty string when the slot is empty.
func (s *Store) Filename() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.uploaded
}
