// Package blobstore keeps short-lived in-memory objects addressable by URL,
// so the browser can load an uploaded image back for the live preview.
// A reference stays valid until it is revoked.
package blobstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// URLPrefix is the path the web server serves blobs under.
const URLPrefix = "/blobs/"

var (
	ErrNotFound  = errors.New("blob not found")
	ErrStoreFull = errors.New("blob store full")
)

// Ref is a handle to a stored blob.
type Ref struct {
	ID uuid.UUID
}

// URL returns the path the blob is served at.
func (r Ref) URL() string {
	return URLPrefix + r.ID.String()
}

// Blob is a stored object.
type Blob struct {
	Data    []byte
	MIME    string
	Created time.Time
}

// Store is a size-capped in-memory blob store, safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	maxBytes int64
	total    int64
	blobs    map[uuid.UUID]Blob
}

// New creates a store holding at most maxBytes in total. maxBytes <= 0
// means no cap.
func New(maxBytes int64) *Store {
	return &Store{
		maxBytes: maxBytes,
		blobs:    make(map[uuid.UUID]Blob),
	}
}

// Create stores data and returns a reference to it.
func (s *Store) Create(data []byte, mime string) (Ref, error) {
	size := int64(len(data))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxBytes > 0 && s.total+size > s.maxBytes {
		return Ref{}, fmt.Errorf("%w: %s in use, %s requested, cap %s", ErrStoreFull,
			humanize.IBytes(uint64(s.total)), humanize.IBytes(uint64(size)), humanize.IBytes(uint64(s.maxBytes)))
	}

	ref := Ref{ID: uuid.New()}
	s.blobs[ref.ID] = Blob{Data: data, MIME: mime, Created: time.Now()}
	s.total += size
	return ref, nil
}

// Get returns the blob with the given id.
func (s *Store) Get(id uuid.UUID) (Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[id]
	if !ok {
		return Blob{}, ErrNotFound
	}
	return b, nil
}

// Lookup parses a blob id or a blob URL and returns the blob.
func (s *Store) Lookup(idOrURL string) (Blob, error) {
	id, err := uuid.Parse(strings.TrimPrefix(idOrURL, URLPrefix))
	if err != nil {
		return Blob{}, ErrNotFound
	}
	return s.Get(id)
}

// Revoke releases the blob behind ref. Revoking twice is a no-op.
func (s *Store) Revoke(ref Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[ref.ID]
	if !ok {
		return
	}
	delete(s.blobs, ref.ID)
	s.total -= int64(len(b.Data))
}

// Len returns the number of live blobs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// Bytes returns the total size of live blobs.
func (s *Store) Bytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
