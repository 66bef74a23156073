package nws

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/couchcryptid/sun-table-etl/internal/domain"
)

// FileStore persists resolved coordinates as "zip=lat,lon" lines so a
// lookup survives restarts.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored coordinates for zip, if any.
func (s *FileStore) Load(zip string) (domain.Coordinates, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return domain.Coordinates{}, false, err
	}
	c, ok := all[zip]
	return c, ok, nil
}

// Save records coordinates for zip, replacing any earlier value.
func (s *FileStore) Save(zip string, c domain.Coordinates) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}
	all[zip] = c

	var b strings.Builder
	for z, coords := range all {
		fmt.Fprintf(&b, "%s=%s\n", z, coords.String())
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write coordinate store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace coordinate store: %w", err)
	}
	return nil
}

func (s *FileStore) readAll() (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates)
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open coordinate store: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		zip, pair, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		c, err := domain.ParseCoordinates(pair)
		if err != nil {
			continue
		}
		out[zip] = c
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read coordinate store: %w", err)
	}
	return out, nil
}
