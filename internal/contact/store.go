package contact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jeanpaul/contactbook/internal/schema"
)

// DefaultFile is the backing file used when Open gets an empty path.
const DefaultFile = "contacts.json"

var (
	ErrNotFound     = errors.New("contact: not found")
	ErrMalformed    = errors.New("contact: malformed contacts file")
	ErrMissingField = errors.New("contact: name and phone are required")
	ErrUnknownField = errors.New("contact: unknown field")
)

// Store owns an ordered list of contacts and mirrors it to a JSON file after
// every mutation. Insertion order is list order.
type Store struct {
	mu       sync.RWMutex
	path     string
	contacts []Contact

	log       *slog.Logger
	now       func() time.Time
	validate  bool
	validator *schema.Validator
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and persist events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now for Created timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSchemaCheck toggles validation of the backing file against
// schema.ContactListSchema on load. Enabled by default.
func WithSchemaCheck(enabled bool) Option {
	return func(s *Store) { s.validate = enabled }
}

// Open loads the store from path. A missing file yields an empty store;
// a file that is not a valid contact list fails with ErrMalformed.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		path = DefaultFile
	}
	s := &Store{
		path:     path,
		contacts: []Contact{},
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
		validate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validate {
		s.validator = schema.NewValidator()
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("contacts file not found, starting empty", "path", s.path)
			return nil
		}
		return fmt.Errorf("contact: read %s: %w", s.path, err)
	}

	if s.validator != nil {
		if err := s.validator.Validate(schema.ContactListSchema, data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, s.path, err)
		}
	}

	var contacts []Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, s.path, err)
	}
	if contacts == nil {
		// a file holding "null" is still a valid empty list
		contacts = []Contact{}
	}
	s.contacts = contacts
	s.log.Debug("contacts loaded", "path", s.path, "count", len(contacts))
	return nil
}

// persist rewrites the whole backing file from memory. Callers hold s.mu.
func (s *Store) persist() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.contacts); err != nil {
		return fmt.Errorf("contact: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".contacts-*.tmp")
	if err != nil {
		return fmt.Errorf("contact: persist %s: %w", s.path, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("contact: persist %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("contact: persist %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("contact: persist %s: %w", s.path, err)
	}

	s.log.Debug("contacts persisted", "path", s.path, "count", len(s.contacts))
	return nil
}

// Add appends a new contact and persists the list. The id is the number of
// contacts present before the insert plus one, so ids can repeat after a
// delete.
func (s *Store) Add(name, phone, email, address string) (Contact, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return Contact{}, ErrMissingField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := Contact{
		ID:      len(s.contacts) + 1,
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Created: s.now().Format(TimeLayout),
	}
	s.contacts = append(s.contacts, c)
	if err := s.persist(); err != nil {
		return Contact{}, err
	}
	s.log.Info("contact added", "id", c.ID)
	return c, nil
}

// Delete removes every contact with the given id and persists the list.
// An unknown id is not an error.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.contacts[:0]
	for _, c := range s.contacts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	removed := len(s.contacts) - len(kept)
	// zero the tail so dropped records are not kept alive by the backing array
	clear(s.contacts[len(kept):])
	s.contacts = kept

	if err := s.persist(); err != nil {
		return err
	}
	s.log.Info("contact deleted", "id", id, "removed", removed)
	return nil
}

// Search returns the contacts matching query in list order. An empty query
// matches everything.
func (s *Store) Search(query string) []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []Contact{}
	for _, c := range s.contacts {
		if c.Matches(query) {
			results = append(results, c)
		}
	}
	return results
}

// Update overwrites the given fields of the first contact with that id and
// persists the list. Keys that are not updatable fields are ignored.
// ErrNotFound is returned, and nothing is written, when no contact has the id.
func (s *Store) Update(id int, values map[Field]string) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.contacts {
		if s.contacts[i].ID != id {
			continue
		}
		for f, v := range values {
			if !s.contacts[i].set(f, v) {
				s.log.Debug("ignoring unknown field", "id", id, "field", string(f))
			}
		}
		if err := s.persist(); err != nil {
			return Contact{}, err
		}
		s.log.Info("contact updated", "id", id)
		return s.contacts[i], nil
	}
	return Contact{}, ErrNotFound
}

// Get returns the first contact with the given id.
func (s *Store) Get(id int) (Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return Contact{}, ErrNotFound
}

// List returns a copy of all contacts in list order.
func (s *Store) List() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Len returns the number of contacts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
