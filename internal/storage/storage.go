// Package storage persists the todo list as a single JSON file under a
// per-user directory. Every command invocation does one whole-file
// load, one in-memory mutation, and one whole-file save.
package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tiwariParth/todo/internal/todo"
)

// Common errors returned by the store.
var (
	// ErrUninitialized means the storage file does not exist yet.
	ErrUninitialized = errors.New("todo list storage not initialised")
	// ErrCorrupt means the storage file exists but does not hold a
	// valid todo list.
	ErrCorrupt = errors.New("todo list storage is corrupt")
	// ErrExists means init found an already-created storage file.
	ErrExists = errors.New("storage file already exists")
)

const (
	dataFile        = "todo.json"
	placeholderFile = "todo.txt"
)

//go:embed schema.json
var schemaJSON string

// listSchema validates the raw storage document before decoding, so a
// misshapen file surfaces as ErrCorrupt instead of half-decoded data.
var listSchema = jsonschema.MustCompileString("todo/schema.json", schemaJSON)

// Store reads and writes the todo list under a fixed root directory.
// The root is injected once at startup rather than recomputed per
// operation, so tests can point it at a temporary directory.
type Store struct {
	root string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Dir returns the storage root directory.
func (s *Store) Dir() string {
	return s.root
}

// File returns the path of the JSON storage file.
func (s *Store) File() string {
	return filepath.Join(s.root, dataFile)
}

// Placeholder returns the path of the legacy placeholder file created
// by Init. Nothing else reads it.
func (s *Store) Placeholder() string {
	return filepath.Join(s.root, placeholderFile)
}

// Init creates the storage directory and the placeholder file.
// Directory creation is idempotent; the file must not already exist.
func (s *Store) Init() error {
	if err := os.Mkdir(s.root, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create storage directory %s: %w", s.root, err)
	}
	f, err := os.OpenFile(s.Placeholder(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, s.Placeholder())
		}
		return fmt.Errorf("create storage file %s: %w", s.Placeholder(), err)
	}
	return f.Close()
}

// Load reads the whole todo list from the storage file.
// A missing file returns ErrUninitialized; a file that fails schema
// validation or decoding returns ErrCorrupt.
func (s *Store) Load() (todo.List, error) {
	data, err := os.ReadFile(s.File())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrUninitialized
		}
		return nil, fmt.Errorf("read %s: %w", s.File(), err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := listSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var list todo.List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return list, nil
}

// Save serializes the full list and replaces the storage file. The
// write goes to a temporary file first and is renamed into place, so
// the storage file is never left partially written.
func (s *Store) Save(list todo.List) error {
	if list == nil {
		list = todo.List{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode todo list: %w", err)
	}

	tmp, err := os.CreateTemp(s.root, dataFile+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.File()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", s.File(), err)
	}
	return nil
}
