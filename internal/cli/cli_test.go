package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/tiwariParth/todo/internal/storage"
	"github.com/tiwariParth/todo/internal/todo"
)

func init() {
	color.NoColor = true
}

// run executes the CLI against a storage root and captures its output.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := Root()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append(args, "--data-dir", dir))
	err := root.Execute()
	return buf.String(), err
}

// seed writes an empty todo.json so commands that load can proceed.
func seed(t *testing.T, dir string, list todo.List) *storage.Store {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	s := storage.New(dir)
	if err := s.Save(list); err != nil {
		t.Fatalf("seed storage: %v", err)
	}
	return s
}

func TestInitCreatesPlaceholderNotDataFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".todo")

	out, err := run(t, dir, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Successfully initialised storage for todo") {
		t.Errorf("init output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "todo.txt")); err != nil {
		t.Errorf("todo.txt not created: %v", err)
	}
	// init creates the placeholder, not the data file.
	if _, err := os.Stat(filepath.Join(dir, "todo.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("todo.json should not exist after init, stat err = %v", err)
	}
}

func TestInitTwiceFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".todo")

	if _, err := run(t, dir, "init"); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := run(t, dir, "init"); !errors.Is(err, storage.ErrExists) {
		t.Errorf("second init = %v, want ErrExists", err)
	}
}

func TestNewFailsAfterBareInit(t *testing.T) {
	// init writes todo.txt but never todo.json, so a fresh init is not
	// enough for new to succeed.
	dir := filepath.Join(t.TempDir(), ".todo")

	if _, err := run(t, dir, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	_, err := run(t, dir, "new", "Buy milk")
	if err == nil || !strings.Contains(err.Error(), "couldn't load todo list") {
		t.Errorf("new after bare init = %v, want load failure", err)
	}
}

func TestNewAssignsSequentialIDs(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, todo.List{})

	out, err := run(t, dir, "new", "Walk the dog")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !strings.Contains(out, "New item (1) added to todo list.") {
		t.Errorf("first new output = %q", out)
	}

	out, err = run(t, dir, "new", "Buy milk")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !strings.Contains(out, "New item (2) added to todo list.") {
		t.Errorf("second new output = %q", out)
	}
}

func TestCompleteTransitionsExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	s := seed(t, dir, todo.List{
		{ID: 1, Text: "Walk the dog", CreatedDate: todo.Now()},
		{ID: 2, Text: "Buy milk", CreatedDate: todo.Now()},
	})

	out, err := run(t, dir, "complete", "1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !strings.Contains(out, "Item 1 (Walk the dog) completed.") {
		t.Errorf("complete output = %q", out)
	}

	list, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !list[0].Done || list[0].CompletedDate == nil {
		t.Errorf("item 1 not persisted as done: %+v", list[0])
	}
	if list[1].Done || list[1].CompletedDate != nil {
		t.Errorf("item 2 should be untouched: %+v", list[1])
	}

	// A second complete on the same id reports not-found, exactly like
	// a missing id.
	if _, err := run(t, dir, "complete", "1"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("repeat complete = %v, want not-found", err)
	}
	if _, err := run(t, dir, "complete", "99"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("missing complete = %v, want not-found", err)
	}
}

func TestCompleteRejectsNonNumericID(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, todo.List{})

	if _, err := run(t, dir, "complete", "abc"); err == nil || !strings.Contains(err.Error(), "invalid item id") {
		t.Errorf("complete abc = %v, want invalid id error", err)
	}
}

func TestListHidesDoneUnlessAll(t *testing.T) {
	completed := todo.Now()
	dir := t.TempDir()
	seed(t, dir, todo.List{
		{ID: 1, Text: "Walk the dog", Done: true, CreatedDate: todo.Now(), CompletedDate: &completed},
		{ID: 2, Text: "Buy milk", CreatedDate: todo.Now()},
	})

	out, err := run(t, dir, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "TODO List") {
		t.Errorf("list output missing header: %q", out)
	}
	if strings.Contains(out, "Walk the dog") {
		t.Errorf("list should hide done items: %q", out)
	}
	if !strings.Contains(out, "   2. [ ] Buy milk ") {
		t.Errorf("list output = %q", out)
	}

	out, err = run(t, dir, "list", "--all")
	if err != nil {
		t.Fatalf("list --all: %v", err)
	}
	if !strings.Contains(out, "   1. [X] Walk the dog ") {
		t.Errorf("list --all should show done items: %q", out)
	}
}

func TestListVerboseShowsTimestamps(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, todo.List{{ID: 1, Text: "Walk the dog", CreatedDate: todo.Now()}})

	out, err := run(t, dir, "list", "--verbose")
	if err != nil {
		t.Fatalf("list --verbose: %v", err)
	}
	if !strings.Contains(out, "(created: ") {
		t.Errorf("verbose output missing timestamps: %q", out)
	}
}

func TestListUninitialized(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, err := run(t, dir, "list")
	if err == nil || !strings.Contains(err.Error(), "couldn't load todo list") {
		t.Errorf("list uninitialized = %v, want load failure", err)
	}
}

func TestCorruptStorageIsReportedNotFatal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "todo.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, dir, "list")
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Errorf("list on corrupt storage = %v, want ErrCorrupt", err)
	}
}
