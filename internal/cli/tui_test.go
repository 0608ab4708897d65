package cli

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func writeTestFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListFieldFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "field.json")
	writeTestFile(t, dir, "heights.csv")
	writeTestFile(t, dir, "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := listFieldFiles(dir)
	if err != nil {
		t.Fatalf("listFieldFiles() error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(files), files)
	}
	for _, f := range files {
		if f.Name == "notes.txt" || f.Name == "sub.json" {
			t.Errorf("unexpected entry %s", f.Name)
		}
	}
}

func TestListFieldFilesMissingDir(t *testing.T) {
	if _, err := listFieldFiles(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("missing directory should error")
	}
}

func TestFieldListModelNavigation(t *testing.T) {
	files := []fieldFile{{Name: "a.json"}, {Name: "b.json"}, {Name: "c.csv"}}
	m := NewFieldListModel(files)

	key := func(s string) tea.KeyMsg {
		if s == "enter" {
			return tea.KeyMsg{Type: tea.KeyEnter}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	next, _ := m.Update(key("j"))
	m = next.(FieldListModel)
	next, _ = m.Update(key("j"))
	m = next.(FieldListModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}

	// Cursor clamps at the end
	next, _ = m.Update(key("j"))
	m = next.(FieldListModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped)", m.Cursor)
	}

	next, _ = m.Update(key("k"))
	m = next.(FieldListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(key("enter"))
	m = next.(FieldListModel)
	if m.Selected == nil || m.Selected.Name != "b.json" {
		t.Errorf("Selected = %+v, want b.json", m.Selected)
	}
}

func TestFieldListModelQuitWithoutSelection(t *testing.T) {
	m := NewFieldListModel([]fieldFile{{Name: "a.json"}})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(FieldListModel)

	if m.Selected != nil {
		t.Error("quit should not select a file")
	}
	if cmd == nil {
		t.Error("quit should return the tea.Quit command")
	}
}
