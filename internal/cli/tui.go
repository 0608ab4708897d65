package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// fieldFile is one candidate field file shown in the picker.
type fieldFile struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// listFieldFiles returns the field files (.json, .csv) in dir, newest
// first.
func listFieldFiles(dir string) ([]fieldFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []fieldFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".json" && ext != ".csv" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, fieldFile{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// =============================================================================
// FieldListModel - Interactive field file selection
// =============================================================================

// FieldListModel is the bubbletea model for interactive field file selection.
type FieldListModel struct {
	Files    []fieldFile
	Cursor   int
	Selected *fieldFile
}

// NewFieldListModel creates a new field file list model.
func NewFieldListModel(files []fieldFile) FieldListModel {
	return FieldListModel{Files: files}
}

func (m FieldListModel) Init() tea.Cmd {
	return nil
}

func (m FieldListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Files[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FieldListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Field File"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.Files {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-30s  %8s  %s",
			cursor, f.Name, formatSize(f.Size), listDimStyle.Render(formatRelativeTime(f.ModTime)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))

	return b.String()
}

// pickFieldFile runs the interactive picker over the field files in dir.
// It returns the selected path, or "" when the user quits without
// selecting.
func pickFieldFile(dir string) (string, error) {
	files, err := listFieldFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no field files (.json, .csv) in %s", dir)
	}

	final, err := tea.NewProgram(NewFieldListModel(files)).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	model, ok := final.(FieldListModel)
	if !ok || model.Selected == nil {
		return "", nil
	}
	return filepath.Join(dir, model.Selected.Name), nil
}

// =============================================================================
// Helpers
// =============================================================================

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
