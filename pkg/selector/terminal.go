package selector

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ideamans/go-l10n"

	"github.com/heyjunin/vidcompress/pkg/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 1)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TerminalDialog browses the file system inside the terminal. It applies
// the first filter group; a "*.*" group allows every file.
type TerminalDialog struct {
	// Dir is the starting directory, the working directory when empty.
	Dir    string
	Input  io.Reader
	Output io.Writer
}

// SelectFile implements Dialog.
func (d TerminalDialog) SelectFile(ctx context.Context, title string, filters []Filter) (string, error) {
	m := newPickerModel(title, d.startDir(), filters)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if d.Input != nil {
		opts = append(opts, tea.WithInput(d.Input))
	}
	if d.Output != nil {
		opts = append(opts, tea.WithOutput(d.Output))
	} else {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", errors.FromCode(err, errors.DialogError, errors.ErrDialogFailed)
	}

	result, ok := final.(pickerModel)
	if !ok {
		return "", nil
	}
	return result.selected, nil
}

func (d TerminalDialog) startDir() string {
	if d.Dir != "" {
		return d.Dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

type pickerModel struct {
	title    string
	picker   filepicker.Model
	selected string
	quitting bool
}

func newPickerModel(title, dir string, filters []Filter) pickerModel {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = allowedTypes(filters)
	return pickerModel{title: title, picker: fp}
}

// allowedTypes turns "*.mp4" patterns into the suffixes filepicker matches.
// filepicker compares suffixes case-sensitively, so every casing of each
// extension is listed to agree with IsSupported. nil means no restriction.
func allowedTypes(filters []Filter) []string {
	if len(filters) == 0 {
		return nil
	}
	var types []string
	for _, p := range filters[0].Patterns {
		if p == "*" || p == "*.*" {
			return nil
		}
		types = append(types, caseVariants(strings.TrimPrefix(p, "*"))...)
	}
	return types
}

// caseVariants returns every upper/lower casing of s, e.g. ".mov", ".Mov", ".mOV".
func caseVariants(s string) []string {
	variants := []string{""}
	for _, r := range strings.ToLower(s) {
		lower, upper := string(r), strings.ToUpper(string(r))
		next := make([]string, 0, 2*len(variants))
		for _, v := range variants {
			next = append(next, v+lower)
			if upper != lower {
				next = append(next, v+upper)
			}
		}
		variants = next
	}
	return variants
}

func (m pickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selected = path
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(l10n.T("Select a video and press enter") + " (q)"))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	return b.String()
}
