// Package selector asks the user for the video to compress and checks that
// its extension is one the compressor accepts.
package selector

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"

	"github.com/heyjunin/vidcompress/pkg/logger"
)

// SupportedExtensions lists the accepted input extensions, lower case.
var SupportedExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv"}

// IsSupported reports whether path has one of SupportedExtensions, ignoring case.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Filter is a named group of glob patterns shown by a file dialog.
type Filter struct {
	Name     string
	Patterns []string
}

// DefaultFilters returns the video group, one group per extension, then all files.
func DefaultFilters() []Filter {
	all := make([]string, 0, len(SupportedExtensions))
	filters := make([]Filter, 0, len(SupportedExtensions)+2)
	for _, ext := range SupportedExtensions {
		all = append(all, "*"+ext)
	}
	filters = append(filters, Filter{Name: l10n.T("Video files"), Patterns: all})
	for _, ext := range SupportedExtensions {
		filters = append(filters, Filter{
			Name:     strings.ToUpper(strings.TrimPrefix(ext, ".")),
			Patterns: []string{"*" + ext},
		})
	}
	return append(filters, Filter{Name: l10n.T("All files"), Patterns: []string{"*.*"}})
}

// Dialog presents an open-file dialog. A cancelled dialog returns "" and a nil error.
type Dialog interface {
	SelectFile(ctx context.Context, title string, filters []Filter) (string, error)
}

// Selector prompts on out and delegates to a Dialog.
type Selector struct {
	dialog  Dialog
	out     io.Writer
	logger  logger.Logger
	title   string
	filters []Filter
}

// New creates a Selector using the default title and filters.
func New(dialog Dialog, out io.Writer, log logger.Logger) *Selector {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = logger.NewLogger()
	}
	return &Selector{
		dialog:  dialog,
		out:     out,
		logger:  log,
		title:   l10n.T("Select a video"),
		filters: DefaultFilters(),
	}
}

// Select returns the chosen path, or "" when the user cancelled.
func (s *Selector) Select(ctx context.Context) (string, error) {
	fmt.Fprintln(s.out, l10n.T("Select a video file to compress..."))

	path, err := s.dialog.SelectFile(ctx, s.title, s.filters)
	if err != nil {
		s.logger.Error("File dialog failed", "selector", map[string]interface{}{
			"error": err.Error(),
		})
		return "", err
	}

	s.logger.Debug("File dialog closed", "selector", map[string]interface{}{
		"path":      path,
		"cancelled": path == "",
	})
	return path, nil
}

// NewDialog returns the Dialog for a backend name: "terminal" or, by default, "native".
func NewDialog(kind string) Dialog {
	if strings.EqualFold(kind, "terminal") {
		return TerminalDialog{}
	}
	return NativeDialog{}
}
