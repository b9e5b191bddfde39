// Package app wires selection, validation, compression and reporting into
// the single pass vidcompress performs per invocation.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ideamans/go-l10n"

	"github.com/heyjunin/vidcompress/pkg/compressor"
	"github.com/heyjunin/vidcompress/pkg/logger"
	"github.com/heyjunin/vidcompress/pkg/report"
	"github.com/heyjunin/vidcompress/pkg/selector"
)

// PathSelector returns the chosen input path, or "" when nothing was chosen.
type PathSelector interface {
	Select(ctx context.Context) (string, error)
}

// Compressor encodes one input file.
type Compressor interface {
	Compress(ctx context.Context, inputPath string) (*compressor.Result, error)
}

// App runs one compression.
type App struct {
	selector   PathSelector
	compressor Compressor
	out        io.Writer
	format     report.Format
	logger     logger.Logger
}

// New creates an App. User-facing messages and the report go to out.
func New(sel PathSelector, comp Compressor, out io.Writer, format report.Format, log logger.Logger) *App {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = logger.NewLogger()
	}
	return &App{
		selector:   sel,
		compressor: comp,
		out:        out,
		format:     format,
		logger:     log,
	}
}

// Run compresses path, asking the selector for one when path is empty.
// A cancelled selection and an unsupported extension both return nil.
func (a *App) Run(ctx context.Context, path string) error {
	if path == "" {
		selected, err := a.selector.Select(ctx)
		if err != nil {
			return err
		}
		path = selected
	}

	if path == "" {
		fmt.Fprintln(a.out, l10n.T("No file selected. Exiting."))
		return nil
	}

	if !selector.IsSupported(path) {
		a.logger.Warn("Unsupported input extension", "app", map[string]interface{}{
			"path": path,
		})
		fmt.Fprintln(a.out, l10n.F("Unsupported format: %s. Supported: %s",
			path, strings.Join(selector.SupportedExtensions, ", ")))
		return nil
	}

	result, err := a.compressor.Compress(ctx, path)
	if err != nil {
		return err
	}

	return report.Write(a.out, a.format, result.Summary())
}
