package selector

import (
	"context"
	stderrors "errors"
	"os/exec"

	"github.com/ncruces/zenity"

	"github.com/heyjunin/vidcompress/pkg/errors"
)

// NativeDialog uses the operating system's file dialog. The GUI helper lives
// only for the duration of one SelectFile call.
type NativeDialog struct{}

// SelectFile implements Dialog.
func (NativeDialog) SelectFile(ctx context.Context, title string, filters []Filter) (string, error) {
	path, err := zenity.SelectFile(
		zenity.Context(ctx),
		zenity.Title(title),
		zenityFilters(filters),
	)
	if stderrors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if stderrors.Is(err, exec.ErrNotFound) {
			return "", errors.FromCode(err, errors.DialogError, errors.ErrDialogUnavailable)
		}
		return "", errors.FromCode(err, errors.DialogError, errors.ErrDialogFailed)
	}
	return path, nil
}

func zenityFilters(filters []Filter) zenity.FileFilters {
	out := make(zenity.FileFilters, 0, len(filters))
	for _, f := range filters {
		out = append(out, zenity.FileFilter{Name: f.Name, Patterns: f.Patterns})
	}
	return out
}
