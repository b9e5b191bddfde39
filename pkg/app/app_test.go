package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/ideamans/go-l10n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyjunin/vidcompress/pkg/compressor"
	"github.com/heyjunin/vidcompress/pkg/errors"
	"github.com/heyjunin/vidcompress/pkg/logger"
	"github.com/heyjunin/vidcompress/pkg/report"
)

type stubSelector struct {
	path  string
	err   error
	calls int
}

func (s *stubSelector) Select(context.Context) (string, error) {
	s.calls++
	return s.path, s.err
}

type mockCompressor struct {
	result *compressor.Result
	err    error
	inputs []string
}

func (m *mockCompressor) Compress(_ context.Context, inputPath string) (*compressor.Result, error) {
	m.inputs = append(m.inputs, inputPath)
	return m.result, m.err
}

func successResult(input string) *compressor.Result {
	return &compressor.Result{
		InputPath:  input,
		OutputPath: compressor.OutputPath(input),
		Width:      1280,
		Height:     720,
		Bitrate:    "500k",
		Stats:      report.NewStats(4*1024*1024, 1024*1024),
	}
}

func TestRunNoFileSelected(t *testing.T) {
	sel := &stubSelector{}
	comp := &mockCompressor{}
	var out bytes.Buffer

	err := New(sel, comp, &out, report.TextFormat, logger.Discard{}).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, sel.calls)
	assert.Empty(t, comp.inputs, "compressor must not be called")
	assert.Contains(t, out.String(), l10n.T("No file selected. Exiting."))
}

func TestRunUnsupportedExtension(t *testing.T) {
	comp := &mockCompressor{}
	var out bytes.Buffer

	err := New(&stubSelector{path: "/docs/notes.txt"}, comp, &out, report.TextFormat, logger.Discard{}).
		Run(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, comp.inputs)
	assert.Contains(t, out.String(), "/docs/notes.txt")
	assert.Contains(t, out.String(), ".mp4, .mov, .avi, .mkv, .wmv")
}

func TestRunMessagesInRussian(t *testing.T) {
	l10n.ForceLanguage("ru")
	defer l10n.ResetLanguage()

	var out bytes.Buffer
	err := New(&stubSelector{}, &mockCompressor{}, &out, report.TextFormat, logger.Discard{}).
		Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Файл не выбран. Программа завершена.\n", out.String())

	out.Reset()
	err = New(&stubSelector{}, &mockCompressor{}, &out, report.TextFormat, logger.Discard{}).
		Run(context.Background(), "/docs/notes.txt")
	require.NoError(t, err)
	assert.Equal(t,
		"Неподдерживаемый формат: /docs/notes.txt. Поддерживаются: .mp4, .mov, .avi, .mkv, .wmv\n",
		out.String())
}

func TestRunSuccess(t *testing.T) {
	sel := &stubSelector{path: "/videos/movie.MOV"}
	comp := &mockCompressor{result: successResult("/videos/movie.MOV")}
	var out bytes.Buffer

	err := New(sel, comp, &out, report.TextFormat, logger.Discard{}).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"/videos/movie.MOV"}, comp.inputs)
	assert.Contains(t, out.String(), "4.00 MB")
	assert.Contains(t, out.String(), "1.00 MB")
	assert.Contains(t, out.String(), "75.0%")
}

func TestRunWithPathSkipsSelector(t *testing.T) {
	sel := &stubSelector{path: "/ignored.mp4"}
	comp := &mockCompressor{result: successResult("/videos/clip.mkv")}

	err := New(sel, comp, &bytes.Buffer{}, report.TextFormat, logger.Discard{}).
		Run(context.Background(), "/videos/clip.mkv")
	require.NoError(t, err)

	assert.Zero(t, sel.calls)
	assert.Equal(t, []string{"/videos/clip.mkv"}, comp.inputs)
}

func TestRunJSONReport(t *testing.T) {
	comp := &mockCompressor{result: successResult("/videos/clip.mp4")}
	var out bytes.Buffer

	err := New(&stubSelector{}, comp, &out, report.JSONFormat, logger.Discard{}).
		Run(context.Background(), "/videos/clip.mp4")
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
	assert.Equal(t, "/videos/clip_compressed.mp4", parsed["output"])
}

func TestRunCompressorError(t *testing.T) {
	encodeErr := errors.New(errors.EncodeError, "encoding failed", "exit status 1", errors.ErrEncodeFailed)
	comp := &mockCompressor{err: encodeErr}
	var out bytes.Buffer

	err := New(&stubSelector{}, comp, &out, report.TextFormat, logger.Discard{}).
		Run(context.Background(), "/videos/clip.mp4")
	require.Error(t, err)

	structErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrEncodeFailed, structErr.Code)
	assert.NotContains(t, out.String(), "MB")
}

func TestRunSelectorError(t *testing.T) {
	dialogErr := errors.New(errors.DialogError, "dialog failed", "", errors.ErrDialogFailed)
	comp := &mockCompressor{}

	err := New(&stubSelector{err: dialogErr}, comp, &bytes.Buffer{}, report.TextFormat, logger.Discard{}).
		Run(context.Background(), "")
	require.Error(t, err)
	assert.Empty(t, comp.inputs)
}
