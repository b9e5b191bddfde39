package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/spf13/cobra"

	"github.com/heyjunin/vidcompress/pkg/app"
	"github.com/heyjunin/vidcompress/pkg/compressor"
	"github.com/heyjunin/vidcompress/pkg/config"
	"github.com/heyjunin/vidcompress/pkg/errors"
	"github.com/heyjunin/vidcompress/pkg/logger"
	"github.com/heyjunin/vidcompress/pkg/media"
	"github.com/heyjunin/vidcompress/pkg/progress"
	"github.com/heyjunin/vidcompress/pkg/selector"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "vidcompress [file]",
		Short: "Shrink a video to a smaller resolution and bitrate",
		Long: `vidcompress re-encodes one video with H.264/AAC at a reduced width and bitrate,
writes <name>_compressed.mp4 next to it and prints how much space was saved.
Without a file argument it opens a file dialog.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCompress,
	}

	config.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCompress(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return err
	}

	logger.Init(cfg.LoggerOptions())
	log := logger.NewLogger()
	l10n.ForceLanguage(cfg.ResolveLanguage(os.Getenv))

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	go func() {
		select {
		case sig := <-signalChan:
			logger.Info("Received signal, shutting down", "main", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-ctx.Done():
		}
	}()

	mediaOptions := media.Options{FFmpegBinary: cfg.FFmpegBinary}
	if cfg.Progress {
		mediaOptions.Progress = progress.NewReporter(progress.WithDescription("Compressing..."))
	}
	lib := media.NewFFmpegWithLogger(mediaOptions, log)

	sel := selector.New(selector.NewDialog(cfg.Dialog), os.Stdout, log)
	comp := compressor.New(lib, compressor.Options{
		Width:   cfg.Width,
		Bitrate: cfg.Bitrate,
	}, os.Stdout, log)

	var path string
	if len(args) > 0 {
		path = args[0]
	}

	logger.Debug("Starting vidcompress", "main", map[string]interface{}{
		"path":    path,
		"width":   cfg.Width,
		"bitrate": cfg.Bitrate,
		"dialog":  cfg.Dialog,
	})

	err = app.New(sel, comp, os.Stdout, cfg.ReportFormat(), log).Run(ctx, path)
	if err != nil {
		fields := map[string]interface{}{"error": err.Error()}
		if structErr, ok := errors.As(err); ok {
			fields["type"] = structErr.Type
			fields["code"] = structErr.Code
		}
		logger.Error("Compression failed", "main", fields)
		return err
	}

	if path != "" {
		absPath, _ := filepath.Abs(compressor.OutputPath(path))
		logger.Debug("Run finished", "main", map[string]interface{}{
			"output_path": absPath,
		})
	}
	return nil
}
