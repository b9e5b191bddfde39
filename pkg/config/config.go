// Package config resolves vidcompress settings from defaults, an optional
// config file, VIDCOMPRESS_* environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/heyjunin/vidcompress/pkg/errors"
	"github.com/heyjunin/vidcompress/pkg/logger"
	"github.com/heyjunin/vidcompress/pkg/report"
)

// EnvPrefix is prepended to every environment override, e.g. VIDCOMPRESS_LOG_LEVEL.
const EnvPrefix = "VIDCOMPRESS"

// Dialog backends.
const (
	DialogNative   = "native"
	DialogTerminal = "terminal"
)

// Keys double as flag names.
const (
	KeyWidth     = "width"
	KeyBitrate   = "bitrate"
	KeyFFmpeg    = "ffmpeg"
	KeyDialog    = "dialog"
	KeyReport    = "report"
	KeyProgress  = "progress"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyLanguage  = "lang"
)

// Config holds the resolved settings.
type Config struct {
	Width        int    `mapstructure:"width"`
	Bitrate      string `mapstructure:"bitrate"`
	FFmpegBinary string `mapstructure:"ffmpeg"`
	Dialog       string `mapstructure:"dialog"`
	Report       string `mapstructure:"report"`
	Progress     bool   `mapstructure:"progress"`
	LogLevel     string `mapstructure:"log-level"`
	LogFormat    string `mapstructure:"log-format"`
	Language     string `mapstructure:"lang"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Width:        1280,
		Bitrate:      "500k",
		FFmpegBinary: "ffmpeg",
		Dialog:       DialogNative,
		Report:       string(report.TextFormat),
		Progress:     false,
		LogLevel:     string(logger.InfoLevel),
		LogFormat:    string(logger.FormatAuto),
		Language:     LanguageAuto,
	}
}

// RegisterFlags defines every setting as a flag on fs, using the defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int(KeyWidth, d.Width, "Target width in pixels")
	fs.String(KeyBitrate, d.Bitrate, "Target video bitrate (ffmpeg notation, e.g. 500k)")
	fs.String(KeyFFmpeg, d.FFmpegBinary, "Path to the ffmpeg binary")
	fs.String(KeyDialog, d.Dialog, "File dialog: native or terminal")
	fs.String(KeyReport, d.Report, "Summary format: text, json or yaml")
	fs.Bool(KeyProgress, d.Progress, "Show an encoding progress bar")
	fs.String(KeyLogLevel, d.LogLevel, "Log level: debug, info, warn, error or fatal")
	fs.String(KeyLogFormat, d.LogFormat, "Log format: auto, json or console")
	fs.String(KeyLanguage, d.Language, "Message language: auto, en or ru")
}

// Load resolves the configuration. Precedence, lowest first: defaults,
// the file (when non-empty), environment, then flags that were set explicitly.
// flags may be nil.
func Load(flags *pflag.FlagSet, file string) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyWidth, d.Width)
	v.SetDefault(KeyBitrate, d.Bitrate)
	v.SetDefault(KeyFFmpeg, d.FFmpegBinary)
	v.SetDefault(KeyDialog, d.Dialog)
	v.SetDefault(KeyReport, d.Report)
	v.SetDefault(KeyProgress, d.Progress)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyLanguage, d.Language)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ConfigError,
				fmt.Sprintf("%s: %s", errors.GetErrorMessage(errors.ErrConfigRead), file), errors.ErrConfigRead)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errors.FromCode(err, errors.ConfigError, errors.ErrConfigRead)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.FromCode(err, errors.ConfigError, errors.ErrConfigDecode)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings. Width and bitrate are left to the media library.
func (c *Config) Validate() error {
	invalid := func(key, value string) error {
		return errors.New(errors.ConfigError, errors.GetErrorMessage(errors.ErrConfigInvalid),
			fmt.Sprintf("%s=%q", key, value), errors.ErrConfigInvalid)
	}

	switch strings.ToLower(c.Dialog) {
	case DialogNative, DialogTerminal:
	default:
		return invalid(KeyDialog, c.Dialog)
	}
	if _, err := report.ParseFormat(c.Report); err != nil {
		return invalid(KeyReport, c.Report)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return invalid(KeyLogLevel, c.LogLevel)
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return invalid(KeyLogFormat, c.LogFormat)
	}
	switch strings.ToLower(c.Language) {
	case LanguageAuto, LanguageEnglish, LanguageRussian:
	default:
		return invalid(KeyLanguage, c.Language)
	}
	return nil
}

// ReportFormat returns the parsed report format.
func (c *Config) ReportFormat() report.Format {
	f, _ := report.ParseFormat(c.Report)
	return f
}

// LoggerOptions returns the parsed logger settings.
func (c *Config) LoggerOptions() logger.Options {
	level, _ := logger.ParseLevel(c.LogLevel)
	format, _ := logger.ParseFormat(c.LogFormat)
	return logger.Options{Level: level, Format: format}
}
