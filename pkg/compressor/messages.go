package compressor

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ru", l10n.LexiconMap{
		"Loading video: %s": "Загружаем видео: %s",
		"Compressing video... New resolution: %dx%d, bitrate: %s": "Сжимаем видео... Новое разрешение: %dx%d, bitrate: %s",
	})
}
