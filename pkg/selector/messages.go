package selector

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ru", l10n.LexiconMap{
		"Select a video":                     "Выберите видео",
		"Select a video file to compress...": "Выберите видеофайл для сжатия...",
		"Video files":                        "Видео файлы",
		"All files":                          "Все файлы",
		"Select a video and press enter":     "Выберите видео и нажмите enter",
	})
}
