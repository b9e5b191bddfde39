package app

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ru", l10n.LexiconMap{
		"No file selected. Exiting.":            "Файл не выбран. Программа завершена.",
		"Unsupported format: %s. Supported: %s": "Неподдерживаемый формат: %s. Поддерживаются: %s",
	})
}
