package report

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ru", l10n.LexiconMap{
		"✅ Done!":                  "✅ Готово!",
		"Original size: %.2f MB":   "Исходный размер: %.2f MB",
		"Compressed size: %.2f MB": "Сжатый размер: %.2f MB",
		"Reduction: %.1f%%":        "Сокращение: %.1f%%",
	})
}
