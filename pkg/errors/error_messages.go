package errors

import "github.com/ideamans/go-l10n"

// ErrorMessages holds the standard message for each error code.
// Messages are lexicon keys; see the ru lexicon registered below.
var ErrorMessages = map[int]string{
	ErrProbeFailed:      "Failed to read the video. The file may be corrupt or use an unsupported codec.",
	ErrProbeNotFound:    "ffprobe was not found. Make sure FFmpeg is installed.",
	ErrNoVideoStream:    "No video stream found in the file.",
	ErrInvalidDimension: "Could not determine the video resolution.",
	ErrProbeParse:       "Failed to parse ffprobe output.",
	ErrProbeCancelled:   "Reading the video was interrupted.",

	ErrEncoderNotFound:   "The encoder binary was not found. Make sure FFmpeg is installed.",
	ErrEncodeFailed:      "Encoding failed.",
	ErrOutputNotWritable: "The output path is not writable. Check permissions and free disk space.",
	ErrClipReleased:      "The clip has already been released.",
	ErrEncoderStart:      "Failed to start the encoder.",
	ErrEncodeCancelled:   "Encoding was interrupted.",

	ErrDialogUnavailable: "The file dialog is unavailable on this system.",
	ErrDialogFailed:      "The file dialog failed.",

	ErrStatFailed:   "Failed to read the file size.",
	ErrFileNotFound: "File not found.",

	ErrConfigRead:    "Failed to read the configuration file.",
	ErrConfigDecode:  "Failed to decode the configuration.",
	ErrConfigInvalid: "Invalid configuration value.",

	ErrInvalidExtraParams: "Encoder parameters must be flag/value pairs.",
	ErrInvalidWidth:       "The target width must be a positive number of pixels.",
}

func init() {
	l10n.Register("ru", l10n.LexiconMap{
		"Failed to read the video. The file may be corrupt or use an unsupported codec.": "Не удалось прочитать видео. Файл повреждён или использует неподдерживаемый кодек.",
		"ffprobe was not found. Make sure FFmpeg is installed.":                          "ffprobe не найден. Убедитесь, что FFmpeg установлен.",
		"No video stream found in the file.":                                             "В файле нет видеопотока.",
		"Could not determine the video resolution.":                                      "Не удалось определить разрешение видео.",
		"Failed to parse ffprobe output.":                                                "Не удалось разобрать вывод ffprobe.",
		"Reading the video was interrupted.":                                             "Чтение видео прервано.",
		"The encoder binary was not found. Make sure FFmpeg is installed.":               "Кодировщик не найден. Убедитесь, что FFmpeg установлен.",
		"Encoding failed.":                                                               "Ошибка кодирования.",
		"The output path is not writable. Check permissions and free disk space.":        "Нет доступа на запись. Проверьте права и свободное место на диске.",
		"The clip has already been released.":                                            "Клип уже освобождён.",
		"Failed to start the encoder.":                                                   "Не удалось запустить кодировщик.",
		"Encoding was interrupted.":                                                      "Кодирование прервано.",
		"The file dialog is unavailable on this system.":                                 "Диалог выбора файла недоступен в этой системе.",
		"The file dialog failed.":                                                        "Ошибка диалога выбора файла.",
		"Failed to read the file size.":                                                  "Не удалось получить размер файла.",
		"File not found.":                                                                "Файл не найден.",
		"Failed to read the configuration file.":                                         "Не удалось прочитать файл конфигурации.",
		"Failed to decode the configuration.":                                            "Не удалось разобрать конфигурацию.",
		"Invalid configuration value.":                                                   "Недопустимое значение конфигурации.",
		"Encoder parameters must be flag/value pairs.":                                   "Параметры кодировщика должны быть парами флаг/значение.",
		"The target width must be a positive number of pixels.":                                             "Целевая ширина должна быть положительным числом пикселей.",
		"Unknown error.":                                                                 "Неизвестная ошибка.",
	})
}

// GetErrorMessage returns the localized standard message for an error code
func GetErrorMessage(code int) string {
	if msg, ok := ErrorMessages[code]; ok {
		return l10n.T(msg)
	}
	return l10n.T("Unknown error.")
}
