package errors

// Error codes grouped by component
const (
	// DecodeError (1000-1099)
	ErrProbeFailed      = 1000
	ErrProbeNotFound    = 1001
	ErrNoVideoStream    = 1002
	ErrInvalidDimension = 1003
	ErrProbeParse       = 1004
	ErrProbeCancelled   = 1005

	// EncodeError (1100-1199)
	ErrEncoderNotFound   = 1100
	ErrEncodeFailed      = 1101
	ErrOutputNotWritable = 1102
	ErrClipReleased      = 1103
	ErrEncoderStart      = 1104
	ErrEncodeCancelled   = 1105

	// DialogError (1200-1299)
	ErrDialogUnavailable = 1200
	ErrDialogFailed      = 1201

	// SystemError (1300-1399)
	ErrStatFailed   = 1300
	ErrFileNotFound = 1301

	// ConfigError (1400-1499)
	ErrConfigRead    = 1400
	ErrConfigDecode  = 1401
	ErrConfigInvalid = 1402

	// ValidationError (1500-1599)
	ErrInvalidExtraParams = 1500
	ErrInvalidWidth       = 1501
)
