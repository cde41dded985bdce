package service

import "errors"

// Input errors surfaced verbatim to the caller. All of them mean the upload
// must be corrected and re-submitted; none are retryable.
var (
	ErrInvalidPassword     = errors.New("pdf requires a valid password")
	ErrFormatMismatch      = errors.New("document does not match the declared statement format")
	ErrCorruptDocument     = errors.New("pdf structure could not be parsed")
	ErrUnsupportedFileType = errors.New("unsupported file type, expected a pdf")
)
