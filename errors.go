package yadbf

import "github.com/pkg/errors"

// Structural errors, all detected before the header is emitted.
var (
	ErrUnsupportedVersion     = errors.New("unsupported version byte")
	ErrInvalidHeaderLength    = errors.New("invalid header byte count")
	ErrInvalidArrayTerminator = errors.New("invalid field descriptor array terminator")
	ErrEncrypted              = errors.New("file is encrypted and cannot be processed")
	ErrInvalidEncryptionFlag  = errors.New("invalid encryption flag")
	ErrInvalidMDXFlag         = errors.New("invalid production MDX file flag")
	ErrInvalidFieldLength     = errors.New("invalid field length")
	ErrInvalidFieldType       = errors.New("invalid field type")
	ErrInvalidFieldTypeLength = errors.New("invalid length for field type")
	ErrInvalidFieldIndexFlag  = errors.New("invalid field index flag")
	ErrDuplicateFieldName     = errors.New("duplicate field name")
)

// Record-level errors, detected while decoding a specific record.
var (
	ErrInvalidDeletionFlag = errors.New("invalid deletion flag")
	ErrInvalidLogicalValue = errors.New("invalid logical value")
	ErrInvalidMemoValue    = errors.New("invalid memo file pointer value")
)

// Completion errors.
var (
	// ErrMissingEOFMarker carries the historical message verbatim.
	ErrMissingEOFMarker = errors.New("Last byte of file is not end-of-file marker")
	ErrTruncated        = errors.New("stream ended before decoding completed")
)

// ErrInvalidOption reports a bad configuration value. It is returned from
// NewDecoder, wrapped with the offending option name, before any byte is
// processed.
var ErrInvalidOption = errors.New("invalid option value")
