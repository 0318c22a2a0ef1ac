package yadbf

import (
	"github.com/axgle/mahonia"
	"github.com/pkg/errors"
)

// SizeUnbounded disables the pagination size limit: every eligible record
// from Offset onward is emitted.
const SizeUnbounded = -1

// DefaultEncoding is the text encoding used when Options.Encoding is empty.
const DefaultEncoding = "utf-8"

// FieldParser overrides the built-in decoder for a single named field. It
// receives the raw field bytes exactly as stored, bypassing text decoding
// entirely, and its return value is placed in the record as-is.
type FieldParser func(raw []byte, field *Field) (interface{}, error)

// Quirks relaxes individual validations for files produced by nonconforming
// writers. All quirks default to off.
type Quirks struct {
	// AllowUnknownLogicalValues treats unrecognized logical field bytes as
	// absent instead of failing the stream.
	AllowUnknownLogicalValues bool
	// AllowLeftPaddedMemoValues accepts memo pointers written as leading
	// spaces followed by digits, still exactly ten bytes wide.
	AllowLeftPaddedMemoValues bool
	// AllowUnknownEncryptionFlag accepts encryption flag bytes other than
	// 0 and 1. A value of 1 still fails: the file really is encrypted.
	AllowUnknownEncryptionFlag bool
	// AllowFieldLength255 accepts field descriptors declaring the maximum
	// raw length of 255 bytes.
	AllowFieldLength255 bool
}

// Options configures a Decoder. The zero value of Offset and IncludeDeleted
// are the defaults; Size must be set explicitly (use DefaultOptions or
// SizeUnbounded), since a literal 0 means "emit no records".
type Options struct {
	// IncludeDeleted emits soft-deleted records and counts them toward the
	// pagination window.
	IncludeDeleted bool
	// Offset is the zero-based eligibility index of the first emitted
	// record.
	Offset int
	// Size is the maximum number of records emitted, or SizeUnbounded.
	Size int
	// Encoding names the character encoding of field names and text
	// values. Defaults to DefaultEncoding when empty.
	Encoding string
	// FieldParsers maps field names to override decoders.
	FieldParsers map[string]FieldParser
	Quirks       Quirks
}

// DefaultOptions returns the documented defaults: skip deleted records, no
// offset, unbounded size, UTF-8 text.
func DefaultOptions() Options {
	return Options{
		Offset:   0,
		Size:     SizeUnbounded,
		Encoding: DefaultEncoding,
	}
}

// validate normalizes opts and resolves the text decoder. Every violation
// is reported as ErrInvalidOption with the offending option named.
func (o *Options) validate() (mahonia.Decoder, error) {
	if o.Offset < 0 {
		return nil, errors.Wrapf(ErrInvalidOption, "offset %d", o.Offset)
	}
	if o.Size < 0 && o.Size != SizeUnbounded {
		return nil, errors.Wrapf(ErrInvalidOption, "size %d", o.Size)
	}
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	dec := mahonia.NewDecoder(o.Encoding)
	if dec == nil {
		return nil, errors.Wrapf(ErrInvalidOption, "unknown encoding %q", o.Encoding)
	}
	for name, p := range o.FieldParsers {
		if p == nil {
			return nil, errors.Wrapf(ErrInvalidOption, "nil field parser for %q", name)
		}
	}
	return dec, nil
}
