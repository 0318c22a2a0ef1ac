package yadbf

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/axgle/mahonia"
	"github.com/pkg/errors"
)

var (
	// A memo pointer is exactly ten digits or exactly ten spaces.
	memoPattern = regexp.MustCompile(`^(?:[0-9]{10}| {10})$`)
	// Relaxed form: leading spaces then digits, still ten bytes wide.
	leftPaddedMemoPattern = regexp.MustCompile(`^ {0,10}[0-9]{0,10}$`)
)

// decodeFieldValue decodes one raw field slice according to its descriptor.
// present is false when a logical field holds an intentionally absent value;
// such fields are omitted from the record rather than set to nil.
func decodeFieldValue(raw []byte, field *Field, textDec mahonia.Decoder, quirks Quirks) (value interface{}, present bool, err error) {
	text := textDec.ConvertString(string(raw))
	switch field.Type {
	case FieldTypeCharacter:
		return strings.TrimRight(text, " \x00"), true, nil
	case FieldTypeDate:
		return decodeDate(text), true, nil
	case FieldTypeLogical:
		return decodeLogical(text, quirks)
	case FieldTypeFloat, FieldTypeNumeric:
		return decodeNumber(text), true, nil
	case FieldTypeMemo:
		v, err := decodeMemo(text, quirks)
		return v, err == nil, err
	}
	// unreachable: descriptor validation only admits the six types above
	return nil, false, errors.Wrapf(ErrInvalidFieldType, "%q", byte(field.Type))
}

// decodeDate reads an 8-character YYYYMMDD value. The month is taken as
// written; the header's own last-update month is the one decoded zero-based.
func decodeDate(text string) Date {
	if len(text) < 8 {
		return Date{}
	}
	year, _ := strconv.Atoi(text[0:4])
	month, _ := strconv.Atoi(text[4:6])
	day, _ := strconv.Atoi(text[6:8])
	return Date{Year: year, Month: month, Day: day}
}

func decodeLogical(text string, quirks Quirks) (interface{}, bool, error) {
	switch text {
	case "Y", "y", "T", "t":
		return true, true, nil
	case "N", "n", "F", "f":
		return false, true, nil
	case "?", " ":
		return nil, false, nil
	}
	if quirks.AllowUnknownLogicalValues {
		return nil, false, nil
	}
	return nil, false, errors.Wrapf(ErrInvalidLogicalValue, "%q", text)
}

// decodeNumber parses a decimal number, yielding NaN on unparsable text.
func decodeNumber(text string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// decodeMemo validates a memo pointer and returns its raw text. The pointer
// is never resolved against a memo store.
func decodeMemo(text string, quirks Quirks) (string, error) {
	if memoPattern.MatchString(text) {
		return text, nil
	}
	if quirks.AllowLeftPaddedMemoValues && len(text) == 10 && leftPaddedMemoPattern.MatchString(text) {
		return text, nil
	}
	return "", errors.Wrapf(ErrInvalidMemoValue, "%q", text)
}
