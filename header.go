package yadbf

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/axgle/mahonia"
	"github.com/pkg/errors"
)

const (
	fixedHeaderSize     = 32
	fieldDescriptorSize = 32

	// arrayTerminator closes the field descriptor array.
	arrayTerminator = 0x0D
)

// supportedVersions is the set of version bytes this decoder accepts.
var supportedVersions = map[byte]bool{
	0x02: true,
	0x03: true,
	0x30: true,
	0x32: true,
	0x83: true,
	0x8B: true,
	0x8E: true,
	0xF5: true,
}

// parseHeader validates and decodes a complete header region: the 32-byte
// preamble, the field descriptor array, and the terminator byte. It is a
// pure function of its input; raw must hold at least the declared header
// byte count. The first violated invariant aborts with its distinct error.
func parseHeader(raw []byte, textDec mahonia.Decoder, quirks Quirks) (*Header, error) {
	var layout headerLayout
	if err := binary.Read(bytes.NewReader(raw[:fixedHeaderSize]), binary.LittleEndian, &layout); err != nil {
		return nil, errors.Wrap(err, "reading fixed header")
	}

	if !supportedVersions[layout.Version] {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "0x%02X", layout.Version)
	}
	headerLen := int(layout.HeaderLength)
	if headerLen%fieldDescriptorSize != 1 || headerLen < fixedHeaderSize+1 {
		return nil, errors.Wrapf(ErrInvalidHeaderLength, "%d", headerLen)
	}
	if raw[headerLen-1] != arrayTerminator {
		return nil, errors.Wrapf(ErrInvalidArrayTerminator, "0x%02X", raw[headerLen-1])
	}
	switch layout.EncryptionFlag {
	case 0x00:
	case 0x01:
		return nil, ErrEncrypted
	default:
		if !quirks.AllowUnknownEncryptionFlag {
			return nil, errors.Wrapf(ErrInvalidEncryptionFlag, "0x%02X", layout.EncryptionFlag)
		}
	}
	if layout.MDXFlag != 0x00 && layout.MDXFlag != 0x01 {
		return nil, errors.Wrapf(ErrInvalidMDXFlag, "0x%02X", layout.MDXFlag)
	}

	fieldCount := (headerLen - fixedHeaderSize - 1) / fieldDescriptorSize
	fields := make([]Field, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		offset := fixedHeaderSize + i*fieldDescriptorSize
		field, err := parseFieldDescriptor(raw[offset:offset+fieldDescriptorSize], textDec, quirks)
		if err != nil {
			return nil, err
		}
		fields = append(fields, *field)
	}

	seen := make(map[string]bool, len(fields))
	recordLen := 1 // deletion flag
	for _, f := range fields {
		if seen[f.Name] {
			return nil, errors.Wrapf(ErrDuplicateFieldName, "%q", f.Name)
		}
		seen[f.Name] = true
		recordLen += int(f.Length)
	}
	if int(layout.RecordLength) < recordLen {
		return nil, errors.Wrapf(ErrInvalidHeaderLength, "record length %d shorter than field layout %d", layout.RecordLength, recordLen)
	}

	return &Header{
		Version: layout.Version,
		LastUpdated: Date{
			Year:  1900 + int(layout.LastUpdateYear),
			Month: int(layout.LastUpdateMonth) - 1,
			Day:   int(layout.LastUpdateDay),
		},
		NumberOfRecords:       layout.NumRecords,
		NumberOfHeaderBytes:   layout.HeaderLength,
		NumberOfBytesInRecord: layout.RecordLength,
		HasProductionMDXFile:  layout.MDXFlag == 0x01,
		LanguageDriverID:      layout.LanguageDriverID,
		EncryptionFlag:        layout.EncryptionFlag,
		Fields:                fields,
	}, nil
}

func parseFieldDescriptor(raw []byte, textDec mahonia.Decoder, quirks Quirks) (*Field, error) {
	var layout descriptorLayout
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &layout); err != nil {
		return nil, errors.Wrap(err, "reading field descriptor")
	}

	name := trimFieldName(layout.Name, textDec)
	if layout.Length == 0xFF && !quirks.AllowFieldLength255 {
		return nil, errors.Wrapf(ErrInvalidFieldLength, "field %q: length %d", name, layout.Length)
	}
	fieldType := FieldType(layout.Type)
	if !fieldType.valid() {
		return nil, errors.Wrapf(ErrInvalidFieldType, "field %q: type %q", name, layout.Type)
	}
	switch {
	case fieldType == FieldTypeDate && layout.Length != 8,
		fieldType == FieldTypeLogical && layout.Length != 1,
		fieldType == FieldTypeMemo && layout.Length != 10:
		return nil, errors.Wrapf(ErrInvalidFieldTypeLength, "field %q: type %c length %d", name, fieldType, layout.Length)
	}
	if layout.IndexFlag != 0x00 && layout.IndexFlag != 0x01 {
		return nil, errors.Wrapf(ErrInvalidFieldIndexFlag, "field %q: 0x%02X", name, layout.IndexFlag)
	}

	return &Field{
		Name:             name,
		Type:             fieldType,
		Length:           layout.Length,
		DecimalCount:     layout.Decimal,
		WorkAreaID:       layout.WorkAreaID,
		IndexedInMDXFile: layout.IndexFlag == 0x01,
	}, nil
}

// trimFieldName cuts the NUL padding off a stored field name and decodes it
// with the configured encoding.
func trimFieldName(name [10]byte, textDec mahonia.Decoder) string {
	end := bytes.IndexByte(name[:], nul)
	if end == -1 {
		end = len(name)
	}
	return strings.TrimSpace(textDec.ConvertString(string(name[:end])))
}
