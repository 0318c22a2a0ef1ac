package yadbf

import "github.com/pkg/errors"

// decodeRecord slices one fixed-width record: byte 0 is the deletion flag,
// followed by each field's value in descriptor order. Field parser overrides
// are consulted before the built-in decoders and receive the raw bytes. On
// any failure no partial record is produced.
func (d *Decoder) decodeRecord(raw []byte) (*Record, error) {
	var deleted bool
	switch raw[0] {
	case space:
		deleted = false
	case deletedFlag:
		deleted = true
	default:
		return nil, errors.Wrapf(ErrInvalidDeletionFlag, "record %d: 0x%02X", d.consumed, raw[0])
	}

	fields := make(map[string]interface{}, len(d.header.Fields))
	pos := 1
	for i := range d.header.Fields {
		field := &d.header.Fields[i]
		slice := raw[pos : pos+int(field.Length)]
		pos += int(field.Length)

		if parse, ok := d.opts.FieldParsers[field.Name]; ok {
			value, err := parse(slice, field)
			if err != nil {
				return nil, errors.Wrapf(err, "record %d: field %q", d.consumed, field.Name)
			}
			fields[field.Name] = value
			continue
		}

		value, present, err := decodeFieldValue(slice, field, d.textDec, d.opts.Quirks)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d: field %q", d.consumed, field.Name)
		}
		if present {
			fields[field.Name] = value
		}
	}

	return &Record{Deleted: deleted, Fields: fields}, nil
}
