package yadbf

import (
	"bytes"
	"encoding/binary"
)

// Test fixtures are built with the same layout overlays the decoder reads:
// little-endian header and descriptor writes, space-padded fixed-width
// records, a 0x1A terminator after the last record.

type testField struct {
	name    string
	typ     byte
	length  byte
	decimal byte
}

type testRecord struct {
	deleted bool
	values  []string
}

func buildHeader(version byte, numRecords uint32, fields []testField) []byte {
	recordLen := 1
	for _, f := range fields {
		recordLen += int(f.length)
	}
	layout := headerLayout{
		Version:         version,
		LastUpdateYear:  95,
		LastUpdateMonth: 7,
		LastUpdateDay:   26,
		NumRecords:      numRecords,
		HeaderLength:    uint16(fixedHeaderSize + fieldDescriptorSize*len(fields) + 1),
		RecordLength:    int16(recordLen),
	}
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.LittleEndian, &layout); err != nil {
		panic(err)
	}
	for _, f := range fields {
		descriptor := descriptorLayout{
			Type:    f.typ,
			Length:  f.length,
			Decimal: f.decimal,
		}
		copy(descriptor.Name[:], f.name)
		if err := binary.Write(buf, binary.LittleEndian, &descriptor); err != nil {
			panic(err)
		}
	}
	buf.WriteByte(arrayTerminator)
	return buf.Bytes()
}

// buildRecord fills a space-padded fixed-width row, one value per field,
// truncating values longer than the field.
func buildRecord(fields []testField, deleted bool, values ...string) []byte {
	recordLen := 1
	for _, f := range fields {
		recordLen += int(f.length)
	}
	buf := bytes.Repeat([]byte{space}, recordLen)
	if deleted {
		buf[0] = deletedFlag
	}
	pos := 1
	for i, f := range fields {
		next := pos + int(f.length)
		if i < len(values) {
			copy(buf[pos:next], values[i])
		}
		pos = next
	}
	return buf
}

func buildTable(version byte, fields []testField, records []testRecord) []byte {
	out := buildHeader(version, uint32(len(records)), fields)
	for _, r := range records {
		out = append(out, buildRecord(fields, r.deleted, r.values...)...)
	}
	return append(out, eofMarker)
}

// decodeAll pushes data in chunkSize pieces, draining outcomes between
// pushes, and closes the decoder if the stream did not complete on its own.
func decodeAll(d *Decoder, data []byte, chunkSize int) (*Header, []*Record, error) {
	var header *Header
	var records []*Record
	for start := 0; start < len(data); start += chunkSize {
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		d.Push(data[start:end])
	drain:
		for {
			out := d.Next()
			switch out.Kind {
			case OutcomeNeedMoreInput:
				break drain
			case OutcomeHeader:
				header = out.Header
			case OutcomeRecord:
				records = append(records, out.Record)
			case OutcomeDone:
				return header, records, nil
			case OutcomeFailed:
				return header, records, out.Err
			}
		}
	}
	return header, records, d.Close()
}
