package yadbf

// headerLayout is the fixed 32-byte preamble of a DBF file, read with a
// little-endian binary overlay.
type headerLayout struct {
	Version          byte
	LastUpdateYear   byte
	LastUpdateMonth  byte
	LastUpdateDay    byte
	NumRecords       uint32
	HeaderLength     uint16
	RecordLength     int16
	Reserved         [2]byte
	IncompleteTxFlag byte
	EncryptionFlag   byte
	Reserved2        [12]byte
	MDXFlag          byte
	LanguageDriverID byte
	Reserved3        [2]byte
}

// descriptorLayout is one 32-byte field descriptor as stored on disk.
type descriptorLayout struct {
	Name       [10]byte
	Reserved1  byte
	Type       byte
	Reserved2  [4]byte
	Length     byte
	Decimal    byte
	Reserved3  [2]byte
	WorkAreaID uint16
	Reserved4  [9]byte
	IndexFlag  byte
}

// FieldType is the closed set of supported field type tags.
type FieldType byte

const (
	FieldTypeCharacter FieldType = 'C'
	FieldTypeDate      FieldType = 'D'
	FieldTypeFloat     FieldType = 'F'
	FieldTypeLogical   FieldType = 'L'
	FieldTypeMemo      FieldType = 'M'
	FieldTypeNumeric   FieldType = 'N'
)

func (t FieldType) valid() bool {
	switch t {
	case FieldTypeCharacter, FieldTypeDate, FieldTypeFloat,
		FieldTypeLogical, FieldTypeMemo, FieldTypeNumeric:
		return true
	}
	return false
}

// Field describes one column of the table: its decoded name, type tag,
// on-disk byte length, and index metadata.
type Field struct {
	Name             string
	Type             FieldType
	Length           byte
	DecimalCount     byte
	WorkAreaID       uint16
	IndexedInMDXFile bool
}

// Date is a plain calendar value. No normalization is applied: record date
// fields carry the month exactly as written in the file, while the header's
// last-update month is decoded zero-based.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Header is the parsed file preamble. It is immutable once emitted and is
// shared read-only with record decoding for the remainder of the stream.
type Header struct {
	Version               byte
	LastUpdated           Date
	NumberOfRecords       uint32
	NumberOfHeaderBytes   uint16
	NumberOfBytesInRecord int16
	HasProductionMDXFile  bool
	LanguageDriverID      byte
	EncryptionFlag        byte
	Fields                []Field
}

// Record is one decoded row. Fields maps field names to decoded values:
// string for character and memo fields, Date for date fields, bool for
// logical fields (absent values are omitted from the map entirely), and
// float64 for float and numeric fields.
type Record struct {
	Deleted bool
	Fields  map[string]interface{}
}
