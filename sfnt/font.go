package sfnt

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2"

	"github.com/arloliu/cmapgos/endian"
	"github.com/arloliu/cmapgos/errs"
)

const (
	sfntVersionTrueType = 0x00010000
	sfntVersionCFF      = "OTTO"
	sfntVersionApple    = "true"

	tableDirectorySize = 12
	tableRecordSize    = 16
)

type tableRecord struct {
	offset uint32
	length uint32
}

// Font is a parsed SFNT font file.
//
// Parse only reads the table directory; tables are decoded lazily by the
// accessor that needs them. A Font never mutates its data and is safe for
// concurrent use.
type Font struct {
	data   []byte
	tables map[string]tableRecord
}

// Parse reads the table directory of an SFNT (TrueType or CFF-flavored OpenType) font.
//
// The data slice is retained and must not be modified afterwards.
//
// Returns:
//   - *Font: the parsed font
//   - error: ErrInvalidFontData if the header or the table directory is malformed
func Parse(data []byte) (*Font, error) {
	if len(data) < tableDirectorySize || uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: file size %d", errs.ErrInvalidFontData, len(data))
	}

	r := parse.NewBinaryReader(data)
	version := r.ReadString(4)
	engine := endian.GetBigEndianEngine()
	if version != sfntVersionCFF && version != sfntVersionApple &&
		engine.Uint32([]byte(version)) != sfntVersionTrueType {
		return nil, fmt.Errorf("%w: bad sfnt version %q", errs.ErrInvalidFontData, version)
	}

	numTables := r.ReadUint16()
	_ = r.ReadUint16() // searchRange
	_ = r.ReadUint16() // entrySelector
	_ = r.ReadUint16() // rangeShift

	if r.Len() < uint32(numTables)*tableRecordSize {
		return nil, fmt.Errorf("%w: table directory truncated", errs.ErrInvalidFontData)
	}

	size := uint32(len(data))
	tables := make(map[string]tableRecord, numTables)
	for range numTables {
		tag := r.ReadString(4)
		_ = r.ReadUint32() // checksum
		offset := r.ReadUint32()
		length := r.ReadUint32()

		if offset > size || size-offset < length {
			return nil, fmt.Errorf("%w: table %q exceeds file size", errs.ErrInvalidFontData, tag)
		}
		tables[tag] = tableRecord{offset: offset, length: length}
	}

	return &Font{
		data:   data,
		tables: tables,
	}, nil
}

// IsCFF reports whether the font carries a CFF table.
func (f *Font) IsCFF() bool {
	return f.HasTable("CFF ")
}

// Len returns the size of the font file in bytes.
func (f *Font) Len() int {
	return len(f.data)
}

// Bytes returns the raw font file.
func (f *Font) Bytes() []byte {
	return f.data
}

// HasTable reports whether the font contains the table with the given tag.
func (f *Font) HasTable(tag string) bool {
	_, ok := f.tables[tag]
	return ok
}

// Table returns the bytes of a table and its absolute offset in the file.
//
// Returns ErrMissingTable if the table is absent.
func (f *Font) Table(tag string) ([]byte, uint32, error) {
	rec, ok := f.tables[tag]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", errs.ErrMissingTable, tag)
	}

	return f.data[rec.offset : rec.offset+rec.length : rec.offset+rec.length], rec.offset, nil
}

// NumGlyphs returns the glyph count from the maxp table.
func (f *Font) NumGlyphs() (int, error) {
	b, _, err := f.Table("maxp")
	if err != nil {
		return 0, err
	}
	if len(b) < 6 {
		return 0, fmt.Errorf("%w: maxp table too short", errs.ErrInvalidFontData)
	}

	return int(endian.GetBigEndianEngine().Uint16(b[4:6])), nil
}

// Uint8At reads an unsigned byte at an absolute file offset.
func (f *Font) Uint8At(off int) (uint8, error) {
	if off < 0 || off >= len(f.data) {
		return 0, fmt.Errorf("%w: uint8 at %d (size %d)", errs.ErrOutOfBounds, off, len(f.data))
	}

	return f.data[off], nil
}

// Uint16At reads a big-endian uint16 at an absolute file offset.
func (f *Font) Uint16At(off int) (uint16, error) {
	if off < 0 || off > len(f.data)-2 {
		return 0, fmt.Errorf("%w: uint16 at %d (size %d)", errs.ErrOutOfBounds, off, len(f.data))
	}

	return endian.GetBigEndianEngine().Uint16(f.data[off : off+2]), nil
}
