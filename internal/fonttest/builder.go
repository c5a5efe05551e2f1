// Package fonttest builds small synthetic SFNT fonts for tests.
//
// Only the tables read by the cmapgos font source are emitted: maxp, cmap
// (format 4 and format 12 subtables) and a minimal CFF table holding a Name
// INDEX, a Top DICT INDEX with the charset operator and the charset itself.
package fonttest

import (
	"slices"

	"github.com/arloliu/cmapgos/endian"
)

// Group is a cmap format 12 group.
type Group struct {
	Start, End, GID uint32
}

// Segment is a cmap format 4 segment.
type Segment struct {
	Start, End    uint16
	IDDelta       int16
	IDRangeOffset uint16
}

// Range is a CFF charset range.
type Range struct {
	First, NLeft uint16
}

// Subtable identifies a cmap encoding record.
type Subtable struct {
	PlatformID, EncodingID uint16
}

// Builder accumulates the font description. The zero value is not usable; use New.
type Builder struct {
	numGlyphs uint16

	cmap12    []Group
	cmap12ID  Subtable
	hasCMap12 bool

	cmap4    []Segment
	cmap4ID  Subtable
	hasCMap4 bool

	hasCFF        bool
	fontCount     int
	charsetFormat uint8
	ranges        []Range
	predefined    int
}

// New returns a builder for a font with numGlyphs glyphs.
func New(numGlyphs uint16) *Builder {
	return &Builder{
		numGlyphs:  numGlyphs,
		cmap12ID:   Subtable{3, 10},
		cmap4ID:    Subtable{3, 1},
		fontCount:  1,
		predefined: -1,
	}
}

// WithCMap12 adds a (3, 10) format 12 subtable.
func (b *Builder) WithCMap12(groups ...Group) *Builder {
	b.cmap12 = groups
	b.hasCMap12 = true

	return b
}

// WithCMap12At adds a format 12 subtable under a custom encoding record.
func (b *Builder) WithCMap12At(id Subtable, groups ...Group) *Builder {
	b.cmap12ID = id
	return b.WithCMap12(groups...)
}

// WithCMap4 adds a (3, 1) format 4 subtable. The 0xFFFF terminator segment is appended.
func (b *Builder) WithCMap4(segments ...Segment) *Builder {
	b.cmap4 = append(slices.Clone(segments), Segment{Start: 0xFFFF, End: 0xFFFF, IDDelta: 1})
	b.hasCMap4 = true

	return b
}

// WithCharset adds a CFF table whose charset has the given format and ranges.
//
// For format 0 the First field of each range is written as a glyph SID.
func (b *Builder) WithCharset(format uint8, ranges ...Range) *Builder {
	b.hasCFF = true
	b.charsetFormat = format
	b.ranges = ranges

	return b
}

// WithPredefinedCharset adds a CFF table whose Top DICT names a predefined charset id (0-2).
func (b *Builder) WithPredefinedCharset(id int) *Builder {
	b.hasCFF = true
	b.predefined = id

	return b
}

// WithFontCount sets the number of fonts in the CFF Name INDEX.
func (b *Builder) WithFontCount(n int) *Builder {
	b.fontCount = n
	return b
}

// Build returns the font file.
func (b *Builder) Build() []byte {
	type table struct {
		tag  string
		data []byte
	}

	tables := []table{{"maxp", b.maxp()}}
	if b.hasCMap4 || b.hasCMap12 {
		tables = append(tables, table{"cmap", b.cmap()})
	}
	if b.hasCFF {
		tables = append(tables, table{"CFF ", b.cff()})
	}
	slices.SortFunc(tables, func(x, y table) int {
		switch {
		case x.tag < y.tag:
			return -1
		case x.tag > y.tag:
			return 1
		default:
			return 0
		}
	})

	engine := endian.GetBigEndianEngine()
	version := uint32(0x00010000)
	if b.hasCFF {
		version = 0x4F54544F // OTTO
	}

	out := engine.AppendUint32(nil, version)
	out = engine.AppendUint16(out, uint16(len(tables)))
	out = engine.AppendUint16(out, 0) // searchRange
	out = engine.AppendUint16(out, 0) // entrySelector
	out = engine.AppendUint16(out, 0) // rangeShift

	offset := 12 + 16*len(tables)
	for _, t := range tables {
		out = append(out, t.tag...)
		out = engine.AppendUint32(out, 0) // checksum
		out = engine.AppendUint32(out, uint32(offset))
		out = engine.AppendUint32(out, uint32(len(t.data)))
		offset += pad4(len(t.data))
	}
	for _, t := range tables {
		out = append(out, t.data...)
		out = append(out, make([]byte, pad4(len(t.data))-len(t.data))...)
	}

	return out
}

func (b *Builder) maxp() []byte {
	engine := endian.GetBigEndianEngine()
	out := engine.AppendUint32(nil, 0x00005000)

	return engine.AppendUint16(out, b.numGlyphs)
}

func (b *Builder) cmap() []byte {
	engine := endian.GetBigEndianEngine()

	var records []Subtable
	var subtables [][]byte
	if b.hasCMap4 {
		records = append(records, b.cmap4ID)
		subtables = append(subtables, b.format4())
	}
	if b.hasCMap12 {
		records = append(records, b.cmap12ID)
		subtables = append(subtables, b.format12())
	}

	out := engine.AppendUint16(nil, 0)
	out = engine.AppendUint16(out, uint16(len(records)))
	offset := 4 + 8*len(records)
	for i, rec := range records {
		out = engine.AppendUint16(out, rec.PlatformID)
		out = engine.AppendUint16(out, rec.EncodingID)
		out = engine.AppendUint32(out, uint32(offset))
		offset += len(subtables[i])
	}
	for _, sub := range subtables {
		out = append(out, sub...)
	}

	return out
}

func (b *Builder) format4() []byte {
	engine := endian.GetBigEndianEngine()
	segCount := len(b.cmap4)

	out := engine.AppendUint16(nil, 4)
	out = engine.AppendUint16(out, uint16(16+8*segCount))
	out = engine.AppendUint16(out, 0) // language
	out = engine.AppendUint16(out, uint16(2*segCount))
	out = engine.AppendUint16(out, 0) // searchRange
	out = engine.AppendUint16(out, 0) // entrySelector
	out = engine.AppendUint16(out, 0) // rangeShift
	for _, s := range b.cmap4 {
		out = engine.AppendUint16(out, s.End)
	}
	out = engine.AppendUint16(out, 0) // reservedPad
	for _, s := range b.cmap4 {
		out = engine.AppendUint16(out, s.Start)
	}
	for _, s := range b.cmap4 {
		out = engine.AppendUint16(out, uint16(s.IDDelta))
	}
	for _, s := range b.cmap4 {
		out = engine.AppendUint16(out, s.IDRangeOffset)
	}

	return out
}

func (b *Builder) format12() []byte {
	engine := endian.GetBigEndianEngine()

	out := engine.AppendUint16(nil, 12)
	out = engine.AppendUint16(out, 0) // reserved
	out = engine.AppendUint32(out, uint32(16+12*len(b.cmap12)))
	out = engine.AppendUint32(out, 0) // language
	out = engine.AppendUint32(out, uint32(len(b.cmap12)))
	for _, g := range b.cmap12 {
		out = engine.AppendUint32(out, g.Start)
		out = engine.AppendUint32(out, g.End)
		out = engine.AppendUint32(out, g.GID)
	}

	return out
}

// cff writes header, Name INDEX, Top DICT INDEX, empty String and Global Subr
// INDEXes, then the charset. Top DICTs use a 5-byte charset operand so the
// charset offset is known before the dicts are written.
func (b *Builder) cff() []byte {
	engine := endian.GetBigEndianEngine()
	n := b.fontCount

	names := make([][]byte, n)
	for i := range names {
		names[i] = []byte{'F', byte('A' + i%26)}
	}

	const dictLen = 6
	charsetOffset := 4 +
		indexLen(names) +
		3 + (n + 1) + n*dictLen +
		2 + 2
	if n == 0 {
		charsetOffset -= 1 + 1
	}
	if b.predefined >= 0 {
		charsetOffset = b.predefined
	}

	dicts := make([][]byte, n)
	for i := range dicts {
		d := []byte{29}
		d = engine.AppendUint32(d, uint32(charsetOffset))
		dicts[i] = append(d, 15)
	}

	out := []byte{1, 0, 4, 1}
	out = appendIndex(out, names)
	out = appendIndex(out, dicts)
	out = appendIndex(out, nil) // String INDEX
	out = appendIndex(out, nil) // Global Subr INDEX

	if b.predefined >= 0 {
		return out
	}

	out = append(out, b.charsetFormat)
	for _, r := range b.ranges {
		out = engine.AppendUint16(out, r.First)
		switch b.charsetFormat {
		case 1:
			out = append(out, uint8(r.NLeft))
		case 2:
			out = engine.AppendUint16(out, r.NLeft)
		}
	}

	return out
}

func indexLen(objects [][]byte) int {
	if len(objects) == 0 {
		return 2
	}
	size := 3 + len(objects) + 1
	for _, o := range objects {
		size += len(o)
	}

	return size
}

// appendIndex writes a CFF INDEX with 1-byte offsets.
func appendIndex(dst []byte, objects [][]byte) []byte {
	engine := endian.GetBigEndianEngine()
	dst = engine.AppendUint16(dst, uint16(len(objects)))
	if len(objects) == 0 {
		return dst
	}

	dst = append(dst, 1)
	offset := 1
	dst = append(dst, byte(offset))
	for _, o := range objects {
		offset += len(o)
		dst = append(dst, byte(offset))
	}
	for _, o := range objects {
		dst = append(dst, o...)
	}

	return dst
}

func pad4(n int) int {
	return (n + 3) &^ 3
}
